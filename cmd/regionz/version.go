package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zoobzio/regionz/engine"
)

var version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "regionz %s (%s, omp %d)\n", version, engine.RuntimeVersion, engine.OMPVersion)
		},
	}
}
