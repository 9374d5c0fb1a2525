package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "regionz",
		Short: "Trace the lifecycle of a task-parallel workload",
		Long: `regionz drives a small parallel workload on the reference engine and prints
one line per lifecycle transition (parallel regions, loops, implicit tasks,
barriers) plus region-of-interest annotations.

Tracing is enabled only when REGIONZ_TOOL_LIBRARIES is set.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}
