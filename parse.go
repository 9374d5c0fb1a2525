package regionz

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrNotRecord is returned for lines that are not trace records.
var ErrNotRecord = errors.New("not a trace record")

var (
	eventPattern      = regexp.MustCompile(`^\[OMPT\] Thread (\d+) (.+?) at (-?\d+\.\d+) ms(?: \((.*)\))?$`)
	annotationPattern = regexp.MustCompile(`^\[OMPT_annotation\] Thread (\d+) Annotation at (-?\d+\.\d+) ms: (.*)$`)
)

// Record is one parsed trace line.
//
//nolint:govet // Field order follows the line layout
type Record struct {
	Prefix string
	Worker int
	Event  string
	Millis float64
	Attrs  map[string]string
	Label  string
}

// IsAnnotation reports whether the record came from Annotate.
func (r Record) IsAnnotation() bool {
	return r.Prefix == AnnotationPrefix
}

// ParseRecord parses a single output line. Trailing line terminators are
// ignored.
func ParseRecord(line string) (Record, error) {
	line = strings.TrimRight(line, "\r\n")

	if m := annotationPattern.FindStringSubmatch(line); m != nil {
		worker, ms, err := parseHead(m[1], m[2])
		if err != nil {
			return Record{}, err
		}
		return Record{
			Prefix: AnnotationPrefix,
			Worker: worker,
			Event:  "Annotation",
			Millis: ms,
			Label:  m[3],
		}, nil
	}

	if m := eventPattern.FindStringSubmatch(line); m != nil {
		worker, ms, err := parseHead(m[1], m[3])
		if err != nil {
			return Record{}, err
		}
		return Record{
			Prefix: EventPrefix,
			Worker: worker,
			Event:  m[2],
			Millis: ms,
			Attrs:  parseAttrs(m[4]),
		}, nil
	}

	return Record{}, ErrNotRecord
}

func parseHead(worker, ms string) (int, float64, error) {
	w, err := strconv.Atoi(worker)
	if err != nil {
		return 0, 0, errors.Join(ErrNotRecord, err)
	}
	v, err := strconv.ParseFloat(ms, 64)
	if err != nil {
		return 0, 0, errors.Join(ErrNotRecord, err)
	}
	return w, v, nil
}

func parseAttrs(s string) map[string]string {
	if s == "" {
		return nil
	}
	attrs := make(map[string]string)
	for _, pair := range strings.Split(s, ", ") {
		key, value, ok := strings.Cut(pair, ": ")
		if !ok {
			continue
		}
		attrs[key] = value
	}
	return attrs
}
