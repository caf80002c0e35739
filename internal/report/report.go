// Package report writes run results for people and for tools.
package report

import (
	"fmt"
	"io"
	"strings"

	"apicompat/internal/diagnostic"
	"apicompat/internal/engine"
)

// Format selects a writer.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown report format %q", s)
	}
}

// Report is what gets written: the differences left after suppression plus
// everything worth telling about the run.
type Report struct {
	Name        string // shown in the text header, e.g. the baseline library
	Sides       []string
	Differences []engine.Difference
	Suppressed  int
	Diagnostics diagnostic.Diagnostics
}

// FromResult builds a report from a result with nothing suppressed.
func FromResult(res *engine.Result) Report {
	r := Report{
		Sides:       res.Sides,
		Differences: res.Differences,
		Diagnostics: res.Diagnostics,
	}

	if len(res.Sides) > 0 {
		r.Name = res.Sides[0]
	}

	return r
}

// Options tune the writers.
type Options struct {
	Format Format
	// Color enables ANSI colors in text output.
	Color bool
}

// Write renders r to w.
func Write(w io.Writer, r Report, opts Options) error {
	switch opts.Format {
	case FormatJSON:
		return writeJSON(w, r)
	case FormatText, "":
		return writeText(w, r, opts.Color)
	default:
		return fmt.Errorf("unknown report format %q", opts.Format)
	}
}
