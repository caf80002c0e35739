package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fatih/color"

	"apicompat/internal/diagnostic"
	"apicompat/internal/rules"
)

type palette struct {
	rule     map[rules.DifferenceType]*color.Color
	warning  *color.Color
	errorCol *color.Color
	summary  *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		rule: map[rules.DifferenceType]*color.Color{
			rules.Added:        color.New(color.FgGreen),
			rules.Removed:      color.New(color.FgRed),
			rules.Changed:      color.New(color.FgYellow),
			rules.Incompatible: color.New(color.FgRed, color.Bold),
		},
		warning:  color.New(color.FgYellow),
		errorCol: color.New(color.FgRed, color.Bold),
		summary:  color.New(color.Bold),
	}

	for _, c := range p.all() {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p
}

func (p palette) all() []*color.Color {
	out := []*color.Color{p.warning, p.errorCol, p.summary}
	for t := rules.Added; t <= rules.Incompatible; t++ {
		out = append(out, p.rule[t])
	}

	return out
}

func writeText(w io.Writer, r Report, colored bool) error {
	p := newPalette(colored)
	bw := bufio.NewWriter(w)

	if r.Name != "" {
		fmt.Fprintf(bw, "Compat issues with %s:\n", r.Name)
	}

	for _, d := range r.Differences {
		c, ok := p.rule[d.Type]
		if !ok {
			c = p.summary
		}

		fmt.Fprintf(bw, "%s : %s\n", c.Sprint(d.Rule), d.Message)
	}

	for _, d := range r.Diagnostics.All() {
		label := d.Severity.String()

		switch d.Severity {
		case diagnostic.SeverityError:
			label = p.errorCol.Sprint(label)
		case diagnostic.SeverityWarning:
			label = p.warning.Sprint(label)
		}

		fmt.Fprintf(bw, "%s: %s\n", label, d.String())
	}

	summary := fmt.Sprintf("Total Issues: %d", len(r.Differences))
	if r.Suppressed > 0 {
		summary += fmt.Sprintf(" (%d suppressed by baseline)", r.Suppressed)
	}

	fmt.Fprintln(bw, p.summary.Sprint(summary))

	return bw.Flush()
}
