package report

import (
	"encoding/json"
	"io"

	"apicompat/internal/engine"
)

type jsonDiagnostic struct {
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Key      string `json:"key,omitempty"`
	Side     *int   `json:"side,omitempty"`
}

type jsonSummary struct {
	Total      int    `json:"total"`
	Suppressed int    `json:"suppressed"`
	Max        string `json:"max"`
}

type jsonReport struct {
	Sides       []string            `json:"sides"`
	Differences []engine.Difference `json:"differences"`
	Diagnostics []jsonDiagnostic    `json:"diagnostics"`
	Summary     jsonSummary         `json:"summary"`
}

func writeJSON(w io.Writer, r Report) error {
	res := engine.Result{Differences: r.Differences}

	out := jsonReport{
		Sides:       r.Sides,
		Differences: r.Differences,
		Diagnostics: []jsonDiagnostic{},
		Summary: jsonSummary{
			Total:      len(r.Differences),
			Suppressed: r.Suppressed,
			Max:        res.Max().String(),
		},
	}

	if out.Differences == nil {
		out.Differences = []engine.Difference{}
	}

	for _, d := range r.Diagnostics.All() {
		jd := jsonDiagnostic{
			Severity: d.Severity.String(),
			Code:     d.Code,
			Message:  d.Message,
			Key:      d.Key,
		}

		if d.Side >= 0 {
			side := d.Side
			jd.Side = &side
		}

		out.Diagnostics = append(out.Diagnostics, jd)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(out)
}
