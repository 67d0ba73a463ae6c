package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"bennypowers.dev/wcaglint/internal/lint"
	"bennypowers.dev/wcaglint/internal/wcag"
	"github.com/charmbracelet/lipgloss"
)

var severityColors = map[wcag.Severity]lipgloss.Color{
	wcag.SeverityError:   lipgloss.Color("#E74C3C"),
	wcag.SeverityWarning: lipgloss.Color("#F4D03F"),
	wcag.SeverityInfo:    lipgloss.Color("#2CD7C7"),
}

// writeText prints one line per violation, path:line: severity: message (rule).
// Severities are colored when w is a terminal. Files that could not be
// checked and the summary go to errw.
func writeText(w, errw io.Writer, results []lint.FileResult) error {
	r := lipgloss.NewRenderer(w)
	styles := make(map[wcag.Severity]lipgloss.Style, len(severityColors))
	for sev, color := range severityColors {
		styles[sev] = r.NewStyle().Foreground(color).Bold(sev == wcag.SeverityError)
	}

	total, withViolations, failed := 0, 0, 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			fmt.Fprintf(errw, "%s: %v\n", res.Path, res.Err)
			continue
		}
		if len(res.Violations) > 0 {
			withViolations++
		}
		for _, v := range res.Violations {
			total++
			if _, err := fmt.Fprintf(w, "%s:%d: %s: %s (%s)\n",
				res.Path, v.Line, styles[v.Severity].Render(v.Severity.String()), v.Message, v.Rule); err != nil {
				return err
			}
		}
	}

	switch total {
	case 0:
		fmt.Fprintf(errw, "No violations in %d files\n", len(results)-failed)
	case 1:
		fmt.Fprintf(errw, "1 violation in 1 of %d files\n", len(results)-failed)
	default:
		fmt.Fprintf(errw, "%d violations in %d of %d files\n", total, withViolations, len(results)-failed)
	}
	return nil
}

type fileReport struct {
	Path       string           `json:"path"`
	Violations []wcag.Violation `json:"violations"`
	Error      string           `json:"error,omitempty"`
}

type report struct {
	Files      []fileReport `json:"files"`
	Violations int          `json:"violations"`
}

// writeJSON prints every result, including files that could not be checked
func writeJSON(w io.Writer, results []lint.FileResult) error {
	out := report{Files: make([]fileReport, 0, len(results))}
	for _, res := range results {
		fr := fileReport{Path: res.Path, Violations: res.Violations}
		if fr.Violations == nil {
			fr.Violations = []wcag.Violation{}
		}
		if res.Err != nil {
			fr.Error = res.Err.Error()
		}
		out.Violations += len(res.Violations)
		out.Files = append(out.Files, fr)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
