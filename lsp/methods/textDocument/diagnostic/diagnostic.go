package diagnostic

import (
	"fmt"

	"bennypowers.dev/wcaglint/internal/log"
	"bennypowers.dev/wcaglint/internal/parser"
	"bennypowers.dev/wcaglint/internal/position"
	"bennypowers.dev/wcaglint/internal/wcag"
	"bennypowers.dev/wcaglint/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Source is reported as the origin of every diagnostic
const Source = "wcaglint"

// GetDiagnostics returns diagnostics for a document. Documents in languages
// without a tokenizer have none. Violations are cached on the document until
// its content or the configuration changes.
func GetDiagnostics(ctx types.ServerContext, uri string) ([]protocol.Diagnostic, error) {
	doc := ctx.Document(uri)
	if doc == nil {
		return nil, nil
	}

	languageID := doc.LanguageID()
	if !parser.IsSupportedLanguage(languageID) {
		log.Debug("No tokenizer for %s (%s)", uri, languageID)
		return []protocol.Diagnostic{}, nil
	}

	content, version := doc.Snapshot()
	violations, checked := doc.Violations()
	if !checked {
		var err error
		violations, err = ctx.Linter().LintSource(content, languageID)
		if err != nil {
			return nil, fmt.Errorf("failed to check %s: %w", uri, err)
		}
		doc.SetViolations(version, violations)
	}

	diagnostics := make([]protocol.Diagnostic, 0, len(violations))
	for _, v := range violations {
		diagnostics = append(diagnostics, ToDiagnostic(content, v))
	}
	return diagnostics, nil
}

// ToDiagnostic converts a violation to a diagnostic spanning the non-blank
// text of the violation's line
func ToDiagnostic(content string, v wcag.Violation) protocol.Diagnostic {
	line := uint32(0)
	if v.Line > 1 {
		line = uint32(v.Line - 1)
	}
	start, end := position.LineSpan(content, v.Line)

	severity := Severity(v.Severity)
	code := protocol.IntegerOrString{Value: string(v.Rule)}
	source := Source
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: start},
			End:   protocol.Position{Line: line, Character: end},
		},
		Severity: &severity,
		Code:     &code,
		Source:   &source,
		Message:  v.Message,
	}
}

// Severity maps a violation severity to the LSP severity
func Severity(s wcag.Severity) protocol.DiagnosticSeverity {
	switch s {
	case wcag.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	case wcag.SeverityInfo:
		return protocol.DiagnosticSeverityInformation
	default:
		return protocol.DiagnosticSeverityError
	}
}
