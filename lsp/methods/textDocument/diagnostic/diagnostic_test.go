package diagnostic

import (
	"testing"

	"bennypowers.dev/wcaglint/internal/config"
	"bennypowers.dev/wcaglint/internal/wcag"
	"bennypowers.dev/wcaglint/lsp/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const form = "<form>\n  <input name=\"q\">\n</form>\n"

func TestGetDiagnostics_HTML(t *testing.T) {
	ctx := testutil.NewMockServerContext()
	uri := "file:///search.html"
	ctx.DocumentManager().DidOpen(uri, "html", 1, form)

	diagnostics, err := GetDiagnostics(ctx, uri)
	require.NoError(t, err)
	require.Len(t, diagnostics, 1)

	d := diagnostics[0]
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 1, Character: 2},
		End:   protocol.Position{Line: 1, Character: 18},
	}, d.Range)
	require.NotNil(t, d.Severity)
	assert.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)
	require.NotNil(t, d.Code)
	assert.Equal(t, string(wcag.MissingFormLabel), d.Code.Value)
	require.NotNil(t, d.Source)
	assert.Equal(t, "wcaglint", *d.Source)
	assert.Contains(t, d.Message, "<input>")
}

func TestGetDiagnostics_CachesViolations(t *testing.T) {
	ctx := testutil.NewMockServerContext()
	uri := "file:///search.html"
	doc := ctx.DocumentManager().DidOpen(uri, "html", 1, form)

	_, err := GetDiagnostics(ctx, uri)
	require.NoError(t, err)

	violations, checked := doc.Violations()
	assert.True(t, checked)
	require.Len(t, violations, 1)
	assert.Equal(t, 2, violations[0].Line)
}

func TestGetDiagnostics_Clean(t *testing.T) {
	ctx := testutil.NewMockServerContext()
	uri := "file:///search.html"
	ctx.DocumentManager().DidOpen(uri, "html", 1, `<label for="q">Search</label><input id="q">`)

	diagnostics, err := GetDiagnostics(ctx, uri)
	require.NoError(t, err)
	assert.NotNil(t, diagnostics)
	assert.Empty(t, diagnostics)
}

func TestGetDiagnostics_UnsupportedLanguage(t *testing.T) {
	ctx := testutil.NewMockServerContext()
	uri := "file:///README.md"
	ctx.DocumentManager().DidOpen(uri, "markdown", 1, `<img src="x.png">`)

	diagnostics, err := GetDiagnostics(ctx, uri)
	require.NoError(t, err)
	assert.NotNil(t, diagnostics)
	assert.Empty(t, diagnostics)
}

func TestGetDiagnostics_UnknownDocument(t *testing.T) {
	ctx := testutil.NewMockServerContext()

	diagnostics, err := GetDiagnostics(ctx, "file:///missing.html")
	require.NoError(t, err)
	assert.Nil(t, diagnostics)
}

func TestGetDiagnostics_RuleConfig(t *testing.T) {
	ctx := testutil.NewMockServerContext()
	cfg := config.Default()
	cfg.Rules = map[string]config.RuleConfig{
		string(wcag.MissingFormLabel): {Severity: "warning"},
	}
	ctx.SetConfig(cfg)

	uri := "file:///search.html"
	ctx.DocumentManager().DidOpen(uri, "html", 1, form+`<img src="logo.png">`)

	diagnostics, err := GetDiagnostics(ctx, uri)
	require.NoError(t, err)
	require.Len(t, diagnostics, 2)
	assert.Equal(t, protocol.DiagnosticSeverityWarning, *diagnostics[0].Severity)
	assert.Equal(t, protocol.DiagnosticSeverityError, *diagnostics[1].Severity)
	assert.Equal(t, string(wcag.MissingAltText), diagnostics[1].Code.Value)
	assert.Equal(t, uint32(3), diagnostics[1].Range.Start.Line)
}

func TestSeverity(t *testing.T) {
	assert.Equal(t, protocol.DiagnosticSeverityError, Severity(wcag.SeverityError))
	assert.Equal(t, protocol.DiagnosticSeverityWarning, Severity(wcag.SeverityWarning))
	assert.Equal(t, protocol.DiagnosticSeverityInformation, Severity(wcag.SeverityInfo))
}

func TestToDiagnostic_Astral(t *testing.T) {
	content := "const a = 1;\n\t🎨 `<img>`;"
	d := ToDiagnostic(content, wcag.Violation{Rule: wcag.MissingAltText, Line: 2, Message: "m"})

	assert.Equal(t, uint32(1), d.Range.Start.Line)
	assert.Equal(t, uint32(1), d.Range.Start.Character)
	assert.Equal(t, uint32(12), d.Range.End.Character)
}
