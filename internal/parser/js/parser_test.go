package js_test

import (
	"os"
	"strings"
	"testing"

	"bennypowers.dev/wcaglint/internal/parser/js"
	"bennypowers.dev/wcaglint/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenize(t *testing.T, source string) []token.Token {
	t.Helper()
	p := js.AcquireParser()
	defer js.ReleaseParser(p)
	tokens, err := p.Tokenize(source)
	require.NoError(t, err)
	return tokens
}

func ofKind(tokens []token.Token, kinds ...token.Kind) []token.Token {
	var out []token.Token
	for _, tok := range tokens {
		for _, k := range kinds {
			if tok.Kind == k {
				out = append(out, tok)
			}
		}
	}
	return out
}

func joined(tokens []token.Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteString(tok.Text)
	}
	return sb.String()
}

func TestTokenizeCoversSource(t *testing.T) {
	sources := []string{
		"const a = '<img src=\"x\">';\n",
		"el.innerHTML = `<p>\n  ${name}\n</p>`;",
		"  // comment\nfoo( \"<b>\" )\n\n",
		"",
	}
	for _, src := range sources {
		assert.Equal(t, src, joined(tokenize(t, src)))
	}
}

func TestTokenizeStrings(t *testing.T) {
	tokens := tokenize(t, "const a = '<img src=\"x\">';\nconst b = \"<br>\";\n")
	strs := ofKind(tokens, token.StringLiteral)
	require.Len(t, strs, 2)
	assert.Equal(t, `'<img src="x">'`, strs[0].Text)
	assert.Equal(t, 1, strs[0].Line)
	assert.Equal(t, `"<br>"`, strs[1].Text)
	assert.Equal(t, 2, strs[1].Line)
}

func TestTokenizePatternCall(t *testing.T) {
	tokens := tokenize(t, `s.match("<a>")`)
	var kinds []token.Kind
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []token.Kind{
		token.Identifier,    // s
		token.Other,         // .
		token.Identifier,    // match
		token.OpenParen,     // (
		token.StringLiteral, // "<a>"
		token.Other,         // )
	}, kinds)
}

func TestTokenizeTemplate(t *testing.T) {
	src := "html = `<ul>\n  <li>${item}</li>\n</ul>`;"
	tokens := tokenize(t, src)

	heredoc := ofKind(tokens, token.HeredocBlock)
	require.Len(t, heredoc, 4)
	assert.Equal(t, "`<ul>\n", heredoc[0].Text)
	assert.Equal(t, 1, heredoc[0].Line)
	assert.Equal(t, "  <li>", heredoc[1].Text)
	assert.Equal(t, 2, heredoc[1].Line)
	assert.Equal(t, "</li>\n", heredoc[2].Text)
	assert.Equal(t, 2, heredoc[2].Line)
	assert.Equal(t, "</ul>`", heredoc[3].Text)
	assert.Equal(t, 3, heredoc[3].Line)

	idents := ofKind(tokens, token.Identifier)
	require.Len(t, idents, 2)
	assert.Equal(t, "item", idents[1].Text)
}

func TestTokenizeJSX(t *testing.T) {
	source, err := os.ReadFile("testdata/component.jsx")
	require.NoError(t, err)
	tokens := tokenize(t, string(source))
	assert.Equal(t, string(source), joined(tokens))

	markup := ofKind(tokens, token.RawMarkup)
	require.NotEmpty(t, markup)
	assert.Equal(t, "<header>\n", markup[0].Text)
	assert.Equal(t, 6, markup[0].Line)
	assert.Equal(t, 11, markup[len(markup)-1].Line)
	for _, m := range markup {
		if strings.Contains(m.Text, "<img") {
			assert.Equal(t, 8, m.Line)
		}
	}

	// the regex literal is opaque
	for _, tok := range tokens {
		if strings.HasPrefix(tok.Text, "/<") {
			assert.Equal(t, token.Other, tok.Kind)
		}
	}
}

func TestPatternFunctions(t *testing.T) {
	assert.Contains(t, js.PatternFunctions, "replace")
	assert.Contains(t, js.PatternFunctions, "RegExp")
}
