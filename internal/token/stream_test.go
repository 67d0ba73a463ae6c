package token_test

import (
	"testing"

	"bennypowers.dev/wcaglint/internal/token"
	"github.com/stretchr/testify/assert"
)

func TestStream(t *testing.T) {
	src := "x = '<b>';\n<p>\n</p>\n"
	s := token.NewStream(src)
	s.Emit(token.StringLiteral, 4, 9)
	s.Emit(token.StringLiteral, 6, 9)
	s.EmitLines(token.RawMarkup, 11, len(src))
	tokens := s.Finish()

	assert.Equal(t, []token.Token{
		{Kind: token.Other, Text: "x = ", Line: 1},
		{Kind: token.StringLiteral, Text: "'<b>'", Line: 1},
		{Kind: token.Other, Text: ";\n", Line: 1},
		{Kind: token.RawMarkup, Text: "<p>\n", Line: 2},
		{Kind: token.RawMarkup, Text: "</p>\n", Line: 3},
	}, tokens)
	assert.Equal(t, len(src), s.Pos())
}

func TestStreamGap(t *testing.T) {
	s := token.NewStream("  \n  foo")
	s.Gap(3)
	s.Gap(2)
	tokens := s.Finish()
	assert.Equal(t, []token.Token{
		{Kind: token.Whitespace, Text: "  \n", Line: 1},
		{Kind: token.Other, Text: "  foo", Line: 2},
	}, tokens)
}
