package token

import (
	"fmt"
	"sort"
	"strings"
)

// Kind classifies a lexical token of the host source
type Kind int

const (
	// Other is any token the checker never looks at
	Other Kind = iota
	// Whitespace is a run of blanks or newlines between two tokens
	Whitespace
	// OpenParen is a "(" token
	OpenParen
	// Identifier is a name, including property names after a "."
	Identifier
	// StringLiteral is a quoted string, quotes included
	StringLiteral
	// HeredocBlock is one line of a multi-line literal block (heredoc, template string)
	HeredocBlock
	// RawMarkup is one line of markup written directly in the host file
	RawMarkup
)

var kindNames = map[Kind]string{
	Other:         "Other",
	Whitespace:    "Whitespace",
	OpenParen:     "OpenParen",
	Identifier:    "Identifier",
	StringLiteral: "StringLiteral",
	HeredocBlock:  "HeredocBlock",
	RawMarkup:     "RawMarkup",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is one element of a tokenized source file
type Token struct {
	Kind Kind
	Text string
	// Line is the 1-based line on which the token starts
	Line int
}

func (t Token) String() string {
	return fmt.Sprintf("%s@%d(%q)", t.Kind, t.Line, t.Text)
}

// LineIndex maps byte offsets of a source to 1-based line numbers
type LineIndex struct {
	newlines []int
}

// NewLineIndex records the offset of every newline in src
func NewLineIndex(src string) *LineIndex {
	idx := &LineIndex{newlines: make([]int, 0, strings.Count(src, "\n"))}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			idx.newlines = append(idx.newlines, i)
		}
	}
	return idx
}

// Line returns the 1-based line containing the byte at offset
func (idx *LineIndex) Line(offset int) int {
	// number of newlines strictly before offset
	return sort.SearchInts(idx.newlines, offset) + 1
}

// SplitLines cuts text into pieces that each end just after a newline, except
// possibly the last. Concatenating the pieces yields text again.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	pieces := strings.SplitAfter(text, "\n")
	if pieces[len(pieces)-1] == "" {
		pieces = pieces[:len(pieces)-1]
	}
	return pieces
}
