package token

import "strings"

// Stream builds a gap-free token sequence over a source. Bytes skipped
// between emitted tokens become Whitespace or Other tokens, so the texts of
// the result always concatenate back to the source.
type Stream struct {
	src    string
	lines  *LineIndex
	tokens []Token
	pos    int
}

// NewStream starts a stream at the beginning of src
func NewStream(src string) *Stream {
	return &Stream{src: src, lines: NewLineIndex(src)}
}

// Pos is the offset of the first byte not yet emitted
func (s *Stream) Pos() int {
	return s.pos
}

// Gap emits whatever lies between the last token and offset
func (s *Stream) Gap(offset int) {
	if offset <= s.pos {
		return
	}
	text := s.src[s.pos:offset]
	kind := Whitespace
	if strings.TrimSpace(text) != "" {
		kind = Other
	}
	s.tokens = append(s.tokens, Token{Kind: kind, Text: text, Line: s.lines.Line(s.pos)})
	s.pos = offset
}

// Emit appends src[start:end] as one token. Bytes already emitted are skipped.
func (s *Stream) Emit(kind Kind, start, end int) {
	start = max(start, s.pos)
	if start >= end {
		return
	}
	s.Gap(start)
	s.tokens = append(s.tokens, Token{Kind: kind, Text: s.src[start:end], Line: s.lines.Line(start)})
	s.pos = end
}

// EmitLines appends src[start:end] as one token per line
func (s *Stream) EmitLines(kind Kind, start, end int) {
	start = max(start, s.pos)
	if start >= end {
		return
	}
	s.Gap(start)
	for _, line := range SplitLines(s.src[start:end]) {
		s.tokens = append(s.tokens, Token{Kind: kind, Text: line, Line: s.lines.Line(s.pos)})
		s.pos += len(line)
	}
}

// Finish emits the rest of the source and returns the tokens
func (s *Stream) Finish() []Token {
	s.Gap(len(s.src))
	return s.tokens
}
