package wcag

import (
	"strings"
	"unicode"

	"bennypowers.dev/wcaglint/internal/token"
)

// Block is the text of one maximal run of candidate tokens
type Block struct {
	// Text is the trimmed concatenation of the run's token texts
	Text string
	// AnchorLine is the line of the run's last token
	AnchorLine int
	// LineCount is the number of lines the untrimmed text spans
	LineCount int

	lastLines int // lines spanned by the last token alone
	lead      int // newlines trimmed from the front of the text
}

// countLines counts newline-separated segments, not counting an empty final
// segment left by a trailing newline
func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n") + 1
	if strings.HasSuffix(s, "\n") {
		n--
	}
	return n
}

// StartLine is the source line on which the untrimmed block text begins
func (b *Block) StartLine() int {
	return b.AnchorLine + b.lastLines - b.LineCount
}

// Line maps a 1-based line within Text to a source line
func (b *Block) Line(inBlock int) int {
	if inBlock < 1 {
		inBlock = 1
	}
	return b.StartLine() + b.lead + inBlock - 1
}

// reconstruct builds the block ending at tokens[i]. It returns false when the
// next token extends the same run (the block is built from that token
// instead) or when the run holds nothing but whitespace.
func (c *classifier) reconstruct(tokens []token.Token, i int) (*Block, bool) {
	if c.isCandidate(tokens, i+1) {
		return nil, false
	}

	first := i
	for first-1 >= 0 && c.isCandidate(tokens, first-1) {
		first--
	}

	var sb strings.Builder
	for _, t := range tokens[first : i+1] {
		sb.WriteString(t.Text)
	}
	raw := sb.String()

	trimmedLeft := strings.TrimLeftFunc(raw, unicode.IsSpace)
	text := strings.TrimRightFunc(trimmedLeft, unicode.IsSpace)
	if text == "" {
		return nil, false
	}

	last := tokens[i].Text
	return &Block{
		Text:       text,
		AnchorLine: tokens[i].Line,
		LineCount:  max(countLines(raw), 1),
		lastLines:  max(countLines(last), 1),
		lead:       strings.Count(raw[:len(raw)-len(trimmedLeft)], "\n"),
	}, true
}
