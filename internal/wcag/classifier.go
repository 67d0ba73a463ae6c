package wcag

import (
	"bennypowers.dev/wcaglint/internal/collections"
	"bennypowers.dev/wcaglint/internal/token"
)

// candidateKinds are the token kinds whose text may carry markup
var candidateKinds = collections.NewSet(token.StringLiteral, token.HeredocBlock, token.RawMarkup)

// DefaultPatternFunctions are PHP's preg_* functions, whose first argument is a
// regular expression that often looks like markup
var DefaultPatternFunctions = []string{
	"preg_filter",
	"preg_grep",
	"preg_match_all",
	"preg_match",
	"preg_replace_callback",
	"preg_replace",
	"preg_split",
}

type classifier struct {
	patternFuncs collections.Set[string]
}

// isCandidate reports whether tokens[i] may carry markup and is not a
// pattern argument. Pattern arguments also end a run.
func (c *classifier) isCandidate(tokens []token.Token, i int) bool {
	if i < 0 || i >= len(tokens) || !candidateKinds.Has(tokens[i].Kind) {
		return false
	}
	return !c.isPatternArgument(tokens, i)
}

// isPatternArgument reports whether tokens[i] is the first argument of a call
// like preg_match( '...' ), looking back over whitespace for "(" and then over
// whitespace and "(" for the callee name
func (c *classifier) isPatternArgument(tokens []token.Token, i int) bool {
	p := skipBack(tokens, i-1, token.Whitespace)
	if p < 0 || tokens[p].Kind != token.OpenParen {
		return false
	}
	q := skipBack(tokens, i-1, token.Whitespace, token.OpenParen)
	if q < 0 || tokens[q].Kind != token.Identifier {
		return false
	}
	return c.patternFuncs.Has(tokens[q].Text)
}

// skipBack returns the index of the last token at or before from whose kind is
// not one of skip, or -1
func skipBack(tokens []token.Token, from int, skip ...token.Kind) int {
	for i := from; i >= 0; i-- {
		skipped := false
		for _, k := range skip {
			if tokens[i].Kind == k {
				skipped = true
				break
			}
		}
		if !skipped {
			return i
		}
	}
	return -1
}
