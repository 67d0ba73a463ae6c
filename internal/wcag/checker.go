package wcag

import (
	"bennypowers.dev/wcaglint/internal/collections"
	"bennypowers.dev/wcaglint/internal/dom"
	"bennypowers.dev/wcaglint/internal/token"
)

// Options configures a Checker
type Options struct {
	// PatternFunctions names the functions whose first argument is a regular
	// expression rather than markup. Nil means DefaultPatternFunctions.
	PatternFunctions []string
	// Disabled rules are never reported
	Disabled map[RuleID]bool
	// Severities overrides the default error severity per rule
	Severities map[RuleID]Severity
}

// Checker finds WCAG violations in the markup carried by literal tokens
type Checker struct {
	classifier
	disabled   map[RuleID]bool
	severities map[RuleID]Severity
}

// NewChecker creates a Checker from opts
func NewChecker(opts Options) *Checker {
	funcs := opts.PatternFunctions
	if funcs == nil {
		funcs = DefaultPatternFunctions
	}
	return &Checker{
		classifier: classifier{patternFuncs: collections.NewSet(funcs...)},
		disabled:   opts.Disabled,
		severities: opts.Severities,
	}
}

// InterestedKinds returns the token kinds Evaluate acts on
func (c *Checker) InterestedKinds() []token.Kind {
	return []token.Kind{token.StringLiteral, token.HeredocBlock, token.RawMarkup}
}

// Evaluate checks the block that ends at tokens[index]. It returns nothing
// when tokens[index] is not a candidate or when the block continues past it.
func (c *Checker) Evaluate(sc *ScanContext, tokens []token.Token, index int) []Violation {
	if !c.isCandidate(tokens, index) {
		return nil
	}
	b, ok := c.reconstruct(tokens, index)
	if !ok {
		return nil
	}

	doc := dom.Parse(b.Text + Suffix)
	found := evaluateTree(sc.Labels, doc, b)
	found = append(found, evaluateFallback(b)...)

	out := found[:0]
	for _, v := range found {
		if c.disabled[v.Rule] {
			continue
		}
		if sev, ok := c.severities[v.Rule]; ok {
			v.Severity = sev
		}
		out = append(out, v)
	}
	return out
}

// CheckBlock evaluates a single block of markup as if it were the only
// candidate run in a file, with the block starting on line 1
func (c *Checker) CheckBlock(sc *ScanContext, markup string) []Violation {
	tokens := []token.Token{{Kind: token.RawMarkup, Text: markup, Line: 1}}
	return c.Evaluate(sc, tokens, 0)
}
