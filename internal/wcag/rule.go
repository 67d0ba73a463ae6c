package wcag

import (
	"bennypowers.dev/wcaglint/internal/log"
	"bennypowers.dev/wcaglint/internal/token"
)

// Rule is evaluated once per token of a file, in order. Evaluate may read and
// update sc, which lives for exactly one file scan.
type Rule interface {
	InterestedKinds() []token.Kind
	Evaluate(sc *ScanContext, tokens []token.Token, index int) []Violation
}

// Run scans one file's tokens with rule and returns the violations in the
// order they were found. Every call gets a fresh ScanContext.
func Run(rule Rule, tokens []token.Token) []Violation {
	sc := NewScanContext()
	interested := make(map[token.Kind]bool)
	for _, k := range rule.InterestedKinds() {
		interested[k] = true
	}
	var out []Violation
	for i, t := range tokens {
		if !interested[t.Kind] {
			continue
		}
		out = append(out, rule.Evaluate(sc, tokens, i)...)
	}
	log.Debug("Scan recorded %d label targets", sc.Labels.Len())
	return out
}
