package wcag

import (
	"fmt"
	"strings"
	"time"

	"bennypowers.dev/wcaglint/internal/log"
	"github.com/dlclark/regexp2"
)

// matchTimeout bounds a single fallback search so a pathological block cannot
// stall a scan
const matchTimeout = 2 * time.Second

// iconChildren matches the self-closing icon elements allowed inside an empty
// wrapper, e.g. <i class="fa"/> or <svg><use .../></svg> written as <use/>
const iconChildren = `(?:\s*<(?:i|svg|use|path|span)\b[^>]*/>)*`

type fallbackPattern struct {
	rule RuleID
	msg  string
	re   *regexp2.Regexp
	// matches checks the captured attribute text of the opening tag
	matches func(attrs string) bool
}

func mustCompile(pattern string) *regexp2.Regexp {
	re := regexp2.MustCompile(pattern, regexp2.None)
	re.MatchTimeout = matchTimeout
	return re
}

func isEmptyLinkAttrs(attrs string) bool {
	lower := strings.ToLower(attrs)
	return strings.Contains(lower, "href") && !strings.Contains(lower, "aria-label")
}

func isEmptyButtonAttrs(attrs string) bool {
	return !strings.Contains(strings.ToLower(attrs), "aria-label")
}

func wrapped(tag string) string {
	return `<` + tag + ` ([^>]*)>\s*<(span|div) [^>]*>` + iconChildren + `\s*</\2>\s*</` + tag + `>`
}

// fallbackPatterns run in order over the unparsed block text. The parser
// cannot tell <a href="#"></a> from an <a> whose closing tag follows dynamic
// content, so empty links and buttons are found here instead of in the tree.
var fallbackPatterns = []fallbackPattern{
	{EmptyLink, msgEmptyLink, mustCompile(`<a ([^>]*)>\s*</a>`), isEmptyLinkAttrs},
	{EmptyLink, msgEmptyLink, mustCompile(wrapped("a")), isEmptyLinkAttrs},
	{EmptyButton, msgEmptyButton, mustCompile(`<button ([^>]*)>\s*</button>`), isEmptyButtonAttrs},
	{EmptyButton, msgEmptyButton, mustCompile(wrapped("button")), isEmptyButtonAttrs},
}

// evaluateFallback scans each pattern left to right, resuming every search at
// the end of the previous match. Violations report at the block's anchor line.
func evaluateFallback(b *Block) []Violation {
	var out []Violation
	for _, p := range fallbackPatterns {
		m, err := p.re.FindStringMatch(b.Text)
		for m != nil && err == nil {
			groups := m.Groups()
			if len(groups) > 1 && p.matches(groups[1].String()) {
				out = append(out, Violation{
					Rule:    p.rule,
					Message: fmt.Sprintf(p.msg, m.String()),
					Line:    b.AnchorLine,
				})
			}
			m, err = p.re.FindNextMatch(m)
		}
		if err != nil {
			log.Warn("%s fallback search stopped at line %d: %v", p.rule, b.AnchorLine, err)
		}
	}
	return out
}
