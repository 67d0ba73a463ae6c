package wcag

import (
	"fmt"
	"strings"

	"bennypowers.dev/wcaglint/internal/dom"
)

// Suffix is appended to every block before parsing. Whatever element the block
// boundary cut off mid-tag gets closed by it, and the closing attributes give
// that element a non-empty alt and aria-label, so a tag that exists only
// because of the truncation never reports anything. After a complete tag the
// suffix is plain text.
const Suffix = ` '" alt="foo" aria-label="foo" >`

var (
	unlabelledTypes = []string{"image", "submit", "reset", "button", "hidden"}
	buttonTypes     = []string{"submit", "button", "reset"}
)

// hasType matches the type attribute ignoring case and surrounding space, so
// type="Submit" counts as a submit input.
func hasType(el *dom.Node, types []string) bool {
	t, ok := el.Attr("type")
	if !ok {
		return false
	}
	t = strings.ToLower(strings.TrimSpace(t))
	for _, want := range types {
		if t == want {
			return true
		}
	}
	return false
}

// evaluateTree applies the structural rules to the parsed block. Labels are
// recorded first so a control can use a label from the same block.
func evaluateTree(labels *LabelRegistry, doc *dom.Node, b *Block) []Violation {
	for _, label := range doc.ElementsByTag("label") {
		if id, ok := label.Attr("for"); ok {
			labels.Record(id)
		}
	}

	var out []Violation
	report := func(rule RuleID, el *dom.Node, msg string) {
		out = append(out, Violation{Rule: rule, Message: msg, Line: b.Line(el.Line)})
	}

	for _, control := range doc.ElementsByTag("input", "select", "textarea") {
		if isMissingFormLabel(control, labels) {
			report(MissingFormLabel, control, fmt.Sprintf(msgMissingLabel, control.Tag))
		}
	}

	for _, input := range doc.ElementsByTag("input") {
		if isEmptyButtonInput(input) {
			report(EmptyButton, input, msgEmptyInput)
		}
	}

	for _, img := range doc.ElementsByTag("img") {
		if !img.HasAttr("alt") {
			report(MissingAltText, img, msgMissingAlt)
		}
	}

	seen := make(map[*dom.Node]bool)
	for _, link := range doc.ElementsByTag("a") {
		for _, img := range link.ElementsByTag("img") {
			if seen[img] {
				continue
			}
			seen[img] = true
			alt, _ := img.Attr("alt")
			if strings.TrimSpace(alt) == "" {
				report(LinkedImageMissingAlt, img, msgLinkedImageAlt)
			}
		}
	}

	return out
}

// isMissingFormLabel checks a control for any accessible name source. Only the
// presence of title and aria-label counts, not their content.
func isMissingFormLabel(control *dom.Node, labels *LabelRegistry) bool {
	if hasType(control, unlabelledTypes) {
		return false
	}
	if id, ok := control.Attr("id"); ok && labels.Contains(id) {
		return false
	}
	if control.HasAttr("title") || control.HasAttr("aria-label") {
		return false
	}
	return true
}

func isEmptyButtonInput(input *dom.Node) bool {
	if !hasType(input, buttonTypes) {
		return false
	}
	if input.HasAttr("aria-label") {
		return false
	}
	if v, ok := input.Attr("value"); ok && strings.TrimSpace(v) != "" {
		return false
	}
	return true
}
