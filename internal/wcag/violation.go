package wcag

import (
	"fmt"
	"strings"
)

// RuleID is the stable code of a rule, used for filtering and suppression
type RuleID string

const (
	MissingFormLabel      RuleID = "missing-form-label"
	EmptyButton           RuleID = "empty-button"
	MissingAltText        RuleID = "missing-alt-text"
	LinkedImageMissingAlt RuleID = "linked-image-missing-alt"
	EmptyLink             RuleID = "empty-link"
)

// Severity of a reported violation
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// ParseSeverity converts "error", "warning" or "info" to a Severity
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return SeverityError, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "info":
		return SeverityInfo, nil
	default:
		return SeverityError, fmt.Errorf("unknown severity %q", s)
	}
}

// MarshalText encodes the severity by name
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Violation is one accessibility problem found in a source file
type Violation struct {
	Rule     RuleID   `json:"rule"`
	Message  string   `json:"message"`
	Line     int      `json:"line"`
	Severity Severity `json:"severity"`
}

// RuleInfo describes a rule for listings and documentation
type RuleInfo struct {
	ID          RuleID
	Name        string
	WCAG        []string
	Description string
}

// Rules lists every rule the checker can report
var Rules = []RuleInfo{
	{
		ID:          MissingFormLabel,
		Name:        "Missing form label",
		WCAG:        []string{"1.3.1", "3.3.2"},
		Description: "An <input>, <select> or <textarea> has no title, no aria-label and no <label for> pointing at its id. Image, submit, reset, button and hidden inputs are exempt.",
	},
	{
		ID:          EmptyButton,
		Name:        "Empty button",
		WCAG:        []string{"2.4.4", "4.1.2"},
		Description: "A submit, button or reset <input> has neither aria-label nor a non-blank value, or a <button> encloses no text and has no aria-label.",
	},
	{
		ID:          MissingAltText,
		Name:        "Missing alternative text",
		WCAG:        []string{"1.1.1"},
		Description: "An <img> has no alt attribute. Decorative images should carry alt=\"\".",
	},
	{
		ID:          LinkedImageMissingAlt,
		Name:        "Linked image missing alternative text",
		WCAG:        []string{"1.1.1", "2.4.4"},
		Description: "An <img> inside an <a> has an absent or blank alt, leaving the link without an accessible name.",
	},
	{
		ID:          EmptyLink,
		Name:        "Empty link",
		WCAG:        []string{"2.4.4"},
		Description: "An <a href> encloses no text and has no aria-label.",
	},
}

// IsKnownRule reports whether id names a rule in Rules
func IsKnownRule(id RuleID) bool {
	for _, r := range Rules {
		if r.ID == id {
			return true
		}
	}
	return false
}

const (
	msgMissingLabel   = "All visible <%s> tags must have a title or aria-label attribute or associated <label>"
	msgEmptyInput     = `All <input>tags with type "submit", "button", or "reset" must have an aria-label or non-empty value attribute`
	msgMissingAlt     = "All <img> tags must have an alt attribute"
	msgLinkedImageAlt = "All <img> tags in <a> tags must have a non-empty alt attribute"
	msgEmptyLink      = "All <a> tags which do not enclose text must have an aria-label attribute (%s)"
	msgEmptyButton    = "All <button> tags which do not enclose text must have an aria-label attribute (%s)"
)

// UnmarshalText decodes a severity name
func (s *Severity) UnmarshalText(b []byte) error {
	v, err := ParseSeverity(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
