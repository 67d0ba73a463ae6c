package documents

import (
	"fmt"

	"bennypowers.dev/wcaglint/internal/position"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ApplyChanges applies content changes in order. A change without a range
// replaces the whole text; a ranged change splices its text over the range,
// whose positions count UTF-16 code units.
func ApplyChanges(content string, changes []protocol.TextDocumentContentChangeEvent) (string, error) {
	for i, change := range changes {
		if change.Range == nil {
			content = change.Text
			continue
		}
		start, err := position.ByteOffset(content, int(change.Range.Start.Line), int(change.Range.Start.Character))
		if err != nil {
			return "", fmt.Errorf("change %d start: %w", i, err)
		}
		end, err := position.ByteOffset(content, int(change.Range.End.Line), int(change.Range.End.Character))
		if err != nil {
			return "", fmt.Errorf("change %d end: %w", i, err)
		}
		if end < start {
			return "", fmt.Errorf("change %d: range end precedes start", i)
		}
		content = content[:start] + change.Text + content[end:]
	}
	return content, nil
}
