package position

import (
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

// StringLengthUTF16 returns the length of a string in UTF-16 code units,
// the unit LSP positions count in. Runes above U+FFFF count as 2.
func StringLengthUTF16(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

func clampUint32(n int) uint32 {
	if n < 0 {
		return 0
	}
	if n > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(n)
}

// Line returns the text of a 1-based line without its line terminator,
// or "" when content has fewer lines
func Line(content string, line int) string {
	if line < 1 {
		return ""
	}
	for i := 1; i < line; i++ {
		nl := strings.IndexByte(content, '\n')
		if nl < 0 {
			return ""
		}
		content = content[nl+1:]
	}
	if nl := strings.IndexByte(content, '\n'); nl >= 0 {
		content = content[:nl]
	}
	return strings.TrimSuffix(content, "\r")
}

// LineSpan returns the UTF-16 columns of the first and one past the last
// non-blank character of a 1-based line. A blank or missing line yields an
// empty span at its end.
func LineSpan(content string, line int) (start, end uint32) {
	text := Line(content, line)
	trimmed := strings.TrimRightFunc(text, unicode.IsSpace)
	end = clampUint32(StringLengthUTF16(trimmed))
	lead := len(trimmed) - len(strings.TrimLeftFunc(trimmed, unicode.IsSpace))
	start = clampUint32(StringLengthUTF16(trimmed[:lead]))
	return start, end
}

// ByteOffset converts a 0-based LSP line and UTF-16 column into a byte offset
// in content. Columns past the end of the line clamp to it, and a column that
// splits a surrogate pair clamps to the start of the rune.
func ByteOffset(content string, line, utf16Col int) (int, error) {
	if line < 0 {
		return 0, fmt.Errorf("negative line %d", line)
	}
	start := 0
	for i := 0; i < line; i++ {
		nl := strings.IndexByte(content[start:], '\n')
		if nl < 0 {
			return 0, fmt.Errorf("line %d out of range (%d lines)", line, i+1)
		}
		start += nl + 1
	}
	end := len(content)
	if nl := strings.IndexByte(content[start:], '\n'); nl >= 0 {
		end = start + nl
	}

	offset, units := start, 0
	for offset < end && units < utf16Col {
		r, size := utf8.DecodeRuneInString(content[offset:end])
		n := 1
		if r != utf8.RuneError || size != 1 {
			n = utf16.RuneLen(r)
		}
		if units+n > utf16Col {
			break
		}
		units += n
		offset += size
	}
	return offset, nil
}
