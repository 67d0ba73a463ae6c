package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringLengthUTF16(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{name: "empty", in: "", want: 0},
		{name: "ascii", in: "<img>", want: 5},
		{name: "two-byte utf-8", in: "café", want: 4},
		{name: "astral plane", in: "🎨", want: 2},
		{name: "mixed", in: "a🎨b", want: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StringLengthUTF16(tt.in))
		})
	}
}

func TestLine(t *testing.T) {
	content := "<p>\r\n  <img>\n\nlast"
	assert.Equal(t, "<p>", Line(content, 1))
	assert.Equal(t, "  <img>", Line(content, 2))
	assert.Equal(t, "", Line(content, 3))
	assert.Equal(t, "last", Line(content, 4))
	assert.Equal(t, "", Line(content, 5))
	assert.Equal(t, "", Line(content, 0))
}

func TestLineSpan(t *testing.T) {
	content := "<form>\n    <input name=\"q\">  \n\n\t🎨 <img>"

	tests := []struct {
		line       int
		start, end uint32
	}{
		{line: 1, start: 0, end: 6},
		{line: 2, start: 4, end: 22},
		{line: 3, start: 0, end: 0},
		{line: 4, start: 1, end: 9},
		{line: 9, start: 0, end: 0},
	}
	for _, tt := range tests {
		start, end := LineSpan(content, tt.line)
		assert.Equal(t, tt.start, start, "line %d start", tt.line)
		assert.Equal(t, tt.end, end, "line %d end", tt.line)
	}
}

func TestClampUint32(t *testing.T) {
	assert.Equal(t, uint32(0), clampUint32(-1))
	assert.Equal(t, uint32(7), clampUint32(7))
}

func TestByteOffset(t *testing.T) {
	content := "<p>\na🎨b\r\nlast"
	tests := []struct {
		name      string
		line, col int
		want      int
	}{
		{name: "start", line: 0, col: 0, want: 0},
		{name: "end of first line", line: 0, col: 3, want: 3},
		{name: "past end clamps before newline", line: 0, col: 10, want: 3},
		{name: "after astral rune", line: 1, col: 3, want: 9},
		{name: "inside surrogate pair", line: 1, col: 2, want: 5},
		{name: "last line", line: 2, col: 2, want: 14},
		{name: "end of content", line: 2, col: 4, want: 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ByteOffset(content, tt.line, tt.col)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("line past end", func(t *testing.T) {
		_, err := ByteOffset(content, 3, 0)
		assert.Error(t, err)
	})

	t.Run("line after trailing newline", func(t *testing.T) {
		got, err := ByteOffset("a\n", 1, 0)
		assert.NoError(t, err)
		assert.Equal(t, 2, got)
	})
}
