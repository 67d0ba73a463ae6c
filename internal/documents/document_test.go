package documents_test

import (
	"testing"

	"bennypowers.dev/wcaglint/internal/documents"
	"bennypowers.dev/wcaglint/internal/wcag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocument(t *testing.T) {
	doc := documents.NewDocument("file:///index.html", "html", 1, "<p>")

	assert.Equal(t, "file:///index.html", doc.URI())
	assert.Equal(t, "html", doc.LanguageID())
	assert.Equal(t, 1, doc.Version())
	assert.Equal(t, "<p>", doc.Content())

	vs, checked := doc.Violations()
	assert.Empty(t, vs)
	assert.False(t, checked)
}

func TestDocument_SetContent(t *testing.T) {
	t.Run("accepts newer version", func(t *testing.T) {
		doc := documents.NewDocument("file:///a.js", "javascript", 1, "original")

		require.NoError(t, doc.SetContent("updated", 2))
		content, version := doc.Snapshot()
		assert.Equal(t, "updated", content)
		assert.Equal(t, 2, version)
	})

	t.Run("accepts same version", func(t *testing.T) {
		doc := documents.NewDocument("file:///a.js", "javascript", 1, "original")

		require.NoError(t, doc.SetContent("updated", 1))
		assert.Equal(t, "updated", doc.Content())
	})

	t.Run("rejects stale update", func(t *testing.T) {
		doc := documents.NewDocument("file:///a.js", "javascript", 5, "original")

		err := doc.SetContent("stale update", 3)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "stale")
		assert.Contains(t, err.Error(), "5")
		assert.Contains(t, err.Error(), "3")
		assert.Equal(t, "original", doc.Content())
		assert.Equal(t, 5, doc.Version())
	})
}

func TestDocument_Violations(t *testing.T) {
	doc := documents.NewDocument("file:///index.html", "html", 1, `<img>`)
	found := []wcag.Violation{{Rule: wcag.MissingAltText, Line: 1}}

	t.Run("discards results for another version", func(t *testing.T) {
		assert.False(t, doc.SetViolations(0, found))
		_, checked := doc.Violations()
		assert.False(t, checked)
	})

	t.Run("caches results for the current version", func(t *testing.T) {
		require.True(t, doc.SetViolations(1, found))
		vs, checked := doc.Violations()
		assert.True(t, checked)
		assert.Equal(t, found, vs)
	})

	t.Run("changing the content drops the cache", func(t *testing.T) {
		require.NoError(t, doc.SetContent(`<img alt="">`, 2))
		vs, checked := doc.Violations()
		assert.False(t, checked)
		assert.Empty(t, vs)
	})

	t.Run("invalidate drops the cache", func(t *testing.T) {
		require.True(t, doc.SetViolations(2, found))
		doc.Invalidate()
		_, checked := doc.Violations()
		assert.False(t, checked)
		assert.Equal(t, 2, doc.Version())
	})
}
