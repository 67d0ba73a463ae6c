package textDocument

import (
	"errors"
	"testing"

	"bennypowers.dev/wcaglint/lsp/testutil"
	"bennypowers.dev/wcaglint/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const uri = "file:///workspace/index.html"

func newRequest(ctx *testutil.MockServerContext) *types.RequestContext {
	return types.NewRequestContext(ctx, &glsp.Context{})
}

func open(t *testing.T, ctx *testutil.MockServerContext, text string) {
	t.Helper()
	err := DidOpen(newRequest(ctx), &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        uri,
			LanguageID: "html",
			Version:    1,
			Text:       text,
		},
	})
	require.NoError(t, err)
}

func TestDidOpen(t *testing.T) {
	ctx := testutil.NewMockServerContext()

	open(t, ctx, `<img src="a.png">`)

	doc := ctx.Document(uri)
	require.NotNil(t, doc)
	assert.Equal(t, "html", doc.LanguageID())
	assert.Equal(t, 1, doc.Version())
	assert.Equal(t, `<img src="a.png">`, doc.Content())
	assert.Equal(t, []string{uri}, ctx.Published())
}

func TestDidOpen_NoClient(t *testing.T) {
	ctx := testutil.NewMockServerContext()
	req := types.NewRequestContext(ctx, nil)

	err := DidOpen(req, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "html", Version: 1},
	})
	require.NoError(t, err)
	assert.NotNil(t, ctx.Document(uri))
	assert.Empty(t, ctx.Published())
}

func TestDidOpen_PublishFailureIsWarning(t *testing.T) {
	ctx := testutil.NewMockServerContext()
	ctx.PublishDiagnosticsFunc = func(*glsp.Context, string) error {
		return errors.New("connection closed")
	}
	req := newRequest(ctx)

	err := DidOpen(req, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "html", Version: 1},
	})
	require.NoError(t, err)
	require.True(t, req.HasWarnings())
	assert.Contains(t, req.Warnings()[0].Error(), "connection closed")
}

func TestDidChange(t *testing.T) {
	t.Run("whole document change", func(t *testing.T) {
		ctx := testutil.NewMockServerContext()
		open(t, ctx, `<img>`)

		err := DidChange(newRequest(ctx), &protocol.DidChangeTextDocumentParams{
			TextDocument: protocol.VersionedTextDocumentIdentifier{
				TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
				Version:                2,
			},
			ContentChanges: []any{
				protocol.TextDocumentContentChangeEventWhole{Text: `<img alt="">`},
			},
		})
		require.NoError(t, err)

		doc := ctx.Document(uri)
		assert.Equal(t, `<img alt="">`, doc.Content())
		assert.Equal(t, 2, doc.Version())
		assert.Equal(t, []string{uri, uri}, ctx.Published())
	})

	t.Run("change event without range", func(t *testing.T) {
		ctx := testutil.NewMockServerContext()
		open(t, ctx, `<img>`)

		err := DidChange(newRequest(ctx), &protocol.DidChangeTextDocumentParams{
			TextDocument: protocol.VersionedTextDocumentIdentifier{
				TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
				Version:                2,
			},
			ContentChanges: []any{
				protocol.TextDocumentContentChangeEvent{Text: "first"},
				protocol.TextDocumentContentChangeEvent{Text: "second"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "second", ctx.Document(uri).Content())
	})

	t.Run("range change is applied", func(t *testing.T) {
		ctx := testutil.NewMockServerContext()
		open(t, ctx, "<p>\n<img>\n</p>")

		err := DidChange(newRequest(ctx), &protocol.DidChangeTextDocumentParams{
			TextDocument: protocol.VersionedTextDocumentIdentifier{
				TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
				Version:                2,
			},
			ContentChanges: []any{
				protocol.TextDocumentContentChangeEvent{
					Range: &protocol.Range{
						Start: protocol.Position{Line: 1, Character: 4},
						End:   protocol.Position{Line: 1, Character: 4},
					},
					Text: ` alt=""`,
				},
			},
		})
		require.NoError(t, err)
		doc := ctx.Document(uri)
		assert.Equal(t, "<p>\n<img alt=\"\">\n</p>", doc.Content())
		assert.Equal(t, 2, doc.Version())
		assert.Equal(t, []string{uri, uri}, ctx.Published())
	})

	t.Run("range outside the document", func(t *testing.T) {
		ctx := testutil.NewMockServerContext()
		open(t, ctx, `<img>`)

		err := DidChange(newRequest(ctx), &protocol.DidChangeTextDocumentParams{
			TextDocument: protocol.VersionedTextDocumentIdentifier{
				TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
				Version:                2,
			},
			ContentChanges: []any{
				protocol.TextDocumentContentChangeEvent{
					Range: &protocol.Range{Start: protocol.Position{Line: 5}, End: protocol.Position{Line: 5}},
					Text:  "x",
				},
			},
		})
		assert.Error(t, err)
		doc := ctx.Document(uri)
		assert.Equal(t, `<img>`, doc.Content())
		assert.Equal(t, 1, doc.Version())
	})

	t.Run("unknown change type is skipped", func(t *testing.T) {
		ctx := testutil.NewMockServerContext()
		open(t, ctx, `<img>`)
		req := newRequest(ctx)

		err := DidChange(req, &protocol.DidChangeTextDocumentParams{
			TextDocument: protocol.VersionedTextDocumentIdentifier{
				TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
				Version:                2,
			},
			ContentChanges: []any{map[string]any{"text": "x"}},
		})
		require.NoError(t, err)
		assert.True(t, req.HasWarnings())
		assert.Equal(t, `<img>`, ctx.Document(uri).Content())
	})

	t.Run("unknown document", func(t *testing.T) {
		ctx := testutil.NewMockServerContext()

		err := DidChange(newRequest(ctx), &protocol.DidChangeTextDocumentParams{
			TextDocument: protocol.VersionedTextDocumentIdentifier{
				TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
				Version:                2,
			},
			ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "x"}},
		})
		assert.Error(t, err)
	})

	t.Run("stale version", func(t *testing.T) {
		ctx := testutil.NewMockServerContext()
		open(t, ctx, `<img>`)

		err := DidChange(newRequest(ctx), &protocol.DidChangeTextDocumentParams{
			TextDocument: protocol.VersionedTextDocumentIdentifier{
				TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
				Version:                0,
			},
			ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "x"}},
		})
		assert.Error(t, err)
		assert.Equal(t, `<img>`, ctx.Document(uri).Content())
	})
}

func TestDidClose(t *testing.T) {
	ctx := testutil.NewMockServerContext()
	open(t, ctx, `<img>`)

	err := DidClose(newRequest(ctx), &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	assert.Nil(t, ctx.Document(uri))
	assert.Equal(t, []string{uri}, ctx.Cleared())

	err = DidClose(newRequest(ctx), &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	assert.Error(t, err)
}
