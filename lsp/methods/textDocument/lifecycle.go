package textDocument

import (
	"bennypowers.dev/wcaglint/internal/log"
	"bennypowers.dev/wcaglint/lsp/types"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DidOpen handles the textDocument/didOpen notification
func DidOpen(req *types.RequestContext, params *protocol.DidOpenTextDocumentParams) error {
	log.Info("Document opened: %s (language: %s, version: %d)",
		params.TextDocument.URI, params.TextDocument.LanguageID, int(params.TextDocument.Version))

	req.Server.DocumentManager().DidOpen(params.TextDocument.URI, params.TextDocument.LanguageID,
		int(params.TextDocument.Version), params.TextDocument.Text)

	publish(req, params.TextDocument.URI)
	return nil
}

// DidChange handles the textDocument/didChange notification. Whole-text and
// ranged changes are applied in order.
func DidChange(req *types.RequestContext, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	version := int(params.TextDocument.Version)

	log.Debug("Document changed: %s (version: %d, changes: %d)", uri, version, len(params.ContentChanges))

	changes := contentChanges(req, params.ContentChanges)
	if len(changes) == 0 {
		return nil
	}

	if _, err := req.Server.DocumentManager().DidChange(uri, version, changes); err != nil {
		return err
	}

	publish(req, uri)
	return nil
}

// DidClose handles the textDocument/didClose notification
func DidClose(req *types.RequestContext, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI

	log.Info("Document closed: %s", uri)

	if err := req.Server.DocumentManager().DidClose(uri); err != nil {
		return err
	}

	if glspCtx := notifier(req); glspCtx != nil {
		if err := req.Server.ClearDiagnostics(glspCtx, uri); err != nil {
			req.Warnf("failed to clear diagnostics for %s: %w", uri, err)
		}
	}
	return nil
}

// contentChanges normalizes the decoded change events. A whole-text event
// becomes a change without a range.
func contentChanges(req *types.RequestContext, raw []any) []protocol.TextDocumentContentChangeEvent {
	changes := make([]protocol.TextDocumentContentChangeEvent, 0, len(raw))
	for _, change := range raw {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			changes = append(changes, protocol.TextDocumentContentChangeEvent{Text: c.Text})
		case protocol.TextDocumentContentChangeEvent:
			changes = append(changes, c)
		default:
			req.Warnf("ignoring content change of type %T", change)
		}
	}
	return changes
}

// notifier returns the context of the current request, falling back to the
// one stored at initialization
func notifier(req *types.RequestContext) *glsp.Context {
	if req.GLSP != nil {
		return req.GLSP
	}
	return req.Server.GLSPContext()
}

func publish(req *types.RequestContext, uri string) {
	glspCtx := notifier(req)
	if glspCtx == nil {
		return
	}
	if err := req.Server.PublishDiagnostics(glspCtx, uri); err != nil {
		req.Warnf("failed to publish diagnostics for %s: %w", uri, err)
	}
}
