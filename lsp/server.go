package lsp

import (
	"fmt"
	"sync"

	"bennypowers.dev/wcaglint/internal/config"
	"bennypowers.dev/wcaglint/internal/documents"
	"bennypowers.dev/wcaglint/internal/lint"
	"bennypowers.dev/wcaglint/internal/log"
	"bennypowers.dev/wcaglint/internal/parser"
	"bennypowers.dev/wcaglint/lsp/methods/lifecycle"
	"bennypowers.dev/wcaglint/lsp/methods/textDocument"
	"bennypowers.dev/wcaglint/lsp/methods/textDocument/diagnostic"
	"bennypowers.dev/wcaglint/lsp/methods/workspace"
	"bennypowers.dev/wcaglint/lsp/types"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

// Verify that Server implements ServerContext interface
var _ types.ServerContext = (*Server)(nil)

// Server is the wcaglint language server. It checks open documents and
// pushes violations as diagnostics.
type Server struct {
	documents  *documents.Manager
	glspServer *server.Server

	mu       sync.RWMutex // Protects the fields below
	context  *glsp.Context
	rootURI  string
	rootPath string
	config   *config.Config
	linter   *lint.Linter
}

// NewServer creates a new language server
func NewServer() (*Server, error) {
	cfg := config.Default()
	s := &Server{
		documents: documents.NewManager(),
		config:    cfg,
		linter:    lint.New(cfg),
	}

	handler := protocol.Handler{
		Initialize:                      method(s, "initialize", lifecycle.Initialize),
		Initialized:                     notify(s, "initialized", lifecycle.Initialized),
		Shutdown:                        noParam(s, "shutdown", lifecycle.Shutdown),
		SetTrace:                        notify(s, "$/setTrace", lifecycle.SetTrace),
		WorkspaceDidChangeConfiguration: notify(s, "workspace/didChangeConfiguration", workspace.DidChangeConfiguration),
		TextDocumentDidOpen:             notify(s, "textDocument/didOpen", textDocument.DidOpen),
		TextDocumentDidChange:           notify(s, "textDocument/didChange", textDocument.DidChange),
		TextDocumentDidClose:            notify(s, "textDocument/didClose", textDocument.DidClose),
	}

	s.glspServer = server.NewServer(&handler, lifecycle.ServerName, false)

	return s, nil
}

// RunStdio starts the LSP server using stdio transport
func (s *Server) RunStdio() error {
	return s.glspServer.RunStdio()
}

// Close releases the pooled parsers. It is safe to call Close multiple times.
func (s *Server) Close() error {
	parser.ClosePools()
	return nil
}

// Document returns the document with the given URI
func (s *Server) Document(uri string) *documents.Document {
	return s.documents.Get(uri)
}

// DocumentManager returns the document manager
func (s *Server) DocumentManager() *documents.Manager {
	return s.documents
}

// AllDocuments returns all tracked documents
func (s *Server) AllDocuments() []*documents.Document {
	return s.documents.GetAll()
}

// RootURI returns the workspace root URI
func (s *Server) RootURI() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rootURI
}

// RootPath returns the workspace root path
func (s *Server) RootPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rootPath
}

// SetRootURI sets the workspace root URI
func (s *Server) SetRootURI(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rootURI = uri
}

// SetRootPath sets the workspace root path
func (s *Server) SetRootPath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rootPath = path
}

// Config returns the active configuration
func (s *Server) Config() *config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// SetConfig replaces the configuration. Cached results of open documents
// are dropped so the next publish checks them with the new rules.
func (s *Server) SetConfig(cfg *config.Config) {
	if cfg == nil {
		cfg = config.Default()
	}
	s.mu.Lock()
	s.config = cfg
	s.linter = lint.New(cfg)
	s.mu.Unlock()

	if cfg.LogLevel != "" {
		if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
			log.SetLevel(level)
		}
	}
	for _, doc := range s.documents.GetAll() {
		doc.Invalidate()
	}
}

// LoadWorkspaceConfig reads the configuration of the workspace root. Without
// a root the defaults apply. On error the current configuration is kept.
func (s *Server) LoadWorkspaceConfig() error {
	root := s.RootPath()
	if root == "" {
		s.SetConfig(config.Default())
		return nil
	}

	cfg, err := config.Find(root)
	if err != nil {
		return err
	}
	if path := cfg.Path(); path != "" {
		log.Info("Loaded configuration from %s", path)
	}
	s.SetConfig(cfg)
	return nil
}

// Linter returns the linter for the active configuration
func (s *Server) Linter() *lint.Linter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.linter
}

// GLSPContext returns the GLSP context stored at initialization
func (s *Server) GLSPContext() *glsp.Context {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.context
}

// SetGLSPContext sets the GLSP context
func (s *Server) SetGLSPContext(ctx *glsp.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.context = ctx
}

// notifier selects the passed-in context, falling back to the stored one
func (s *Server) notifier(context *glsp.Context) (*glsp.Context, error) {
	if context == nil {
		context = s.GLSPContext()
	}
	if context == nil || context.Notify == nil {
		return nil, fmt.Errorf("cannot publish diagnostics: no client context available")
	}
	return context, nil
}

// PublishDiagnostics checks a document and pushes its diagnostics
func (s *Server) PublishDiagnostics(context *glsp.Context, uri string) error {
	workingContext, err := s.notifier(context)
	if err != nil {
		return err
	}

	diagnostics, err := diagnostic.GetDiagnostics(s, uri)
	if err != nil {
		return err
	}
	if diagnostics == nil {
		diagnostics = []protocol.Diagnostic{}
	}

	log.Debug("Publishing %d diagnostics for %s", len(diagnostics), uri)
	workingContext.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
	return nil
}

// ClearDiagnostics pushes an empty diagnostic list for a document
func (s *Server) ClearDiagnostics(context *glsp.Context, uri string) error {
	workingContext, err := s.notifier(context)
	if err != nil {
		return err
	}
	workingContext.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}
