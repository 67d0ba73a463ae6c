package testutil

import (
	"sync"

	"bennypowers.dev/wcaglint/internal/config"
	"bennypowers.dev/wcaglint/internal/documents"
	"bennypowers.dev/wcaglint/internal/lint"
	"github.com/tliron/glsp"
)

// MockServerContext implements types.ServerContext for testing.
// It provides a minimal implementation with configurable behavior via callback functions.
type MockServerContext struct {
	docs        *documents.Manager
	rootURI     string
	rootPath    string
	config      *config.Config
	linter      *lint.Linter
	glspContext *glsp.Context

	// Optional callbacks for custom behavior in tests
	LoadWorkspaceConfigFunc func() error
	PublishDiagnosticsFunc  func(*glsp.Context, string) error

	mu        sync.Mutex
	published []string
	cleared   []string

	// Tracking flags for tests that need to verify methods were called
	LoadWorkspaceConfigCalled bool
}

// NewMockServerContext creates a new mock server context with default behavior
func NewMockServerContext() *MockServerContext {
	cfg := config.Default()
	return &MockServerContext{
		docs:   documents.NewManager(),
		config: cfg,
		linter: lint.New(cfg),
	}
}

// Document returns the document with the given URI
func (m *MockServerContext) Document(uri string) *documents.Document {
	return m.docs.Get(uri)
}

// DocumentManager returns the document manager
func (m *MockServerContext) DocumentManager() *documents.Manager {
	return m.docs
}

// AllDocuments returns all tracked documents
func (m *MockServerContext) AllDocuments() []*documents.Document {
	return m.docs.GetAll()
}

// RootURI returns the workspace root URI
func (m *MockServerContext) RootURI() string {
	return m.rootURI
}

// RootPath returns the workspace root path
func (m *MockServerContext) RootPath() string {
	return m.rootPath
}

// SetRootURI sets the workspace root URI
func (m *MockServerContext) SetRootURI(uri string) {
	m.rootURI = uri
}

// SetRootPath sets the workspace root path
func (m *MockServerContext) SetRootPath(path string) {
	m.rootPath = path
}

// Config returns the active configuration
func (m *MockServerContext) Config() *config.Config {
	return m.config
}

// SetConfig replaces the configuration and the linter built from it
func (m *MockServerContext) SetConfig(cfg *config.Config) {
	m.config = cfg
	m.linter = lint.New(cfg)
}

// LoadWorkspaceConfig records the call and runs LoadWorkspaceConfigFunc
func (m *MockServerContext) LoadWorkspaceConfig() error {
	m.LoadWorkspaceConfigCalled = true
	if m.LoadWorkspaceConfigFunc != nil {
		return m.LoadWorkspaceConfigFunc()
	}
	return nil
}

// Linter returns the linter for the active configuration
func (m *MockServerContext) Linter() *lint.Linter {
	return m.linter
}

// GLSPContext returns the GLSP context
func (m *MockServerContext) GLSPContext() *glsp.Context {
	return m.glspContext
}

// SetGLSPContext sets the GLSP context
func (m *MockServerContext) SetGLSPContext(ctx *glsp.Context) {
	m.glspContext = ctx
}

// PublishDiagnostics records the URI and runs PublishDiagnosticsFunc
func (m *MockServerContext) PublishDiagnostics(context *glsp.Context, uri string) error {
	m.mu.Lock()
	m.published = append(m.published, uri)
	m.mu.Unlock()
	if m.PublishDiagnosticsFunc != nil {
		return m.PublishDiagnosticsFunc(context, uri)
	}
	return nil
}

// ClearDiagnostics records the URI
func (m *MockServerContext) ClearDiagnostics(context *glsp.Context, uri string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleared = append(m.cleared, uri)
	return nil
}

// Published returns the URIs passed to PublishDiagnostics, in call order
func (m *MockServerContext) Published() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.published...)
}

// Cleared returns the URIs passed to ClearDiagnostics, in call order
func (m *MockServerContext) Cleared() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.cleared...)
}
