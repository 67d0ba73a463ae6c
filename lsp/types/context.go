package types

import (
	"bennypowers.dev/wcaglint/internal/config"
	"bennypowers.dev/wcaglint/internal/documents"
	"bennypowers.dev/wcaglint/internal/lint"
	"github.com/tliron/glsp"
)

// ServerContext provides all dependencies needed for LSP handlers.
// Handlers depend on this interface rather than on the server so they can be
// tested with a mock.
type ServerContext interface {
	// Document operations
	Document(uri string) *documents.Document
	DocumentManager() *documents.Manager
	AllDocuments() []*documents.Document

	// Workspace operations
	RootURI() string
	RootPath() string
	SetRootURI(uri string)
	SetRootPath(path string)

	// Configuration
	Config() *config.Config
	SetConfig(cfg *config.Config)
	LoadWorkspaceConfig() error
	Linter() *lint.Linter

	// LSP context (for publishing diagnostics outside a request)
	GLSPContext() *glsp.Context
	SetGLSPContext(ctx *glsp.Context)

	// Diagnostics publishing
	PublishDiagnostics(context *glsp.Context, uri string) error
	ClearDiagnostics(context *glsp.Context, uri string) error
}
