package lifecycle

import (
	"bennypowers.dev/wcaglint/internal/log"
	"bennypowers.dev/wcaglint/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Initialized handles the LSP initialized notification
func Initialized(req *types.RequestContext, params *protocol.InitializedParams) error {
	log.Info("Server initialized")

	// Store context for later use (diagnostics)
	req.Server.SetGLSPContext(req.GLSP)

	// A broken config file keeps the defaults; the client is told why
	if err := req.Server.LoadWorkspaceConfig(); err != nil {
		req.Warnf("failed to load workspace configuration: %w", err)
	}

	return nil
}
