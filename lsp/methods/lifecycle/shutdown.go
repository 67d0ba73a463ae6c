package lifecycle

import (
	"bennypowers.dev/wcaglint/internal/log"
	"bennypowers.dev/wcaglint/internal/parser"
	"bennypowers.dev/wcaglint/lsp/types"
)

// Shutdown handles the LSP shutdown request
func Shutdown(req *types.RequestContext) error {
	log.Info("Server shutting down")

	parser.ClosePools()

	return nil
}
