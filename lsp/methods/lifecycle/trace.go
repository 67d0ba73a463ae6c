package lifecycle

import (
	"bennypowers.dev/wcaglint/internal/log"
	"bennypowers.dev/wcaglint/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// SetTrace handles the $/setTrace notification. "verbose" turns on debug logging.
func SetTrace(req *types.RequestContext, params *protocol.SetTraceParams) error {
	log.Info("Trace level set to: %s", params.Value)

	switch params.Value {
	case protocol.TraceValueVerbose:
		log.SetLevel(log.LevelDebug)
	default:
		log.SetLevel(log.LevelInfo)
	}
	return nil
}
