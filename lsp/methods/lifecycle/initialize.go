package lifecycle

import (
	"bennypowers.dev/wcaglint/internal/log"
	"bennypowers.dev/wcaglint/internal/uriutil"
	"bennypowers.dev/wcaglint/internal/version"
	"bennypowers.dev/wcaglint/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ServerName is reported to clients in serverInfo
const ServerName = "wcaglint"

// Initialize handles the LSP initialize request
func Initialize(req *types.RequestContext, params *protocol.InitializeParams) (any, error) {
	clientName := "unknown"
	if params.ClientInfo != nil {
		clientName = params.ClientInfo.Name
	}

	log.Info("Initializing for client: %s", clientName)

	// Store the workspace root
	switch {
	case params.RootURI != nil && *params.RootURI != "":
		req.Server.SetRootURI(*params.RootURI)
		path, err := uriutil.URIToPath(*params.RootURI)
		if err != nil {
			req.Warnf("workspace root %s is not a local path: %w", *params.RootURI, err)
		} else {
			req.Server.SetRootPath(path)
		}
	case params.RootPath != nil && *params.RootPath != "":
		req.Server.SetRootPath(*params.RootPath)
		req.Server.SetRootURI(uriutil.PathToURI(*params.RootPath))
	}
	if root := req.Server.RootPath(); root != "" {
		log.Info("Workspace root: %s", root)
	}

	syncKind := protocol.TextDocumentSyncKindIncremental
	v := version.Get().Version
	return protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: protocol.TextDocumentSyncOptions{
				OpenClose: boolPtr(true),
				Change:    &syncKind,
			},
		},
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    ServerName,
			Version: &v,
		},
	}, nil
}

func boolPtr(b bool) *bool {
	return &b
}
