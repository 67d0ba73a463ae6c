package workspace

import (
	"fmt"

	"bennypowers.dev/wcaglint/internal/config"
	"bennypowers.dev/wcaglint/internal/log"
	"bennypowers.dev/wcaglint/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// SettingsKey is the section of the client settings read by the server
const SettingsKey = "wcaglint"

// DidChangeConfiguration handles the workspace/didChangeConfiguration notification.
// Settings under SettingsKey replace the configuration; without them the
// workspace config file is reloaded. Open documents are checked again.
func DidChangeConfiguration(req *types.RequestContext, params *protocol.DidChangeConfigurationParams) error {
	log.Info("Configuration changed")

	settings, ok, err := section(params.Settings)
	switch {
	case err != nil:
		req.Warnf("ignoring settings: %w", err)
		return nil
	case ok:
		cfg, err := config.FromSettings(settings)
		if err != nil {
			req.Warnf("ignoring invalid %s settings: %w", SettingsKey, err)
			return nil
		}
		req.Server.SetConfig(cfg)
	default:
		if err := req.Server.LoadWorkspaceConfig(); err != nil {
			req.Warnf("failed to reload workspace configuration: %w", err)
		}
	}

	// Republish diagnostics for all open documents
	glspCtx := req.GLSP
	if glspCtx == nil {
		glspCtx = req.Server.GLSPContext()
	}
	if glspCtx == nil {
		return nil
	}
	for _, doc := range req.Server.AllDocuments() {
		if err := req.Server.PublishDiagnostics(glspCtx, doc.URI()); err != nil {
			req.Warnf("failed to publish diagnostics for %s: %w", doc.URI(), err)
		}
	}

	return nil
}

// section extracts our settings from { "wcaglint": { ... } }
func section(settings any) (any, bool, error) {
	if settings == nil {
		return nil, false, nil
	}
	settingsMap, ok := settings.(map[string]any)
	if !ok {
		return nil, false, fmt.Errorf("settings is %T, not an object", settings)
	}
	ours, ok := settingsMap[SettingsKey]
	return ours, ok, nil
}
