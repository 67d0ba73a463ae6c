package cli

import (
	"bennypowers.dev/wcaglint/internal/log"
	"bennypowers.dev/wcaglint/lsp"
	"github.com/spf13/cobra"
)

func (a *app) newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Run the language server on stdio",
		Long: `Run a Language Server Protocol server on stdin and stdout. Open documents
are checked on every change and violations are published as diagnostics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := lsp.NewServer()
			if err != nil {
				return err
			}
			defer func() { _ = server.Close() }()

			log.Info("Starting language server on stdio")
			return server.RunStdio()
		},
	}
}
