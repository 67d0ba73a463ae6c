package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"bennypowers.dev/wcaglint/internal/wcag"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func (a *app) newRulesCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rules wcaglint checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				enc := json.NewEncoder(a.stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(wcag.Rules)
			}

			rows := make([][]string, 0, len(wcag.Rules))
			for _, r := range wcag.Rules {
				rows = append(rows, []string{string(r.ID), strings.Join(r.WCAG, ", "), r.Name})
			}
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("RULE", "WCAG", "NAME").
				Rows(rows...)
			_, err := fmt.Fprintln(a.stdout, t.Render())
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the rules as JSON")
	return cmd
}
