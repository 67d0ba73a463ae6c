package cli

import (
	"fmt"
	"os"
	"strings"

	"bennypowers.dev/wcaglint/internal/lint"
	"bennypowers.dev/wcaglint/internal/log"
	"bennypowers.dev/wcaglint/internal/wcag"
	"github.com/spf13/cobra"
)

func (a *app) newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check files and directories for WCAG violations",
		Long: `Check scans the given files, and the files under the given directories that
match the configured include globs, and prints every violation found.

Example:
  wcaglint check
  wcaglint check src/ index.html --format json
  WCAGLINT_FAIL_ON=warning wcaglint check src/`,
		RunE: a.runCheck,
	}

	cmd.Flags().String("format", "text", "output format: text or json")
	cmd.Flags().Int("jobs", 0, "files checked concurrently (default: config, else one per CPU)")
	cmd.Flags().String("fail-on", "error", "lowest severity that fails the run: error, warning, info or none")
	_ = a.v.BindPFlag("format", cmd.Flags().Lookup("format"))
	_ = a.v.BindPFlag("jobs", cmd.Flags().Lookup("jobs"))
	_ = a.v.BindPFlag("fail-on", cmd.Flags().Lookup("fail-on"))
	return cmd
}

func (a *app) runCheck(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(a.v.GetString("format"))
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown format %q", format)
	}
	failOn, err := parseFailOn(a.v.GetString("fail-on"))
	if err != nil {
		return err
	}

	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if jobs := a.v.GetInt("jobs"); jobs > 0 {
		cfg.Jobs = jobs
	}

	if len(args) == 0 {
		args = []string{"."}
	}
	paths, err := collect(args, cfg.Include, cfg.Exclude)
	if err != nil {
		return err
	}
	log.Debug("Checking %d files", len(paths))

	results, err := lint.New(cfg).LintFiles(cmd.Context(), paths)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		err = writeJSON(a.stdout, results)
	default:
		err = writeText(a.stdout, a.stderr, results)
	}
	if err != nil {
		return err
	}

	if failOn.enabled && failing(results, failOn.severity) {
		return ErrViolationsFound
	}
	return nil
}

// collect expands directories with the include and exclude globs. Files
// named on the command line are always checked.
func collect(args, include, exclude []string) ([]string, error) {
	var paths []string
	seen := make(map[string]bool)
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		found := []string{arg}
		if info.IsDir() {
			found, err = lint.Discover(arg, include, exclude)
			if err != nil {
				return nil, err
			}
		}
		for _, p := range found {
			if !seen[p] {
				seen[p] = true
				paths = append(paths, p)
			}
		}
	}
	return paths, nil
}

type threshold struct {
	severity wcag.Severity
	enabled  bool
}

func parseFailOn(s string) (threshold, error) {
	if strings.EqualFold(strings.TrimSpace(s), "none") {
		return threshold{}, nil
	}
	sev, err := wcag.ParseSeverity(s)
	if err != nil {
		return threshold{}, fmt.Errorf("invalid --fail-on: %w", err)
	}
	return threshold{severity: sev, enabled: true}, nil
}

// failing reports whether any violation is at least as severe as min.
// Lower severity values are more severe.
func failing(results []lint.FileResult, min wcag.Severity) bool {
	for _, r := range results {
		for _, v := range r.Violations {
			if v.Severity <= min {
				return true
			}
		}
	}
	return false
}
