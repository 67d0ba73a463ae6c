package lint

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"

	"bennypowers.dev/wcaglint/internal/config"
	"bennypowers.dev/wcaglint/internal/log"
	"bennypowers.dev/wcaglint/internal/parser"
	"bennypowers.dev/wcaglint/internal/wcag"
	"golang.org/x/sync/errgroup"
)

// FileResult holds the violations found in one file
type FileResult struct {
	Path       string           `json:"path"`
	Violations []wcag.Violation `json:"violations"`
	// Err is set when the file could not be read or tokenized
	Err error `json:"-"`
}

// Linter checks source files against the WCAG rules
type Linter struct {
	cfg *config.Config
}

// New creates a Linter. A nil cfg means config.Default().
func New(cfg *config.Config) *Linter {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Linter{cfg: cfg}
}

// Checker returns the rule configured for languageID
func (l *Linter) Checker(languageID string) *wcag.Checker {
	return wcag.NewChecker(l.cfg.CheckerOptions(languageID, parser.PatternFunctions(languageID)))
}

// LintSource checks a whole document. Each call is an independent scan with
// its own label registry.
func (l *Linter) LintSource(content, languageID string) ([]wcag.Violation, error) {
	tokens, err := parser.Tokenize(content, languageID)
	if err != nil {
		return nil, err
	}
	violations := wcag.Run(l.Checker(languageID), tokens)
	log.Debug("Checked %d tokens of %s: %d violations", len(tokens), languageID, len(violations))
	return violations, nil
}

// LintFile checks the file at path, choosing the tokenizer by extension
func (l *Linter) LintFile(path string) FileResult {
	result := FileResult{Path: path}

	languageID := parser.LanguageForPath(path)
	if languageID == "" {
		result.Err = fmt.Errorf("%s: %w", path, parser.ErrUnsupportedLanguage)
		return result
	}

	content, err := os.ReadFile(path) //nolint:gosec // G304: paths come from the user or Discover
	if err != nil {
		result.Err = fmt.Errorf("failed to read %s: %w", path, err)
		return result
	}

	violations, err := l.LintSource(string(content), languageID)
	if err != nil {
		result.Err = fmt.Errorf("failed to check %s: %w", path, err)
		return result
	}
	result.Violations = violations
	return result
}

// LintFiles checks paths concurrently, at most Jobs at a time, and returns
// one result per path sorted by path. Per-file failures are reported in
// FileResult.Err; the returned error is only set when ctx is done.
func (l *Linter) LintFiles(ctx context.Context, paths []string) ([]FileResult, error) {
	results := make([]FileResult, len(paths))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(l.jobs())

	for i, path := range paths {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = l.LintFile(path)
			if results[i].Err != nil {
				log.Warn("%v", results[i].Err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})
	return results, nil
}

func (l *Linter) jobs() int {
	if l.cfg.Jobs > 0 {
		return l.cfg.Jobs
	}
	return runtime.NumCPU()
}
