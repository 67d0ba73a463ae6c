package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"bennypowers.dev/wcaglint/internal/log"
	"bennypowers.dev/wcaglint/internal/wcag"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// FileNames are the configuration files Find looks for, in order
var FileNames = []string{".wcaglint.yaml", ".wcaglint.yml", ".wcaglint.json"}

// PackageJSONKey is the package.json field holding configuration
const PackageJSONKey = "wcaglint"

// RuleConfig overrides a single rule
type RuleConfig struct {
	Disabled bool   `yaml:"disabled" json:"disabled"`
	Severity string `yaml:"severity,omitempty" json:"severity,omitempty"`
}

// Config is a project's wcaglint configuration
type Config struct {
	// Include are doublestar globs of files to check, relative to the root
	Include []string `yaml:"include" json:"include"`
	// Exclude are doublestar globs of files to skip
	Exclude []string `yaml:"exclude" json:"exclude"`
	// Jobs is the number of files checked concurrently; 0 means one per CPU
	Jobs int `yaml:"jobs" json:"jobs"`
	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"logLevel" json:"logLevel"`
	// Rules maps rule IDs to overrides
	Rules map[string]RuleConfig `yaml:"rules" json:"rules"`
	// PatternFunctions adds regular expression functions per language ID
	PatternFunctions map[string][]string `yaml:"patternFunctions" json:"patternFunctions"`

	// path is the file the configuration was loaded from
	path string
}

// Default returns the configuration used when no file is found
func Default() *Config {
	return &Config{
		Include:  []string{"**/*.{html,htm,js,jsx,mjs,cjs,ts,mts,cts,tsx,php,inc,phtml}"},
		Exclude:  []string{"**/node_modules/**", "**/.git/**"},
		LogLevel: "info",
	}
}

// Path returns the file the configuration was loaded from, or ""
func (c *Config) Path() string {
	return c.path
}

// Load reads a configuration file on top of the defaults.
// Files ending in .json (or package.json) are read as JSON with comments,
// everything else as YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: user-selected configuration file
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	cfg.path = path
	switch {
	case filepath.Base(path) == "package.json":
		found, err := fromPackageJSON(data, cfg)
		if err != nil {
			return nil, &Error{Path: path, Reason: err.Error()}
		}
		if !found {
			return nil, &Error{Path: path, Reason: fmt.Sprintf("no %q field", PackageJSONKey)}
		}
	case strings.EqualFold(filepath.Ext(path), ".json"):
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return nil, &Error{Path: path, Reason: err.Error()}
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, &Error{Path: path, Reason: err.Error()}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// fromPackageJSON overlays the wcaglint field of a package.json on cfg.
// It reports whether the field exists.
func fromPackageJSON(data []byte, cfg *Config) (bool, error) {
	var pkg map[string]json.RawMessage
	if err := json.Unmarshal(jsonc.ToJSON(data), &pkg); err != nil {
		return false, err
	}
	raw, ok := pkg[PackageJSONKey]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, cfg); err != nil {
		return true, fmt.Errorf("%s must be an object: %w", PackageJSONKey, err)
	}
	return true, nil
}

// Find looks for a configuration file in dir, then for a wcaglint field in
// dir's package.json. It returns the defaults when neither exists.
func Find(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			log.Debug("Loading config from %s", path)
			return Load(path)
		}
	}

	pkgPath := filepath.Join(dir, "package.json")
	data, err := os.ReadFile(pkgPath) //nolint:gosec // G304: workspace package.json
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read package.json: %w", err)
	}

	cfg := Default()
	found, err := fromPackageJSON(data, cfg)
	if err != nil {
		return nil, &Error{Path: pkgPath, Reason: err.Error()}
	}
	if !found {
		return Default(), nil
	}
	cfg.path = pkgPath
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromSettings decodes editor settings, such as the wcaglint section of an
// LSP didChangeConfiguration notification, on top of the defaults
func FromSettings(settings any) (*Config, error) {
	cfg := Default()
	if settings == nil {
		return cfg, nil
	}
	data, err := json.Marshal(settings)
	if err != nil {
		return nil, &Error{Reason: err.Error()}
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, &Error{Reason: err.Error()}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every unknown rule, unknown severity and out-of-range value
func (c *Config) Validate() error {
	var errs []error
	if c.Jobs < 0 {
		errs = append(errs, &Error{Path: c.path, Field: "jobs", Reason: "must not be negative"})
	}
	if c.LogLevel != "" {
		if _, err := log.ParseLevel(c.LogLevel); err != nil {
			errs = append(errs, &Error{Path: c.path, Field: "logLevel", Reason: err.Error()})
		}
	}

	ids := make([]string, 0, len(c.Rules))
	for id := range c.Rules {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if !wcag.IsKnownRule(wcag.RuleID(id)) {
			errs = append(errs, &Error{Path: c.path, Field: "rules." + id, Reason: "unknown rule"})
			continue
		}
		if sev := c.Rules[id].Severity; sev != "" {
			if _, err := wcag.ParseSeverity(sev); err != nil {
				errs = append(errs, &Error{Path: c.path, Field: "rules." + id + ".severity", Reason: err.Error()})
			}
		}
	}
	return errors.Join(errs...)
}

// CheckerOptions builds the checker options for a language. The language's
// built-in pattern functions are extended with any configured for it.
func (c *Config) CheckerOptions(languageID string, patternFunctions []string) wcag.Options {
	opts := wcag.Options{
		Disabled:   make(map[wcag.RuleID]bool),
		Severities: make(map[wcag.RuleID]wcag.Severity),
	}

	funcs := slices.Clone(patternFunctions)
	funcs = append(funcs, c.PatternFunctions[languageID]...)
	if len(funcs) > 0 {
		opts.PatternFunctions = funcs
	}

	for id, rc := range c.Rules {
		rule := wcag.RuleID(id)
		if rc.Disabled {
			opts.Disabled[rule] = true
		}
		if sev, err := wcag.ParseSeverity(rc.Severity); rc.Severity != "" && err == nil {
			opts.Severities[rule] = sev
		}
	}
	return opts
}
