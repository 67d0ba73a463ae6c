package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"bennypowers.dev/wcaglint/internal/config"
	"bennypowers.dev/wcaglint/internal/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ErrViolationsFound is returned by check when a violation reaches the
// --fail-on severity
var ErrViolationsFound = errors.New("violations found")

// Exit codes
const (
	ExitOK         = 0
	ExitViolations = 1
	ExitError      = 2
)

// EnvPrefix prefixes environment variables that override flags,
// e.g. WCAGLINT_FAIL_ON=warning
const EnvPrefix = "WCAGLINT"

// app carries the state shared by the subcommands of one invocation
type app struct {
	v      *viper.Viper
	stdout io.Writer
	stderr io.Writer
}

// NewRootCmd builds the wcaglint command tree writing to stdout and stderr
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{v: viper.New(), stdout: stdout, stderr: stderr}
	a.v.SetEnvPrefix(EnvPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:   "wcaglint",
		Short: "Find WCAG violations in HTML embedded in source files",
		Long: `wcaglint checks the HTML inside string literals, template strings, JSX and
markup of HTML, JavaScript and TypeScript files for common WCAG failures:
unlabelled form controls, images without alternative text, and links or
buttons with no accessible name.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initLogging()
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().String("config", "", "config file (default: .wcaglint.yaml, .wcaglint.json or package.json in the working directory)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	_ = a.v.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = a.v.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(
		a.newCheckCmd(),
		a.newRulesCmd(),
		a.newLSPCmd(),
		a.newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the command line and returns the process exit code
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCmd(os.Stdout, os.Stderr)
	err := rootCmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrViolationsFound):
		return ExitViolations
	default:
		fmt.Fprintf(os.Stderr, "wcaglint: %v\n", err)
		return ExitError
	}
}

func (a *app) initLogging() error {
	log.SetOutput(a.stderr)
	name := a.v.GetString("log-level")
	if name == "" {
		return nil
	}
	level, err := log.ParseLevel(name)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	return nil
}

// loadConfig reads --config, or looks for a configuration in the working
// directory. A level from the file applies unless --log-level was given.
func (a *app) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path := a.v.GetString("config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		var wd string
		wd, err = os.Getwd()
		if err != nil {
			return nil, err
		}
		cfg, err = config.Find(wd)
	}
	if err != nil {
		return nil, err
	}

	if a.v.GetString("log-level") == "" && cfg.LogLevel != "" {
		if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
			log.SetLevel(level)
		}
	}
	if path := cfg.Path(); path != "" {
		log.Debug("Using config file: %s", path)
	}
	return cfg, nil
}
