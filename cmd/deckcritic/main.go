package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/deckcritic/internal/config"
	"github.com/dshills/deckcritic/internal/logging"
)

var version = "0.1.0"

// globalFlags are shared by every subcommand.
type globalFlags struct {
	envFile  string
	logLevel string
	verbose  bool
}

func main() {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "deckcritic",
		Short:         "Validate and score pitch decks against investor profiles",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.envFile, "env-file", "", "Load settings from this env file (default: ./.env if present)")
	pf.StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	pf.BoolVar(&g.verbose, "verbose", false, "Log processing steps to stderr (same as --log-level debug)")

	root.AddCommand(newValidateCmd(g), newBatchCmd(g), newProfilesCmd(g), newTemplatesCmd())

	if err := root.Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, ee.msg)
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration and builds the stderr logger.
func (g *globalFlags) setup() (*config.Config, *zap.Logger, error) {
	var files []string
	if g.envFile != "" {
		files = append(files, g.envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return nil, nil, exitError(3, "%v", err)
	}

	level := cfg.LogLevel
	if g.logLevel != "" {
		level = g.logLevel
	}
	if g.verbose {
		level = "debug"
	}
	logger, err := logging.New(level, os.Stderr)
	if err != nil {
		return nil, nil, exitError(3, "%v", err)
	}
	return cfg, logger, nil
}

type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func exitError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}
