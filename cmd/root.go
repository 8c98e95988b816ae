// Copyright (c) 2025 nlquery
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for nlquery. It implements
// the web UI server, one-shot and interactive terminal front ends, and
// configuration helpers using the Cobra CLI framework.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"nlquery/cli/internal/backend"
	"nlquery/cli/internal/config"
	"nlquery/cli/internal/i18n"
	"nlquery/cli/internal/logging"
	"nlquery/cli/internal/manifest"

	"github.com/spf13/cobra"
)

// annotationConfigOptional marks commands that run without the --config file.
const annotationConfigOptional = "config-optional"

// errReported is returned by commands that already showed the failure to
// the user; Execute exits non-zero without printing it again.
var errReported = errors.New("failure already reported")

var (
	showVersion bool
	cfgFile     string

	// cfg is the effective configuration, loaded before any command runs.
	cfg config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "nlquery",
	Short: "Ask questions about your data in plain language",
	Long: `nlquery is the client for a natural-language-to-SQL service. It logs in to the
backend, sends questions and shows the generated SQL, the query results, an
explanation and a validation verdict, either in the browser (nlquery serve) or
in the terminal (nlquery ask, nlquery shell).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		file := cfgFile
		if _, err := os.Stat(file); err != nil && cmd.Annotations[annotationConfigOptional] != "" {
			// The file is about to be created.
			file = ""
		}
		c, err := config.Load(cmd.Flags(), file)
		if err != nil {
			return err
		}
		cfg = c
		logging.Init(cfg.LogLevel, os.Stderr)
		i18n.Init(cfg.Language)
		logging.L.Debug("configuration loaded", logging.L.Args("base_url", cfg.BaseURL, "language", cfg.Language))
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout)
			defer cancel()

			backendVersion, err := newBackend().GetVersion(ctx)
			if err != nil {
				backendVersion = "unknown"
			}
			fmt.Printf("nlquery %s\nbackend %s\n", Version, backendVersion)
			return nil
		}
		// If no flag is set, show help
		return cmd.Help()
	},
}

// Execute runs the CLI application.
// It executes the root command and handles any errors that occur during execution.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errReported) {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, logging.PresentError("nlquery", err))
		os.Exit(1)
	}
}

// newBackend builds the backend client from the effective configuration.
func newBackend() backend.API {
	return backend.New(cfg.BaseURL, manifest.Default(), cfg.RequestTimeout)
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI and backend version information")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default is $XDG_CONFIG_HOME/nlquery/nlquery.yaml)")
	pf.String("base-url", "", "Base URL of the query backend")
	pf.String("log-level", "", "Log level: trace, debug, info, warn, error or off")
	pf.String("lang", "", "Language of user-facing messages (en, de)")
	pf.Duration("timeout", 0, "Timeout for each backend request")
}
