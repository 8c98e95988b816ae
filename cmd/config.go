package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"nlquery/cli/internal/config"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var forceInit bool

// configCmd groups configuration helpers.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the configuration file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print where the configuration file is looked up",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := configTarget()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), p)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:         "init",
	Short:       "Write the effective configuration to the configuration file",
	Annotations: map[string]string{annotationConfigOptional: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := configTarget()
		if err != nil {
			return err
		}
		if _, err := os.Stat(p); err == nil && !forceInit {
			return fmt.Errorf("%s already exists; use --force to overwrite", p)
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		if err := config.Write(cfg, p); err != nil {
			return err
		}
		pterm.Success.Printfln("Configuration written to %s", p)
		return nil
	},
}

// configTarget is the --config file when given, the user config file otherwise.
func configTarget() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	return config.Path()
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configPathCmd, configInitCmd)
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing file")
}
