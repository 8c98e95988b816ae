// Copyright (c) 2025 nlquery
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bufio"
	"os"
	"strings"

	"nlquery/cli/internal/controller"

	"github.com/spf13/cobra"
)

var askUser string

// askCmd runs one question and prints every result region.
var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask one question and print the SQL, results, explanation and validation",
	Long: `The ask command logs in, submits a single question and prints the generated
SQL, the results, the explanation and the validation verdict. Missing
credentials are prompted for; the password can also be passed in the
NLQUERY_PASSWORD environment variable.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		ctrl, _, err := newTerminalController(newBackend(), out, cfg.DefaultTab)
		if err != nil {
			return err
		}

		in := bufio.NewReader(cmd.InOrStdin())
		if err := loginPrompt(ctx, ctrl, in, out, askUser, os.Getenv("NLQUERY_PASSWORD"), 1); err != nil {
			return err
		}

		question := strings.Join(args, " ")
		err = ctrl.Dispatch(ctx, controller.Event{Type: controller.EventSubmitQuery, Query: question})
		if cmd.Flags().Changed("tab") {
			_ = ctrl.Dispatch(ctx, controller.Event{Type: controller.EventSelectTab, Tab: cfg.DefaultTab})
		}
		if err != nil {
			return errReported
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVarP(&askUser, "user", "u", "", "Username to log in with")
	askCmd.Flags().String("tab", "", "Print this tab again at the end: results, sql, explanation or validation")
}
