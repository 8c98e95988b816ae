// Copyright (c) 2025 nlquery
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"nlquery/cli/internal/controller"
	apperr "nlquery/cli/internal/errors"
	"nlquery/cli/internal/logging"
	"nlquery/cli/internal/render/termview"
	"nlquery/cli/internal/terminal"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var shellUser string

const shellHelp = `Type a question to run it. Commands:
  :tab NAME      show a results tab (results, sql, explanation, validation)
  :examples      list the example questions
  :example N     put example N into the query input
  :run           run the query input
  :whoami        show the logged-in user
  :help          show this help
  :quit          leave the shell
`

// shellCmd is the interactive terminal front end.
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Log in once and ask questions interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		in := bufio.NewReader(cmd.InOrStdin())

		ctrl, view, err := newTerminalController(newBackend(), out, cfg.DefaultTab)
		if err != nil {
			return err
		}
		if err := loginPrompt(ctx, ctrl, in, out, shellUser, os.Getenv("NLQUERY_PASSWORD"), 3); err != nil {
			return err
		}
		fmt.Fprint(out, shellHelp)
		return runShell(ctx, ctrl, view, in, out)
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
	shellCmd.Flags().StringVarP(&shellUser, "user", "u", "", "Username to log in with")
	shellCmd.Flags().String("tab", "", "Results tab that is active at start")
}

// runShell reads lines from in until EOF or :quit. Plain lines are submitted
// as questions; lines starting with a colon are shell commands.
func runShell(ctx context.Context, ctrl *controller.Controller, view *termview.View, in *bufio.Reader, out io.Writer) error {
	for {
		line, err := terminal.ReadLine(in, out, "nlquery> ")
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, ":") {
			report(out, ctrl.Dispatch(ctx, controller.Event{Type: controller.EventSubmitQuery, Query: line}))
			continue
		}

		name, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
		arg = strings.TrimSpace(arg)
		switch name {
		case "quit", "q", "exit":
			return nil
		case "help", "h", "?":
			fmt.Fprint(out, shellHelp)
		case "tab":
			report(out, ctrl.Dispatch(ctx, controller.Event{Type: controller.EventSelectTab, Tab: arg}))
		case "examples":
			for i, q := range ctrl.Examples() {
				fmt.Fprintf(out, "  %d. %s\n", i+1, q)
			}
		case "example":
			n, err := strconv.Atoi(arg)
			if err != nil {
				n = 0
			}
			report(out, ctrl.Dispatch(ctx, controller.Event{Type: controller.EventUseExample, Index: n - 1}))
		case "run":
			report(out, ctrl.Dispatch(ctx, controller.Event{Type: controller.EventSubmitQuery, Query: view.Filled()}))
		case "whoami":
			who, err := ctrl.WhoAmI(ctx)
			if err != nil {
				msg := controller.Describe(err)
				var local *apperr.E
				if errors.As(err, &local) {
					msg = local.Message
				}
				fmt.Fprint(out, pterm.Error.Sprintln(msg))
				continue
			}
			fmt.Fprint(out, pterm.Info.Sprintfln("Logged in as %s", who))
		default:
			fmt.Fprint(out, pterm.Warning.Sprintfln("Unknown command :%s, try :help", name))
		}
	}
}

// report prints failures the view did not already show.
func report(out io.Writer, err error) {
	if err == nil {
		return
	}
	var local *apperr.E
	if errors.As(err, &local) && (local.Kind == apperr.UnknownTab || local.Kind == apperr.UnknownExample) {
		fmt.Fprint(out, pterm.Warning.Sprintln(local.Message))
		return
	}
	logging.L.Debug("event finished with errors", logging.L.Args("error", logging.Mask(err.Error())))
}
