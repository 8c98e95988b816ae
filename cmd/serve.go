// Copyright (c) 2025 nlquery
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"net"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"

	"nlquery/cli/internal/web"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var openInBrowser bool

// serveCmd runs the browser front end.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the query UI to the browser",
	Long: `The serve command starts a local web server with the login form, the query
panel and the results tabs. Each browser session gets its own login; tokens
are kept in memory only and dropped when the session expires.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv, err := web.New(web.Options{
			Backend:    newBackend(),
			Examples:   cfg.Examples,
			DefaultTab: cfg.DefaultTab,
			SessionTTL: cfg.SessionTTL,
			Lang:       cfg.Language,
		})
		if err != nil {
			return err
		}

		ln, err := net.Listen("tcp", cfg.Listen)
		if err != nil {
			return fmt.Errorf("listen on %s: %w", cfg.Listen, err)
		}
		url := "http://" + ln.Addr().String() + "/"
		pterm.Success.Printfln("Serving on %s (backend %s)", url, cfg.BaseURL)
		pterm.Info.Println("Press Ctrl+C to stop.")
		if openInBrowser {
			openBrowser(url)
		}

		return srv.Serve(ctx, ln)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("listen", "", "Address to listen on (default 127.0.0.1:8080)")
	serveCmd.Flags().Duration("session-ttl", 0, "How long an idle browser session is kept")
	serveCmd.Flags().String("tab", "", "Results tab shown first: results, sql, explanation or validation")
	serveCmd.Flags().BoolVar(&openInBrowser, "open", false, "Open the UI in the default browser")
}

// openBrowser attempts to open the provided URL in the user's default browser.
// It uses platform-specific commands to launch the default browser:
//   - Windows: rundll32 url.dll,FileProtocolHandler
//   - macOS: open command
//   - Linux: xdg-open command
//
// The function starts the browser process but does not wait for it to complete.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
