package cmd

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nlquery/cli/internal/backend"
	"nlquery/cli/internal/backend/backendtest"
	"nlquery/cli/internal/config"
	"nlquery/cli/internal/controller"
	"nlquery/cli/internal/manifest"
	"nlquery/cli/internal/render/termview"
)

func newShell(t *testing.T) (*controller.Controller, *termview.View, *backendtest.Server, *bytes.Buffer) {
	t.Helper()
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	cfg = config.Config{Examples: []string{"Show me all customers", "Count orders by status"}}
	srv := backendtest.NewServer()
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	ctrl, view, err := newTerminalController(backend.New(srv.URL, manifest.Default(), 2*time.Second), &out, "")
	require.NoError(t, err)
	return ctrl, view, srv, &out
}

func TestLoginPromptAsksForMissingCredentials(t *testing.T) {
	ctrl, _, srv, out := newShell(t)
	in := bufio.NewReader(strings.NewReader("admin\npassword\n"))

	require.NoError(t, loginPrompt(context.Background(), ctrl, in, out, "", "", 1))
	assert.Contains(t, out.String(), "Username: ")
	assert.Contains(t, out.String(), "Password: ")
	assert.Contains(t, out.String(), "Login successful!")
	assert.Equal(t, []string{"/auth/login"}, srv.Calls())
}

func TestLoginPromptRetriesRejectedCredentials(t *testing.T) {
	ctrl, _, srv, out := newShell(t)
	in := bufio.NewReader(strings.NewReader("admin\npassword\n"))

	require.NoError(t, loginPrompt(context.Background(), ctrl, in, out, "admin", "wrong", 2))
	assert.Contains(t, out.String(), "Login failed: Invalid username or password")
	assert.Equal(t, []string{"/auth/login", "/auth/login"}, srv.Calls())
}

func TestLoginPromptGivesUp(t *testing.T) {
	ctrl, _, _, out := newShell(t)
	in := bufio.NewReader(strings.NewReader(""))

	err := loginPrompt(context.Background(), ctrl, in, out, "admin", "wrong", 1)
	assert.ErrorIs(t, err, errReported)
}

func TestRunShell(t *testing.T) {
	ctrl, view, srv, out := newShell(t)
	require.NoError(t, ctrl.Login(context.Background(), "admin", "password"))

	script := strings.Join([]string{
		":examples",
		":example 2",
		":run",
		":tab sql",
		":tab history",
		":example 7",
		":whoami",
		":nope",
		"show me all users",
		":quit",
		"never read",
	}, "\n") + "\n"
	in := bufio.NewReader(strings.NewReader(script))

	require.NoError(t, runShell(context.Background(), ctrl, view, in, out))

	got := out.String()
	assert.Contains(t, got, "  1. Show me all customers")
	assert.Contains(t, got, "  2. Count orders by status")
	assert.Contains(t, got, "Query: Count orders by status")
	assert.Contains(t, got, "SELECT * FROM users")
	assert.Contains(t, got, "Alice")
	assert.Contains(t, got, "Unknown tab: history")
	assert.Contains(t, got, "No example query with number 7")
	assert.Contains(t, got, "Logged in as admin")
	assert.Contains(t, got, "Unknown command :nope")
	assert.Equal(t, "sql", view.Active())

	assert.Equal(t, []string{
		"/auth/login",
		"/query", "/explain", "/validate",
		"/auth/verify",
		"/query", "/explain", "/validate",
	}, srv.Calls())
	assert.Equal(t, "show me all users", ctrl.Session().Query())
}

func TestRunShellStopsAtEOF(t *testing.T) {
	ctrl, view, srv, out := newShell(t)
	in := bufio.NewReader(strings.NewReader("show me all users"))

	require.NoError(t, runShell(context.Background(), ctrl, view, in, out))
	assert.Contains(t, out.String(), "Please login first")
	assert.Empty(t, srv.Calls())
}
