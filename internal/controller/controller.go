// Copyright (c) 2025 nlquery
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package controller implements the UI logic shared by every front end:
// login, query submission with its execute/explain/validate sequence, tab
// switching and example presets. Front ends translate user input into
// events, call Dispatch and let the controller update their View.
package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"nlquery/cli/internal/auth"
	"nlquery/cli/internal/backend"
	apperr "nlquery/cli/internal/errors"
	"nlquery/cli/internal/httperrors"
	"nlquery/cli/internal/i18n"
	"nlquery/cli/internal/logging"
	"nlquery/cli/internal/results"
	"nlquery/cli/internal/session"
)

// Options configures a Controller.
type Options struct {
	Backend backend.API
	// Session defaults to a fresh logged-out state.
	Session *session.State
	View    View
	// Tabs defaults to DefaultTabs.
	Tabs []string
	// ActiveTab defaults to the first tab.
	ActiveTab string
	Examples  []string
}

// Controller drives one View for one session.
type Controller struct {
	be       backend.API
	st       *session.State
	auth     *auth.Service
	view     View
	tabs     *Tabs
	examples []string

	// running is held while a submission is in flight.
	running  sync.Mutex
	revealed bool
	revealMu sync.Mutex

	hmu      sync.RWMutex
	handlers map[EventType]Handler
}

// New constructs a Controller and activates the initial tab on the view.
func New(opts Options) (*Controller, error) {
	if opts.Backend == nil {
		return nil, fmt.Errorf("controller: backend is required")
	}
	if opts.View == nil {
		return nil, fmt.Errorf("controller: view is required")
	}
	st := opts.Session
	if st == nil {
		st = session.New()
	}
	tabs, err := NewTabs(opts.Tabs, opts.ActiveTab)
	if err != nil {
		return nil, err
	}
	c := &Controller{
		be:       opts.Backend,
		st:       st,
		auth:     auth.NewService(opts.Backend, st),
		view:     opts.View,
		tabs:     tabs,
		examples: append([]string(nil), opts.Examples...),
		handlers: make(map[EventType]Handler),
	}
	c.registerDefaults()
	c.view.ActivateTab(tabs.Active())
	return c, nil
}

// Session returns the session state the controller writes to.
func (c *Controller) Session() *session.State { return c.st }

// Tabs returns the tab set.
func (c *Controller) Tabs() *Tabs { return c.tabs }

// Examples returns the example questions.
func (c *Controller) Examples() []string { return append([]string(nil), c.examples...) }

// Login checks the credentials, exchanges them for a token and reports the
// outcome on the auth status line. The query panel is revealed on the first
// successful login only.
func (c *Controller) Login(ctx context.Context, username, password string) error {
	err := c.auth.Login(ctx, username, password)
	if err != nil {
		c.view.ShowAuthStatus(loginFailureText(err), false)
		return err
	}

	c.view.ShowAuthStatus(i18n.T("auth.success"), true)
	c.revealMu.Lock()
	first := !c.revealed
	c.revealed = true
	c.revealMu.Unlock()
	if first {
		c.view.RevealQueryPanel()
	}
	return nil
}

// SubmitQuery runs text through execute, explain and validate, strictly one
// after the other. Each step renders into its own region, success or not,
// and a failing step does not stop the next one. The returned error joins the
// failures of all steps.
//
// A submission made while another one of the same controller is still
// running is rejected without any request.
func (c *Controller) SubmitQuery(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return c.alert(apperr.New(apperr.MissingQuery, i18n.T("query.missing")))
	}
	token := c.st.Token()
	if token == "" {
		return c.alert(apperr.New(apperr.NotLoggedIn, i18n.T("query.login_first")))
	}
	if !c.running.TryLock() {
		return c.alert(apperr.New(apperr.Busy, i18n.T("query.busy")))
	}
	defer c.running.Unlock()

	c.st.SetQuery(text)
	c.view.RevealResults()
	logging.L.Debug("submitting query", logging.L.Args("query", text))

	return errors.Join(
		c.execute(ctx, token, text),
		c.explain(ctx, token, text),
		c.validate(ctx, token, text),
	)
}

// SelectTab activates name. Unknown names are rejected and the view is left
// untouched.
func (c *Controller) SelectTab(name string) error {
	if err := c.tabs.Select(name); err != nil {
		return err
	}
	c.view.ActivateTab(name)
	return nil
}

// UseExample fills the query input with the example at index.
func (c *Controller) UseExample(index int) error {
	if index < 0 || index >= len(c.examples) {
		return apperr.New(apperr.UnknownExample, i18n.Tf("example.unknown", map[string]any{"Index": index + 1}))
	}
	c.view.FillQuery(c.examples[index])
	return nil
}

// WhoAmI returns the user the session token belongs to.
func (c *Controller) WhoAmI(ctx context.Context) (string, error) {
	return c.auth.WhoAmI(ctx)
}

func (c *Controller) execute(ctx context.Context, token, text string) error {
	resp, err := c.be.Query(ctx, token, text)
	if err != nil {
		return c.fail(RegionResults, err)
	}
	c.view.ShowSQL(resp.ParsedQuery.SQL)

	set, err := results.Decode(resp.Results.Data)
	if err != nil {
		return c.fail(RegionResults, &backend.DecodeError{Endpoint: "/query", Reason: "results.data", Err: err})
	}
	c.view.ShowResults(set)
	return nil
}

func (c *Controller) explain(ctx context.Context, token, text string) error {
	e, err := c.be.Explain(ctx, token, text)
	if err != nil {
		return c.fail(RegionExplanation, err)
	}
	c.view.ShowExplanation(*e)
	return nil
}

func (c *Controller) validate(ctx context.Context, token, text string) error {
	v, err := c.be.Validate(ctx, token, text)
	if err != nil {
		return c.fail(RegionValidation, err)
	}
	c.view.ShowValidation(*v)
	return nil
}

func (c *Controller) fail(region Region, err error) error {
	logging.L.Warn("request failed", logging.L.Args("region", string(region), "error", logging.Mask(err.Error())))
	c.view.ShowError(region, i18n.Tf("region.error", map[string]any{"Error": Describe(err)}))
	return fmt.Errorf("%s: %w", region, err)
}

func (c *Controller) alert(err *apperr.E) error {
	c.view.Alert(err.Message)
	return err
}

// Describe returns the text shown for a failed request: the backend's own
// message for status failures and a short description otherwise.
func Describe(err error) string {
	var se *backend.StatusError
	if errors.As(err, &se) {
		return se.Message
	}
	var de *backend.DecodeError
	if errors.As(err, &de) {
		return de.Error()
	}
	return httperrors.Describe(err)
}

func loginFailureText(err error) string {
	var local *apperr.E
	if errors.As(err, &local) {
		return local.Message
	}
	var se *backend.StatusError
	if errors.As(err, &se) {
		return i18n.Tf("auth.failed", map[string]any{"Error": se.Message})
	}
	return i18n.Tf("auth.error", map[string]any{"Error": Describe(err)})
}
