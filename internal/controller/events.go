package controller

import (
	"context"
	"fmt"

	apperr "nlquery/cli/internal/errors"
)

// EventType enumerates the UI events a controller handles.
type EventType string

const (
	// EventLogin submits the login form.
	EventLogin EventType = "login"
	// EventSubmitQuery submits the query form.
	EventSubmitQuery EventType = "submit-query"
	// EventSelectTab activates a results tab.
	EventSelectTab EventType = "select-tab"
	// EventUseExample copies an example question into the query input.
	EventUseExample EventType = "use-example"
)

// Event is a generic container for UI events.
// Only a subset of fields is set depending on Type.
type Event struct {
	Type EventType

	// Login
	Username string
	Password string

	// Submit query
	Query string

	// Select tab
	Tab string

	// Use example, 0-based
	Index int
}

// Handler processes one event.
type Handler func(ctx context.Context, ev Event) error

// Handle registers h for typ, replacing any previous handler.
func (c *Controller) Handle(typ EventType, h Handler) {
	c.hmu.Lock()
	defer c.hmu.Unlock()
	c.handlers[typ] = h
}

// Dispatch routes ev to its registered handler.
func (c *Controller) Dispatch(ctx context.Context, ev Event) error {
	c.hmu.RLock()
	h, ok := c.handlers[ev.Type]
	c.hmu.RUnlock()
	if !ok {
		return apperr.New(apperr.UnknownEvent, fmt.Sprintf("no handler for event %q", ev.Type))
	}
	return h(ctx, ev)
}

func (c *Controller) registerDefaults() {
	c.Handle(EventLogin, func(ctx context.Context, ev Event) error {
		return c.Login(ctx, ev.Username, ev.Password)
	})
	c.Handle(EventSubmitQuery, func(ctx context.Context, ev Event) error {
		return c.SubmitQuery(ctx, ev.Query)
	})
	c.Handle(EventSelectTab, func(_ context.Context, ev Event) error {
		return c.SelectTab(ev.Tab)
	})
	c.Handle(EventUseExample, func(_ context.Context, ev Event) error {
		return c.UseExample(ev.Index)
	})
}
