package controller

import (
	"slices"
	"sync"

	apperr "nlquery/cli/internal/errors"
	"nlquery/cli/internal/i18n"
)

// Tab names shown in the results panel.
const (
	TabResults     = "results"
	TabSQL         = "sql"
	TabExplanation = "explanation"
	TabValidation  = "validation"
)

// DefaultTabs lists the panes in display order.
var DefaultTabs = []string{TabResults, TabSQL, TabExplanation, TabValidation}

// Tabs tracks which one of a fixed set of panes is active.
type Tabs struct {
	mu     sync.RWMutex
	names  []string
	active string
}

// NewTabs returns a tab set with active selected. An empty active selects
// the first name.
func NewTabs(names []string, active string) (*Tabs, error) {
	if len(names) == 0 {
		names = DefaultTabs
	}
	if active == "" {
		active = names[0]
	}
	if !slices.Contains(names, active) {
		return nil, unknownTab(active)
	}
	return &Tabs{names: slices.Clone(names), active: active}, nil
}

// Select makes name the active tab. Unknown names leave the state unchanged.
func (t *Tabs) Select(name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !slices.Contains(t.names, name) {
		return unknownTab(name)
	}
	t.active = name
	return nil
}

// Active returns the active tab name.
func (t *Tabs) Active() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active
}

// Names returns the tab names in display order.
func (t *Tabs) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.names)
}

func unknownTab(name string) error {
	return apperr.New(apperr.UnknownTab, i18n.Tf("tab.unknown", map[string]any{"Tab": name}))
}
