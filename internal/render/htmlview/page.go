// Package htmlview implements the controller's View as a page model for the
// web front end. Every region holds an HTML fragment produced by html/template,
// so text coming from the backend is always escaped.
package htmlview

import (
	"html/template"
	"maps"
	"sync"

	"nlquery/cli/internal/backend"
	"nlquery/cli/internal/controller"
	"nlquery/cli/internal/results"
)

// Page is the state of one browser page. It is safe for concurrent use.
type Page struct {
	mu sync.Mutex

	showQuery   bool
	showResults bool
	authStatus  string
	authOK      bool
	queryInput  string
	alerts      []string
	regions     map[controller.Region]template.HTML
	activeTab   string
}

// New returns a page showing only the login form.
func New() *Page {
	return &Page{regions: make(map[controller.Region]template.HTML)}
}

// Snapshot is a copy of the page state for rendering.
type Snapshot struct {
	ShowAuth    bool
	ShowQuery   bool
	ShowResults bool
	AuthStatus  string
	AuthOK      bool
	QueryInput  string
	Regions     map[controller.Region]template.HTML
	ActiveTab   string
}

// Region returns the fragment stored for r.
func (s Snapshot) Region(r string) template.HTML {
	return s.Regions[controller.Region(r)]
}

// Snapshot copies the current state.
func (p *Page) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Snapshot{
		ShowAuth:    !p.showQuery,
		ShowQuery:   p.showQuery,
		ShowResults: p.showResults,
		AuthStatus:  p.authStatus,
		AuthOK:      p.authOK,
		QueryInput:  p.queryInput,
		Regions:     maps.Clone(p.regions),
		ActiveTab:   p.activeTab,
	}
}

// TakeAlerts returns the pending alerts and clears them.
func (p *Page) TakeAlerts() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.alerts
	p.alerts = nil
	return out
}

// SetQueryInput records what the user typed, so it survives a reload.
func (p *Page) SetQueryInput(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queryInput = text
}

func (p *Page) ShowAuthStatus(msg string, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.authStatus, p.authOK = msg, ok
}

func (p *Page) RevealQueryPanel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.showQuery = true
}

func (p *Page) RevealResults() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.showResults = true
}

func (p *Page) FillQuery(text string) { p.SetQueryInput(text) }

func (p *Page) Alert(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alerts = append(p.alerts, msg)
}

func (p *Page) ShowSQL(sql string) {
	p.set(controller.RegionSQL, SQLFragment(sql))
}

func (p *Page) ShowResults(set results.Set) {
	p.set(controller.RegionResults, ResultsFragment(set))
}

func (p *Page) ShowExplanation(e backend.Explanation) {
	p.set(controller.RegionExplanation, ExplanationFragment(e))
}

func (p *Page) ShowValidation(v backend.Validation) {
	p.set(controller.RegionValidation, ValidationFragment(v))
}

func (p *Page) ShowError(region controller.Region, msg string) {
	p.set(region, ErrorFragment(msg))
}

func (p *Page) ActivateTab(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.activeTab = name
}

func (p *Page) set(r controller.Region, frag template.HTML) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.regions[r] = frag
}

var _ controller.View = (*Page)(nil)
