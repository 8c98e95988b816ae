package controller

import (
	"nlquery/cli/internal/backend"
	"nlquery/cli/internal/results"
)

// Region names an output area of a view.
type Region string

const (
	RegionAuthStatus  Region = "auth-status"
	RegionSQL         Region = "sql"
	RegionResults     Region = "results"
	RegionExplanation Region = "explanation"
	RegionValidation  Region = "validation"
)

// View is the display surface a Controller drives. Implementations render
// into HTML fragments, a terminal, or a recorder in tests. Methods are called
// from the goroutine that dispatched the event.
type View interface {
	// ShowAuthStatus sets the login status line.
	ShowAuthStatus(msg string, ok bool)
	// RevealQueryPanel hides the login form and shows the query form.
	RevealQueryPanel()
	// RevealResults shows the results panel.
	RevealResults()
	// FillQuery replaces the text of the query input.
	FillQuery(text string)
	// Alert reports a local validation failure to the user.
	Alert(msg string)
	ShowSQL(sql string)
	ShowResults(set results.Set)
	ShowExplanation(e backend.Explanation)
	ShowValidation(v backend.Validation)
	// ShowError replaces the content of region with an error block.
	ShowError(region Region, msg string)
	// ActivateTab makes name the only active tab.
	ActivateTab(name string)
}
