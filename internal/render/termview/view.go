// Package termview implements the controller's View for a terminal using
// pterm. Each region is rendered once into a pane and printed as it arrives;
// selecting a tab prints the pane again.
package termview

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/pterm/pterm"

	"nlquery/cli/internal/backend"
	"nlquery/cli/internal/controller"
	"nlquery/cli/internal/i18n"
	"nlquery/cli/internal/results"
)

// View prints to an io.Writer. It is safe for concurrent use.
type View struct {
	mu     sync.Mutex
	w      io.Writer
	panes  map[controller.Region]string
	active string
	filled string
}

// New returns a View writing to w.
func New(w io.Writer) *View {
	return &View{w: w, panes: make(map[controller.Region]string)}
}

// Filled returns the text last placed in the query input.
func (v *View) Filled() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filled
}

// Active returns the active tab.
func (v *View) Active() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.active
}

// Pane returns the rendered content of a region.
func (v *View) Pane(r controller.Region) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.panes[r]
}

func (v *View) ShowAuthStatus(msg string, ok bool) {
	if ok {
		v.print(pterm.Success.Sprintln(msg))
		return
	}
	v.print(pterm.Error.Sprintln(msg))
}

func (v *View) RevealQueryPanel() {
	v.print(pterm.Info.Sprintln(i18n.T("query.ready")))
}

func (v *View) RevealResults() {}

func (v *View) FillQuery(text string) {
	v.mu.Lock()
	v.filled = text
	v.mu.Unlock()
	v.print(pterm.Info.Sprintln(i18n.Tf("query.filled", map[string]any{"Query": text})))
}

func (v *View) Alert(msg string) {
	v.print(pterm.Warning.Sprintln(msg))
}

func (v *View) ShowSQL(sql string) {
	v.setPane(controller.RegionSQL, pterm.DefaultBox.Sprint(sql)+"\n")
}

func (v *View) ShowResults(set results.Set) {
	v.setPane(controller.RegionResults, renderResults(set))
}

func (v *View) ShowExplanation(e backend.Explanation) {
	var b strings.Builder
	b.WriteString(e.Summary)
	b.WriteString("\n")
	if len(e.Details) > 0 {
		list, err := pterm.DefaultBulletList.WithItems(stringListToBulletItems(e.Details)).Srender()
		if err != nil {
			list = strings.Join(e.Details, "\n") + "\n"
		}
		b.WriteString(list)
	}
	v.setPane(controller.RegionExplanation, b.String())
}

func (v *View) ShowValidation(val backend.Validation) {
	if val.Valid {
		v.setPane(controller.RegionValidation, pterm.Success.Sprintln(i18n.T("validation.valid")+": "+val.Text()))
		return
	}
	v.setPane(controller.RegionValidation, pterm.Error.Sprintln(i18n.T("validation.invalid")+": "+val.Text()))
}

func (v *View) ShowError(region controller.Region, msg string) {
	if region == controller.RegionAuthStatus {
		v.print(pterm.Error.Sprintln(msg))
		return
	}
	v.setPane(region, pterm.Error.Sprintln(msg))
}

// ActivateTab prints the pane behind the tab, if it has content.
func (v *View) ActivateTab(name string) {
	v.mu.Lock()
	v.active = name
	pane := v.panes[controller.Region(name)]
	v.mu.Unlock()
	if pane != "" {
		v.print(heading(controller.Region(name)) + pane)
	}
}

func (v *View) setPane(r controller.Region, content string) {
	v.mu.Lock()
	v.panes[r] = content
	v.mu.Unlock()
	v.print(heading(r) + content)
}

func (v *View) print(s string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprint(v.w, s)
}

func heading(r controller.Region) string {
	return pterm.NewStyle(pterm.FgLightCyan, pterm.Bold).Sprint(i18n.T("tab."+string(r))) + "\n"
}

func renderResults(set results.Set) string {
	switch set.Kind {
	case results.Table:
		data := make([][]string, 0, len(set.Rows)+1)
		data = append(data, set.Columns)
		data = append(data, set.Rows...)
		out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return pterm.Error.Sprintln(err.Error())
		}
		return out + "\n"
	case results.Raw:
		return set.Raw + "\n"
	default:
		return i18n.T("results.empty") + "\n"
	}
}

func stringListToBulletItems(items []string) (out []pterm.BulletListItem) {
	for _, s := range items {
		out = append(out, pterm.BulletListItem{Level: 0, Text: s})
	}
	return out
}

var _ controller.View = (*View)(nil)
