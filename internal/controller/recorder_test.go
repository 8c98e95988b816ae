package controller_test

import (
	"fmt"
	"sync"

	"nlquery/cli/internal/backend"
	"nlquery/cli/internal/controller"
	"nlquery/cli/internal/results"
)

// recorder is a View that keeps every call and the latest content per region.
type recorder struct {
	mu       sync.Mutex
	ops      []string
	alerts   []string
	status   string
	ok       bool
	query    string
	sql      string
	set      *results.Set
	expl     *backend.Explanation
	valid    *backend.Validation
	errs     map[controller.Region]string
	tab      string
	panels   int
	revealed int
}

func newRecorder() *recorder {
	return &recorder{errs: make(map[controller.Region]string)}
}

func (r *recorder) log(format string, args ...any) {
	r.ops = append(r.ops, fmt.Sprintf(format, args...))
}

func (r *recorder) ShowAuthStatus(msg string, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status, r.ok = msg, ok
	r.log("auth-status")
}

func (r *recorder) RevealQueryPanel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.panels++
	r.log("reveal-query")
}

func (r *recorder) RevealResults() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revealed++
	r.log("reveal-results")
}

func (r *recorder) FillQuery(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.query = text
	r.log("fill")
}

func (r *recorder) Alert(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, msg)
	r.log("alert")
}

func (r *recorder) ShowSQL(sql string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sql = sql
	delete(r.errs, controller.RegionSQL)
	r.log("sql")
}

func (r *recorder) ShowResults(set results.Set) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.set = &set
	delete(r.errs, controller.RegionResults)
	r.log("results")
}

func (r *recorder) ShowExplanation(e backend.Explanation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.expl = &e
	delete(r.errs, controller.RegionExplanation)
	r.log("explanation")
}

func (r *recorder) ShowValidation(v backend.Validation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.valid = &v
	delete(r.errs, controller.RegionValidation)
	r.log("validation")
}

func (r *recorder) ShowError(region controller.Region, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs[region] = msg
	r.log("error:%s", region)
}

func (r *recorder) ActivateTab(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tab = name
	r.log("tab:%s", name)
}

func (r *recorder) Ops() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.ops...)
}
