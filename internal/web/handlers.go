package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"nlquery/cli/internal/controller"
	apperr "nlquery/cli/internal/errors"
	"nlquery/cli/internal/logging"
	"nlquery/cli/internal/render/htmlview"
)

type pageData struct {
	Lang     string
	Page     htmlview.Snapshot
	Alerts   []string
	Tabs     []string
	Examples []string
}

// sessionFor returns the caller's session, starting a new one (and setting
// the cookie) when the cookie is missing, unknown or expired.
func (s *Server) sessionFor(w http.ResponseWriter, r *http.Request) (*pageSession, error) {
	if c, err := r.Cookie(CookieName); err == nil {
		if ps, ok := s.store.get(c.Value); ok {
			return ps, nil
		}
	}
	id, ps, err := s.store.create()
	if err != nil {
		return nil, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return ps, nil
}

func (s *Server) getIndex(w http.ResponseWriter, r *http.Request) {
	ps, err := s.sessionFor(w, r)
	if err != nil {
		s.internalError(w, err)
		return
	}
	data := pageData{
		Lang:     s.opts.Lang,
		Page:     ps.page.Snapshot(),
		Alerts:   ps.page.TakeAlerts(),
		Tabs:     ps.ctrl.Tabs().Names(),
		Examples: ps.ctrl.Examples(),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := pageTemplate.Execute(w, data); err != nil {
		logging.L.Error("render page", logging.L.Args("error", err))
	}
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"sessions": s.store.len(),
	})
}

func (s *Server) postLogin(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, controller.Event{
		Type:     controller.EventLogin,
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	})
}

func (s *Server) postQuery(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, controller.Event{
		Type:  controller.EventSubmitQuery,
		Query: r.PostFormValue("query"),
	})
}

func (s *Server) postTab(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, controller.Event{
		Type: controller.EventSelectTab,
		Tab:  mux.Vars(r)["name"],
	})
}

func (s *Server) postExample(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		http.Error(w, "Example not found.", http.StatusNotFound)
		return
	}
	s.dispatch(w, r, controller.Event{
		Type:  controller.EventUseExample,
		Index: index,
	})
}

// dispatch runs ev for the caller's session and redirects back to the page.
// Outcomes are already on the page model; only unknown targets change the
// response.
func (s *Server) dispatch(w http.ResponseWriter, r *http.Request, ev controller.Event) {
	ps, err := s.sessionFor(w, r)
	if err != nil {
		s.internalError(w, err)
		return
	}
	if ev.Type == controller.EventSubmitQuery {
		ps.page.SetQueryInput(ev.Query)
	}

	err = ps.ctrl.Dispatch(r.Context(), ev)
	var local *apperr.E
	switch {
	case errors.As(err, &local) && (local.Kind == apperr.UnknownTab || local.Kind == apperr.UnknownExample):
		http.Error(w, local.Message, http.StatusNotFound)
		return
	case err != nil:
		logging.L.Debug("event finished with errors", logging.L.Args("event", string(ev.Type), "error", logging.Mask(err.Error())))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) internalError(w http.ResponseWriter, err error) {
	logging.L.Error("web request failed", logging.L.Args("error", err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
