// Copyright (c) 2025 nlquery
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package web serves the query UI to browsers. Every form post is turned into
// one controller event for the caller's session, then the browser is
// redirected back to the page, which is rendered from the session's page model.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"nlquery/cli/internal/backend"
	"nlquery/cli/internal/controller"
	"nlquery/cli/internal/i18n"
	"nlquery/cli/internal/logging"
	"nlquery/cli/internal/render/htmlview"
)

// CookieName is the name of the session cookie.
const CookieName = "nlquery_session"

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("index.html").
	Funcs(template.FuncMap{"t": i18n.T}).
	ParseFS(templateFS, "templates/index.html"))

// Options configures a Server.
type Options struct {
	Backend    backend.API
	Examples   []string
	DefaultTab string
	// SessionTTL is how long an idle browser session is kept. Zero keeps
	// sessions until the server stops.
	SessionTTL time.Duration
	// Lang is written into the page's lang attribute.
	Lang string
}

// Server is the web front end.
type Server struct {
	opts   Options
	router *mux.Router
	store  *store
}

// New returns a Server. Every browser session gets its own controller built
// from opts.
func New(opts Options) (*Server, error) {
	if opts.Backend == nil {
		return nil, fmt.Errorf("web: backend is required")
	}
	if opts.Lang == "" {
		opts.Lang = "en"
	}
	// Fail early on a bad default tab instead of on the first request.
	if _, err := controller.NewTabs(controller.DefaultTabs, opts.DefaultTab); err != nil {
		return nil, err
	}

	s := &Server{opts: opts, router: mux.NewRouter()}
	s.store = newStore(opts.SessionTTL, s.newController)

	routeTable := []struct {
		methods []string
		path    string
		handler http.HandlerFunc
	}{
		{[]string{http.MethodGet}, "/", s.getIndex},
		{[]string{http.MethodGet}, "/healthz", s.getHealth},
		{[]string{http.MethodPost}, "/ui/login", s.postLogin},
		{[]string{http.MethodPost}, "/ui/query", s.postQuery},
		{[]string{http.MethodPost}, "/ui/tab/{name}", s.postTab},
		{[]string{http.MethodPost}, "/ui/example/{index:[0-9]+}", s.postExample},
	}
	for _, route := range routeTable {
		s.router.Path(route.path).
			Methods(route.methods...).
			Handler(route.handler)
	}
	return s, nil
}

func (s *Server) newController(page *htmlview.Page) (*controller.Controller, error) {
	return controller.New(controller.Options{
		Backend:   s.opts.Backend,
		View:      page,
		ActiveTab: s.opts.DefaultTab,
		Examples:  s.opts.Examples,
	})
}

// ServeHTTP serves a request through the logging middleware.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	loggingMiddleware(s.router).ServeHTTP(w, r)
}

// ListenAndServe listens on addr and serves until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	server := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.sweepLoop(ctx)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logging.L.Info("shutting down web server")
		return server.Shutdown(shutdownCtx)
	}
}

func (s *Server) sweepLoop(ctx context.Context) {
	if s.opts.SessionTTL <= 0 {
		return
	}
	interval := s.opts.SessionTTL / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.store.sweep(); n > 0 {
				logging.L.Debug("expired sessions removed", logging.L.Args("count", n))
			}
		}
	}
}
