// Package backendtest provides an in-process fake of the query service for
// tests. It speaks the same JSON contract as the real backend: login with
// fixed users, bearer-protected query/explain/validate endpoints, and the
// health and API listing endpoints.
package backendtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// Token is the bearer token issued for every successful login.
const Token = "test-token"

// Users are the accepted credentials.
var Users = map[string]string{
	"admin": "password",
	"user":  "user123",
}

// Reply is a canned response for one endpoint.
type Reply struct {
	Status int
	Body   string
}

// Server is a fake backend. Replies may be changed between requests.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	calls    []string
	queries  []string
	replies  map[string]Reply
	authHdrs []string
}

// NewServer starts a fake backend with default replies for the example
// question "show me all users".
func NewServer() *Server {
	s := &Server{
		replies: map[string]Reply{
			"/query":    {Status: http.StatusOK, Body: `{"query":"show me all users","parsed_query":{"entity":"customers","operation":"select","conditions":[],"sql":"SELECT * FROM users"},"results":{"success":true,"data":[{"id":1,"name":"Alice"}]}}`},
			"/explain":  {Status: http.StatusOK, Body: `{"explanation":{"explanation":{"summary":"This query is looking for select data from the customers table.","details":["The query will return all columns from the table."],"sql":"SELECT * FROM users"}}}`},
			"/validate": {Status: http.StatusOK, Body: `{"validation":{"validation":{"valid":true,"message":"The query is valid and can be executed successfully."}}}`},
		},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", s.handleLogin)
	mux.HandleFunc("/auth/verify", s.protected("/auth/verify", func(w http.ResponseWriter, r *http.Request) {
		s.record("/auth/verify", "")
		writeJSON(w, http.StatusOK, `{"user":"admin","authenticated":true}`)
	}))
	for _, p := range []string{"/query", "/explain", "/validate"} {
		path := p
		mux.HandleFunc(path, s.protected(path, s.handleCanned(path)))
	}
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		s.record("/health", "")
		writeJSON(w, http.StatusOK, `{"status":"healthy"}`)
	})
	mux.HandleFunc("/api", func(w http.ResponseWriter, r *http.Request) {
		s.record("/api", "")
		writeJSON(w, http.StatusOK, `{"message":"Welcome","endpoints":{"/auth/login":"Get authentication token (POST)","/query":"Process natural language queries (POST)","/explain":"Get explanation of a query (POST)","/validate":"Validate a query (POST)","/health":"Check API health (GET)"},"version":"1.0.0"}`)
	})
	s.Server = httptest.NewServer(mux)
	return s
}

// SetReply replaces the canned reply for path.
func (s *Server) SetReply(path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[path] = Reply{Status: status, Body: body}
}

// Calls returns the endpoint paths requested so far, in order.
func (s *Server) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// Queries returns the query texts received by the query endpoints, in order.
func (s *Server) Queries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries...)
}

// AuthHeaders returns the Authorization headers seen on protected endpoints.
func (s *Server) AuthHeaders() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.authHdrs...)
}

func (s *Server) record(path, query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, path)
	if query != "" {
		s.queries = append(s.queries, query)
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	s.record("/auth/login", "")
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, `{"error":"Method not allowed"}`)
		return
	}
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		writeJSON(w, http.StatusBadRequest, `{"error":"Missing JSON in request"}`)
		return
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, `{"error":"Missing JSON in request"}`)
		return
	}
	if body.Username == "" || body.Password == "" {
		writeJSON(w, http.StatusBadRequest, `{"error":"Missing username or password"}`)
		return
	}
	if pw, ok := Users[body.Username]; !ok || pw != body.Password {
		writeJSON(w, http.StatusUnauthorized, `{"error":"Invalid username or password"}`)
		return
	}
	writeJSON(w, http.StatusOK, `{"token":"`+Token+`"}`)
}

func (s *Server) protected(path string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hdr := r.Header.Get("Authorization")
		s.mu.Lock()
		s.authHdrs = append(s.authHdrs, hdr)
		s.mu.Unlock()
		if hdr != "Bearer "+Token {
			s.record(path, "")
			writeJSON(w, http.StatusUnauthorized, `{"msg":"Missing Authorization Header"}`)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleCanned(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Query string `json:"query"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		s.record(path, body.Query)

		s.mu.Lock()
		reply := s.replies[path]
		s.mu.Unlock()
		writeJSON(w, reply.Status, reply.Body)
	}
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
