package web

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nlquery/cli/internal/backend"
	"nlquery/cli/internal/backend/backendtest"
	"nlquery/cli/internal/manifest"
)

type harness struct {
	t       *testing.T
	backend *backendtest.Server
	web     *httptest.Server
	server  *Server
	client  *http.Client
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	be := backendtest.NewServer()
	t.Cleanup(be.Close)

	srv, err := New(Options{
		Backend:    backend.New(be.URL, manifest.Default(), 2*time.Second),
		Examples:   []string{"Show me all customers", "Count orders by status"},
		SessionTTL: time.Hour,
	})
	require.NoError(t, err)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &harness{t: t, backend: be, web: ts, server: srv, client: &http.Client{Jar: jar}}
}

func (h *harness) get(path string) (int, string) {
	h.t.Helper()
	resp, err := h.client.Get(h.web.URL + path)
	require.NoError(h.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(h.t, err)
	return resp.StatusCode, string(body)
}

func (h *harness) post(path string, form url.Values) (int, string) {
	h.t.Helper()
	resp, err := h.client.PostForm(h.web.URL+path, form)
	require.NoError(h.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(h.t, err)
	return resp.StatusCode, string(body)
}

func TestIndexShowsLoginForm(t *testing.T) {
	h := newHarness(t)
	status, body := h.get("/")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `id="auth-section"`)
	assert.NotContains(t, body, `id="query-section"`)
	assert.NotContains(t, body, `id="results-section"`)
	assert.Equal(t, 1, h.server.store.len())
}

func TestLoginAndQueryFlow(t *testing.T) {
	h := newHarness(t)

	status, body := h.post("/ui/login", url.Values{"username": {"admin"}, "password": {"password"}})
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Login successful!")
	assert.Contains(t, body, `class="auth-status success"`)
	assert.NotContains(t, body, `id="auth-section"`)
	assert.Contains(t, body, `id="query-section"`)

	status, body = h.post("/ui/query", url.Values{"query": {"show me all users"}})
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `<pre class="sql-code">SELECT * FROM users</pre>`)
	assert.Contains(t, body, `<th>id</th><th>name</th>`)
	assert.Contains(t, body, `<td>1</td><td>Alice</td>`)
	assert.Contains(t, body, `<li class="explanation-item">The query will return all columns from the table.</li>`)
	assert.Contains(t, body, `<div class="validation-result valid">`)
	assert.Contains(t, body, `<div id="results" class="tab-pane active">`)

	assert.Equal(t, []string{"/auth/login", "/query", "/explain", "/validate"}, h.backend.Calls())
	assert.Equal(t, 1, h.server.store.len())
}

func TestLoginFailure(t *testing.T) {
	h := newHarness(t)
	_, body := h.post("/ui/login", url.Values{"username": {"admin"}, "password": {"bad"}})
	assert.Contains(t, body, "Login failed: Invalid username or password")
	assert.Contains(t, body, `id="auth-section"`)
}

func TestQueryBeforeLoginAlertsOnce(t *testing.T) {
	h := newHarness(t)
	_, body := h.post("/ui/query", url.Values{"query": {"show me all users"}})
	assert.Contains(t, body, `<div class="alert" role="alert">Please login first</div>`)
	assert.Empty(t, h.backend.Calls())

	_, body = h.get("/")
	assert.NotContains(t, body, "Please login first")
}

func TestTabSelection(t *testing.T) {
	h := newHarness(t)
	h.post("/ui/login", url.Values{"username": {"admin"}, "password": {"password"}})
	h.post("/ui/query", url.Values{"query": {"show me all users"}})

	status, body := h.post("/ui/tab/sql", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, strings.Count(body, `class="tab-btn active"`))
	assert.Equal(t, 1, strings.Count(body, `class="tab-pane active"`))
	assert.Contains(t, body, `class="tab-btn active" data-tab="sql"`)
	assert.Contains(t, body, `<div id="sql" class="tab-pane active">`)
	for _, name := range []string{"results", "explanation", "validation"} {
		assert.Contains(t, body, `<div id="`+name+`" class="tab-pane">`)
		assert.Contains(t, body, `class="tab-btn" data-tab="`+name+`"`)
	}

	status, _ = h.post("/ui/tab/history", nil)
	assert.Equal(t, http.StatusNotFound, status)
	_, body = h.get("/")
	assert.Contains(t, body, `<div id="sql" class="tab-pane active">`)
}

func TestExampleFillsQueryWithoutCalls(t *testing.T) {
	h := newHarness(t)
	h.post("/ui/login", url.Values{"username": {"admin"}, "password": {"password"}})

	_, body := h.post("/ui/example/1", nil)
	assert.Contains(t, body, ">Count orders by status</textarea>")
	assert.Equal(t, []string{"/auth/login"}, h.backend.Calls())

	status, _ := h.post("/ui/example/9", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestBackendTextIsEscaped(t *testing.T) {
	h := newHarness(t)
	h.backend.SetReply("/query", http.StatusOK,
		`{"query":"q","parsed_query":{"sql":"<script>alert(1)</script>"},"results":{"success":true,"data":[{"<b>col</b>":"<img src=x onerror=alert(1)>"}]}}`)
	h.backend.SetReply("/explain", http.StatusBadRequest, `{"error":"<i>bad</i>"}`)

	h.post("/ui/login", url.Values{"username": {"admin"}, "password": {"password"}})
	_, body := h.post("/ui/query", url.Values{"query": {"q"}})

	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.NotContains(t, body, "<img src=x")
	assert.NotContains(t, body, "<b>col</b>")
	assert.NotContains(t, body, "<i>bad</i>")
	assert.Contains(t, body, "&lt;script&gt;")
	assert.Contains(t, body, `<div class="error">Error: &lt;i&gt;bad&lt;/i&gt;</div>`)
}

func TestSessionsAreIsolated(t *testing.T) {
	h := newHarness(t)
	h.post("/ui/login", url.Values{"username": {"admin"}, "password": {"password"}})

	other, err := http.Get(h.web.URL + "/")
	require.NoError(t, err)
	defer other.Body.Close()
	body, _ := io.ReadAll(other.Body)
	assert.Contains(t, string(body), `id="auth-section"`)
	assert.Equal(t, 2, h.server.store.len())
}

func TestHealthz(t *testing.T) {
	h := newHarness(t)
	status, body := h.get("/healthz")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok","sessions":0}`, body)
}

func TestMethodNotAllowed(t *testing.T) {
	h := newHarness(t)
	status, _ := h.get("/ui/login")
	assert.Equal(t, http.StatusMethodNotAllowed, status)
}

func TestNewRejectsUnknownDefaultTab(t *testing.T) {
	_, err := New(Options{Backend: backend.New("http://127.0.0.1:1", manifest.Default(), time.Second), DefaultTab: "history"})
	assert.Error(t, err)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	srv, err := New(Options{Backend: backend.New("http://127.0.0.1:1", manifest.Default(), time.Second)})
	require.NoError(t, err)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestCookieIsHTTPOnly(t *testing.T) {
	h := newHarness(t)
	resp, err := http.Get(h.web.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()

	var found bool
	for _, c := range resp.Cookies() {
		if c.Name == CookieName {
			found = true
			assert.True(t, c.HttpOnly)
			assert.True(t, strings.Count(c.Value, "-") == 4)
		}
	}
	assert.True(t, found)
}
