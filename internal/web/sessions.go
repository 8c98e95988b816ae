package web

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"nlquery/cli/internal/controller"
	"nlquery/cli/internal/render/htmlview"
)

// pageSession is one browser session: its page model and the controller
// driving it. The bearer token lives in the controller's session state and
// is dropped with the pageSession.
type pageSession struct {
	page     *htmlview.Page
	ctrl     *controller.Controller
	lastSeen time.Time
}

// store keeps page sessions by id and forgets them after ttl of inactivity.
type store struct {
	mu    sync.Mutex
	items map[string]*pageSession
	ttl   time.Duration
	build func(*htmlview.Page) (*controller.Controller, error)
	now   func() time.Time
}

func newStore(ttl time.Duration, build func(*htmlview.Page) (*controller.Controller, error)) *store {
	return &store{
		items: make(map[string]*pageSession),
		ttl:   ttl,
		build: build,
		now:   time.Now,
	}
}

// get returns the live session for id and marks it as used.
func (s *store) get(id string) (*pageSession, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ps, ok := s.items[id]
	if !ok {
		return nil, false
	}
	if s.expired(ps) {
		delete(s.items, id)
		return nil, false
	}
	ps.lastSeen = s.now()
	return ps, true
}

// create starts a new logged-out session.
func (s *store) create() (string, *pageSession, error) {
	page := htmlview.New()
	ctrl, err := s.build(page)
	if err != nil {
		return "", nil, err
	}
	id := uuid.NewString()
	ps := &pageSession{page: page, ctrl: ctrl, lastSeen: s.now()}

	s.mu.Lock()
	s.items[id] = ps
	s.mu.Unlock()
	return id, ps, nil
}

// sweep drops expired sessions and reports how many were removed.
func (s *store) sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, ps := range s.items {
		if s.expired(ps) {
			delete(s.items, id)
			n++
		}
	}
	return n
}

func (s *store) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *store) expired(ps *pageSession) bool {
	return s.ttl > 0 && s.now().Sub(ps.lastSeen) > s.ttl
}
