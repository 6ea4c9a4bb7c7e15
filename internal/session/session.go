// Package session tracks who is browsing. A session exists for every
// visitor (its id doubles as the cart namespace); logging in attaches
// the user record and bearer token to it, logging out or an expired
// token detaches them without discarding the session itself.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const CookieName = "bk_session"

type State struct {
	ID        string
	UserID    string
	Name      string
	Email     string
	Token     string
	CreatedAt time.Time
}

// Authenticated reports whether a user is attached to the session.
func (s State) Authenticated() bool {
	return s.UserID != "" && s.Token != ""
}

type Manager struct {
	mu   sync.RWMutex
	byID map[string]State
	ttl  time.Duration
	now  func() time.Time
}

func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		byID: make(map[string]State),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Create starts an anonymous session and returns its id.
func (m *Manager) Create() State {
	s := State{
		ID:        "s_" + uuid.NewString(),
		CreatedAt: m.now(),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[s.ID] = s
	return s
}

func (m *Manager) Get(id string) (State, bool) {
	m.mu.RLock()
	s, ok := m.byID[id]
	m.mu.RUnlock()

	if !ok {
		return State{}, false
	}
	if m.ttl > 0 && m.now().Sub(s.CreatedAt) > m.ttl {
		m.mu.Lock()
		delete(m.byID, id)
		m.mu.Unlock()
		return State{}, false
	}
	return s, true
}

// Attach binds a logged-in user to an existing session.
func (m *Manager) Attach(id, userID, name, email, token string) (State, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.byID[id]
	if !ok {
		return State{}, false
	}
	s.UserID = userID
	s.Name = name
	s.Email = email
	s.Token = token
	m.byID[id] = s
	return s, true
}

// Detach removes the user from the session, keeping the session (and
// with it the anonymous cart namespace) alive. Used when the backend
// reports the token expired.
func (m *Manager) Detach(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.byID[id]
	if !ok {
		return
	}
	s.UserID = ""
	s.Name = ""
	s.Email = ""
	s.Token = ""
	m.byID[id] = s
}

// Destroy forgets the session entirely.
func (m *Manager) Destroy(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
}
