package session

import (
	"sync"
	"time"

	"github.com/synapsehub/support-portal/internal/pkg/id"
)

// Session is the per-client trust context. It records which single email
// address is currently verified. The grant is scoped to the session that
// performed verification, not to the email value alone.
type Session struct {
	ID        string
	CreatedAt time.Time
	ExpiresAt time.Time

	mu            sync.Mutex
	verifiedEmail string
}

func (s *Session) VerifiedEmail() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.verifiedEmail
}

func (s *Session) SetVerifiedEmail(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.verifiedEmail = email
}

func (s *Session) ClearVerifiedEmail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.verifiedEmail = ""
}

// Manager is the in-memory session registry. Sessions live for a fixed TTL
// from creation; expired ones are dropped lazily on access and by a periodic
// sweep.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewManager(ttl time.Duration) *Manager {
	m := &Manager{sessions: make(map[string]*Session), ttl: ttl}
	go m.sweep()
	return m
}

// Create registers and returns a new empty session.
func (m *Manager) Create() *Session {
	now := time.Now()
	s := &Session{
		ID:        id.New(),
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get returns the session for the given ID, or false when it is unknown or
// has expired.
func (m *Manager) Get(sessionID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, false
	}
	if time.Now().After(s.ExpiresAt) {
		delete(m.sessions, sessionID)
		return nil, false
	}
	return s, true
}

// sweep removes expired sessions every 10 minutes.
func (m *Manager) sweep() {
	for {
		time.Sleep(10 * time.Minute)
		now := time.Now()
		m.mu.Lock()
		for sid, s := range m.sessions {
			if now.After(s.ExpiresAt) {
				delete(m.sessions, sid)
			}
		}
		m.mu.Unlock()
	}
}
