package app

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JoseExp44/StockWebApp/internal"
	"github.com/JoseExp44/StockWebApp/ports"
)

// Session binds one browser tab to its chart service
type Session struct {
	ID       string
	Chart    *ChartService
	lastSeen time.Time
}

// SessionManager creates and expires chart sessions. Each session owns
// an independent controller, so two tabs never share chart state.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	provider ports.Provider
	log      *internal.Logger
	ttl      time.Duration
	done     chan struct{}
}

// NewSessionManager creates a manager and starts its expiry sweep
func NewSessionManager(provider ports.Provider, ttl time.Duration, log *internal.Logger) *SessionManager {
	if log == nil {
		log = internal.DefaultLogger
	}
	m := &SessionManager{
		sessions: make(map[string]*Session),
		provider: provider,
		log:      log,
		ttl:      ttl,
		done:     make(chan struct{}),
	}
	go m.sweep()
	return m
}

// Create starts a new session with a fresh chart service
func (m *SessionManager) Create() *Session {
	session := &Session{
		ID:       uuid.NewString(),
		Chart:    NewChartService(m.provider, m.log),
		lastSeen: time.Now(),
	}
	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()
	m.log.Debug("session %s created", session.ID)
	return session
}

// Get looks up a session and marks it as seen
func (m *SessionManager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[id]
	if ok {
		session.lastSeen = time.Now()
	}
	return session, ok
}

// Remove tears down one session
func (m *SessionManager) Remove(id string) {
	m.mu.Lock()
	session, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()
	if ok {
		session.Chart.Close()
		m.log.Debug("session %s removed", id)
	}
}

// Close stops the expiry sweep and tears down every session
func (m *SessionManager) Close() {
	close(m.done)
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()
	for _, s := range sessions {
		s.Chart.Close()
	}
}

// sweep expires sessions idle longer than the TTL
func (m *SessionManager) sweep() {
	interval := m.ttl / 2
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-m.ttl)
			m.mu.Lock()
			var expired []*Session
			for id, s := range m.sessions {
				if s.lastSeen.Before(cutoff) {
					expired = append(expired, s)
					delete(m.sessions, id)
				}
			}
			m.mu.Unlock()
			for _, s := range expired {
				s.Chart.Close()
				m.log.Debug("session %s expired", s.ID)
			}
		case <-m.done:
			return
		}
	}
}
