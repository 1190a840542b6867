package server

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/vdomkit/pkg/snapshot"
	"github.com/vango-dev/vdomkit/pkg/store"
)

// SessionManager owns the live sessions and restores stored ones on demand.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	store  store.Store
	deps   sessionDeps
	active prometheus.Gauge // may be nil
	logger *slog.Logger
}

// newSessionManager creates a manager backed by st.
func newSessionManager(st store.Store, deps sessionDeps, active prometheus.Gauge) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		store:    st,
		deps:     deps,
		active:   active,
		logger:   deps.logger,
	}
}

// Get returns the live session with the given ID, or nil.
func (m *SessionManager) Get(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[id]
}

// Open returns the live session for id. A session that is not live is
// restored by patching its stored snapshot into a fresh document. When
// nothing is stored, Open creates an empty session if create is set and
// returns ErrSessionNotFound otherwise.
func (m *SessionManager) Open(ctx context.Context, id string, create bool) (*Session, error) {
	if sess := m.Get(id); sess != nil {
		return sess, nil
	}

	data, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, NewSessionError(id, "restore", err)
	}
	if data == nil && !create {
		return nil, ErrSessionNotFound
	}

	sess := newSession(id, m.deps)
	if data != nil {
		tree, err := snapshot.Decode(data)
		if err != nil {
			return nil, NewSessionError(id, "restore", err)
		}
		if _, err := sess.Apply(ctx, tree); err != nil {
			return nil, NewSessionError(id, "restore", err)
		}
		m.logger.Info("session restored", "session_id", id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.sessions[id]; ok {
		// Lost a race with another Open.
		sess.Close()
		return existing, nil
	}
	m.sessions[id] = sess
	if m.active != nil {
		m.active.Inc()
	}
	return sess, nil
}

// Remove detaches the session from the manager and returns it, or nil when
// it is not live. The caller closes or destroys it.
func (m *SessionManager) Remove(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return nil
	}
	delete(m.sessions, id)
	if m.active != nil {
		m.active.Dec()
	}
	return sess
}

// IDs returns the IDs of the live sessions in lexical order.
func (m *SessionManager) IDs() []string {
	m.mu.Lock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.Unlock()
	slices.Sort(ids)
	return ids
}

// Count returns the number of live sessions.
func (m *SessionManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Shutdown closes every live session. Stored snapshots are kept.
func (m *SessionManager) Shutdown() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, sess := range sessions {
		sess.Close()
		if m.active != nil {
			m.active.Dec()
		}
	}
}
