package tui

import (
	"errors"
	"sort"
	"sync"
	"time"
)

// ErrServerFull is returned when the session limit is reached.
var ErrServerFull = errors.New("server full")

// SessionID uniquely identifies an SSH connection.
type SessionID string

// SessionInfo describes an active connection.
type SessionInfo struct {
	Pilot   string
	Remote  string
	Started time.Time
}

// SessionRegistry tracks active sessions.
// Thread-safe for concurrent access.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[SessionID]SessionInfo
	limit    int // 0 means unlimited
}

// NewSessionRegistry creates a registry admitting at most limit sessions.
func NewSessionRegistry(limit int) *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[SessionID]SessionInfo),
		limit:    max(limit, 0),
	}
}

// Register adds a session, or returns ErrServerFull.
func (r *SessionRegistry) Register(id SessionID, info SessionInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok && r.limit > 0 && len(r.sessions) >= r.limit {
		return ErrServerFull
	}
	r.sessions[id] = info
	return nil
}

// Unregister removes a session from the registry.
func (r *SessionRegistry) Unregister(id SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Count returns the number of registered sessions.
func (r *SessionRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Pilots returns the sorted names of connected pilots, each once.
func (r *SessionRegistry) Pilots() []string {
	r.mu.RLock()
	seen := make(map[string]struct{}, len(r.sessions))
	for _, s := range r.sessions {
		seen[s.Pilot] = struct{}{}
	}
	r.mu.RUnlock()

	pilots := make([]string, 0, len(seen))
	for p := range seen {
		pilots = append(pilots, p)
	}
	sort.Strings(pilots)
	return pilots
}
