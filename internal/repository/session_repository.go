package repository

import (
	"sync"

	"github.com/stemsi/retro-quiz/internal/model"
)

// SessionRepository stores scored sessions in memory, keyed by session id.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*model.SessionResult
}

// NewSessionRepository creates an empty SessionRepository.
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[string]*model.SessionResult)}
}

// Save stores a session. An existing session with the same id is replaced.
func (r *SessionRepository) Save(s *model.SessionResult) {
	r.mu.Lock()
	r.sessions[s.SessionID] = s
	r.mu.Unlock()
}

// GetByID returns a stored session.
func (r *SessionRepository) GetByID(sessionID string) (*model.SessionResult, error) {
	r.mu.RLock()
	s, ok := r.sessions[sessionID]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Count returns the number of stored sessions.
func (r *SessionRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
