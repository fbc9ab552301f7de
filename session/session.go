// Package session holds the explicit per-request context: a snapshot of
// the shared read-only dataset plus the user's filter and affordability
// inputs. Nothing here is mutated after creation, so sessions may share
// the underlying listing slice without copying.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"housing-explorer/models"
)

// Session is one user interaction's inputs and dataset view.
type Session struct {
	ID          uuid.UUID
	CreatedAt   time.Time
	Records     []models.Listing
	Constraints models.Constraints
	Profile     models.Profile
}

// New creates a session over the shared dataset with the given inputs.
func New(records []models.Listing, c models.Constraints, p models.Profile) *Session {
	return &Session{
		ID:          uuid.New(),
		CreatedAt:   time.Now(),
		Records:     records,
		Constraints: c,
		Profile:     p,
	}
}

// Registry tracks live sessions. Safe for concurrent use: many sessions
// may read the same dataset at once.
type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[uuid.UUID]*Session)}
}

// Add registers the session, returning false if its ID is already present.
func (r *Registry) Add(s *Session) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[s.ID]; exists {
		return false
	}
	r.sessions[s.ID] = s
	return true
}

// Get returns the session with the given ID, if registered.
func (r *Registry) Get(id uuid.UUID) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// End discards the session; its inputs are not kept anywhere else.
func (r *Registry) End(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
