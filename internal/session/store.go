package session

import (
	"encoding/base64"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/quantum-minefield-server/internal/quantum"
)

// Session pairs a grid with its public id and timestamps. The grid itself is
// single-caller by design; Do serializes access so concurrent HTTP requests
// against the same session behave as that one caller.
type Session struct {
	Id        string
	StartedAt time.Time
	EndedAt   *time.Time

	mu   sync.Mutex
	grid *quantum.Grid
}

func newSessionId() string {
	u := [16]byte(uuid.New())
	return base64.RawURLEncoding.EncodeToString(u[:])
}

// Do runs fn with exclusive access to the session's grid and stamps EndedAt
// the moment the game turns terminal.
func (s *Session) Do(fn func(g *quantum.Grid) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := fn(s.grid)
	if s.grid.Terminal() && s.EndedAt == nil {
		now := time.Now().UTC()
		s.EndedAt = &now
	}
	return err
}

// Store keeps live games in process memory only. Games never touch disk or a
// database; deleting a session is the explicit end of its lifetime.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

func (s *Store) Create(g *quantum.Grid) *Session {
	session := &Session{
		Id:        newSessionId(),
		StartedAt: time.Now().UTC(),
		grid:      g,
	}
	s.mu.Lock()
	s.sessions[session.Id] = session
	s.mu.Unlock()
	return session
}

func (s *Store) Get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

// Delete drops a session without checking if it existed.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}
