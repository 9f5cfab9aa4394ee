package selection

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultStoreSize = 1024

// ErrSessionNotFound is returned for unknown or evicted session IDs.
var ErrSessionNotFound = errors.New("selection session not found")

// Store keeps session states in memory. The least recently used sessions are
// evicted once the store is full.
type Store struct {
	mu       sync.Mutex
	sessions *lru.Cache[string, State]
	newID    func() string
}

// NewStore creates a store holding at most size sessions.
func NewStore(size int) *Store {
	if size <= 0 {
		size = defaultStoreSize
	}
	sessions, err := lru.New[string, State](size)
	if err != nil {
		panic(fmt.Sprintf("selection: create session store: %v", err))
	}
	return &Store{
		sessions: sessions,
		newID:    uuid.NewString,
	}
}

// Create stores initial under a new session ID.
func (s *Store) Create(initial State) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	s.sessions.Add(id, initial)
	return id
}

// Get returns the state of a session.
func (s *Store) Get(id string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions.Get(id)
	if !ok {
		return State{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return st, nil
}

// Update replaces the state of a session with fn's result. Updates of one
// store are serialized; when fn fails the stored state is kept.
func (s *Store) Update(id string, fn func(State) (State, error)) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.sessions.Get(id)
	if !ok {
		return State{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	next, err := fn(cur)
	if err != nil {
		return cur, err
	}
	s.sessions.Add(id, next)
	return next, nil
}

// Dispatch applies a through Reduce.
func (s *Store) Dispatch(id string, a Action) (State, error) {
	return s.Update(id, func(st State) (State, error) {
		return Reduce(st, a)
	})
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	return s.sessions.Len()
}
