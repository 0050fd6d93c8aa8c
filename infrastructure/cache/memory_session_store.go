package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"yt-dashboard/domain/model"
	"yt-dashboard/domain/repository"
)

const (
	defaultMemorySessions = 10_000
	defaultSessionTTL     = 30 * time.Minute
)

// MemorySessionStore keeps sessions in a bounded, expiring in-process LRU
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions *expirable.LRU[string, *model.SearchSession]
}

// NewMemorySessionStore creates a store holding at most size sessions for ttl each
func NewMemorySessionStore(size int, ttl time.Duration) repository.ISearchSessionStore {
	if size <= 0 {
		size = defaultMemorySessions
	}
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &MemorySessionStore{
		sessions: expirable.NewLRU[string, *model.SearchSession](size, nil, ttl),
	}
}

func (s *MemorySessionStore) Create(_ context.Context, session *model.SearchSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessions.Contains(session.ID) {
		return fmt.Errorf("search session %s already exists", session.ID)
	}
	s.sessions.Add(session.ID, session.Clone())
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, id string) (*model.SearchSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrSessionNotFound, id)
	}
	return session.Clone(), nil
}

// Update runs fn on a copy and stores it only when fn succeeds
func (s *MemorySessionStore) Update(_ context.Context, id string, fn func(*model.SearchSession) error) (*model.SearchSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.sessions.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrSessionNotFound, id)
	}
	next := current.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	s.sessions.Add(id, next)
	return next.Clone(), nil
}

func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.sessions.Remove(id) {
		return fmt.Errorf("%w: %s", model.ErrSessionNotFound, id)
	}
	return nil
}
