package server

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrStoreClosed is returned by a MemoryStore after Close.
var ErrStoreClosed = errors.New("feedback store is closed")

// Entry is a stored submission.
type Entry struct {
	ID            string    `json:"id"`
	Rating        int       `json:"rating"`
	Opinion       *string   `json:"opinion"`
	ResearchOptIn string    `json:"research_optin"`
	Email         *string   `json:"email"`
	CreatedAt     time.Time `json:"created_at"`
	IP            string    `json:"ip"`
	UserAgent     string    `json:"user_agent"`
}

// Store keeps accepted submissions.
type Store interface {
	// Insert stores e and returns its new ID.
	Insert(ctx context.Context, e Entry) (string, error)
	// List returns every entry, newest first.
	List(ctx context.Context) ([]Entry, error)
}

// MemoryStore is a Store that lives for the life of the process.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []Entry
	closed  bool
	newID   func() string
}

// NewMemoryStore creates an empty store that assigns random UUIDs.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{newID: func() string { return uuid.NewString() }}
}

// Insert implements Store.
func (s *MemoryStore) Insert(ctx context.Context, e Entry) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", ErrStoreClosed
	}
	e.ID = s.newID()
	s.entries = append(s.entries, e)
	return e.ID, nil
}

// List implements Store.
func (s *MemoryStore) List(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrStoreClosed
	}
	out := make([]Entry, 0, len(s.entries))
	for i := len(s.entries) - 1; i >= 0; i-- {
		out = append(out, s.entries[i])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Len returns the number of stored entries.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close makes every later call fail with ErrStoreClosed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
