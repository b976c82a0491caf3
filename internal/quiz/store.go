package quiz

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"k8s.io/klog/v2"
)

// Store keeps sessions in memory for the lifetime of the process.
type Store struct {
	mu       sync.RWMutex
	bank     *Bank
	sessions map[uuid.UUID]*Session
}

func NewStore(bank *Bank) *Store {
	return &Store{
		bank:     bank,
		sessions: make(map[uuid.UUID]*Session),
	}
}

func (st *Store) Bank() *Bank {
	return st.bank
}

func (st *Store) Create() *Session {
	s := NewSession(st.bank)
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s.clone()
}

// Get returns a snapshot of the session.
func (st *Store) Get(id uuid.UUID) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s.clone(), nil
}

// Update applies fn to the stored session under the write lock and returns
// a snapshot of the result. The session is left untouched if fn fails.
func (st *Store) Update(id uuid.UUID, fn func(*Session) error) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	working := s.clone()
	if err := fn(working); err != nil {
		return s.clone(), err
	}
	st.sessions[id] = working
	return working.clone(), nil
}

func (st *Store) Delete(id uuid.UUID) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep drops sessions idle for longer than maxAge and returns how many
// were removed.
func (st *Store) Sweep(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)
	st.mu.Lock()
	defer st.mu.Unlock()
	removed := 0
	for id, s := range st.sessions {
		if s.UpdatedAt.Before(cutoff) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (st *Store) RunSweeper(ctx context.Context, interval, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := st.Sweep(maxAge); n > 0 {
				klog.V(4).Infof("swept %d idle sessions", n)
			}
		}
	}
}
