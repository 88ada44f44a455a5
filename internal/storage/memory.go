// Package storage provides session store implementations.
package storage

import (
	"sync"

	"go.uber.org/zap"

	"github.com/inikonoff/fridgechef/internal/domain"
)

// Compile-time interface check.
var _ domain.SessionStore = (*MemoryStore)(nil)

// MemoryStore is an in-memory session store keyed by user ID. Map access
// is guarded by an RWMutex; per-user mutation ordering is provided by the
// keyed mutexes from UserLock. State is ephemeral: nothing survives a
// process restart and there is no background expiry.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[int64]*domain.Session

	locksMu sync.Mutex
	locks   map[int64]*sync.Mutex

	log *zap.SugaredLogger
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore(log *zap.SugaredLogger) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[int64]*domain.Session),
		locks:    make(map[int64]*sync.Mutex),
		log:      log,
	}
}

// Get retrieves the session for a user, if one exists.
func (s *MemoryStore) Get(userID int64) (*domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[userID]
	return sess, ok
}

// GetOrCreate retrieves the session for a user, lazily creating an empty
// one on first contact.
func (s *MemoryStore) GetOrCreate(userID int64) *domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[userID]; ok {
		return sess
	}
	sess := &domain.Session{UserID: userID, State: domain.StateEmpty}
	s.sessions[userID] = sess
	s.log.Debugf("created session for user %d", userID)
	return sess
}

// Clear destroys the session for a user. All fields are gone; a
// subsequent read sees the empty defaults.
func (s *MemoryStore) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[userID]; ok {
		delete(s.sessions, userID)
		s.log.Debugf("cleared session for user %d", userID)
	}
}

// Len returns the number of live sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// UserLock returns the mutex serializing all operations for one user,
// creating it on first use. The lock is intentionally separate from the
// map mutex: callers hold it across backend I/O, which must not block
// other users' access to the store.
func (s *MemoryStore) UserLock(userID int64) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	if mu, ok := s.locks[userID]; ok {
		return mu
	}
	mu := &sync.Mutex{}
	s.locks[userID] = mu
	return mu
}
