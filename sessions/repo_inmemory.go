package sessions

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

var _ Repo = (*InMemoryRepo)(nil)

// InMemoryRepo is a thread-safe in-memory implementation of the Repo interface.
type InMemoryRepo struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	nowTime  func() time.Time
}

// InMemoryRepoOption configures an InMemoryRepo.
type InMemoryRepoOption func(*InMemoryRepo)

// WithNowTime sets the now time function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) InMemoryRepoOption {
	return func(r *InMemoryRepo) {
		r.nowTime = nowFunc
	}
}

// NewInMemoryRepo creates a session repository whose records expire after ttl.
func NewInMemoryRepo(ttl time.Duration, options ...InMemoryRepoOption) *InMemoryRepo {
	r := &InMemoryRepo{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		nowTime:  time.Now,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *InMemoryRepo) Ensure(existingSID string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existingSID != "" {
		if session, ok := r.sessions[existingSID]; ok && !r.expired(session) {
			return session.ID, false, nil
		}
		// Stale sid falls through and gets a fresh record.
		delete(r.sessions, existingSID)
	}

	session := &Session{
		ID:        uuid.New().String(),
		CreatedAt: r.nowTime(),
	}
	r.sessions[session.ID] = session
	return session.ID, true, nil
}

func (r *InMemoryRepo) Authenticate(sid, principal string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[sid]
	if !ok || r.expired(session) {
		return SessionNotFoundErr
	}
	session.Principal = principal
	return nil
}

func (r *InMemoryRepo) Principal(sid string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[sid]
	if !ok || r.expired(session) {
		return "", SessionNotFoundErr
	}
	return session.Principal, nil
}

func (r *InMemoryRepo) expired(session *Session) bool {
	return r.ttl > 0 && r.nowTime().Sub(session.CreatedAt) > r.ttl
}
