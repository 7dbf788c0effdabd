package pendingauth

import (
	"errors"
	"sync"
)

var _ Repo = (*InMemoryRepo)(nil)

// InMemoryRepo is a thread-safe in-memory implementation of the Repo interface.
type InMemoryRepo struct {
	mu      sync.RWMutex
	queries map[string]string
}

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		queries: make(map[string]string),
	}
}

func (r *InMemoryRepo) Put(sid, query string) error {
	if sid == "" {
		return errors.New("sid cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.queries[sid] = query
	return nil
}

func (r *InMemoryRepo) Get(sid string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query, ok := r.queries[sid]
	if !ok {
		return "", NotFoundErr
	}
	return query, nil
}

func (r *InMemoryRepo) Delete(sid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.queries, sid)
	return nil
}
