package repofake

import (
	"sync"

	"github.com/catalystauth/go-oauth-server/users"
)

var _ users.UserRepo = (*FakeUserRepo)(nil)

type FakeUserRepo struct {
	mu      sync.RWMutex
	byID    map[string]*users.User
	byEmail map[string]*users.User
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		byID:    make(map[string]*users.User),
		byEmail: make(map[string]*users.User),
	}
}

func (r *FakeUserRepo) GetByEmail(email string) (*users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byEmail[email]
	if !ok {
		return nil, users.UserNotFoundErr
	}
	u := *user
	return &u, nil
}

func (r *FakeUserRepo) GetByID(id string) (*users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, users.UserNotFoundErr
	}
	u := *user
	return &u, nil
}

func (r *FakeUserRepo) Upsert(user *users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := *user
	r.byID[u.ID] = &u
	r.byEmail[u.Email] = &u
	return nil
}
