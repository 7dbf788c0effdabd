package clients

import (
	"errors"
	"sync"
)

var _ Repo = (*InMemoryRepo)(nil)

// InMemoryRepo is a thread-safe in-memory implementation of the Repo interface.
type InMemoryRepo struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		clients: make(map[string]*Client),
	}
}

func (r *InMemoryRepo) Get(clientID string) (*Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	client, ok := r.clients[clientID]
	if !ok {
		return nil, ClientNotFoundErr
	}
	c := *client
	return &c, nil
}

func (r *InMemoryRepo) Upsert(client *Client) error {
	if client == nil || client.ID == "" {
		return errors.New("client id cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c := *client
	r.clients[client.ID] = &c
	return nil
}
