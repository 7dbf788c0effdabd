package transactions

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

var _ Repo = (*InMemoryRepo)(nil)

// InMemoryRepo is a thread-safe in-memory implementation of the Repo
// interface. Only pending transactions are held; Consume removes the record,
// which makes single-use a property of map membership rather than a flag.
type InMemoryRepo struct {
	mu        sync.Mutex
	pending   map[string]*Transaction
	bySession map[string]string // session id -> its current pending transaction id
	nowTime   func() time.Time
}

type InMemoryRepoOption func(*InMemoryRepo)

// WithNowTime sets the now time function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) InMemoryRepoOption {
	return func(r *InMemoryRepo) {
		r.nowTime = nowFunc
	}
}

func NewInMemoryRepo(options ...InMemoryRepoOption) *InMemoryRepo {
	r := &InMemoryRepo{
		pending:   make(map[string]*Transaction),
		bySession: make(map[string]string),
		nowTime:   time.Now,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *InMemoryRepo) Begin(sessionID, clientID, redirectURI, responseType, state string) (*Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Supersede the session's previous pending transaction, if any.
	if oldID, ok := r.bySession[sessionID]; ok {
		delete(r.pending, oldID)
	}

	txn := &Transaction{
		ID:           uuid.New().String(),
		SessionID:    sessionID,
		ClientID:     clientID,
		RedirectURI:  redirectURI,
		ResponseType: responseType,
		State:        state,
		Status:       StatusPending,
		CreatedAt:    r.nowTime(),
	}
	r.pending[txn.ID] = txn
	r.bySession[sessionID] = txn.ID
	return copyTransaction(txn), nil
}

func (r *InMemoryRepo) Peek(transactionID string) (*Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	txn, ok := r.pending[transactionID]
	if !ok {
		return nil, TransactionNotFoundErr
	}
	return copyTransaction(txn), nil
}

func (r *InMemoryRepo) Consume(transactionID string) (*Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	txn, ok := r.pending[transactionID]
	if !ok {
		return nil, TransactionNotFoundErr
	}
	delete(r.pending, transactionID)
	if r.bySession[txn.SessionID] == transactionID {
		delete(r.bySession, txn.SessionID)
	}
	txn.Status = StatusConsumed
	return copyTransaction(txn), nil
}

// copyTransaction returns a copy to prevent external modifications.
func copyTransaction(txn *Transaction) *Transaction {
	c := *txn
	return &c
}
