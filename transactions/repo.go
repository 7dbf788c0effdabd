package transactions

import (
	"errors"
	"time"
)

var TransactionNotFoundErr = errors.New("transaction not found")

// Status of a pending authorization.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusConsumed Status = "CONSUMED"
)

// Transaction is a single authorization request awaiting the user's consent
// decision. It is single-use: Consume transitions it PENDING->CONSUMED
// exactly once, after which its id can never be presented again.
type Transaction struct {
	ID           string
	SessionID    string
	ClientID     string
	RedirectURI  string
	ResponseType string
	State        string
	Status       Status
	CreatedAt    time.Time
}

type Repo interface {
	// Begin records a new pending authorization and returns it. Every call
	// allocates a brand-new unguessable id; any prior pending transaction
	// for the same session is superseded and its id becomes invalid.
	Begin(sessionID, clientID, redirectURI, responseType, state string) (*Transaction, error)

	// Peek returns the pending transaction without consuming it.
	Peek(transactionID string) (*Transaction, error)

	// Consume atomically transitions the transaction PENDING->CONSUMED and
	// returns it. An absent, already-consumed or superseded id fails with
	// TransactionNotFoundErr; when callers race on the same id exactly one
	// succeeds.
	Consume(transactionID string) (*Transaction, error)
}
