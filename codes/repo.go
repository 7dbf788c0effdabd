package codes

import (
	"errors"
	"time"
)

var CodeNotFoundErr = errors.New("authorization code not found")

// Record is an issued authorization code and the grant data bound to it.
type Record struct {
	Code        string
	Principal   string
	ClientID    string
	RedirectURI string
	State       string
	IssuedAt    time.Time
}

type Repo interface {
	// Issue allocates an unguessable single-use code bound to the grant.
	Issue(principal, clientID, redirectURI, state string) (string, error)

	// Redeem atomically consumes the code and returns its bound data.
	// Unknown, expired and already-redeemed codes all fail with
	// CodeNotFoundErr; when callers race on the same code exactly one wins.
	Redeem(code string) (*Record, error)
}
