package token

import (
	"errors"
	"time"
)

var (
	InvalidTokenErr        = errors.New("invalid access token")
	InvalidRefreshTokenErr = errors.New("invalid refresh token")
)

// Pair is an access token and the refresh token issued alongside it. The two
// live and die together: rotating or superseding the pair invalidates both.
type Pair struct {
	AccessToken  string
	RefreshToken string
	Principal    string
	ClientID     string
	IssuedAt     time.Time
	ExpiresIn    int64 // access token lifetime in seconds
}

type Store interface {
	// IssueInitial mints a fresh access/refresh pair for the principal and
	// client, superseding any pair previously issued for that combination.
	IssueInitial(principal, clientID string) (*Pair, error)

	// ValidateAccess returns the principal behind a live access token.
	// Unknown, expired and superseded tokens fail with InvalidTokenErr.
	ValidateAccess(accessToken string) (string, error)

	// RotateByRefresh redeems a refresh token belonging to clientID:
	// atomically invalidates the old pair and returns a new one. A
	// rotated-away refresh token can never be redeemed again and fails with
	// InvalidRefreshTokenErr, as does a token bound to a different client.
	RotateByRefresh(refreshToken, clientID string) (*Pair, error)
}
