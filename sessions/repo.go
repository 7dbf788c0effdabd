package sessions

import (
	"errors"
	"time"
)

var SessionNotFoundErr = errors.New("session not found")

// Session tracks a browser's authentication state. A session is identity
// only; pending authorizations, codes and tokens live in their own stores.
type Session struct {
	ID        string
	Principal string // empty until the user logs in
	CreatedAt time.Time
}

// Authenticated reports whether a user has logged in on this session.
func (s *Session) Authenticated() bool {
	return s.Principal != ""
}

type Repo interface {
	// Ensure resolves existingSID to a live session, or allocates a fresh
	// anonymous one. The caller must (re)set the session cookie when isNew
	// is true.
	Ensure(existingSID string) (sid string, isNew bool, err error)

	// Authenticate binds principal to the session.
	Authenticate(sid, principal string) error

	// Principal returns the authenticated principal for the session, or an
	// empty string if nobody has logged in yet.
	Principal(sid string) (string, error)
}
