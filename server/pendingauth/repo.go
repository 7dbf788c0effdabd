// Package pendingauth remembers the authorization query that sent a session
// to the login page, so a successful login can re-enter the /authorize flow
// with the same client parameters. No transaction exists yet at this point.
package pendingauth

import "errors"

var NotFoundErr = errors.New("no pending authorization for session")

type Repo interface {
	Put(sid, query string) error
	Get(sid string) (string, error)
	Delete(sid string) error
}
