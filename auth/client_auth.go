package auth

import (
	"net/http"
	"net/url"
)

// ClientCredentials is the normalized client identity presented on /token,
// whichever way it arrived.
type ClientCredentials struct {
	ID            string
	Secret        string
	FromBasicAuth bool
}

// ClientAuthenticator extracts client credentials from a token request. The
// flow controller is agnostic to which strategy supplied them.
type ClientAuthenticator interface {
	Credentials(r *http.Request, form url.Values) (*ClientCredentials, bool)
}

// BasicStrategy reads credentials from the HTTP Basic Authorization header.
type BasicStrategy struct{}

func (BasicStrategy) Credentials(r *http.Request, _ url.Values) (*ClientCredentials, bool) {
	id, secret, ok := r.BasicAuth()
	if !ok || id == "" {
		return nil, false
	}
	return &ClientCredentials{ID: id, Secret: secret, FromBasicAuth: true}, true
}

// BodyStrategy reads client_id/client_secret from the request body.
type BodyStrategy struct{}

func (BodyStrategy) Credentials(_ *http.Request, form url.Values) (*ClientCredentials, bool) {
	id := form.Get("client_id")
	if id == "" {
		return nil, false
	}
	return &ClientCredentials{ID: id, Secret: form.Get("client_secret")}, true
}

// ExtractClientCredentials tries each strategy in order and returns the
// first set of credentials found.
func ExtractClientCredentials(r *http.Request, form url.Values, strategies ...ClientAuthenticator) (*ClientCredentials, bool) {
	for _, strategy := range strategies {
		if creds, ok := strategy.Credentials(r, form); ok {
			return creds, true
		}
	}
	return nil, false
}
