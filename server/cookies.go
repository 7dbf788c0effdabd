package server

import "net/http"

const sidCookieName = "sid"

// ensureSession resolves the request's session cookie against the session
// store and re-sets the cookie. The sid stays stable for an established
// agent; only a brand-new or stale client receives a different value.
func (s *Server) ensureSession(w http.ResponseWriter, r *http.Request) (string, error) {
	var existing string
	if cookie, err := r.Cookie(sidCookieName); err == nil {
		existing = cookie.Value
	}

	sid, _, err := s.repos.Sessions.Ensure(existing)
	if err != nil {
		return "", err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sidCookieName,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sid, nil
}
