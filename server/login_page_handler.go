package server

import (
	"net/http"

	"github.com/catalystauth/go-oauth-server/auth"
	"github.com/catalystauth/go-oauth-server/server/pendingauth"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// LoginPageHandler displays the login page (GET /login).
func (s *Server) LoginPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := s.ensureSession(w, r); err != nil {
			http.Error(w, "Failed to establish session", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := loginTmpl.Execute(w, loginPageData{}); err != nil {
			log.Err(err).Msg("failed to render login page")
		}
	}
}

// LoginSubmissionHandler processes the login form. Bad credentials redisplay
// the prompt with a 200; a successful login re-enters the authorize flow
// with the parameters parked when the session was challenged.
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid, err := s.ensureSession(w, r)
		if err != nil {
			http.Error(w, "Failed to establish session", http.StatusInternalServerError)
			return
		}

		values, err := requestValues(r)
		if err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		username := values.Get("username")

		if err := s.auth.Login(sid, username, values.Get("password")); err != nil {
			if errors.Is(err, auth.InvalidCredentialsErr) {
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				if err := loginTmpl.Execute(w, loginPageData{Error: "Invalid email or password", Username: username}); err != nil {
					log.Err(err).Msg("failed to render login page")
				}
				return
			}
			log.Err(err).Msg("login failed")
			http.Error(w, "Login failed", http.StatusInternalServerError)
			return
		}

		query, err := s.pending.Get(sid)
		if err != nil {
			if errors.Is(err, pendingauth.NotFoundErr) {
				// Logged in outside an authorization flow; nothing to resume.
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				_ = loggedInTmpl.Execute(w, nil)
				return
			}
			http.Error(w, "Login failed", http.StatusInternalServerError)
			return
		}
		_ = s.pending.Delete(sid)

		http.Redirect(w, r, RouteAuthorize+"?"+query, http.StatusFound)
	}
}
