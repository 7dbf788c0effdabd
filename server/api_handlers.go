package server

import (
	"encoding/json"
	"net/http"
	"strings"
)

// UserInfoHandler is the bearer-protected resource endpoint. Anything other
// than a live access token gets a bare 401.
func (s *Server) UserInfoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		principal, err := s.auth.ValidateBearer(parts[1])
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		resource := map[string]any{"id": principal}
		if user, err := s.repos.Users.GetByID(principal); err == nil {
			resource["email"] = user.Email
		}

		w.Header().Set("Content-Type", contentTypeJSON)
		_ = json.NewEncoder(w).Encode(resource)
	}
}
