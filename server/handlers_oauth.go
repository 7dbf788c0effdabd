package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/catalystauth/go-oauth-server/auth"
	"github.com/catalystauth/go-oauth-server/oauthmodel"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// AuthorizeHandler begins (or resumes) the authorization flow. An
// unauthenticated session is challenged for login, with the original query
// parked so the flow can re-enter after the user signs in.
func (s *Server) AuthorizeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid, err := s.ensureSession(w, r)
		if err != nil {
			http.Error(w, "Failed to establish session", http.StatusInternalServerError)
			return
		}

		params := oauthmodel.ParseAuthorizationParameters(r.URL.Query())
		txn, err := s.auth.Authorize(sid, params)
		if err != nil {
			if errors.Is(err, auth.NotAuthenticatedErr) {
				if err := s.pending.Put(sid, r.URL.RawQuery); err != nil {
					http.Error(w, "Failed to record authorization request", http.StatusInternalServerError)
					return
				}
				http.Redirect(w, r, RouteLogin, http.StatusFound)
				return
			}
			// Unknown client, bad redirect_uri and friends have no safe
			// redirect target.
			log.Err(err).Str("client_id", params.ClientID).Msg("authorization failed")
			http.Error(w, "Authorization failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := consentTmpl.Execute(w, consentPageData{ClientID: txn.ClientID, TransactionID: txn.ID}); err != nil {
			log.Err(err).Msg("failed to render consent page")
		}
	}
}

// AuthorizeDecisionHandler consumes the transaction and redirects the user
// agent back to the client with either a code or an access_denied error. An
// unknown transaction id is fatal: with no transaction there is no redirect
// target to fail towards.
func (s *Server) AuthorizeDecisionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := s.ensureSession(w, r); err != nil {
			http.Error(w, "Failed to establish session", http.StatusInternalServerError)
			return
		}

		values, err := requestValues(r)
		if err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		decision, err := s.auth.Decide(values.Get("transaction_id"), values.Get("cancel") != "")
		if err != nil {
			log.Err(err).Msg("consent decision failed")
			http.Error(w, "Authorization transaction not found", http.StatusInternalServerError)
			return
		}

		separator := "?"
		if strings.Contains(decision.RedirectURI, "?") {
			separator = "&"
		}
		redirect := decision.RedirectURI + separator
		if decision.Denied {
			redirect += "error=access_denied"
		} else {
			redirect += "code=" + url.QueryEscape(decision.Code)
		}
		if decision.State != "" {
			redirect += "&state=" + url.QueryEscape(decision.State)
		}
		http.Redirect(w, r, redirect, http.StatusFound)
	}
}

// TokenHandler exchanges a code or refresh token for tokens. Client
// authentication happens first, whether the credentials arrived in a Basic
// header or in the body, and fails the same way for every grant type.
func (s *Server) TokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		values, err := requestValues(r)
		if err != nil {
			writeJSONError(w, "invalid_request", "Failed to parse request body", http.StatusBadRequest)
			return
		}

		creds, ok := auth.ExtractClientCredentials(r, values, s.clientAuth...)
		if !ok {
			w.Header().Set("WWW-Authenticate", `Basic realm="oauth"`)
			writeJSONError(w, "invalid_client", "Client authentication required", http.StatusUnauthorized)
			return
		}

		req := &oauthmodel.TokenRequest{
			GrantType:    oauthmodel.GrantType(values.Get("grant_type")),
			Code:         values.Get("code"),
			RedirectURI:  values.Get("redirect_uri"),
			RefreshToken: values.Get("refresh_token"),
		}

		response, err := s.auth.Token(creds, req)
		if err != nil {
			s.writeTokenError(w, creds, err)
			return
		}

		w.Header().Set("Content-Type", contentTypeJSON)
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Pragma", "no-cache")
		_ = json.NewEncoder(w).Encode(response)
	}
}

func (s *Server) writeTokenError(w http.ResponseWriter, creds *auth.ClientCredentials, err error) {
	var oauthErr *oauthmodel.OAuthError
	if errors.As(err, &oauthErr) {
		writeJSONError(w, oauthErr.Code, oauthErr.Description, oauthErr.Status)
		return
	}

	if errors.Is(err, auth.InvalidClientErr) {
		status := http.StatusForbidden
		if creds.FromBasicAuth {
			w.Header().Set("WWW-Authenticate", `Basic realm="oauth"`)
			status = http.StatusUnauthorized
		}
		writeJSONError(w, "invalid_client", "Client authentication failed", status)
		return
	}

	log.Err(err).Msg("token request failed")
	writeJSONError(w, "server_error", "Token request failed", http.StatusInternalServerError)
}

// writeJSONError writes an OAuth2 error response.
func writeJSONError(w http.ResponseWriter, errorCode, description string, statusCode int) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             errorCode,
		"error_description": description,
	})
}
