package oauthmodel

import "net/http"

// OAuthError is a structured grant failure, rendered as the standard
// {"error": ..., "error_description": ...} JSON body with its HTTP status.
type OAuthError struct {
	Code        string `json:"error"`
	Description string `json:"error_description"`
	Status      int    `json:"-"`
}

func (e *OAuthError) Error() string {
	return e.Code + ": " + e.Description
}

var (
	// InvalidAuthorizationCodeErr covers unknown, expired, replayed and
	// wrongly-bound authorization codes alike; the client learns nothing
	// about which it was.
	InvalidAuthorizationCodeErr = &OAuthError{
		Code:        "invalid_grant",
		Description: "Invalid authorization code",
		Status:      http.StatusForbidden,
	}

	// InvalidRefreshTokenErr covers unknown and rotated-away refresh tokens.
	InvalidRefreshTokenErr = &OAuthError{
		Code:        "invalid_grant",
		Description: "Invalid refresh token",
		Status:      http.StatusForbidden,
	}

	UnsupportedGrantTypeErr = &OAuthError{
		Code:        "unsupported_grant_type",
		Description: "Unsupported grant type",
		Status:      http.StatusBadRequest,
	}
)
