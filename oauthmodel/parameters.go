package oauthmodel

import "net/url"

// ResponseType is the requested authorization response type.
type ResponseType string

const ResponseTypeCode ResponseType = "code"

// AuthorizationParameters are the query parameters of an authorization
// request. They travel with the pending request until a transaction exists.
type AuthorizationParameters struct {
	ResponseType ResponseType
	ClientID     string
	RedirectURI  string
	State        string
}

// ParseAuthorizationParameters extracts authorization parameters from a
// query string.
func ParseAuthorizationParameters(query url.Values) *AuthorizationParameters {
	return &AuthorizationParameters{
		ResponseType: ResponseType(query.Get("response_type")),
		ClientID:     query.Get("client_id"),
		RedirectURI:  query.Get("redirect_uri"),
		State:        query.Get("state"),
	}
}
