package oauthmodel

// GrantType is the /token grant being requested.
type GrantType string

const (
	GrantTypeAuthorizationCode GrantType = "authorization_code"
	GrantTypeRefreshToken      GrantType = "refresh_token"
)

// TokenRequest carries the grant parameters of a /token call. Client
// credentials are handled separately (they may arrive in the Authorization
// header rather than the body).
type TokenRequest struct {
	GrantType    GrantType
	Code         string
	RedirectURI  string
	RefreshToken string
}
