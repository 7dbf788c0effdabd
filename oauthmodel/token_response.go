package oauthmodel

// TokenResponse is the JSON body of a successful /token call.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

const TokenTypeBearer = "Bearer"
