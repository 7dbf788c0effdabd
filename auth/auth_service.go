package auth

import (
	"github.com/catalystauth/go-oauth-server/clients"
	"github.com/catalystauth/go-oauth-server/codes"
	"github.com/catalystauth/go-oauth-server/oauthmodel"
	"github.com/catalystauth/go-oauth-server/sessions"
	"github.com/catalystauth/go-oauth-server/token"
	"github.com/catalystauth/go-oauth-server/transactions"
	"github.com/catalystauth/go-oauth-server/users"
	"github.com/pkg/errors"
)

// Repos holds all store dependencies for the AuthorizationService.
type Repos struct {
	Users        users.UserRepo    // Credential verifier collaborator
	Clients      clients.Repo      // Registered-client directory collaborator
	Sessions     sessions.Repo     // Browser session state
	Transactions transactions.Repo // Pending consent decisions
	Codes        codes.Repo        // Issued authorization codes
}

// AuthorizationService orchestrates the authorization-code grant: it drives
// each interaction through NEED_LOGIN -> NEED_CONSENT -> GRANTED/DENIED and
// owns the token lifecycle on the back channel.
type AuthorizationService struct {
	repos  Repos
	tokens token.Store
}

// NewAuthorizationService initializes a new AuthorizationService with
// required dependencies.
func NewAuthorizationService(repos Repos, tokens token.Store) (*AuthorizationService, error) {
	if repos.Users == nil {
		return nil, errors.New("[NewAuthorizationService] Users repo is required")
	}
	if repos.Clients == nil {
		return nil, errors.New("[NewAuthorizationService] Clients repo is required")
	}
	if repos.Sessions == nil {
		return nil, errors.New("[NewAuthorizationService] Sessions repo is required")
	}
	if repos.Transactions == nil {
		return nil, errors.New("[NewAuthorizationService] Transactions repo is required")
	}
	if repos.Codes == nil {
		return nil, errors.New("[NewAuthorizationService] Codes repo is required")
	}
	if tokens == nil {
		return nil, errors.New("[NewAuthorizationService] token store is required")
	}

	return &AuthorizationService{
		repos:  repos,
		tokens: tokens,
	}, nil
}

// Authorize advances the front-channel state machine for an authorization
// request on an established session. An unauthenticated session fails with
// NotAuthenticatedErr so the caller can challenge for login; client identity
// is deliberately not validated before that point. Otherwise a brand-new
// transaction is begun, superseding any pending one for the session.
func (as *AuthorizationService) Authorize(sid string, params *oauthmodel.AuthorizationParameters) (*transactions.Transaction, error) {
	principal, err := as.repos.Sessions.Principal(sid)
	if err != nil {
		return nil, errors.Wrap(err, "[Authorize] Sessions.Principal")
	}
	if principal == "" {
		return nil, NotAuthenticatedErr
	}

	client, err := as.repos.Clients.Get(params.ClientID)
	if err != nil {
		return nil, errors.Wrap(UnknownClientErr, params.ClientID)
	}
	if params.ResponseType != oauthmodel.ResponseTypeCode {
		return nil, errors.Wrap(UnsupportedResponseTypeErr, string(params.ResponseType))
	}
	if !client.HasRedirectURI(params.RedirectURI) {
		return nil, errors.Wrap(RedirectURIMismatchErr, params.RedirectURI)
	}

	txn, err := as.repos.Transactions.Begin(sid, client.ID, params.RedirectURI, string(params.ResponseType), params.State)
	if err != nil {
		return nil, errors.Wrap(err, "[Authorize] Transactions.Begin")
	}
	return txn, nil
}

// Login verifies the user's credentials and binds the principal to the
// session. Bad credentials are recoverable: the caller redisplays the login
// prompt.
func (as *AuthorizationService) Login(sid, username, password string) error {
	user, err := as.repos.Users.GetByEmail(username)
	if err != nil {
		return errors.Wrap(InvalidCredentialsErr, "[Login] unknown user")
	}
	if user.Blocked {
		return errors.Wrap(InvalidCredentialsErr, "[Login] user blocked")
	}
	if !users.CheckPasswordHash(password, user.PasswordHash) {
		return errors.Wrap(InvalidCredentialsErr, "[Login] password mismatch")
	}

	if err := as.repos.Sessions.Authenticate(sid, user.ID); err != nil {
		return errors.Wrap(err, "[Login] Sessions.Authenticate")
	}
	return nil
}

// Decision is the outcome of a consumed transaction: either a grant carrying
// a fresh authorization code, or a denial. Both redirect back to the client.
type Decision struct {
	RedirectURI string
	State       string
	Code        string
	Denied      bool
}

// Decide consumes the transaction and resolves the user's consent decision.
// A transaction id with no pending record fails with TransactionNotFoundErr;
// there is no safe redirect target in that case, so callers surface it as a
// server error rather than a friendly redirect.
func (as *AuthorizationService) Decide(transactionID string, deny bool) (*Decision, error) {
	txn, err := as.repos.Transactions.Consume(transactionID)
	if err != nil {
		return nil, errors.Wrap(err, "[Decide] Transactions.Consume")
	}

	if deny {
		return &Decision{RedirectURI: txn.RedirectURI, State: txn.State, Denied: true}, nil
	}

	principal, err := as.repos.Sessions.Principal(txn.SessionID)
	if err != nil {
		return nil, errors.Wrap(err, "[Decide] Sessions.Principal")
	}
	if principal == "" {
		return nil, errors.Wrap(NotAuthenticatedErr, "[Decide] transaction session")
	}

	code, err := as.repos.Codes.Issue(principal, txn.ClientID, txn.RedirectURI, txn.State)
	if err != nil {
		return nil, errors.Wrap(err, "[Decide] Codes.Issue")
	}
	return &Decision{RedirectURI: txn.RedirectURI, State: txn.State, Code: code}, nil
}

// Token handles the back-channel /token request. Client authentication
// always happens before grant dispatch and fails identically for every
// grant type.
func (as *AuthorizationService) Token(creds *ClientCredentials, req *oauthmodel.TokenRequest) (*oauthmodel.TokenResponse, error) {
	if creds == nil {
		return nil, errors.Wrap(InvalidClientErr, "[Token] no credentials")
	}
	client, err := as.repos.Clients.Get(creds.ID)
	if err != nil {
		return nil, errors.Wrap(InvalidClientErr, "[Token] unknown client")
	}
	if client.Secret != creds.Secret {
		return nil, errors.Wrap(InvalidClientErr, "[Token] secret mismatch")
	}

	switch req.GrantType {
	case oauthmodel.GrantTypeAuthorizationCode:
		return as.exchangeCode(client, req)
	case oauthmodel.GrantTypeRefreshToken:
		return as.rotateRefresh(client, req)
	default:
		return nil, oauthmodel.UnsupportedGrantTypeErr
	}
}

// ValidateBearer resolves an access token to its principal for
// bearer-protected endpoints.
func (as *AuthorizationService) ValidateBearer(accessToken string) (string, error) {
	principal, err := as.tokens.ValidateAccess(accessToken)
	if err != nil {
		return "", errors.Wrap(err, "[ValidateBearer] tokens.ValidateAccess")
	}
	return principal, nil
}

func (as *AuthorizationService) exchangeCode(client *clients.Client, req *oauthmodel.TokenRequest) (*oauthmodel.TokenResponse, error) {
	record, err := as.repos.Codes.Redeem(req.Code)
	if err != nil {
		return nil, oauthmodel.InvalidAuthorizationCodeErr
	}

	// Redeem already consumed the code, so a mismatched-but-authenticated
	// client burns it: replayed codes must die even when the replayer holds
	// valid credentials.
	if record.ClientID != client.ID || record.RedirectURI != req.RedirectURI {
		return nil, oauthmodel.InvalidAuthorizationCodeErr
	}

	pair, err := as.tokens.IssueInitial(record.Principal, client.ID)
	if err != nil {
		return nil, errors.Wrap(err, "[exchangeCode] tokens.IssueInitial")
	}
	return tokenResponse(pair), nil
}

func (as *AuthorizationService) rotateRefresh(client *clients.Client, req *oauthmodel.TokenRequest) (*oauthmodel.TokenResponse, error) {
	pair, err := as.tokens.RotateByRefresh(req.RefreshToken, client.ID)
	if err != nil {
		if errors.Is(err, token.InvalidRefreshTokenErr) {
			return nil, oauthmodel.InvalidRefreshTokenErr
		}
		return nil, errors.Wrap(err, "[rotateRefresh] tokens.RotateByRefresh")
	}
	return tokenResponse(pair), nil
}

func tokenResponse(pair *token.Pair) *oauthmodel.TokenResponse {
	return &oauthmodel.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
		TokenType:    oauthmodel.TokenTypeBearer,
	}
}
