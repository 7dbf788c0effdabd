package auth_test

import (
	"testing"
	"time"

	"github.com/catalystauth/go-oauth-server/auth"
	"github.com/catalystauth/go-oauth-server/clients"
	"github.com/catalystauth/go-oauth-server/codes"
	"github.com/catalystauth/go-oauth-server/oauthmodel"
	"github.com/catalystauth/go-oauth-server/sessions"
	"github.com/catalystauth/go-oauth-server/token"
	"github.com/catalystauth/go-oauth-server/transactions"
	"github.com/catalystauth/go-oauth-server/users"
	"github.com/catalystauth/go-oauth-server/users/repofake"
	"github.com/stretchr/testify/require"
)

const (
	testClientID     = "test-client-1"
	testClientSecret = "test-secret-1"
	testUserID       = "user-1"
	testUserEmail    = "john.doe@example.com"
	testUserPassword = "password123"
	testRedirectURI  = "http://localhost:3000/callback"
	testState        = "random-state-value"
)

// testFixture holds all test dependencies.
type testFixture struct {
	userRepo   users.UserRepo
	clientRepo clients.Repo
	tokens     token.Store
	service    *auth.AuthorizationService
	sessions   sessions.Repo
}

// setupTestFixture creates a new test fixture with all dependencies.
func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	ur := repofake.NewFakeUserRepo()
	cr := clients.NewInMemoryRepo()
	sr := sessions.NewInMemoryRepo(time.Hour)
	tokens := token.NewInMemoryStore(time.Hour)

	repos := auth.Repos{
		Users:        ur,
		Clients:      cr,
		Sessions:     sr,
		Transactions: transactions.NewInMemoryRepo(),
		Codes:        codes.NewInMemoryRepo(10 * time.Minute),
	}

	service, err := auth.NewAuthorizationService(repos, tokens)
	require.NoError(t, err)

	f := &testFixture{
		userRepo:   ur,
		clientRepo: cr,
		tokens:     tokens,
		service:    service,
		sessions:   sr,
	}
	f.createTestUser(t, testUserID, testUserEmail, testUserPassword)
	f.createTestClient(t, testClientID, testClientSecret, testRedirectURI)
	return f
}

func (f *testFixture) createTestUser(t *testing.T, id, email, password string) {
	t.Helper()

	passwordHash, err := users.HashPassword(password)
	require.NoError(t, err)
	require.NoError(t, f.userRepo.Upsert(&users.User{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		DateJoined:   time.Now(),
	}))
}

func (f *testFixture) createTestClient(t *testing.T, id, secret, redirectURI string) {
	t.Helper()

	require.NoError(t, f.clientRepo.Upsert(&clients.Client{
		ID:           id,
		Name:         id,
		Secret:       secret,
		RedirectURIs: []string{redirectURI},
	}))
}

// newAuthenticatedSession establishes a session and logs the test user in.
func (f *testFixture) newAuthenticatedSession(t *testing.T) string {
	t.Helper()

	sid, _, err := f.sessions.Ensure("")
	require.NoError(t, err)
	require.NoError(t, f.service.Login(sid, testUserEmail, testUserPassword))
	return sid
}

func authorizeParams(state string) *oauthmodel.AuthorizationParameters {
	return &oauthmodel.AuthorizationParameters{
		ResponseType: oauthmodel.ResponseTypeCode,
		ClientID:     testClientID,
		RedirectURI:  testRedirectURI,
		State:        state,
	}
}

func clientCreds() *auth.ClientCredentials {
	return &auth.ClientCredentials{ID: testClientID, Secret: testClientSecret}
}

// grantCode runs authorize+consent for an authenticated session and returns
// the issued code.
func (f *testFixture) grantCode(t *testing.T, sid, state string) string {
	t.Helper()

	txn, err := f.service.Authorize(sid, authorizeParams(state))
	require.NoError(t, err)
	decision, err := f.service.Decide(txn.ID, false)
	require.NoError(t, err)
	require.False(t, decision.Denied)
	require.NotEmpty(t, decision.Code)
	return decision.Code
}

func TestAuthorizeRequiresLogin(t *testing.T) {
	f := setupTestFixture(t)

	sid, _, err := f.sessions.Ensure("")
	require.NoError(t, err)

	_, err = f.service.Authorize(sid, authorizeParams(""))
	require.ErrorIs(t, err, auth.NotAuthenticatedErr)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := setupTestFixture(t)

	sid, _, err := f.sessions.Ensure("")
	require.NoError(t, err)

	err = f.service.Login(sid, testUserEmail, "wrong-password")
	require.ErrorIs(t, err, auth.InvalidCredentialsErr)

	err = f.service.Login(sid, "nobody@example.com", testUserPassword)
	require.ErrorIs(t, err, auth.InvalidCredentialsErr)

	// The session stays anonymous after failed attempts.
	principal, err := f.sessions.Principal(sid)
	require.NoError(t, err)
	require.Empty(t, principal)
}

func TestAuthorizeValidatesClient(t *testing.T) {
	f := setupTestFixture(t)
	sid := f.newAuthenticatedSession(t)

	params := authorizeParams("")
	params.ClientID = "XXX"
	_, err := f.service.Authorize(sid, params)
	require.ErrorIs(t, err, auth.UnknownClientErr)

	params = authorizeParams("")
	params.RedirectURI = "http://evil.example.com/"
	_, err = f.service.Authorize(sid, params)
	require.ErrorIs(t, err, auth.RedirectURIMismatchErr)

	params = authorizeParams("")
	params.ResponseType = "token"
	_, err = f.service.Authorize(sid, params)
	require.ErrorIs(t, err, auth.UnsupportedResponseTypeErr)
}

func TestAuthorizeIssuesFreshTransactions(t *testing.T) {
	f := setupTestFixture(t)
	sid := f.newAuthenticatedSession(t)

	first, err := f.service.Authorize(sid, authorizeParams(""))
	require.NoError(t, err)
	second, err := f.service.Authorize(sid, authorizeParams(""))
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	// The superseded transaction can no longer be consumed.
	_, err = f.service.Decide(first.ID, false)
	require.ErrorIs(t, err, transactions.TransactionNotFoundErr)
}

func TestDecideDenyRedirectsWithState(t *testing.T) {
	f := setupTestFixture(t)
	sid := f.newAuthenticatedSession(t)

	txn, err := f.service.Authorize(sid, authorizeParams(testState))
	require.NoError(t, err)

	decision, err := f.service.Decide(txn.ID, true)
	require.NoError(t, err)
	require.True(t, decision.Denied)
	require.Equal(t, testRedirectURI, decision.RedirectURI)
	require.Equal(t, testState, decision.State)
	require.Empty(t, decision.Code)

	// A consumed transaction id can never be presented again.
	_, err = f.service.Decide(txn.ID, false)
	require.ErrorIs(t, err, transactions.TransactionNotFoundErr)
}

func TestCodeExchange(t *testing.T) {
	f := setupTestFixture(t)
	sid := f.newAuthenticatedSession(t)
	code := f.grantCode(t, sid, testState)

	response, err := f.service.Token(clientCreds(), &oauthmodel.TokenRequest{
		GrantType:   oauthmodel.GrantTypeAuthorizationCode,
		Code:        code,
		RedirectURI: testRedirectURI,
	})
	require.NoError(t, err)
	require.NotEmpty(t, response.AccessToken)
	require.NotEmpty(t, response.RefreshToken)
	require.Equal(t, oauthmodel.TokenTypeBearer, response.TokenType)
	require.Greater(t, response.ExpiresIn, int64(0))

	principal, err := f.service.ValidateBearer(response.AccessToken)
	require.NoError(t, err)
	require.Equal(t, testUserID, principal)

	// One use only.
	_, err = f.service.Token(clientCreds(), &oauthmodel.TokenRequest{
		GrantType:   oauthmodel.GrantTypeAuthorizationCode,
		Code:        code,
		RedirectURI: testRedirectURI,
	})
	require.ErrorIs(t, err, oauthmodel.InvalidAuthorizationCodeErr)
}

func TestCodeExchangeClientAuthFailures(t *testing.T) {
	f := setupTestFixture(t)
	sid := f.newAuthenticatedSession(t)
	code := f.grantCode(t, sid, "")

	req := &oauthmodel.TokenRequest{
		GrantType:   oauthmodel.GrantTypeAuthorizationCode,
		Code:        code,
		RedirectURI: testRedirectURI,
	}

	_, err := f.service.Token(&auth.ClientCredentials{ID: testClientID, Secret: "wrong"}, req)
	require.ErrorIs(t, err, auth.InvalidClientErr)
	_, err = f.service.Token(&auth.ClientCredentials{ID: "nobody", Secret: testClientSecret}, req)
	require.ErrorIs(t, err, auth.InvalidClientErr)

	// Client auth failures never touch the code; it is still redeemable.
	_, err = f.service.Token(clientCreds(), req)
	require.NoError(t, err)
}

func TestMismatchedClientBurnsCode(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestClient(t, "other-client", "other-secret", testRedirectURI)
	sid := f.newAuthenticatedSession(t)
	code := f.grantCode(t, sid, "")

	// A different-but-authenticated client cannot redeem the code, and the
	// attempt consumes it.
	_, err := f.service.Token(&auth.ClientCredentials{ID: "other-client", Secret: "other-secret"}, &oauthmodel.TokenRequest{
		GrantType:   oauthmodel.GrantTypeAuthorizationCode,
		Code:        code,
		RedirectURI: testRedirectURI,
	})
	require.ErrorIs(t, err, oauthmodel.InvalidAuthorizationCodeErr)

	_, err = f.service.Token(clientCreds(), &oauthmodel.TokenRequest{
		GrantType:   oauthmodel.GrantTypeAuthorizationCode,
		Code:        code,
		RedirectURI: testRedirectURI,
	})
	require.ErrorIs(t, err, oauthmodel.InvalidAuthorizationCodeErr)
}

func TestCodeExchangeRedirectURIMismatch(t *testing.T) {
	f := setupTestFixture(t)
	sid := f.newAuthenticatedSession(t)
	code := f.grantCode(t, sid, "")

	_, err := f.service.Token(clientCreds(), &oauthmodel.TokenRequest{
		GrantType:   oauthmodel.GrantTypeAuthorizationCode,
		Code:        code,
		RedirectURI: "http://localhost:3000/other",
	})
	require.ErrorIs(t, err, oauthmodel.InvalidAuthorizationCodeErr)
}

func TestRefreshRotation(t *testing.T) {
	f := setupTestFixture(t)
	sid := f.newAuthenticatedSession(t)
	code := f.grantCode(t, sid, "")

	initial, err := f.service.Token(clientCreds(), &oauthmodel.TokenRequest{
		GrantType:   oauthmodel.GrantTypeAuthorizationCode,
		Code:        code,
		RedirectURI: testRedirectURI,
	})
	require.NoError(t, err)

	rotated, err := f.service.Token(clientCreds(), &oauthmodel.TokenRequest{
		GrantType:    oauthmodel.GrantTypeRefreshToken,
		RefreshToken: initial.RefreshToken,
	})
	require.NoError(t, err)
	require.NotEqual(t, initial.AccessToken, rotated.AccessToken)
	require.NotEqual(t, initial.RefreshToken, rotated.RefreshToken)

	// The rotated-away refresh token is dead, and so is its access token.
	_, err = f.service.Token(clientCreds(), &oauthmodel.TokenRequest{
		GrantType:    oauthmodel.GrantTypeRefreshToken,
		RefreshToken: initial.RefreshToken,
	})
	require.ErrorIs(t, err, oauthmodel.InvalidRefreshTokenErr)
	_, err = f.service.ValidateBearer(initial.AccessToken)
	require.Error(t, err)

	_, err = f.service.ValidateBearer(rotated.AccessToken)
	require.NoError(t, err)
}

func TestUnsupportedGrantType(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.service.Token(clientCreds(), &oauthmodel.TokenRequest{GrantType: "client_credentials"})
	require.ErrorIs(t, err, oauthmodel.UnsupportedGrantTypeErr)
}
