package sessions_test

import (
	"testing"
	"time"

	"github.com/catalystauth/go-oauth-server/sessions"
	"github.com/stretchr/testify/require"
)

func TestEnsureAllocatesAndKeepsSession(t *testing.T) {
	repo := sessions.NewInMemoryRepo(time.Hour)

	sid, isNew, err := repo.Ensure("")
	require.NoError(t, err)
	require.True(t, isNew)
	require.NotEmpty(t, sid)

	again, isNew, err := repo.Ensure(sid)
	require.NoError(t, err)
	require.False(t, isNew)
	require.Equal(t, sid, again)
}

func TestEnsureReplacesStaleSID(t *testing.T) {
	repo := sessions.NewInMemoryRepo(time.Hour)

	sid, isNew, err := repo.Ensure("no-such-session")
	require.NoError(t, err)
	require.True(t, isNew)
	require.NotEqual(t, "no-such-session", sid)
}

func TestAuthenticateBindsPrincipal(t *testing.T) {
	repo := sessions.NewInMemoryRepo(time.Hour)

	sid, _, err := repo.Ensure("")
	require.NoError(t, err)

	principal, err := repo.Principal(sid)
	require.NoError(t, err)
	require.Empty(t, principal)

	require.NoError(t, repo.Authenticate(sid, "user-1"))

	principal, err = repo.Principal(sid)
	require.NoError(t, err)
	require.Equal(t, "user-1", principal)
}

func TestAuthenticateUnknownSession(t *testing.T) {
	repo := sessions.NewInMemoryRepo(time.Hour)

	err := repo.Authenticate("missing", "user-1")
	require.ErrorIs(t, err, sessions.SessionNotFoundErr)
}

func TestSessionExpiry(t *testing.T) {
	now := time.Now()
	repo := sessions.NewInMemoryRepo(time.Hour, sessions.WithNowTime(func() time.Time { return now }))

	sid, _, err := repo.Ensure("")
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)

	_, err = repo.Principal(sid)
	require.ErrorIs(t, err, sessions.SessionNotFoundErr)

	fresh, isNew, err := repo.Ensure(sid)
	require.NoError(t, err)
	require.True(t, isNew)
	require.NotEqual(t, sid, fresh)
}
