package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindscript/internal/repository/memory"
	"mindscript/internal/service"
	"mindscript/internal/token"
)

func newAccountService(t *testing.T) (service.AccountService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	issuer := token.New([]byte("test-secret"), time.Hour)
	return service.NewAccountService(store, issuer), store
}

func TestRegisterAndLookup(t *testing.T) {
	ctx := context.Background()
	accounts, store := newAccountService(t)

	tok, account, err := accounts.Register(ctx, "a@x.com", "password1")
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	require.NotEmpty(t, account.ID)
	assert.Equal(t, "a@x.com", account.Email)
	assert.Empty(t, account.PasswordHash, "hash must not leave the service layer")

	stored, err := store.FindAccountByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, account.ID, stored.ID)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "password1", stored.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	accounts, _ := newAccountService(t)

	_, _, err := accounts.Register(ctx, "a@x.com", "password1")
	require.NoError(t, err)

	tok, account, err := accounts.Register(ctx, "A@X.com ", "password2")
	assert.ErrorIs(t, err, service.ErrEmailTaken)
	assert.Empty(t, tok, "no token may be issued when persistence fails")
	assert.Nil(t, account)
}

func TestLoginCaseInsensitiveEmail(t *testing.T) {
	ctx := context.Background()
	accounts, _ := newAccountService(t)

	_, registered, err := accounts.Register(ctx, "a@x.com", "password1")
	require.NoError(t, err)

	tok, account, err := accounts.Login(ctx, "A@X.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, account.ID)

	identified, err := accounts.Identify(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, identified.ID)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	accounts, _ := newAccountService(t)

	_, _, err := accounts.Register(ctx, "a@x.com", "password1")
	require.NoError(t, err)

	_, _, wrongPassword := accounts.Login(ctx, "a@x.com", "password2")
	_, _, unknownEmail := accounts.Login(ctx, "b@x.com", "password1")

	assert.ErrorIs(t, wrongPassword, service.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, service.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestIdentifyRejectsBadTokens(t *testing.T) {
	ctx := context.Background()
	accounts, _ := newAccountService(t)

	_, err := accounts.Identify(ctx, "not-a-token")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestIdentifyAfterAccountRemoved(t *testing.T) {
	ctx := context.Background()
	accounts, store := newAccountService(t)

	tok, account, err := accounts.Register(ctx, "a@x.com", "password1")
	require.NoError(t, err)

	removed, err := store.DeleteAccount(ctx, account.ID)
	require.NoError(t, err)
	require.True(t, removed)

	// The token still verifies (stateless, no revocation) but the account is
	// re-resolved and gone.
	_, err = accounts.Identify(ctx, tok)
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestTokenOutlivesLogout(t *testing.T) {
	// There is no server-side revocation: discarding a token is purely a
	// client act, so a retained copy keeps working until expiry.
	ctx := context.Background()
	accounts, _ := newAccountService(t)

	tok, account, err := accounts.Register(ctx, "a@x.com", "password1")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		identified, err := accounts.Identify(ctx, tok)
		require.NoError(t, err)
		assert.Equal(t, account.ID, identified.ID)
	}
}
