package token

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	issuer := New([]byte("test-secret"), time.Hour)

	tok, err := issuer.Issue("account-1", "a@x.com")
	require.NoError(t, err)

	identity, err := issuer.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "account-1", identity.AccountID)
	assert.Equal(t, "a@x.com", identity.Email)
}

func TestVerifyExpired(t *testing.T) {
	issuer := New([]byte("test-secret"), -time.Second)

	tok, err := issuer.Issue("account-1", "a@x.com")
	require.NoError(t, err)

	_, err = issuer.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTamperedSignature(t *testing.T) {
	issuer := New([]byte("test-secret"), time.Hour)

	tok, err := issuer.Issue("account-1", "a@x.com")
	require.NoError(t, err)

	// Alter a single character of the signature segment.
	dot := strings.LastIndex(tok, ".")
	require.Positive(t, dot)
	sig := []byte(tok[dot+1:])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}

	_, err = issuer.Verify(tok[:dot+1] + string(sig))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTamperedClaims(t *testing.T) {
	issuer := New([]byte("test-secret"), time.Hour)

	tok, err := issuer.Issue("account-1", "a@x.com")
	require.NoError(t, err)

	other, err := issuer.Issue("account-2", "b@x.com")
	require.NoError(t, err)

	// Claims from one token with the signature of another.
	parts := strings.Split(tok, ".")
	otherParts := strings.Split(other, ".")
	require.Len(t, parts, 3)
	require.Len(t, otherParts, 3)

	_, err = issuer.Verify(parts[0] + "." + otherParts[1] + "." + parts[2])
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	tok, err := New([]byte("right-secret"), time.Hour).Issue("account-1", "a@x.com")
	require.NoError(t, err)

	_, err = New([]byte("wrong-secret"), time.Hour).Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyMalformed(t *testing.T) {
	issuer := New([]byte("test-secret"), time.Hour)

	for _, tok := range []string{"", "garbage", "not.a.jwt"} {
		_, err := issuer.Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}
