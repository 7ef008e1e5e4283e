// Package token mints and verifies signed, time-bounded session tokens.
// Tokens are self-contained; no server-side session table exists and none
// should be introduced. A token stays valid until its embedded expiry.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers malformed structure, bad signature and expiry alike
// so callers cannot leak the reason to the end user.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the assertion carried by a verified token.
type Identity struct {
	AccountID string
	Email     string
}

type claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Issuer signs and verifies session tokens with a single symmetric key.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// New builds an Issuer around an externally provisioned secret and expiry
// policy. The secret is never derived at runtime.
func New(secret []byte, ttl time.Duration) *Issuer {
	return &Issuer{
		secret: secret,
		ttl:    ttl,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Issue produces a signed assertion {sub, email, iat, exp} for the account.
func (i *Issuer) Issue(accountID, email string) (string, error) {
	now := i.now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		Email: email,
	})
	return t.SignedString(i.secret)
}

// Verify checks the signature and expiry and returns the embedded identity.
// Every failure mode surfaces as ErrInvalidToken.
func (i *Issuer) Verify(tokenString string) (Identity, error) {
	var c claims
	t, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !t.Valid || c.Subject == "" {
		return Identity{}, ErrInvalidToken
	}
	return Identity{AccountID: c.Subject, Email: c.Email}, nil
}
