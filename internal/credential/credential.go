// Package credential hashes and verifies account passwords.
package credential

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// cost is fixed; roughly 100ms per hash on commodity hardware. Length policy
// for plaintexts is the caller's concern, not enforced here.
const cost = 12

// Hash produces a salted one-way digest of plaintext.
func Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest. The comparison does not
// leak which byte position first differed. Malformed digests verify false
// rather than erroring.
func Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
