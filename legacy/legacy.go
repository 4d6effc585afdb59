// Package legacy verifies bcrypt hashes accepted during migration to
// argon2id.
//
// The encoder consults this package only when a stored hash carries the
// bcrypt format signature and the candidate plaintext fits inside
// bcrypt's own 72-byte input ceiling. It exists so credentials hashed
// before the migration keep authenticating without a forced reset.
//
// # What this package must NOT do
//
//   - Produce new bcrypt hashes; new credentials are argon2id only.
//   - Decide when the legacy path applies; the encoder owns that branch.
package legacy

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	// Signature is the two-character prefix shared by all bcrypt hash
	// variants ($2a$, $2b$, $2y$, ...).
	Signature = "$2"

	// MaxPasswordLength is bcrypt's input ceiling. The algorithm
	// truncates longer inputs, so verification beyond this length can
	// never match what originally produced the hash.
	MaxPasswordLength = 72
)

// Match reports whether encoded carries the bcrypt format signature.
func Match(encoded string) bool {
	return strings.HasPrefix(encoded, Signature)
}

// Verify reports whether plaintext matches the bcrypt hash. Malformed
// hashes and mismatches both report false; verification never errors.
func Verify(encoded, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(plaintext)) == nil
}
