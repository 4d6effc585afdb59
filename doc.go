// Package pwhash is a password-encoding policy layer over argon2id, with
// bcrypt compatibility for verification during migration windows.
//
// The package turns plaintext credentials into self-describing hash
// strings, verifies plaintexts against stored hashes, and reports when a
// stored hash should be regenerated under raised cost parameters. The
// hashing primitive itself is an external capability resolved at
// construction time through the backend package.
//
// An [Encoder] is immutable after construction and safe to call from
// multiple goroutines. [IsSupported] answers capability questions before
// any encoder exists.
//
// # Architecture boundaries
//
// pwhash is the public surface. It exposes [Encoder], [Config], the
// sentinel errors, and the metrics and audit value types. Capability
// resolution lives in backend, bcrypt compatibility in legacy, and PHC
// string handling under internal/ where it is never exported.
//
// # What this package must NOT do
//
//   - Store or retrieve hashes; callers own persistence of the encoded
//     strings.
//   - Evaluate password strength or any credential policy beyond the
//     input length bound.
//   - Log or emit plaintext or hash material; audit events carry outcome
//     metadata only.
//
// # Performance contract
//
// Verify is the hot path. Its pre-backend work (length guard, legacy
// signature check) must stay allocation-free; the memory-hard cost of
// the backend call itself is the configured, intentional expense. Cost
// parameters are validated at construction so no per-call validation is
// ever needed.
package pwhash
