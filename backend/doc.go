// Package backend resolves the argon2id hashing capability used by the
// encoder.
//
// A [Backend] is a value of optional operation handles rather than an
// interface: each of Hash, Verify, and NeedsRehash may be independently
// absent (nil), and callers must check the handle they need. This keeps
// partial deployments detectable per operation and lets tests substitute
// a backend exposing a controlled subset of operations.
//
// Two providers ship with this package. The native provider derives keys
// with golang.org/x/crypto/argon2 directly; the fallback provider wraps
// github.com/alexedwards/argon2id and is consulted only when the native
// provider does not report availability. Both produce interchangeable
// PHC-format strings, so hashes created under one provider verify under
// the other.
//
// # What this package must NOT do
//
//   - Enforce policy (length bounds, parameter floors); that is the
//     encoder's job.
//   - Perform any hashing during availability probes.
//   - Import the root pwhash package (no import cycles).
package backend
