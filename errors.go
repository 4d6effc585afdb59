package pwhash

import "errors"

var (
	// ErrInvalidOpsLimit rejects a configured operations cost below the
	// minimum the policy accepts.
	ErrInvalidOpsLimit = errors.New("ops limit must be at least 2")
	// ErrInvalidMemLimit rejects a configured memory cost below 10 KiB.
	ErrInvalidMemLimit = errors.New("memory limit must be at least 10 KiB")
	// ErrUnsupportedEnvironment reports that no argon2id backend (or a
	// specific required backend operation) is available in this process.
	ErrUnsupportedEnvironment = errors.New("argon2id backend unavailable")
	// ErrInvalidCredentials rejects an unencodable credential. The message
	// is deliberately generic and never discloses length bounds or any
	// other property of the rejected input.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
