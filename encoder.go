package pwhash

import (
	"context"
	"fmt"
	"time"

	"github.com/kyritz/pwhash/backend"
	"github.com/kyritz/pwhash/legacy"
)

// Encoder hashes credentials with argon2id under fixed cost parameters,
// verifies plaintexts against stored hashes (including bcrypt hashes
// accepted during migration), and reports when a stored hash should be
// regenerated under the current parameters.
//
// An Encoder is immutable after construction and safe to share across
// goroutines without synchronization. Each operation is one blocking,
// CPU- and memory-bound computation with no internal suspension points;
// callers wanting timeouts must wrap calls externally, since a
// memory-hard hash cannot be interrupted mid-computation.
type Encoder struct {
	opsLimit uint32
	memLimit uint64
	backend  backend.Backend
	metrics  *Metrics
	audit    *auditDispatcher
}

// IsSupported reports whether an argon2id backend is available in this
// process. It is queryable before construction, performs no hashing, and
// returns a stable value across calls.
func IsSupported() bool {
	return backend.Supported()
}

// New builds an Encoder over the process-wide default backend. It fails
// fast with [ErrUnsupportedEnvironment] when no backend resolves, and
// with the configuration errors when an explicit cost knob is below its
// floor; construction never defers a failure to first use.
func New(cfg Config) (*Encoder, error) {
	b, ok := backend.Default()
	if !ok {
		return nil, fmt.Errorf("%w: no provider resolved", ErrUnsupportedEnvironment)
	}
	return NewWithBackend(cfg, b)
}

// NewWithBackend builds an Encoder over an explicit backend. Cost
// defaults resolve from that backend's recommended profiles, so tests
// and specialized deployments control the whole capability surface.
func NewWithBackend(cfg Config, b backend.Backend) (*Encoder, error) {
	ops, mem, err := resolveCostParams(cfg, b.Recommended)
	if err != nil {
		return nil, err
	}

	return &Encoder{
		opsLimit: ops,
		memLimit: mem,
		backend:  b,
		metrics:  NewMetrics(cfg.Metrics),
		audit:    newAuditDispatcher(cfg.Audit, cfg.Sink),
	}, nil
}

// Params returns the resolved cost parameters the encoder hashes with.
func (e *Encoder) Params() (opsLimit uint32, memLimit uint64) {
	return e.opsLimit, e.memLimit
}

// BackendName identifies the resolved hashing backend.
func (e *Encoder) BackendName() string {
	return e.backend.Name
}

// MetricsSnapshot returns a point-in-time copy of the encoder's counters.
func (e *Encoder) MetricsSnapshot() MetricsSnapshot {
	return e.metrics.Snapshot()
}

// AuditDropped reports how many audit events were discarded because the
// dispatcher queue was full.
func (e *Encoder) AuditDropped() uint64 {
	return e.audit.Dropped()
}

// Close stops the audit dispatcher after draining queued events. It is a
// no-op when auditing is disabled and safe to call more than once.
func (e *Encoder) Close() {
	e.audit.Close()
}

// Encode hashes plaintext under the encoder's cost parameters and
// returns the self-describing encoded string.
//
// The salt argument exists for interface compatibility with encoders
// that require external salting; this backend self-salts and ignores it.
// Plaintexts longer than [MaxPlaintextLength] fail with
// [ErrInvalidCredentials] before any hashing happens.
func (e *Encoder) Encode(plaintext, salt string) (string, error) {
	_ = salt // self-salting backend

	if len(plaintext) > MaxPlaintextLength {
		e.metrics.Inc(MetricEncodeRejected)
		return "", ErrInvalidCredentials
	}
	if e.backend.Hash == nil {
		return "", fmt.Errorf("%w: hash operation missing", ErrUnsupportedEnvironment)
	}

	start := time.Now()
	encoded, err := e.backend.Hash(plaintext, e.opsLimit, e.memLimit)
	if err != nil {
		return "", err
	}

	e.metrics.Inc(MetricEncodeSuccess)
	e.metrics.Observe(MetricEncodeLatency, time.Since(start))

	return encoded, nil
}

// Verify reports whether plaintext matches encoded.
//
// Verify is a total predicate over well-formed inputs: oversized
// plaintexts, malformed stored hashes, and mismatches all report false
// rather than erroring, since this runs on the authentication hot path
// against adversarial input. The only error condition is a backend with
// no verify operation. The salt argument is ignored.
//
// Stored bcrypt hashes are answered by the legacy verifier when the
// plaintext fits inside bcrypt's 72-byte input ceiling; the primary
// backend is bypassed entirely on that path.
func (e *Encoder) Verify(encoded, plaintext, salt string) (bool, error) {
	_ = salt

	if len(plaintext) > MaxPlaintextLength {
		e.metrics.Inc(MetricVerifyRejected)
		return false, nil
	}

	if len(plaintext) <= legacy.MaxPasswordLength && legacy.Match(encoded) {
		ok := legacy.Verify(encoded, plaintext)
		if ok {
			e.metrics.Inc(MetricLegacyVerifySuccess)
		} else {
			e.metrics.Inc(MetricLegacyVerifyFailure)
		}
		e.audit.Emit(context.Background(), newAuditEvent(EventLegacyVerify, "bcrypt", ok))
		return ok, nil
	}

	if e.backend.Verify == nil {
		return false, fmt.Errorf("%w: verify operation missing", ErrUnsupportedEnvironment)
	}

	ok, err := e.backend.Verify(encoded, plaintext)
	if err != nil {
		// A stored hash the backend cannot parse is a mismatch, not a
		// caller-visible failure.
		e.metrics.Inc(MetricVerifyFailure)
		return false, nil
	}

	if ok {
		e.metrics.Inc(MetricVerifySuccess)
	} else {
		e.metrics.Inc(MetricVerifyFailure)
	}

	return ok, nil
}

// NeedsRehash reports whether encoded was produced under cost parameters
// different from the encoder's current ones and should be regenerated on
// the next successful verification. There is no legacy special case:
// bcrypt hashes report true through the backend's foreign-format rule.
func (e *Encoder) NeedsRehash(encoded string) (bool, error) {
	if e.backend.NeedsRehash == nil {
		return false, fmt.Errorf("%w: needs-rehash operation missing", ErrUnsupportedEnvironment)
	}

	stale, err := e.backend.NeedsRehash(encoded, e.opsLimit, e.memLimit)
	if err != nil {
		return false, err
	}

	if stale {
		e.metrics.Inc(MetricRehashNeeded)
		e.audit.Emit(context.Background(), newAuditEvent(EventRehashNeeded, e.backend.Name, true))
	} else {
		e.metrics.Inc(MetricRehashCurrent)
	}

	return stale, nil
}
