package pwhash

import "github.com/kyritz/pwhash/backend"

const (
	// MinOpsLimit is the lowest operations cost the encoder accepts.
	MinOpsLimit uint32 = 2
	// MinMemLimit is the lowest memory cost the encoder accepts, in bytes.
	MinMemLimit uint64 = 10 * 1024
	// MaxPlaintextLength is the longest credential, in bytes, the encoder
	// will hash or verify. Longer inputs are rejected before any hashing
	// so oversized requests cannot consume memory-hard work.
	MaxPlaintextLength = 4096
)

// Default cost floors. When no explicit cost is configured, the encoder
// takes the greater of these floors and the values the resolved backend
// recommends for its moderate/interactive profiles.
const (
	defaultOpsFloor uint32 = 6
	defaultMemFloor uint64 = 64 * 1024 * 1024
)

/*
====================================
ENCODER CONFIG
====================================
*/

// Config carries encoder construction parameters.
//
// Config instances are intended to be configured during initialization
// and then treated as immutable. A zero OpsLimit or MemLimit selects the
// default for that knob; any non-zero value is validated against the
// minimum floors at construction time, never at call time.
type Config struct {
	// OpsLimit is the operations cost passed to the hashing backend.
	// Zero selects the default (at least 6).
	OpsLimit uint32
	// MemLimit is the memory cost in bytes passed to the hashing backend.
	// Zero selects the default (at least 64 MiB).
	MemLimit uint64

	Metrics MetricsConfig
	Audit   AuditConfig

	// Sink receives audit events when Audit.Enabled is true. Nil falls
	// back to NoOpSink.
	Sink AuditSink
}

// MetricsConfig controls the encoder's operation counters.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// AuditConfig controls the buffered audit event dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
COST PRESETS
====================================
*/

// InteractiveConfig returns the cost profile for interactive logins:
// the cheapest profile still considered safe for online authentication.
func InteractiveConfig() Config {
	return Config{OpsLimit: 2, MemLimit: 64 * 1024 * 1024}
}

// ModerateConfig returns the cost profile for higher-value credentials
// where a few hundred milliseconds per hash is acceptable.
func ModerateConfig() Config {
	return Config{OpsLimit: 3, MemLimit: 256 * 1024 * 1024}
}

// SensitiveConfig returns the cost profile for rarely-exercised, highly
// sensitive credentials (key-encryption passphrases and similar).
func SensitiveConfig() Config {
	return Config{OpsLimit: 4, MemLimit: 1024 * 1024 * 1024}
}

// resolveCostParams fills defaulted knobs from the backend's recommended
// profiles and validates the result against the minimum floors.
func resolveCostParams(cfg Config, rec backend.Recommended) (uint32, uint64, error) {
	ops := cfg.OpsLimit
	if ops == 0 {
		ops = defaultOpsFloor
		if rec.ModerateOps > ops {
			ops = rec.ModerateOps
		}
	}

	mem := cfg.MemLimit
	if mem == 0 {
		mem = defaultMemFloor
		if rec.InteractiveMem > mem {
			mem = rec.InteractiveMem
		}
	}

	if ops < MinOpsLimit {
		return 0, 0, ErrInvalidOpsLimit
	}
	if mem < MinMemLimit {
		return 0, 0, ErrInvalidMemLimit
	}

	return ops, mem, nil
}
