// Package phc encodes and decodes argon2id hashes in PHC string format:
//
//	$argon2id$v=19$m=<memory>,t=<time>,p=<parallelism>$<salt>$<hash>
//
// Base64 segments use raw (unpadded) standard encoding, matching the PHC
// reference format and the encodings produced by other argon2id tooling.
package phc

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

const algorithmID = "argon2id"

// ErrFormat reports a string that is not a well-formed argon2id PHC hash.
var ErrFormat = errors.New("invalid argon2id hash format")

// Params holds the cost parameters embedded in a PHC hash string.
type Params struct {
	MemoryKiB   uint32
	Time        uint32
	Parallelism uint8
}

// Format renders params, salt, and derived key as a PHC string.
func Format(p Params, salt, key []byte) string {
	return fmt.Sprintf(
		"$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		algorithmID,
		argon2.Version,
		p.MemoryKiB,
		p.Time,
		p.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
}

// Parse splits a PHC string into its parameters, salt, and derived key.
// Any structural defect, unknown algorithm, or version mismatch returns
// an error wrapping [ErrFormat].
func Parse(encoded string) (Params, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return Params{}, nil, nil, ErrFormat
	}
	if parts[1] != algorithmID {
		return Params{}, nil, nil, fmt.Errorf("%w: unsupported algorithm %q", ErrFormat, parts[1])
	}

	if !strings.HasPrefix(parts[2], "v=") {
		return Params{}, nil, nil, fmt.Errorf("%w: missing version", ErrFormat)
	}
	version, err := strconv.Atoi(strings.TrimPrefix(parts[2], "v="))
	if err != nil {
		return Params{}, nil, nil, fmt.Errorf("%w: bad version", ErrFormat)
	}
	if version != argon2.Version {
		return Params{}, nil, nil, fmt.Errorf("%w: unsupported version %d", ErrFormat, version)
	}

	params, err := parseCostParams(parts[3])
	if err != nil {
		return Params{}, nil, nil, err
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return Params{}, nil, nil, fmt.Errorf("%w: bad salt encoding", ErrFormat)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return Params{}, nil, nil, fmt.Errorf("%w: bad key encoding", ErrFormat)
	}
	if len(salt) == 0 || len(key) == 0 {
		return Params{}, nil, nil, fmt.Errorf("%w: empty salt or key", ErrFormat)
	}

	return params, salt, key, nil
}

func parseCostParams(part string) (Params, error) {
	pairs := strings.Split(part, ",")
	if len(pairs) != 3 {
		return Params{}, fmt.Errorf("%w: bad parameter segment", ErrFormat)
	}

	var (
		params                             Params
		memorySet, timeSet, parallelismSet bool
	)
	for _, pair := range pairs {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			return Params{}, fmt.Errorf("%w: bad parameter entry", ErrFormat)
		}
		switch kv[0] {
		case "m":
			v, err := strconv.ParseUint(kv[1], 10, 32)
			if err != nil || v == 0 {
				return Params{}, fmt.Errorf("%w: bad memory parameter", ErrFormat)
			}
			params.MemoryKiB = uint32(v)
			memorySet = true
		case "t":
			v, err := strconv.ParseUint(kv[1], 10, 32)
			if err != nil || v == 0 {
				return Params{}, fmt.Errorf("%w: bad time parameter", ErrFormat)
			}
			params.Time = uint32(v)
			timeSet = true
		case "p":
			v, err := strconv.ParseUint(kv[1], 10, 8)
			if err != nil || v == 0 {
				return Params{}, fmt.Errorf("%w: bad parallelism parameter", ErrFormat)
			}
			params.Parallelism = uint8(v)
			parallelismSet = true
		default:
			return Params{}, fmt.Errorf("%w: unknown parameter %q", ErrFormat, kv[0])
		}
	}

	if !memorySet || !timeSet || !parallelismSet {
		return Params{}, fmt.Errorf("%w: missing parameters", ErrFormat)
	}
	return params, nil
}
