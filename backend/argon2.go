package backend

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"io"

	"golang.org/x/crypto/argon2"

	"github.com/kyritz/pwhash/internal/phc"
)

const (
	nativeName        = "argon2-native"
	nativeParallelism = 1
	nativeSaltLength  = 16
	nativeKeyLength   = 32

	// Libsodium argon2id profile constants: moderate opslimit and
	// interactive memlimit.
	opsModerate    uint32 = 3
	memInteractive uint64 = 64 * 1024 * 1024
)

// probeVector is a syntactically valid PHC string used by availability
// probes. Parsing it exercises the full decode path without hashing.
const probeVector = "$argon2id$v=19$m=65536,t=1,p=2$c29tZXNhbHQ$RdescudvJCsgt3ub"

// NativeProvider returns the provider backed directly by
// golang.org/x/crypto/argon2.
func NativeProvider() Provider {
	return Provider{
		Name:  nativeName,
		Probe: nativeProbe,
		Build: nativeBackend,
	}
}

func nativeProbe() bool {
	_, _, _, err := phc.Parse(probeVector)
	return err == nil
}

func nativeBackend() Backend {
	return Backend{
		Name:        nativeName,
		Hash:        nativeHash,
		Verify:      nativeVerify,
		NeedsRehash: nativeNeedsRehash,
		Recommended: Recommended{
			ModerateOps:    opsModerate,
			InteractiveMem: memInteractive,
		},
	}
}

func nativeHash(plaintext string, opsLimit uint32, memLimit uint64) (string, error) {
	salt := make([]byte, nativeSaltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", err
	}

	params := phc.Params{
		MemoryKiB:   memKiB(memLimit),
		Time:        opsLimit,
		Parallelism: nativeParallelism,
	}
	key := argon2.IDKey([]byte(plaintext), salt, params.Time, params.MemoryKiB, params.Parallelism, nativeKeyLength)

	return phc.Format(params, salt, key), nil
}

func nativeVerify(encoded, plaintext string) (bool, error) {
	params, salt, key, err := phc.Parse(encoded)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey([]byte(plaintext), salt, params.Time, params.MemoryKiB, params.Parallelism, uint32(len(key)))

	return subtle.ConstantTimeCompare(computed, key) == 1, nil
}

// nativeNeedsRehash reports true for any hash not produced under the
// given cost parameters, including strings that are not argon2id hashes
// at all (foreign formats should be regenerated, not errored on).
func nativeNeedsRehash(encoded string, opsLimit uint32, memLimit uint64) (bool, error) {
	params, _, _, err := phc.Parse(encoded)
	if err != nil {
		if errors.Is(err, phc.ErrFormat) {
			return true, nil
		}
		return false, err
	}

	return params.Time != opsLimit || params.MemoryKiB != memKiB(memLimit), nil
}

// memKiB converts a byte memory limit to the KiB unit argon2 consumes.
// Limits below 1 KiB round up so the primitive never receives zero.
func memKiB(memLimit uint64) uint32 {
	kib := memLimit / 1024
	if kib == 0 {
		kib = 1
	}
	return uint32(kib)
}
