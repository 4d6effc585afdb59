package backend

import (
	"github.com/alexedwards/argon2id"
)

const (
	fallbackName       = "argon2id-lib"
	fallbackSaltLength = 16
	fallbackKeyLength  = 32
)

// FallbackProvider returns the provider backed by
// github.com/alexedwards/argon2id. It sits behind the native provider in
// the default registry and asserts its own availability by decoding a
// known-good vector.
func FallbackProvider() Provider {
	return Provider{
		Name:  fallbackName,
		Probe: fallbackProbe,
		Build: fallbackBackend,
	}
}

func fallbackProbe() bool {
	_, _, _, err := argon2id.DecodeHash(probeVector)
	return err == nil
}

func fallbackBackend() Backend {
	return Backend{
		Name:        fallbackName,
		Hash:        fallbackHash,
		Verify:      fallbackVerify,
		NeedsRehash: fallbackNeedsRehash,
		Recommended: Recommended{
			ModerateOps:    opsModerate,
			InteractiveMem: memInteractive,
		},
	}
}

func fallbackParams(opsLimit uint32, memLimit uint64) *argon2id.Params {
	return &argon2id.Params{
		Memory:      memKiB(memLimit),
		Iterations:  opsLimit,
		Parallelism: nativeParallelism,
		SaltLength:  fallbackSaltLength,
		KeyLength:   fallbackKeyLength,
	}
}

func fallbackHash(plaintext string, opsLimit uint32, memLimit uint64) (string, error) {
	return argon2id.CreateHash(plaintext, fallbackParams(opsLimit, memLimit))
}

func fallbackVerify(encoded, plaintext string) (bool, error) {
	return argon2id.ComparePasswordAndHash(plaintext, encoded)
}

func fallbackNeedsRehash(encoded string, opsLimit uint32, memLimit uint64) (bool, error) {
	params, _, _, err := argon2id.DecodeHash(encoded)
	if err != nil {
		// Foreign or malformed formats should be regenerated.
		return true, nil
	}

	return params.Iterations != opsLimit || params.Memory != memKiB(memLimit), nil
}
