package backend

import (
	"strings"
	"testing"
)

// Fast parameters for tests: policy floors are enforced by the encoder,
// not here, so the primitive can run cheap.
const (
	testOps uint32 = 2
	testMem uint64 = 16 * 1024 * 1024
)

func TestDefaultResolvesNativeFirst(t *testing.T) {
	b, ok := Default()
	if !ok {
		t.Fatal("expected a default backend to resolve")
	}
	if b.Name != nativeName {
		t.Fatalf("expected native backend, got %q", b.Name)
	}
	if b.Hash == nil || b.Verify == nil || b.NeedsRehash == nil {
		t.Fatal("expected all operations present on the native backend")
	}
}

func TestSupportedStable(t *testing.T) {
	first := Supported()
	for i := 0; i < 5; i++ {
		if Supported() != first {
			t.Fatal("Supported changed value between calls")
		}
	}
	if !first {
		t.Fatal("expected Supported to be true with both providers compiled in")
	}
}

func TestRegistryPriorityOrder(t *testing.T) {
	r := NewRegistry(
		Provider{Name: "dead", Probe: func() bool { return false }, Build: func() Backend {
			return Backend{Name: "dead"}
		}},
		FallbackProvider(),
		NativeProvider(),
	)

	b, ok := r.Resolve()
	if !ok {
		t.Fatal("expected registry to resolve")
	}
	if b.Name != fallbackName {
		t.Fatalf("expected first live provider %q, got %q", fallbackName, b.Name)
	}
}

func TestRegistryNothingAvailable(t *testing.T) {
	r := NewRegistry(Provider{Name: "dead", Probe: func() bool { return false }})

	if r.Supported() {
		t.Fatal("expected Supported to be false")
	}
	if _, ok := r.Resolve(); ok {
		t.Fatal("expected Resolve to fail")
	}
}

func TestProbesDoNotHash(t *testing.T) {
	// Both probes are pure parses of the known vector and must pass.
	if !nativeProbe() {
		t.Fatal("native probe failed")
	}
	if !fallbackProbe() {
		t.Fatal("fallback probe failed")
	}
}

func TestNativeHashVerify(t *testing.T) {
	b := nativeBackend()

	encoded, err := b.Hash("correct horse battery staple", testOps, testMem)
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$v=19$") {
		t.Fatalf("unexpected hash prefix: %s", encoded)
	}

	ok, err := b.Verify(encoded, "correct horse battery staple")
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if !ok {
		t.Fatal("expected matching plaintext to verify")
	}

	ok, err = b.Verify(encoded, "wrong password")
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if ok {
		t.Fatal("expected mismatched plaintext to fail")
	}
}

func TestNativeHashSelfSalts(t *testing.T) {
	b := nativeBackend()

	first, err := b.Hash("repeatable", testOps, testMem)
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	second, err := b.Hash("repeatable", testOps, testMem)
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct hashes for the same plaintext")
	}
}

func TestNativeNeedsRehash(t *testing.T) {
	b := nativeBackend()

	encoded, err := b.Hash("migration-check", testOps, testMem)
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	same, err := b.NeedsRehash(encoded, testOps, testMem)
	if err != nil {
		t.Fatalf("NeedsRehash error: %v", err)
	}
	if same {
		t.Fatal("expected no rehash under identical parameters")
	}

	bumpedOps, err := b.NeedsRehash(encoded, testOps+1, testMem)
	if err != nil {
		t.Fatalf("NeedsRehash error: %v", err)
	}
	if !bumpedOps {
		t.Fatal("expected rehash after raising ops limit")
	}

	bumpedMem, err := b.NeedsRehash(encoded, testOps, testMem*2)
	if err != nil {
		t.Fatalf("NeedsRehash error: %v", err)
	}
	if !bumpedMem {
		t.Fatal("expected rehash after raising memory limit")
	}

	foreign, err := b.NeedsRehash("$2y$10$not-an-argon2id-hash", testOps, testMem)
	if err != nil {
		t.Fatalf("NeedsRehash error: %v", err)
	}
	if !foreign {
		t.Fatal("expected rehash for a foreign hash format")
	}
}

func TestProvidersProduceInterchangeableHashes(t *testing.T) {
	native := nativeBackend()
	fallback := fallbackBackend()

	fromNative, err := native.Hash("shared-format", testOps, testMem)
	if err != nil {
		t.Fatalf("native Hash error: %v", err)
	}
	fromFallback, err := fallback.Hash("shared-format", testOps, testMem)
	if err != nil {
		t.Fatalf("fallback Hash error: %v", err)
	}

	ok, err := fallback.Verify(fromNative, "shared-format")
	if err != nil {
		t.Fatalf("fallback Verify of native hash: %v", err)
	}
	if !ok {
		t.Fatal("fallback backend rejected a native hash")
	}

	ok, err = native.Verify(fromFallback, "shared-format")
	if err != nil {
		t.Fatalf("native Verify of fallback hash: %v", err)
	}
	if !ok {
		t.Fatal("native backend rejected a fallback hash")
	}

	rehash, err := native.NeedsRehash(fromFallback, testOps, testMem)
	if err != nil {
		t.Fatalf("NeedsRehash error: %v", err)
	}
	if rehash {
		t.Fatal("expected fallback hash to satisfy native parameter comparison")
	}
}

func TestMemKiBRoundsUpSmallLimits(t *testing.T) {
	if got := memKiB(512); got != 1 {
		t.Fatalf("expected sub-KiB limits to round up to 1, got %d", got)
	}
	if got := memKiB(64 * 1024 * 1024); got != 65536 {
		t.Fatalf("expected 64 MiB to map to 65536 KiB, got %d", got)
	}
}
