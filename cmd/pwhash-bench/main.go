// Command pwhash-bench measures encode and verify throughput under
// configurable cost parameters, so operators can size ops/memory limits
// against a wall-clock latency budget before rolling them out.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/kyritz/pwhash"
)

type credential struct {
	plaintext string
	encoded   string
}

func main() {
	var (
		creds       = flag.Int("creds", 64, "number of distinct credentials to seed")
		ops         = flag.Int("ops", 256, "operations per phase (encode + verify)")
		concurrency = flag.Int("concurrency", 4, "number of concurrent workers")
		opsLimit    = flag.Uint("opslimit", 0, "argon2id ops limit; 0 uses the default")
		memLimitMiB = flag.Uint64("memlimit-mib", 0, "argon2id memory limit in MiB; 0 uses the default")
	)
	flag.Parse()

	if *creds <= 0 || *ops <= 0 || *concurrency <= 0 {
		fmt.Fprintln(os.Stderr, "creds, ops, and concurrency must be > 0")
		os.Exit(2)
	}

	if !pwhash.IsSupported() {
		fmt.Fprintln(os.Stderr, "no argon2id backend available in this build")
		os.Exit(1)
	}

	enc, err := pwhash.New(pwhash.Config{
		OpsLimit: uint32(*opsLimit),
		MemLimit: *memLimitMiB * 1024 * 1024,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "encoder construction failed: %v\n", err)
		os.Exit(1)
	}
	defer enc.Close()

	resolvedOps, resolvedMem := enc.Params()
	fmt.Printf("backend=%s opslimit=%d memlimit=%d MiB\n",
		enc.BackendName(), resolvedOps, resolvedMem/(1024*1024))

	fmt.Printf("seeding %d credentials...\n", *creds)
	startSeed := time.Now()
	pool := make([]credential, *creds)
	for i := range pool {
		plaintext := uuid.NewString() + uuid.NewString()
		encoded, err := enc.Encode(plaintext, "")
		if err != nil {
			fmt.Fprintf(os.Stderr, "seed encode failed: %v\n", err)
			os.Exit(1)
		}
		pool[i] = credential{plaintext: plaintext, encoded: encoded}
	}
	fmt.Printf("seeded in %s\n", time.Since(startSeed).Round(time.Millisecond))

	encodeStats := runEncodePhase(enc, pool, *ops, *concurrency)
	verifyStats := runVerifyPhase(enc, pool, *ops, *concurrency)

	fmt.Println("---- results ----")
	printStats("encode", encodeStats)
	printStats("verify", verifyStats)
}

func runEncodePhase(enc *pwhash.Encoder, pool []credential, ops, concurrency int) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*7919))
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				idx := r.Intn(len(pool))
				t0 := time.Now()
				_, err := enc.Encode(pool[idx].plaintext, "")
				d := time.Since(t0)
				if err != nil {
					atomic.AddInt64(&failures, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures)
}

func runVerifyPhase(enc *pwhash.Encoder, pool []credential, ops, concurrency int) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*6151))
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				idx := r.Intn(len(pool))
				t0 := time.Now()
				ok, err := enc.Verify(pool[idx].encoded, pool[idx].plaintext, "")
				d := time.Since(t0)
				if err != nil || !ok {
					atomic.AddInt64(&failures, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures)
}

type phaseStats struct {
	total    time.Duration
	ops      int
	failures int64
	p50      time.Duration
	p95      time.Duration
	p99      time.Duration
	opsPerS  float64
}

func computeStats(total time.Duration, samples []time.Duration, failures int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:    total,
		ops:      len(samples),
		failures: failures,
		p50:      percentile(samples, 50),
		p95:      percentile(samples, 95),
		p99:      percentile(samples, 99),
		opsPerS:  float64(len(samples)) / total.Seconds(),
	}
}

func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	idx := (len(samples) - 1) * p / 100
	return samples[idx]
}

func printStats(name string, s phaseStats) {
	fmt.Printf("%s: ops=%d failures=%d total=%s ops/sec=%.1f p50=%s p95=%s p99=%s\n",
		name,
		s.ops,
		s.failures,
		s.total.Round(time.Millisecond),
		s.opsPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}
