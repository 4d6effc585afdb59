package pwhash

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type countingSink struct {
	count atomic.Int64
}

func (s *countingSink) Emit(context.Context, AuditEvent) {
	s.count.Add(1)
}

func (s *countingSink) Count() int64 {
	return s.count.Load()
}

type gateSink struct {
	gate chan struct{}
}

func newGateSink() *gateSink {
	return &gateSink{
		gate: make(chan struct{}),
	}
}

func (s *gateSink) Emit(context.Context, AuditEvent) {
	<-s.gate
}

func waitForEvent(t *testing.T, events <-chan AuditEvent) AuditEvent {
	t.Helper()

	select {
	case event := <-events:
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for audit event")
		return AuditEvent{}
	}
}

func TestAuditLegacyVerifyEmitsEvent(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("legacy-user"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt hash error: %v", err)
	}

	sink := NewChannelSink(8)
	cfg := fastConfig()
	cfg.Audit = AuditConfig{Enabled: true, BufferSize: 8}
	cfg.Sink = sink
	enc := newTestEncoder(t, cfg)

	if _, err := enc.Verify(string(hash), "legacy-user", ""); err != nil {
		t.Fatalf("Verify error: %v", err)
	}

	event := waitForEvent(t, sink.Events())
	if event.EventType != EventLegacyVerify {
		t.Fatalf("expected %q, got %q", EventLegacyVerify, event.EventType)
	}
	if !event.Success {
		t.Fatal("expected a successful legacy verification event")
	}
	if event.Backend != "bcrypt" {
		t.Fatalf("expected backend bcrypt, got %q", event.Backend)
	}
	if event.ID == "" {
		t.Fatal("expected a populated event ID")
	}
}

func TestAuditRehashNeededEmitsEvent(t *testing.T) {
	sink := NewChannelSink(8)
	cfg := Config{OpsLimit: MinOpsLimit + 1, MemLimit: MinMemLimit}
	cfg.Audit = AuditConfig{Enabled: true, BufferSize: 8}
	cfg.Sink = sink
	enc := newTestEncoder(t, cfg)

	weaker := newTestEncoder(t, fastConfig())
	encoded, err := weaker.Encode("needs-upgrade", "")
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	stale, err := enc.NeedsRehash(encoded)
	if err != nil {
		t.Fatalf("NeedsRehash error: %v", err)
	}
	if !stale {
		t.Fatal("expected stale parameters")
	}

	event := waitForEvent(t, sink.Events())
	if event.EventType != EventRehashNeeded {
		t.Fatalf("expected %q, got %q", EventRehashNeeded, event.EventType)
	}
}

func TestAuditEventsCarryNoSecretMaterial(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("the-plaintext-secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt hash error: %v", err)
	}

	var buf bytes.Buffer
	cfg := fastConfig()
	cfg.Audit = AuditConfig{Enabled: true, BufferSize: 8}
	cfg.Sink = NewJSONWriterSink(&buf)
	enc, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := enc.Verify(string(hash), "the-plaintext-secret", ""); err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	enc.Close() // drains the dispatcher

	out := buf.String()
	if out == "" {
		t.Fatal("expected JSON audit output")
	}
	if strings.Contains(out, "the-plaintext-secret") {
		t.Fatal("audit output leaks plaintext")
	}
	if strings.Contains(out, string(hash)) {
		t.Fatal("audit output leaks hash material")
	}

	var event AuditEvent
	if err := json.Unmarshal([]byte(strings.SplitN(out, "\n", 2)[0]), &event); err != nil {
		t.Fatalf("audit output is not valid JSON: %v", err)
	}
}

func TestDispatcherDisabledIsNil(t *testing.T) {
	if d := newAuditDispatcher(AuditConfig{Enabled: false}, NoOpSink{}); d != nil {
		t.Fatal("expected nil dispatcher when auditing is disabled")
	}

	// Nil dispatcher methods are no-ops.
	var d *auditDispatcher
	d.Emit(context.Background(), AuditEvent{})
	d.Close()
	if d.Dropped() != 0 {
		t.Fatal("expected zero drops from a nil dispatcher")
	}
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	sink := newGateSink()
	d := newAuditDispatcher(AuditConfig{Enabled: true, BufferSize: 1, DropIfFull: true}, sink)

	// First event occupies the worker (blocked on the gate), second
	// fills the buffer, the rest must drop.
	for i := 0; i < 5; i++ {
		d.Emit(context.Background(), AuditEvent{EventType: EventRehashNeeded})
	}

	deadline := time.Now().Add(2 * time.Second)
	for d.Dropped() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if got := d.Dropped(); got < 3 {
		t.Fatalf("expected at least 3 dropped events, got %d", got)
	}

	close(sink.gate)
	d.Close()
}

func TestDispatcherDrainsOnClose(t *testing.T) {
	sink := &countingSink{}
	d := newAuditDispatcher(AuditConfig{Enabled: true, BufferSize: 16}, sink)

	for i := 0; i < 10; i++ {
		d.Emit(context.Background(), AuditEvent{EventType: EventLegacyVerify})
	}
	d.Close()

	if got := sink.Count(); got != 10 {
		t.Fatalf("expected all 10 events delivered before close, got %d", got)
	}
}
