package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/storekit/storefront-api/internal/core/domain"
)

type memAuditRepo struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (r *memAuditRepo) Append(_ context.Context, event *domain.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *event)
	return nil
}

func (r *memAuditRepo) snapshot() []domain.AuditEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.AuditEvent, len(r.events))
	copy(out, r.events)
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within deadline")
}

func TestAuditDispatcher_PersistsEvents(t *testing.T) {
	repo := &memAuditRepo{}
	d := NewAuditDispatcher(2, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Record(domain.AuditEvent{Kind: domain.AuditSignup, Email: "a@x.com"})
	d.Record(domain.AuditEvent{Kind: domain.AuditLogin, Email: "b@x.com"})

	waitFor(t, func() bool { return len(repo.snapshot()) == 2 })
}

func TestAuditDispatcher_SameEmailKeepsOrder(t *testing.T) {
	repo := &memAuditRepo{}
	d := NewAuditDispatcher(4, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	kinds := []string{domain.AuditSignup, domain.AuditLoginDenied, domain.AuditLogin}
	for _, k := range kinds {
		d.Record(domain.AuditEvent{Kind: k, Email: "same@x.com"})
	}

	waitFor(t, func() bool { return len(repo.snapshot()) == len(kinds) })

	got := repo.snapshot()
	for i, k := range kinds {
		if got[i].Kind != k {
			t.Fatalf("event %d: expected %s, got %s", i, k, got[i].Kind)
		}
	}
}

func TestAuditDispatcher_RecordDoesNotBlockWhenStopped(t *testing.T) {
	repo := &memAuditRepo{}
	d := NewAuditDispatcher(1, repo, zerolog.Nop())
	// No Start: the single worker channel fills up, then events drop.

	done := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer*2; i++ {
			d.Record(domain.AuditEvent{Kind: domain.AuditLogin, Email: "x@x.com"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Record blocked on a full channel")
	}
}
