package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/clubhub/clubhub-api/internal/core/domain"
	"github.com/clubhub/clubhub-api/pkg/metrics"
)

type recordingRepo struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
	err     error
}

func (r *recordingRepo) Insert(_ context.Context, e *domain.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *e)
	return r.err
}

func (r *recordingRepo) subjects() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Subject + "/" + string(e.Action)
	}
	return out
}

func TestDispatcher_WritesInOrderPerSubject(t *testing.T) {
	repo := &recordingRepo{}
	d := NewDispatcher(4, repo, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	d.Record(domain.AuditEntry{Action: domain.AuditRegister, Subject: "a@b.com"})
	d.Record(domain.AuditEntry{Action: domain.AuditLoginFailure, Subject: "a@b.com"})
	d.Record(domain.AuditEntry{Action: domain.AuditLoginSuccess, Subject: "a@b.com"})

	cancel()
	d.Wait()

	got := repo.subjects()
	want := []string{"a@b.com/register", "a@b.com/login_failure", "a@b.com/login_success"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestDispatcher_FlushesOnShutdown(t *testing.T) {
	repo := &recordingRepo{}
	d := NewDispatcher(2, repo, zerolog.Nop())

	for i := 0; i < 10; i++ {
		d.Record(domain.AuditEntry{Action: domain.AuditLoginFailure, Subject: fmt.Sprintf("u%d@b.com", i)})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Start(ctx)
	d.Wait()

	if n := len(repo.subjects()); n != 10 {
		t.Fatalf("expected 10 flushed entries, got %d", n)
	}
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	repo := &recordingRepo{}
	d := NewDispatcher(1, repo, zerolog.Nop())

	// Workers are not started, so the single shard fills up.
	for i := 0; i < channelBuffer+5; i++ {
		d.Record(domain.AuditEntry{Action: domain.AuditLoginFailure, Subject: "a@b.com"})
	}

	if n := len(d.workers[0]); n != channelBuffer {
		t.Fatalf("expected a full shard of %d, got %d", channelBuffer, n)
	}
}

func TestDispatcher_QueueDepthTracksBufferedEntries(t *testing.T) {
	metrics.AuditQueueDepth.Reset()
	t.Cleanup(metrics.AuditQueueDepth.Reset)

	repo := &recordingRepo{}
	d := NewDispatcher(1, repo, zerolog.Nop())
	depth := metrics.AuditQueueDepth.WithLabelValues("0")

	for i := 0; i < channelBuffer+5; i++ {
		d.Record(domain.AuditEntry{Action: domain.AuditLoginFailure, Subject: "a@b.com"})
	}
	if got := testutil.ToFloat64(depth); got != channelBuffer {
		t.Fatalf("dropped entries must not count, expected depth %d, got %v", channelBuffer, got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)
	cancel()
	d.Wait()

	if got := testutil.ToFloat64(depth); got != 0 {
		t.Fatalf("expected depth 0 after draining, got %v", got)
	}
	if len(repo.subjects()) != channelBuffer {
		t.Fatalf("expected %d entries written, got %d", channelBuffer, len(repo.subjects()))
	}
}

func TestDispatcher_WriteErrorsDoNotStopWorker(t *testing.T) {
	repo := &recordingRepo{err: errors.New("insert failed")}
	d := NewDispatcher(1, repo, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	d.Record(domain.AuditEntry{Action: domain.AuditRegister, Subject: "a@b.com"})
	d.Record(domain.AuditEntry{Action: domain.AuditRegister, Subject: "c@d.com"})

	cancel()
	d.Wait()

	if n := len(repo.subjects()); n != 2 {
		t.Fatalf("expected both entries attempted, got %d", n)
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(8, &recordingRepo{}, zerolog.Nop())
	for _, s := range []string{"a@b.com", "", "someone@example.org"} {
		first := d.shardIndex(s)
		if first < 0 || first >= 8 {
			t.Fatalf("index out of range: %d", first)
		}
		if d.shardIndex(s) != first {
			t.Fatalf("index for %q changed", s)
		}
	}
}
