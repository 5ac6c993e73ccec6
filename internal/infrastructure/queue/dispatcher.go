package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/clubhub/clubhub-api/internal/core/domain"
	"github.com/clubhub/clubhub-api/internal/core/ports"
	"github.com/clubhub/clubhub-api/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	flushTimeout   = 2 * time.Second
)

// Dispatcher writes audit entries off the request path. Entries are sharded
// by subject so the trail of one account is written in order.
type Dispatcher struct {
	workers []chan domain.AuditEntry
	repo    ports.AuditRepository
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AuditEntry, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEntry, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers flush what is queued and
// stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has stopped.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Record queues an entry without blocking. When the shard is full the entry
// is dropped.
func (d *Dispatcher) Record(entry domain.AuditEntry) {
	idx := d.shardIndex(entry.Subject)
	// Count before the send so a fast worker never takes the gauge below zero.
	depth := metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx))
	depth.Inc()
	select {
	case d.workers[idx] <- entry:
	default:
		depth.Dec()
		metrics.AuditDroppedTotal.Inc()
		d.log.Warn().
			Str("action", string(entry.Action)).
			Int("worker_id", idx).
			Msg("audit queue full, entry dropped")
	}
}

// shardIndex maps a subject deterministically to a worker index.
func (d *Dispatcher) shardIndex(subject string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(subject))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEntry) {
	defer d.wg.Done()
	depth := metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id))

	for {
		select {
		case <-ctx.Done():
			d.flush(id, ch)
			return
		case entry := <-ch:
			depth.Dec()
			d.write(ctx, id, entry)
		}
	}
}

// flush writes whatever is still buffered, bounded by flushTimeout.
func (d *Dispatcher) flush(id int, ch <-chan domain.AuditEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	depth := metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case entry := <-ch:
			depth.Dec()
			d.write(ctx, id, entry)
		default:
			return
		}
	}
}

func (d *Dispatcher) write(ctx context.Context, id int, entry domain.AuditEntry) {
	if err := d.repo.Insert(ctx, &entry); err != nil {
		metrics.AuditWriteErrorsTotal.Inc()
		d.log.Error().Err(err).
			Str("action", string(entry.Action)).
			Int("worker_id", id).
			Msg("audit write failed")
	}
}
