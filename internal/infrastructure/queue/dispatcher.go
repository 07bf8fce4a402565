package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/gazette-dev/gazette/internal/api/metrics"
	"github.com/gazette-dev/gazette/internal/core/domain"
	"github.com/gazette-dev/gazette/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	storeTimeout   = 5 * time.Second
)

// AuditDispatcher routes audit events to a fixed set of workers using
// consistent hashing on the username, preserving per-user event order.
// Storage I/O happens on the workers, never on the request goroutine.
type AuditDispatcher struct {
	workers []chan domain.AuditEvent
	repo    ports.AuditRepository
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewAuditDispatcher creates a dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewAuditDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *AuditDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &AuditDispatcher{
		workers: make([]chan domain.AuditEvent, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEvent, channelBuffer)
	}
	return d
}

// Start launches the worker goroutines. Workers drain their channel and stop
// once ctx is cancelled; Wait blocks until they have.
func (d *AuditDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until all workers have stopped.
func (d *AuditDispatcher) Wait() {
	d.wg.Wait()
}

// Record enqueues event on the worker responsible for its username. When that
// worker is saturated the event is dropped and counted; auditing never
// blocks a request.
func (d *AuditDispatcher) Record(event domain.AuditEvent) {
	idx := d.shardIndex(event.Username)
	select {
	case d.workers[idx] <- event:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.AuditDroppedTotal.Inc()
		d.log.Warn().Str("action", string(event.Action)).Int("worker_id", idx).Msg("audit queue full, event dropped")
	}
}

// shardIndex maps a username deterministically to a worker index.
func (d *AuditDispatcher) shardIndex(username string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(username))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *AuditDispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEvent) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			d.drain(ctx, id, ch)
			return
		case event := <-ch:
			metrics.AuditQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.store(ctx, id, event)
		}
	}
}

// drain stores whatever is still buffered after shutdown was requested.
func (d *AuditDispatcher) drain(ctx context.Context, id int, ch <-chan domain.AuditEvent) {
	for {
		select {
		case event := <-ch:
			d.store(ctx, id, event)
		default:
			return
		}
	}
}

// store writes one event. Writes outlive ctx's cancellation so that events
// drained during shutdown are still persisted.
func (d *AuditDispatcher) store(ctx context.Context, id int, event domain.AuditEvent) {
	storeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), storeTimeout)
	defer cancel()

	if err := d.repo.InsertEvent(storeCtx, &event); err != nil {
		d.log.Error().Err(err).
			Str("action", string(event.Action)).
			Str("username", event.Username).
			Int("worker_id", id).
			Msg("audit event not stored")
	}
}
