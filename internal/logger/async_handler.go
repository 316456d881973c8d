package logger

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

const (
	defaultAsyncQueueSize    = 1024
	defaultAsyncFlushTimeout = 5 * time.Second
)

// AsyncOptions tunes the async delivery queue. Zero values select the
// defaults above.
type AsyncOptions struct {
	QueueSize    int
	FlushTimeout time.Duration
}

// asyncDelivery is one record waiting to be handed to its handler. The
// handler travels with the record because WithAttrs/WithGroup derive new
// handlers that all share one queue.
type asyncDelivery struct {
	ctx context.Context
	rec slog.Record
	to  slog.Handler
}

// asyncQueue owns the delivery channel and the single goroutine draining it.
type asyncQueue struct {
	deliveries   chan asyncDelivery
	flushTimeout time.Duration
	stopped      atomic.Bool
	dropped      atomic.Uint64
	done         chan struct{}
}

func newAsyncQueue(opts AsyncOptions) *asyncQueue {
	size := opts.QueueSize
	if size <= 0 {
		size = defaultAsyncQueueSize
	}
	timeout := opts.FlushTimeout
	if timeout <= 0 {
		timeout = defaultAsyncFlushTimeout
	}

	q := &asyncQueue{
		deliveries:   make(chan asyncDelivery, size),
		flushTimeout: timeout,
		done:         make(chan struct{}),
	}
	go q.drain()
	return q
}

func (q *asyncQueue) drain() {
	defer close(q.done)
	for d := range q.deliveries {
		_ = d.to.Handle(d.ctx, d.rec)
	}
}

// push enqueues a delivery without ever blocking the caller: when the queue
// is full the record is dropped and counted instead.
func (q *asyncQueue) push(ctx context.Context, rec slog.Record, to slog.Handler) {
	if q.stopped.Load() {
		return
	}
	select {
	case q.deliveries <- asyncDelivery{ctx: ctx, rec: rec, to: to}:
	default:
		q.dropped.Add(1)
	}
}

// close stops intake, then waits for the drain goroutine to finish the
// backlog, bounded by the flush timeout when the context carries none.
func (q *asyncQueue) close(ctx context.Context) error {
	if q.stopped.Swap(true) {
		return nil
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.flushTimeout)
		defer cancel()
	}

	close(q.deliveries)
	select {
	case <-q.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AsyncHandler decouples a slow handler from the request path: Handle
// enqueues the record and returns immediately while a background goroutine
// performs the actual delivery. Built for the remote shipping handler,
// whose ingest endpoint must never stall an API response.
type AsyncHandler struct {
	inner slog.Handler
	queue *asyncQueue
}

// NewAsyncHandler wraps the handler with its own delivery queue.
func NewAsyncHandler(handler slog.Handler, opts AsyncOptions) *AsyncHandler {
	return &AsyncHandler{
		inner: handler,
		queue: newAsyncQueue(opts),
	}
}

// Enabled defers to the wrapped handler.
func (h *AsyncHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle enqueues a clone of the record for background delivery.
func (h *AsyncHandler) Handle(ctx context.Context, r slog.Record) error {
	if !h.inner.Enabled(ctx, r.Level) {
		return nil
	}
	h.queue.push(ctx, r.Clone(), h.inner)
	return nil
}

// WithAttrs derives a handler sharing the same queue.
func (h *AsyncHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &AsyncHandler{
		inner: h.inner.WithAttrs(attrs),
		queue: h.queue,
	}
}

// WithGroup derives a handler sharing the same queue.
func (h *AsyncHandler) WithGroup(name string) slog.Handler {
	return &AsyncHandler{
		inner: h.inner.WithGroup(name),
		queue: h.queue,
	}
}

// Shutdown flushes the pending backlog up to the configured timeout.
// Safe on a nil handler so callers need no guard.
func (h *AsyncHandler) Shutdown(ctx context.Context) error {
	if h == nil || h.queue == nil {
		return nil
	}
	return h.queue.close(ctx)
}
