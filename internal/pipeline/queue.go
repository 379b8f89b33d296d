package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/couchcryptid/coffee-catalog/internal/domain"
	"github.com/couchcryptid/coffee-catalog/internal/observability"
)

// ErrQueueFull is returned by Publish when the queue has no free slot.
var ErrQueueFull = errors.New("review event queue full")

// Queue buffers review events between the review service and the pipeline.
// Publish never blocks; ExtractBatch waits for the first event and then
// collects more until the batch is full or the flush interval elapses.
type Queue struct {
	events        chan domain.ReviewEvent
	flushInterval time.Duration
	metrics       *observability.Metrics
}

// NewQueue creates a Queue holding at most size events.
func NewQueue(size int, flushInterval time.Duration, metrics *observability.Metrics) *Queue {
	if size < 1 {
		size = 1
	}
	return &Queue{
		events:        make(chan domain.ReviewEvent, size),
		flushInterval: flushInterval,
		metrics:       metrics,
	}
}

// Publish enqueues ev, dropping it when the queue is full.
func (q *Queue) Publish(ctx context.Context, ev domain.ReviewEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case q.events <- ev:
		q.metrics.EventsEnqueued.Inc()
		return nil
	default:
		q.metrics.EventsDropped.Inc()
		return ErrQueueFull
	}
}

// Len returns the number of buffered events.
func (q *Queue) Len() int { return len(q.events) }

// ExtractBatch returns between 1 and batchSize events. It returns the
// context error if ctx ends before any event arrives.
func (q *Queue) ExtractBatch(ctx context.Context, batchSize int) ([]domain.ReviewEvent, error) {
	if batchSize < 1 {
		batchSize = 1
	}

	var first domain.ReviewEvent
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case first = <-q.events:
	}

	batch := make([]domain.ReviewEvent, 1, batchSize)
	batch[0] = first

	timer := time.NewTimer(q.flushInterval)
	defer timer.Stop()

	for len(batch) < batchSize {
		select {
		case ev := <-q.events:
			batch = append(batch, ev)
		case <-timer.C:
			return batch, nil
		case <-ctx.Done():
			return batch, nil
		}
	}
	return batch, nil
}
