// Package pipeline delivers submitted review events to the review topic in
// batches.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/coffee-catalog/internal/domain"
	"github.com/couchcryptid/coffee-catalog/internal/observability"
)

// BatchExtractor reads up to batchSize review events from the source.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.ReviewEvent, error)
}

// Transformer converts a review event into an output event.
type Transformer interface {
	Transform(ctx context.Context, ev domain.ReviewEvent) (domain.OutputEvent, error)
}

// BatchLoader writes multiple output events to the destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, events []domain.OutputEvent) error
}

// Pipeline orchestrates the extract-transform-load loop.
type Pipeline struct {
	extractor   BatchExtractor
	transformer Transformer
	loader      BatchLoader
	logger      *slog.Logger
	metrics     *observability.Metrics
	running     atomic.Bool
	batchSize   int
}

// New creates a Pipeline with the given stages and observability.
func New(e BatchExtractor, t Transformer, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
		batchSize:   batchSize,
	}
}

// CheckReadiness returns nil while Run is executing.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.running.Load() {
		return errors.New("review event pipeline is not running")
	}
	return nil
}

// Run moves review events from the extractor to the loader until ctx is
// cancelled. It always returns nil; failures are logged and retried.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "batch_size", p.batchSize)
	p.running.Store(true)
	p.metrics.PipelineRunning.Set(1)
	defer func() {
		p.running.Store(false)
		p.metrics.PipelineRunning.Set(0)
	}()

	r := newRetry()
	for ctx.Err() == nil {
		p.cycle(ctx, r)
	}
	p.logger.Info("pipeline stopping", "reason", ctx.Err())
	return nil
}

// cycle extracts, serializes and delivers one batch.
func (p *Pipeline) cycle(ctx context.Context, r *retry) {
	start := time.Now()

	batch, err := p.extractor.ExtractBatch(ctx, p.batchSize)
	switch {
	case err != nil && ctx.Err() != nil:
		return
	case err != nil:
		p.logger.Error("extract batch failed", "error", err, "retry_in", r.delay)
		r.wait(ctx)
		return
	case len(batch) == 0:
		return
	}
	p.metrics.BatchSize.Observe(float64(len(batch)))

	out := p.serialize(ctx, batch)
	if len(out) == 0 {
		return
	}
	if !p.deliver(ctx, out, r) {
		p.metrics.EventsDropped.Add(float64(len(out)))
		return
	}
	p.metrics.EventsPublished.Add(float64(len(out)))
	p.metrics.BatchProcessingDuration.Observe(time.Since(start).Seconds())
}

// serialize drops events the transformer rejects.
func (p *Pipeline) serialize(ctx context.Context, batch []domain.ReviewEvent) []domain.OutputEvent {
	out := make([]domain.OutputEvent, 0, len(batch))
	for _, ev := range batch {
		o, err := p.transformer.Transform(ctx, ev)
		if err != nil {
			p.logger.Warn("serialize failed, skipping event", "error", err, "review_id", ev.Review.ID)
			p.metrics.EventSerializeErrors.Inc()
			continue
		}
		out = append(out, o)
	}
	return out
}

// deliver retries the load until it succeeds or ctx ends. It reports whether
// the batch landed.
func (p *Pipeline) deliver(ctx context.Context, out []domain.OutputEvent, r *retry) bool {
	for {
		err := p.loader.LoadBatch(ctx, out)
		if err == nil {
			r.reset()
			return true
		}
		p.logger.Error("load batch failed", "error", err, "batch_size", len(out), "retry_in", r.delay)
		if !r.wait(ctx) {
			return false
		}
	}
}

// retry is a doubling delay capped at retryMax.
type retry struct {
	delay time.Duration
}

const (
	retryStart = 200 * time.Millisecond
	retryMax   = 5 * time.Second
)

func newRetry() *retry { return &retry{delay: retryStart} }

func (r *retry) reset() { r.delay = retryStart }

// wait sleeps for the current delay and doubles it. It returns false when ctx
// ends first.
func (r *retry) wait(ctx context.Context) bool {
	timer := time.NewTimer(r.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
	}
	r.delay = min(r.delay*2, retryMax)
	return true
}
