// Package processor runs classification over batches of posts with a
// bounded worker pool.
package processor

import (
	"context"
	"sync"
	"time"

	"github.com/b2kgrowth/leadsniffer/internal/domain"
	"github.com/b2kgrowth/leadsniffer/internal/engine"
	"github.com/b2kgrowth/leadsniffer/internal/logger"
)

const defaultConcurrency = 10

// PoolMetrics receives worker pool gauges. Implemented by the telemetry
// provider; nil disables instrumentation.
type PoolMetrics interface {
	RecordBatchSize(size int)
	SetActiveWorkers(count int)
}

// BatchProcessor classifies posts in parallel using a worker pool.
type BatchProcessor struct {
	engine      *engine.Engine
	concurrency int
	metrics     PoolMetrics
	log         logger.Logger
}

// Result holds the outcome for a single post. Exactly one of Record and Err
// is set.
type Result struct {
	Post   *domain.Post
	Record *domain.ClassificationRecord
	Err    error
}

// NewBatchProcessor creates a batch processor backed by eng.
func NewBatchProcessor(eng *engine.Engine, concurrency int, metrics PoolMetrics, log logger.Logger) *BatchProcessor {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &BatchProcessor{
		engine:      eng,
		concurrency: concurrency,
		metrics:     metrics,
		log:         log,
	}
}

// Process classifies all posts and returns one result per input, in input
// order. A post that fails validation yields a Result with Err set; the rest
// of the batch is unaffected.
func (b *BatchProcessor) Process(ctx context.Context, posts []*domain.Post) []Result {
	if len(posts) == 0 {
		return []Result{}
	}

	b.log.Info("starting batch",
		logger.Int("batch_size", len(posts)),
		logger.Int("concurrency", b.concurrency),
	)
	if b.metrics != nil {
		b.metrics.RecordBatchSize(len(posts))
		b.metrics.SetActiveWorkers(b.concurrency)
		defer b.metrics.SetActiveWorkers(0)
	}

	startTime := time.Now()

	type job struct {
		index int
		post  *domain.Post
	}
	jobs := make(chan job, len(posts))
	results := make([]Result, len(posts))

	var wg sync.WaitGroup
	for i := 0; i < b.concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for j := range jobs {
				select {
				case <-ctx.Done():
					b.log.Warn("worker stopping, context cancelled", logger.Int("worker_id", workerID))
					results[j.index] = Result{Post: j.post, Err: ctx.Err()}
					continue
				default:
				}

				record, err := b.engine.Classify(ctx, j.post)
				results[j.index] = Result{Post: j.post, Record: record, Err: err}
			}
		}(i)
	}

	for i, post := range posts {
		jobs <- job{index: i, post: post}
	}
	close(jobs)
	wg.Wait()

	duration := time.Since(startTime)
	successCount := 0
	for i := range results {
		if results[i].Err == nil {
			successCount++
		}
	}

	b.log.Info("batch complete",
		logger.Int("total", len(posts)),
		logger.Int("success", successCount),
		logger.Int("errors", len(posts)-successCount),
		logger.Int64("duration_ms", duration.Milliseconds()),
		logger.Float64("posts_per_second", float64(len(posts))/duration.Seconds()),
	)

	return results
}

// Concurrency reports the worker pool size.
func (b *BatchProcessor) Concurrency() int {
	return b.concurrency
}
