// Package engine wires the signal scorer and the tag resolver into the full
// per-post classification pipeline.
package engine

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/b2kgrowth/leadsniffer/internal/domain"
	"github.com/b2kgrowth/leadsniffer/internal/logger"
	"github.com/b2kgrowth/leadsniffer/internal/scoring"
	"github.com/b2kgrowth/leadsniffer/internal/tagging"
)

// Metrics receives one observation per classified post. Implemented by the
// telemetry package; nil disables instrumentation.
type Metrics interface {
	ObserveClassification(band domain.Band, tag domain.Tag, isLead bool, seconds float64)
}

// Engine runs validation, scoring, and tagging over a single post.
type Engine struct {
	scorer   *scoring.Scorer
	resolver tagging.Resolver
	metrics  Metrics
	tracer   trace.Tracer
	log      logger.Logger
	version  string
}

// Config holds engine construction parameters.
type Config struct {
	Version string
	Metrics Metrics
	Tracer  trace.Tracer
}

// New creates an engine. The scorer has already validated its weights, so
// construction cannot fail here.
func New(scorer *scoring.Scorer, resolver tagging.Resolver, log logger.Logger, cfg Config) *Engine {
	if log == nil {
		log = logger.NewNop()
	}
	return &Engine{
		scorer:   scorer,
		resolver: resolver,
		metrics:  cfg.Metrics,
		tracer:   cfg.Tracer,
		log:      log,
		version:  cfg.Version,
	}
}

// Classify validates, scores, and tags one post. Malformed input is the only
// error path; every structurally valid post produces a record.
func (e *Engine) Classify(ctx context.Context, post *domain.Post) (*domain.ClassificationRecord, error) {
	startTime := time.Now()

	if err := post.Validate(); err != nil {
		return nil, fmt.Errorf("classify %q: %w", postID(post), err)
	}

	if e.tracer != nil {
		var span trace.Span
		ctx, span = e.tracer.Start(ctx, "engine.classify",
			trace.WithAttributes(attribute.String("reddit_id", post.RedditID)))
		defer span.End()
	}

	scoreResult := e.scorer.Score(post)
	tag := e.resolver.Resolve(ctx, post)

	record := &domain.ClassificationRecord{
		Score:            scoreResult.Score,
		Band:             scoreResult.Band,
		Tag:              tag,
		IsLead:           tag.IsLead(),
		SubScores:        scoreResult.SubScores,
		EngineVersion:    e.version,
		TaggingMethod:    e.resolver.Method(),
		ProcessingTimeMs: time.Since(startTime).Milliseconds(),
		ClassifiedAt:     time.Now().UTC(),
	}

	if e.metrics != nil {
		e.metrics.ObserveClassification(record.Band, record.Tag, record.IsLead, time.Since(startTime).Seconds())
	}

	e.log.Info("classification complete",
		logger.String("reddit_id", post.RedditID),
		logger.Float64("score", record.Score),
		logger.String("band", string(record.Band)),
		logger.String("tag", string(record.Tag)),
		logger.Bool("is_lead", record.IsLead),
		logger.Int64("processing_time_ms", record.ProcessingTimeMs),
	)

	return record, nil
}

// ClassifyBatch classifies posts sequentially, skipping malformed items so
// one bad post never sinks the batch. The result slice is index-aligned with
// the input; skipped slots are nil.
func (e *Engine) ClassifyBatch(ctx context.Context, posts []*domain.Post) []*domain.ClassificationRecord {
	records := make([]*domain.ClassificationRecord, len(posts))

	for i, post := range posts {
		record, err := e.Classify(ctx, post)
		if err != nil {
			e.log.Error("batch classification skipped item",
				logger.Int("index", i),
				logger.String("reddit_id", postID(post)),
				logger.Error(err),
			)
			continue
		}
		records[i] = record
	}
	return records
}

// Version reports the engine version stamped into records.
func (e *Engine) Version() string {
	return e.version
}

func postID(post *domain.Post) string {
	if post == nil {
		return ""
	}
	return post.RedditID
}
