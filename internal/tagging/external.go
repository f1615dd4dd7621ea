package tagging

import (
	"context"
	"time"

	"github.com/b2kgrowth/leadsniffer/internal/domain"
	"github.com/b2kgrowth/leadsniffer/internal/llmclient"
	"github.com/b2kgrowth/leadsniffer/internal/logger"
)

// Classifier is the slice of the language-model client the external resolver
// needs.
type Classifier interface {
	Classify(ctx context.Context, title, body string) (*llmclient.ClassifyResponse, error)
}

// Metrics receives one observation per sidecar call. Implemented by the
// telemetry provider; nil disables instrumentation.
type Metrics interface {
	RecordLLMRequest(duration time.Duration)
	RecordLLMTagFailure()
}

// ExternalResolver delegates tagging to the language-model sidecar. Every
// failure mode, timeout, unreachable service, or a tag outside the taxonomy,
// resolves to exclude_info so the pipeline keeps moving.
type ExternalResolver struct {
	client  Classifier
	metrics Metrics
	log     logger.Logger
}

// NewExternalResolver wraps client in the fail-closed tagging contract.
func NewExternalResolver(client Classifier, metrics Metrics, log logger.Logger) *ExternalResolver {
	if log == nil {
		log = logger.NewNop()
	}
	return &ExternalResolver{client: client, metrics: metrics, log: log}
}

// Resolve calls the sidecar and validates its answer against the taxonomy.
func (r *ExternalResolver) Resolve(ctx context.Context, post *domain.Post) domain.Tag {
	start := time.Now()
	resp, err := r.client.Classify(ctx, post.Title, post.Body)
	if r.metrics != nil {
		r.metrics.RecordLLMRequest(time.Since(start))
	}
	if err != nil {
		if r.metrics != nil {
			r.metrics.RecordLLMTagFailure()
		}
		r.log.Warn("llm tagging failed, falling back to exclusion",
			logger.String("reddit_id", post.RedditID),
			logger.Error(err))
		return domain.TagExcludeInfo
	}

	tag, ok := domain.ParseTag(resp.Tag)
	if !ok {
		if r.metrics != nil {
			r.metrics.RecordLLMTagFailure()
		}
		r.log.Warn("llm returned tag outside taxonomy",
			logger.String("reddit_id", post.RedditID),
			logger.String("raw_tag", resp.Tag))
	}
	return tag
}

// Method identifies the tagging strategy in classification records.
func (r *ExternalResolver) Method() string {
	return domain.TaggingLLM
}
