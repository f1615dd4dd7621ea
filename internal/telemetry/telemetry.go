// Package telemetry provides OpenTelemetry instrumentation for the lead
// scoring service. It exports Prometheus metrics and provides tracing.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/b2kgrowth/leadsniffer/internal/domain"
)

const serviceName = "leadsniffer"

// Metrics holds all lead scoring Prometheus metrics
type Metrics struct {
	// Classification metrics
	PostsClassified *prometheus.CounterVec
	PostsRejected   *prometheus.CounterVec
	LeadTagTotal    *prometheus.CounterVec
	LeadsTotal      prometheus.Counter
	ScoringDuration prometheus.Histogram
	BatchSize       prometheus.Histogram
	ActiveWorkers   prometheus.Gauge

	// LLM sidecar metrics
	LLMTagFailures     prometheus.Counter
	RepliesGenerated   prometheus.Counter
	ReplyFailures      prometheus.Counter
	LLMRequestDuration prometheus.Histogram

	// Lexicon metrics
	LexiconReloads prometheus.Counter
}

// Provider wraps telemetry providers
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// NewProvider initializes telemetry with Prometheus metrics
func NewProvider() *Provider {
	return &Provider{
		Tracer:  otel.Tracer(serviceName),
		Metrics: initMetrics(),
	}
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

func initMetrics() *Metrics {
	m := &Metrics{}
	initClassificationMetrics(m)
	initLLMMetrics(m)
	initLexiconMetrics(m)
	return m
}

func initClassificationMetrics(m *Metrics) {
	m.PostsClassified = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leadsniffer_posts_classified_total",
		Help: "Total posts classified, by priority band",
	}, []string{"band"})

	m.PostsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leadsniffer_posts_rejected_total",
		Help: "Total posts rejected at the input boundary",
	}, []string{"reason"})

	m.LeadTagTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leadsniffer_lead_tag_total",
		Help: "Total posts per assigned taxonomy tag",
	}, []string{"tag"})

	m.LeadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leadsniffer_leads_total",
		Help: "Total posts classified as leads",
	})

	m.ScoringDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "leadsniffer_scoring_duration_seconds",
		Help:    "Time to score and tag a single post",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.5, 1.0, 5.0},
	})

	m.BatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "leadsniffer_batch_size",
		Help:    "Number of posts per batch",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 200, 500},
	})

	m.ActiveWorkers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "leadsniffer_active_workers",
		Help: "Currently active batch worker goroutines",
	})
}

func initLLMMetrics(m *Metrics) {
	m.LLMTagFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leadsniffer_llm_tag_failures_total",
		Help: "Total llm tagging calls that failed closed to exclusion",
	})

	m.RepliesGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leadsniffer_replies_generated_total",
		Help: "Total outreach replies drafted",
	})

	m.ReplyFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leadsniffer_reply_failures_total",
		Help: "Total reply drafting attempts that failed",
	})

	m.LLMRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "leadsniffer_llm_request_duration_seconds",
		Help:    "Round-trip time to the llm sidecar",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
	})
}

func initLexiconMetrics(m *Metrics) {
	m.LexiconReloads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leadsniffer_lexicon_reloads_total",
		Help: "Total successful lexicon hot reloads",
	})
}

// ObserveClassification records metrics for one classified post. Satisfies
// the engine's metrics hook.
func (p *Provider) ObserveClassification(band domain.Band, tag domain.Tag, isLead bool, seconds float64) {
	p.Metrics.PostsClassified.WithLabelValues(string(band)).Inc()
	p.Metrics.LeadTagTotal.WithLabelValues(string(tag)).Inc()
	if isLead {
		p.Metrics.LeadsTotal.Inc()
	}
	p.Metrics.ScoringDuration.Observe(seconds)
}

// RecordRejection records a post rejected at the input boundary
func (p *Provider) RecordRejection(reason string) {
	p.Metrics.PostsRejected.WithLabelValues(reason).Inc()
}

// RecordBatchSize records the size of a processed batch
func (p *Provider) RecordBatchSize(size int) {
	p.Metrics.BatchSize.Observe(float64(size))
}

// SetActiveWorkers sets the current active worker count
func (p *Provider) SetActiveWorkers(count int) {
	p.Metrics.ActiveWorkers.Set(float64(count))
}

// RecordLLMRequest records one sidecar round trip
func (p *Provider) RecordLLMRequest(duration time.Duration) {
	p.Metrics.LLMRequestDuration.Observe(duration.Seconds())
}

// RecordLLMTagFailure records a tagging call that fell back to exclusion
func (p *Provider) RecordLLMTagFailure() {
	p.Metrics.LLMTagFailures.Inc()
}

// RecordReply records a reply drafting attempt
func (p *Provider) RecordReply(success bool) {
	if success {
		p.Metrics.RepliesGenerated.Inc()
		return
	}
	p.Metrics.ReplyFailures.Inc()
}

// RecordLexiconReload records a successful lexicon swap
func (p *Provider) RecordLexiconReload() {
	p.Metrics.LexiconReloads.Inc()
}

// StartSpan starts a new trace span.
// The caller is responsible for ending the span with span.End().
//
//nolint:spancheck // Caller is responsible for ending the span
func (p *Provider) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := p.Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	return ctx, span
}
