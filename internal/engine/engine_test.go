package engine_test

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/embedded"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/b2kgrowth/leadsniffer/internal/domain"
	"github.com/b2kgrowth/leadsniffer/internal/engine"
	"github.com/b2kgrowth/leadsniffer/internal/lexicon"
	"github.com/b2kgrowth/leadsniffer/internal/logger"
	"github.com/b2kgrowth/leadsniffer/internal/scoring"
	"github.com/b2kgrowth/leadsniffer/internal/tagging"
)

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()

	store := lexicon.NewStore(lexicon.Default())
	scorer, err := scoring.NewScorer(store, scoring.DefaultWeights(), logger.NewNop())
	if err != nil {
		t.Fatalf("create scorer: %v", err)
	}
	resolver := tagging.NewRuleResolver(logger.NewNop())
	return engine.New(scorer, resolver, logger.NewNop(), engine.Config{Version: "test"})
}

func TestEngine_Classify(t *testing.T) {
	eng := newTestEngine(t)

	post := &domain.Post{
		RedditID:     "t3_abc",
		Title:        "Should I get tested after unprotected sex with a new partner last night? Freaking out.",
		CommentCount: 12,
	}

	record, err := eng.Classify(context.Background(), post)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if record.Score != 60 {
		t.Errorf("score: got %v, want 60", record.Score)
	}
	if record.Band != domain.BandMedium {
		t.Errorf("band: got %s, want MEDIUM", record.Band)
	}
	if record.Tag != domain.TagUrgentExposure {
		t.Errorf("tag: got %s, want urgent_exposure", record.Tag)
	}
	if !record.IsLead {
		t.Error("urgent_exposure must be a lead")
	}
	if len(record.SubScores) != 5 {
		t.Errorf("sub-scores: got %d, want 5", len(record.SubScores))
	}
	if record.EngineVersion != "test" {
		t.Errorf("engine version: got %s", record.EngineVersion)
	}
	if record.TaggingMethod != domain.TaggingRuleBased {
		t.Errorf("tagging method: got %s", record.TaggingMethod)
	}
	if record.ClassifiedAt.IsZero() {
		t.Error("classified_at not set")
	}
}

func TestEngine_Classify_MalformedInput(t *testing.T) {
	eng := newTestEngine(t)

	tests := []struct {
		name string
		post *domain.Post
	}{
		{"nil post", nil},
		{"empty title", &domain.Post{Body: "text", CommentCount: 3}},
		{"negative comments", &domain.Post{Title: "ok", CommentCount: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := eng.Classify(context.Background(), tt.post)
			if !errors.Is(err, domain.ErrMalformedInput) {
				t.Fatalf("expected ErrMalformedInput, got %v", err)
			}
		})
	}
}

func TestEngine_Classify_NonLeadGetsExclusionTag(t *testing.T) {
	eng := newTestEngine(t)

	record, err := eng.Classify(context.Background(), &domain.Post{
		Title: "Weekly community update and site news",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.IsLead {
		t.Error("informational post must not be a lead")
	}
	if record.Tag != domain.TagExcludeInfo {
		t.Errorf("tag: got %s, want exclude_info", record.Tag)
	}
}

type recordingTracer struct {
	embedded.Tracer
	spans []string
}

func (r *recordingTracer) Start(ctx context.Context, name string, _ ...trace.SpanStartOption) (context.Context, trace.Span) {
	r.spans = append(r.spans, name)
	return ctx, noop.Span{}
}

func TestEngine_Classify_StartsSpan(t *testing.T) {
	store := lexicon.NewStore(lexicon.Default())
	scorer, err := scoring.NewScorer(store, scoring.DefaultWeights(), logger.NewNop())
	if err != nil {
		t.Fatalf("create scorer: %v", err)
	}

	tracer := &recordingTracer{}
	eng := engine.New(scorer, tagging.NewRuleResolver(logger.NewNop()), logger.NewNop(), engine.Config{
		Version: "test",
		Tracer:  tracer,
	})

	if _, err := eng.Classify(context.Background(), &domain.Post{
		RedditID: "t3_abc",
		Title:    "Should I get tested for chlamydia?",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tracer.spans) != 1 || tracer.spans[0] != "engine.classify" {
		t.Errorf("spans: got %v, want [engine.classify]", tracer.spans)
	}

	// Malformed posts are rejected before any span is opened.
	if _, err := eng.Classify(context.Background(), nil); !errors.Is(err, domain.ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
	if len(tracer.spans) != 1 {
		t.Errorf("spans after rejection: got %d, want 1", len(tracer.spans))
	}
}

func TestEngine_ClassifyBatch_SkipsMalformed(t *testing.T) {
	eng := newTestEngine(t)

	posts := []*domain.Post{
		{RedditID: "a", Title: "Should I get tested for chlamydia?", CommentCount: 2},
		{RedditID: "b", Title: "", CommentCount: 1},
		{RedditID: "c", Title: "My test results came back, help me read them", CommentCount: 5},
	}

	records := eng.ClassifyBatch(context.Background(), posts)
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if records[0] == nil || records[2] == nil {
		t.Error("valid posts must produce records")
	}
	if records[1] != nil {
		t.Error("malformed post must be skipped")
	}
}
