package processor_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/b2kgrowth/leadsniffer/internal/domain"
	"github.com/b2kgrowth/leadsniffer/internal/engine"
	"github.com/b2kgrowth/leadsniffer/internal/lexicon"
	"github.com/b2kgrowth/leadsniffer/internal/logger"
	"github.com/b2kgrowth/leadsniffer/internal/processor"
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
	return engine.New(scorer, tagging.NewRuleResolver(logger.NewNop()), logger.NewNop(), engine.Config{Version: "test"})
}

func TestBatchProcessor_Process(t *testing.T) {
	batch := processor.NewBatchProcessor(newTestEngine(t), 4, nil, logger.NewNop())

	posts := make([]*domain.Post, 50)
	for i := range posts {
		posts[i] = &domain.Post{
			RedditID:     fmt.Sprintf("t3_%03d", i),
			Title:        "Should I get tested for chlamydia?",
			CommentCount: i % 25,
		}
	}

	results := batch.Process(context.Background(), posts)
	if len(results) != len(posts) {
		t.Fatalf("got %d results, want %d", len(results), len(posts))
	}

	for i, result := range results {
		if result.Post != posts[i] {
			t.Fatalf("result %d is out of order", i)
		}
		if result.Err != nil {
			t.Errorf("result %d: unexpected error %v", i, result.Err)
		}
		if result.Record == nil {
			t.Errorf("result %d: missing record", i)
		}
	}
}

func TestBatchProcessor_MalformedItemDoesNotSinkBatch(t *testing.T) {
	batch := processor.NewBatchProcessor(newTestEngine(t), 2, nil, logger.NewNop())

	posts := []*domain.Post{
		{RedditID: "good1", Title: "Where can I go for testing? Any clinic near me?", CommentCount: 1},
		{RedditID: "bad", Title: "", CommentCount: 0},
		{RedditID: "good2", Title: "Do I have herpes?", CommentCount: 3},
	}

	results := batch.Process(context.Background(), posts)
	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}

	if results[0].Err != nil || results[2].Err != nil {
		t.Error("valid posts must succeed")
	}
	if !errors.Is(results[1].Err, domain.ErrMalformedInput) {
		t.Errorf("expected ErrMalformedInput, got %v", results[1].Err)
	}
}

func TestBatchProcessor_EmptyBatch(t *testing.T) {
	batch := processor.NewBatchProcessor(newTestEngine(t), 2, nil, logger.NewNop())

	if results := batch.Process(context.Background(), nil); len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestRateLimiter_Allow(t *testing.T) {
	limiter := processor.NewRateLimiter(1, 1, logger.NewNop())

	if !limiter.Allow() {
		t.Fatal("first call should be allowed")
	}
	if limiter.Allow() {
		t.Fatal("burst exhausted, second immediate call should be denied")
	}
}

func TestRateLimiter_WaitHonorsContext(t *testing.T) {
	limiter := processor.NewRateLimiter(1, 1, logger.NewNop())
	limiter.Allow() // drain the burst

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := limiter.Wait(ctx); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}
