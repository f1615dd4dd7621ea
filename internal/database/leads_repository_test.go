package database_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/b2kgrowth/leadsniffer/internal/database"
	"github.com/b2kgrowth/leadsniffer/internal/domain"
)

func newMockRepo(t *testing.T) (*database.LeadsRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("create sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return database.NewLeadsRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func postColumns() []string {
	return []string{
		"reddit_id", "subreddit", "author", "title", "selftext", "num_comments",
		"permalink", "url", "score", "upvote_ratio", "over_18", "created_utc",
		"fetched_at", "lead_score", "band", "lead_tag", "is_lead",
	}
}

func sampleRow(rows *sqlmock.Rows, redditID string, score float64, tag string, isLead bool) *sqlmock.Rows {
	return rows.AddRow(
		redditID, "STD", "throwaway123", "Condom broke last night", "freaking out", 4,
		"/r/STD/comments/abc", "", 12, 0.91, true, int64(1700000000), nil,
		score, "HIGH", tag, isLead,
	)
}

func TestUpsert(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reddit_posts")).
		WithArgs(
			"t3_abc", "STD", "throwaway123", "Condom broke last night", "freaking out", 4,
			"/r/STD/comments/abc", "", 12, 0.91, true, int64(1700000000), nil,
			72.5, domain.BandHigh, domain.TagUrgentExposure, true,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	post := &domain.ScoredPost{
		Post: domain.Post{
			RedditID:     "t3_abc",
			Subreddit:    "STD",
			Author:       "throwaway123",
			Title:        "Condom broke last night",
			Body:         "freaking out",
			CommentCount: 4,
			Permalink:    "/r/STD/comments/abc",
			Upvotes:      12,
			UpvoteRatio:  0.91,
			Over18:       true,
			CreatedUTC:   1700000000,
		},
		LeadScore: 72.5,
		Band:      domain.BandHigh,
		LeadTag:   domain.TagUrgentExposure,
		IsLead:    true,
	}

	if err := repo.Upsert(context.Background(), post); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUpsert_DatabaseError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reddit_posts")).
		WillReturnError(errors.New("connection refused"))

	post := &domain.ScoredPost{Post: domain.Post{RedditID: "t3_abc", Title: "x"}}
	if err := repo.Upsert(context.Background(), post); err == nil {
		t.Fatal("expected error")
	}
}

func TestGetByRedditID(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT reddit_id")).
		WithArgs("t3_abc").
		WillReturnRows(sampleRow(sqlmock.NewRows(postColumns()), "t3_abc", 72.5, "urgent_exposure", true))

	post, err := repo.GetByRedditID(context.Background(), "t3_abc")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if post.RedditID != "t3_abc" || post.LeadScore != 72.5 {
		t.Errorf("unexpected post: %+v", post)
	}
	if post.LeadTag != domain.TagUrgentExposure || !post.IsLead {
		t.Errorf("classification fields: tag=%s is_lead=%v", post.LeadTag, post.IsLead)
	}
}

func TestGetByRedditID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT reddit_id")).
		WithArgs("t3_missing").
		WillReturnRows(sqlmock.NewRows(postColumns()))

	_, err := repo.GetByRedditID(context.Background(), "t3_missing")
	if !errors.Is(err, database.ErrPostNotFound) {
		t.Fatalf("error: got %v, want ErrPostNotFound", err)
	}
}

func TestList(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM reddit_posts WHERE lead_score >= $1")).
		WithArgs(float64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	rows := sqlmock.NewRows(postColumns())
	sampleRow(rows, "t3_one", 72.5, "urgent_exposure", true)
	sampleRow(rows, "t3_two", 55.0, "test_guidance", true)
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY is_lead DESC, lead_score DESC, created_utc DESC")).
		WithArgs(float64(0), 25, 0).
		WillReturnRows(rows)

	posts, total, err := repo.List(context.Background(), database.ListParams{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(posts) != 2 {
		t.Errorf("got total=%d len=%d, want 2/2", total, len(posts))
	}
	if posts[0].RedditID != "t3_one" {
		t.Errorf("order: first post %s", posts[0].RedditID)
	}
}

func TestList_Filters(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WithArgs(50.0, domain.TagWindowPeriod, domain.BandMedium, "STD").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("is_lead = TRUE")).
		WithArgs(50.0, domain.TagWindowPeriod, domain.BandMedium, "STD", 10, 10).
		WillReturnRows(sqlmock.NewRows(postColumns()))

	_, total, err := repo.List(context.Background(), database.ListParams{
		Page:      2,
		Limit:     10,
		Tag:       domain.TagWindowPeriod,
		Band:      domain.BandMedium,
		Subreddit: "STD",
		MinScore:  50.0,
		OnlyLeads: true,
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 0 {
		t.Errorf("total: got %d", total)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestList_LimitClamped(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WithArgs(float64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("LIMIT")).
		WithArgs(float64(0), 100, 0).
		WillReturnRows(sqlmock.NewRows(postColumns()))

	if _, _, err := repo.List(context.Background(), database.ListParams{Limit: 5000}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestGetSummary(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM reddit_posts WHERE is_lead = TRUE")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))
	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY lead_tag")).
		WillReturnRows(sqlmock.NewRows([]string{"lead_tag", "count"}).
			AddRow("urgent_exposure", 25).
			AddRow("window_period", 17))

	summary, err := repo.GetSummary(context.Background())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.TotalLeads != 42 {
		t.Errorf("total: got %d", summary.TotalLeads)
	}
	if len(summary.LeadTagCounts) != 2 || summary.LeadTagCounts[0].Tag != domain.TagUrgentExposure {
		t.Errorf("tag counts: %+v", summary.LeadTagCounts)
	}
}
