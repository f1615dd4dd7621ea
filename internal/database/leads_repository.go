package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/b2kgrowth/leadsniffer/internal/domain"
)

// ErrPostNotFound is returned when no stored post matches the given id.
var ErrPostNotFound = errors.New("post not found")

const (
	defaultPageLimit = 25
	maxPageLimit     = 100
)

// LeadsRepository handles persistence of scored posts and the lead queries
// behind the listing API.
type LeadsRepository struct {
	db *sqlx.DB
}

// NewLeadsRepository creates a leads repository.
func NewLeadsRepository(db *sqlx.DB) *LeadsRepository {
	return &LeadsRepository{db: db}
}

// ListParams filter and paginate the leads listing.
type ListParams struct {
	Page      int
	Limit     int
	Tag       domain.Tag  // optional, zero value means no filter
	Band      domain.Band // optional
	Subreddit string      // optional
	MinScore  float64
	OnlyLeads bool
}

func (p *ListParams) normalize() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = defaultPageLimit
	}
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}
}

// TagCount is one row of the per-tag lead breakdown.
type TagCount struct {
	Tag   domain.Tag `json:"tag" db:"lead_tag"`
	Count int        `json:"count" db:"count"`
}

// Summary aggregates lead volume for the dashboard.
type Summary struct {
	TotalLeads    int        `json:"total_leads"`
	LeadTagCounts []TagCount `json:"lead_tag_counts"`
}

// Upsert stores a scored post, replacing the classification fields when the
// post was already stored. Rescoring the same post is expected after lexicon
// or weight changes.
func (r *LeadsRepository) Upsert(ctx context.Context, post *domain.ScoredPost) error {
	query := `
		INSERT INTO reddit_posts (
			reddit_id, subreddit, author, title, selftext, num_comments,
			permalink, url, score, upvote_ratio, over_18, created_utc,
			fetched_at, lead_score, band, lead_tag, is_lead
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (reddit_id) DO UPDATE SET
			num_comments = EXCLUDED.num_comments,
			score        = EXCLUDED.score,
			upvote_ratio = EXCLUDED.upvote_ratio,
			lead_score   = EXCLUDED.lead_score,
			band         = EXCLUDED.band,
			lead_tag     = EXCLUDED.lead_tag,
			is_lead      = EXCLUDED.is_lead,
			updated_at   = NOW()
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		post.RedditID,
		post.Subreddit,
		post.Author,
		post.Title,
		post.Body,
		post.CommentCount,
		post.Permalink,
		post.URL,
		post.Upvotes,
		post.UpvoteRatio,
		post.Over18,
		post.CreatedUTC,
		post.FetchedAt,
		post.LeadScore,
		post.Band,
		post.LeadTag,
		post.IsLead,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert post %s: %w", post.RedditID, err)
	}
	return nil
}

// GetByRedditID retrieves a stored scored post.
func (r *LeadsRepository) GetByRedditID(ctx context.Context, redditID string) (*domain.ScoredPost, error) {
	var post domain.ScoredPost
	query := `
		SELECT reddit_id, subreddit, author, title, selftext, num_comments,
		       permalink, url, score, upvote_ratio, over_18, created_utc,
		       fetched_at, lead_score, band, lead_tag, is_lead
		FROM reddit_posts
		WHERE reddit_id = $1
	`

	if err := r.db.GetContext(ctx, &post, query, redditID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrPostNotFound, redditID)
		}
		return nil, fmt.Errorf("failed to get post %s: %w", redditID, err)
	}
	return &post, nil
}

// List returns a page of scored posts, leads first, highest score first,
// plus the total row count for the filter.
func (r *LeadsRepository) List(ctx context.Context, params ListParams) ([]*domain.ScoredPost, int, error) {
	params.normalize()

	where := "WHERE lead_score >= $1"
	args := []any{params.MinScore}

	if params.OnlyLeads {
		where += " AND is_lead = TRUE"
	}
	if params.Tag != "" {
		args = append(args, params.Tag)
		where += fmt.Sprintf(" AND lead_tag = $%d", len(args))
	}
	if params.Band != "" {
		args = append(args, params.Band)
		where += fmt.Sprintf(" AND band = $%d", len(args))
	}
	if params.Subreddit != "" {
		args = append(args, params.Subreddit)
		where += fmt.Sprintf(" AND subreddit = $%d", len(args))
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM reddit_posts " + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	args = append(args, params.Limit, (params.Page-1)*params.Limit)
	listQuery := fmt.Sprintf(`
		SELECT reddit_id, subreddit, author, title, selftext, num_comments,
		       permalink, url, score, upvote_ratio, over_18, created_utc,
		       fetched_at, lead_score, band, lead_tag, is_lead
		FROM reddit_posts
		%s
		ORDER BY is_lead DESC, lead_score DESC, created_utc DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	var posts []*domain.ScoredPost
	if err := r.db.SelectContext(ctx, &posts, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, total, nil
}

// GetSummary returns the total lead count and the per-tag breakdown.
func (r *LeadsRepository) GetSummary(ctx context.Context) (*Summary, error) {
	summary := &Summary{LeadTagCounts: []TagCount{}}

	countQuery := "SELECT COUNT(*) FROM reddit_posts WHERE is_lead = TRUE"
	if err := r.db.GetContext(ctx, &summary.TotalLeads, countQuery); err != nil {
		return nil, fmt.Errorf("failed to count leads: %w", err)
	}

	tagQuery := `
		SELECT lead_tag, COUNT(*) as count
		FROM reddit_posts
		WHERE is_lead = TRUE
		GROUP BY lead_tag
		ORDER BY count DESC
	`
	if err := r.db.SelectContext(ctx, &summary.LeadTagCounts, tagQuery); err != nil {
		return nil, fmt.Errorf("failed to get tag counts: %w", err)
	}
	return summary, nil
}
