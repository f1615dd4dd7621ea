package domain

import (
	"errors"
	"fmt"
	"time"
)

// Post represents a forum post submitted for lead scoring.
// This is the input to the engine; everything beyond Title, Body and
// CommentCount is pass-through metadata that never influences scoring.
type Post struct {
	// Core identifiers
	RedditID  string `json:"reddit_id" db:"reddit_id"`
	Subreddit string `json:"subreddit" db:"subreddit"`
	Author    string `json:"author" db:"author"`

	// Scored fields
	Title        string `json:"title" db:"title"`
	Body         string `json:"body,omitempty" db:"selftext"` // selftext; may be empty
	CommentCount int    `json:"comment_count" db:"num_comments"`

	// Pass-through metadata
	Permalink   string     `json:"permalink,omitempty" db:"permalink"`
	URL         string     `json:"url,omitempty" db:"url"`
	Upvotes     int        `json:"upvotes" db:"score"` // Reddit's own score, not ours
	UpvoteRatio float64    `json:"upvote_ratio,omitempty" db:"upvote_ratio"`
	Over18      bool       `json:"over_18,omitempty" db:"over_18"`
	CreatedUTC  int64      `json:"created_utc,omitempty" db:"created_utc"`
	FetchedAt   *time.Time `json:"fetched_at,omitempty" db:"fetched_at"`
}

// ErrMalformedInput is returned when a post fails boundary validation.
// Detection never runs on a malformed post.
var ErrMalformedInput = errors.New("malformed input")

// Validate rejects posts the engine must not score: a missing title or a
// negative comment count. An empty body with a non-empty title is valid.
func (p *Post) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: nil post", ErrMalformedInput)
	}
	if p.Title == "" {
		return fmt.Errorf("%w: missing title", ErrMalformedInput)
	}
	if p.CommentCount < 0 {
		return fmt.Errorf("%w: negative comment_count %d", ErrMalformedInput, p.CommentCount)
	}
	return nil
}

// Corpus returns the text the detectors operate on: title and body joined.
// The engagement detector ignores this and reads CommentCount directly.
func (p *Post) Corpus() string {
	if p.Body == "" {
		return p.Title
	}
	return p.Title + " " + p.Body
}
