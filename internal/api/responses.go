package api

import (
	"github.com/b2kgrowth/leadsniffer/internal/domain"
)

// Pagination describes the page window of a list response.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalCount int  `json:"total_count"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// NewPagination computes the window for page/limit over totalCount rows.
func NewPagination(page, limit, totalCount int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (totalCount + limit - 1) / limit
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		TotalCount: totalCount,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1 && totalCount > 0,
	}
}

// LeadsListResponse is the paginated leads listing.
type LeadsListResponse struct {
	Data       []*domain.ScoredPost `json:"data"`
	Pagination Pagination           `json:"pagination"`
}

// ClassifyResponse pairs the input post with its classification record.
type ClassifyResponse struct {
	Post   *domain.Post                 `json:"post"`
	Result *domain.ClassificationRecord `json:"result"`
}

// BatchItemResponse is one element of a batch response, index-aligned with
// the request. Failed items carry Error and a nil Result.
type BatchItemResponse struct {
	RedditID string                       `json:"reddit_id,omitempty"`
	Result   *domain.ClassificationRecord `json:"result,omitempty"`
	Error    string                       `json:"error,omitempty"`
}

// BatchClassifyResponse summarizes a batch run.
type BatchClassifyResponse struct {
	Results []BatchItemResponse `json:"results"`
	Total   int                 `json:"total"`
	Success int                 `json:"success"`
	Failed  int                 `json:"failed"`
}

// SummaryResponse is the dashboard lead summary. LeadTagCounts is a
// tag-to-count map over lead posts only.
type SummaryResponse struct {
	TotalLeads    int                `json:"total_leads"`
	LeadTagCounts map[domain.Tag]int `json:"lead_tag_counts"`
}

// ReplyResponse carries a drafted outreach reply.
type ReplyResponse struct {
	RedditID  string `json:"reddit_id"`
	LeadTag   string `json:"lead_tag"`
	ReplyText string `json:"reply_text"`
	WordCount int    `json:"word_count"`
}
