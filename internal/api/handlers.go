package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/b2kgrowth/leadsniffer/internal/database"
	"github.com/b2kgrowth/leadsniffer/internal/domain"
	"github.com/b2kgrowth/leadsniffer/internal/engine"
	"github.com/b2kgrowth/leadsniffer/internal/llmclient"
	"github.com/b2kgrowth/leadsniffer/internal/logger"
	"github.com/b2kgrowth/leadsniffer/internal/processor"
)

const maxBatchSize = 500

// ReplyGenerator is the slice of the llm client used for outreach drafting.
type ReplyGenerator interface {
	GenerateReply(ctx context.Context, title, body, tag string) (*llmclient.GenerateReplyResponse, error)
}

// Pinger reports database liveness for the readiness probe. Satisfied by
// *sqlx.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Metrics is the slice of the telemetry provider the handlers use.
type Metrics interface {
	RecordRejection(reason string)
	RecordReply(success bool)
}

// Handler handles HTTP requests for the lead scoring API
type Handler struct {
	engine       *engine.Engine
	batch        *processor.BatchProcessor
	leads        *database.LeadsRepository
	storeLimiter *processor.RateLimiter
	replies      ReplyGenerator
	db           Pinger
	metrics      Metrics
	log          logger.Logger
	version      string
}

// HandlerConfig collects the handler's collaborators. Leads, StoreLimiter,
// Replies, DB, and Metrics may be nil; the matching endpoints then degrade
// gracefully.
type HandlerConfig struct {
	Engine       *engine.Engine
	Batch        *processor.BatchProcessor
	Leads        *database.LeadsRepository
	StoreLimiter *processor.RateLimiter
	Replies      ReplyGenerator
	DB           Pinger
	Metrics      Metrics
	Log          logger.Logger
	Version      string
}

// NewHandler creates a new API handler
func NewHandler(cfg HandlerConfig) *Handler {
	log := cfg.Log
	if log == nil {
		log = logger.NewNop()
	}
	return &Handler{
		engine:       cfg.Engine,
		batch:        cfg.Batch,
		leads:        cfg.Leads,
		storeLimiter: cfg.StoreLimiter,
		replies:      cfg.Replies,
		db:           cfg.DB,
		metrics:      cfg.Metrics,
		log:          log,
		version:      cfg.Version,
	}
}

// ClassifyRequest represents a single classification request
type ClassifyRequest struct {
	Post *domain.Post `json:"post" binding:"required"`
}

// BatchClassifyRequest represents a batch classification request
type BatchClassifyRequest struct {
	Posts []*domain.Post `json:"posts" binding:"required,min=1,max=500"`
}

// Classify handles POST /api/v1/classify
func (h *Handler) Classify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid classification request", logger.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.engine.Classify(c.Request.Context(), req.Post)
	if err != nil {
		if errors.Is(err, domain.ErrMalformedInput) {
			if h.metrics != nil {
				h.metrics.RecordRejection("malformed_input")
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Error("classification failed",
			logger.String("reddit_id", req.Post.RedditID),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "classification failed"})
		return
	}

	h.storeScored(c.Request.Context(), req.Post, record)

	c.JSON(http.StatusOK, ClassifyResponse{Post: req.Post, Result: record})
}

// ClassifyBatch handles POST /api/v1/classify/batch
func (h *Handler) ClassifyBatch(c *gin.Context) {
	var req BatchClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid batch classification request", logger.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Posts) > maxBatchSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "batch too large"})
		return
	}

	results := h.batch.Process(c.Request.Context(), req.Posts)

	resp := BatchClassifyResponse{
		Results: make([]BatchItemResponse, len(results)),
		Total:   len(results),
	}
	for i, result := range results {
		item := BatchItemResponse{}
		if result.Post != nil {
			item.RedditID = result.Post.RedditID
		}
		if result.Err != nil {
			item.Error = result.Err.Error()
			resp.Failed++
			if h.metrics != nil && errors.Is(result.Err, domain.ErrMalformedInput) {
				h.metrics.RecordRejection("malformed_input")
			}
		} else {
			item.Result = result.Record
			resp.Success++
			h.storeScored(c.Request.Context(), result.Post, result.Record)
		}
		resp.Results[i] = item
	}

	h.log.Info("batch classification completed",
		logger.Int("total", resp.Total),
		logger.Int("success", resp.Success),
		logger.Int("failed", resp.Failed),
	)

	c.JSON(http.StatusOK, resp)
}

// ListLeads handles GET /api/v1/leads
func (h *Handler) ListLeads(c *gin.Context) {
	if h.leads == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "lead storage not configured"})
		return
	}

	params, err := parseListParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	posts, total, err := h.leads.List(c.Request.Context(), params)
	if err != nil {
		h.log.Error("failed to list leads", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list leads"})
		return
	}
	if posts == nil {
		posts = []*domain.ScoredPost{}
	}

	c.JSON(http.StatusOK, LeadsListResponse{
		Data:       posts,
		Pagination: NewPagination(params.Page, params.Limit, total),
	})
}

// GetSummary handles GET /api/v1/leads/summary
func (h *Handler) GetSummary(c *gin.Context) {
	if h.leads == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "lead storage not configured"})
		return
	}

	summary, err := h.leads.GetSummary(c.Request.Context())
	if err != nil {
		h.log.Error("failed to get lead summary", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get summary"})
		return
	}

	counts := make(map[domain.Tag]int, len(summary.LeadTagCounts))
	for _, tc := range summary.LeadTagCounts {
		counts[tc.Tag] = tc.Count
	}

	c.JSON(http.StatusOK, SummaryResponse{
		TotalLeads:    summary.TotalLeads,
		LeadTagCounts: counts,
	})
}

// GetPost handles GET /api/v1/posts/:reddit_id
func (h *Handler) GetPost(c *gin.Context) {
	if h.leads == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "lead storage not configured"})
		return
	}

	redditID := c.Param("reddit_id")
	post, err := h.leads.GetByRedditID(c.Request.Context(), redditID)
	if err != nil {
		if errors.Is(err, database.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		h.log.Error("failed to get post",
			logger.String("reddit_id", redditID),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get post"})
		return
	}

	c.JSON(http.StatusOK, post)
}

// GenerateReply handles POST /api/v1/replies/:reddit_id
func (h *Handler) GenerateReply(c *gin.Context) {
	if h.leads == nil || h.replies == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "reply generation not configured"})
		return
	}

	redditID := c.Param("reddit_id")
	post, err := h.leads.GetByRedditID(c.Request.Context(), redditID)
	if err != nil {
		if errors.Is(err, database.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		h.log.Error("failed to load post for reply",
			logger.String("reddit_id", redditID),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load post"})
		return
	}

	if !post.IsLead {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "post is not a lead"})
		return
	}

	reply, err := h.replies.GenerateReply(c.Request.Context(), post.Title, post.Body, string(post.LeadTag))
	if err != nil {
		if h.metrics != nil {
			h.metrics.RecordReply(false)
		}
		h.log.Warn("reply generation failed",
			logger.String("reddit_id", redditID),
			logger.Error(err),
		)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "reply generation unavailable"})
		return
	}
	if h.metrics != nil {
		h.metrics.RecordReply(true)
	}

	c.JSON(http.StatusOK, ReplyResponse{
		RedditID:  redditID,
		LeadTag:   string(post.LeadTag),
		ReplyText: reply.ReplyText,
		WordCount: reply.WordCount,
	})
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "leadsniffer",
		"version": h.version,
	})
}

// ReadyCheck handles GET /ready
func (h *Handler) ReadyCheck(c *gin.Context) {
	checks := gin.H{}
	ready := true

	if h.db != nil {
		if err := h.db.PingContext(c.Request.Context()); err != nil {
			checks["postgresql"] = err.Error()
			ready = false
		} else {
			checks["postgresql"] = "ok"
		}
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "checks": checks})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "checks": checks})
}

// storeScored persists a classified post, pacing writes through the store
// limiter when one is configured. Storage failures are logged, not surfaced;
// classification results are still returned to the caller.
func (h *Handler) storeScored(ctx context.Context, post *domain.Post, record *domain.ClassificationRecord) {
	if h.leads == nil {
		return
	}
	if h.storeLimiter != nil {
		if err := h.storeLimiter.Wait(ctx); err != nil {
			h.log.Warn("skipping store, rate limiter wait failed",
				logger.String("reddit_id", post.RedditID),
				logger.Error(err),
			)
			return
		}
	}
	scored := domain.NewScoredPost(post, record)
	if err := h.leads.Upsert(ctx, scored); err != nil {
		h.log.Warn("failed to store scored post",
			logger.String("reddit_id", post.RedditID),
			logger.Error(err),
		)
	}
}

func parseListParams(c *gin.Context) (database.ListParams, error) {
	params := database.ListParams{}

	var err error
	if params.Page, err = intQuery(c, "page", 1); err != nil {
		return params, err
	}
	if params.Limit, err = intQuery(c, "limit", 25); err != nil {
		return params, err
	}

	if raw := c.Query("min_score"); raw != "" {
		minScore, parseErr := strconv.ParseFloat(raw, 64)
		if parseErr != nil {
			return params, errors.New("invalid min_score")
		}
		params.MinScore = minScore
	}
	if raw := c.Query("tag"); raw != "" {
		tag, ok := domain.ParseTag(raw)
		if !ok {
			return params, errors.New("unknown tag")
		}
		params.Tag = tag
	}
	if raw := c.Query("band"); raw != "" {
		switch band := domain.Band(raw); band {
		case domain.BandHigh, domain.BandMedium, domain.BandLow, domain.BandNone:
			params.Band = band
		default:
			return params, errors.New("unknown band")
		}
	}
	params.Subreddit = c.Query("subreddit")
	params.OnlyLeads = c.Query("only_leads") == "true"

	return params, nil
}

func intQuery(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, errors.New("invalid " + name)
	}
	return value, nil
}
