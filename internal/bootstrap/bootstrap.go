// Package bootstrap assembles the service components from configuration.
package bootstrap

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/b2kgrowth/leadsniffer/internal/api"
	"github.com/b2kgrowth/leadsniffer/internal/config"
	"github.com/b2kgrowth/leadsniffer/internal/database"
	"github.com/b2kgrowth/leadsniffer/internal/engine"
	"github.com/b2kgrowth/leadsniffer/internal/lexicon"
	"github.com/b2kgrowth/leadsniffer/internal/llmclient"
	"github.com/b2kgrowth/leadsniffer/internal/logger"
	"github.com/b2kgrowth/leadsniffer/internal/processor"
	"github.com/b2kgrowth/leadsniffer/internal/scoring"
	"github.com/b2kgrowth/leadsniffer/internal/tagging"
	"github.com/b2kgrowth/leadsniffer/internal/telemetry"
)

const defaultHTTPTimeout = 30 * time.Second

// HTTPComponents holds everything the httpd entrypoint runs.
type HTTPComponents struct {
	DB        *sqlx.DB
	Lexicon   *lexicon.Store
	Engine    *engine.Engine
	Handler   *api.Handler
	Server    *api.Server
	Telemetry *telemetry.Provider
}

// NewEngine builds the classification engine from configuration: lexicon
// store, weighted scorer, and the configured tag resolver. Invalid combiner
// weights abort startup. tel may be nil for uninstrumented runs.
func NewEngine(cfg *config.Config, store *lexicon.Store, tel *telemetry.Provider, log logger.Logger) (*engine.Engine, error) {
	weights := scoring.Weights{
		Keyword:    cfg.Scoring.KeywordWeight,
		Question:   cfg.Scoring.QuestionWeight,
		Urgency:    cfg.Scoring.UrgencyWeight,
		Geographic: cfg.Scoring.GeographicWeight,
		Engagement: cfg.Scoring.EngagementWeight,
	}

	scorer, err := scoring.NewScorer(store, weights, log)
	if err != nil {
		return nil, fmt.Errorf("create scorer: %w", err)
	}

	resolver, err := newResolver(cfg, tel, log)
	if err != nil {
		return nil, err
	}

	engCfg := engine.Config{Version: cfg.Service.Version}
	if tel != nil {
		engCfg.Metrics = tel
		engCfg.Tracer = tel.Tracer
	}
	return engine.New(scorer, resolver, log, engCfg), nil
}

func newResolver(cfg *config.Config, tel *telemetry.Provider, log logger.Logger) (tagging.Resolver, error) {
	switch cfg.Tagging.Strategy {
	case "rules", "":
		return tagging.NewRuleResolver(log), nil
	case "llm":
		if cfg.Tagging.LLMBaseURL == "" {
			return nil, fmt.Errorf("tagging strategy %q requires llm_base_url", cfg.Tagging.Strategy)
		}
		client := llmclient.NewClient(cfg.Tagging.LLMBaseURL,
			llmclient.WithRateLimit(float64(cfg.Tagging.RPS)),
			llmclient.WithHTTPClient(&http.Client{Timeout: cfg.Tagging.Timeout}),
		)
		var metrics tagging.Metrics
		if tel != nil {
			metrics = tel
		}
		return tagging.NewExternalResolver(client, metrics, log), nil
	default:
		return nil, fmt.Errorf("unknown tagging strategy %q", cfg.Tagging.Strategy)
	}
}

// NewHTTPComponents creates all components for the HTTP server.
func NewHTTPComponents(cfg *config.Config, log logger.Logger) (*HTTPComponents, error) {
	tel := telemetry.NewProvider()

	store := lexicon.NewStore(lexicon.Default())
	log.Info("lexicon compiled", logger.String("version", store.Current().Version()))

	eng, err := NewEngine(cfg, store, tel, log)
	if err != nil {
		return nil, err
	}

	db, err := database.Connect(database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxConnections,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}
	log.Info("connected to PostgreSQL",
		logger.String("host", cfg.Database.Host),
		logger.String("database", cfg.Database.Database),
	)

	leadsRepo := database.NewLeadsRepository(db)
	storeLimiter := processor.NewRateLimiter(0, 0, log)
	batch := processor.NewBatchProcessor(eng, cfg.Service.Concurrency, tel, log)

	var replies api.ReplyGenerator
	if cfg.Tagging.LLMBaseURL != "" {
		replies = llmclient.NewClient(cfg.Tagging.LLMBaseURL,
			llmclient.WithRateLimit(float64(cfg.Tagging.RPS)),
			llmclient.WithHTTPClient(&http.Client{Timeout: cfg.Tagging.Timeout}),
		)
	}

	handler := api.NewHandler(api.HandlerConfig{
		Engine:       eng,
		Batch:        batch,
		Leads:        leadsRepo,
		StoreLimiter: storeLimiter,
		Replies:      replies,
		DB:           db,
		Metrics:      tel,
		Log:          log,
		Version:      cfg.Service.Version,
	})

	server := api.NewServer(api.ServerConfig{
		Port:         cfg.Service.Port,
		ReadTimeout:  defaultHTTPTimeout,
		WriteTimeout: defaultHTTPTimeout,
		Debug:        cfg.Service.Debug,
	}, log, func(router *gin.Engine) {
		api.SetupRoutes(router, handler, cfg.Auth.JWTSecret, tel.Handler())
	})

	return &HTTPComponents{
		DB:        db,
		Lexicon:   store,
		Engine:    eng,
		Handler:   handler,
		Server:    server,
		Telemetry: tel,
	}, nil
}

// Close releases component resources.
func (c *HTTPComponents) Close() {
	if c.DB != nil {
		_ = c.DB.Close()
	}
}
