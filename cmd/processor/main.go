// Command processor scores a batch of posts from a JSON file and either
// prints the results or stores them in Postgres.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/b2kgrowth/leadsniffer/internal/bootstrap"
	"github.com/b2kgrowth/leadsniffer/internal/config"
	"github.com/b2kgrowth/leadsniffer/internal/database"
	"github.com/b2kgrowth/leadsniffer/internal/domain"
	"github.com/b2kgrowth/leadsniffer/internal/lexicon"
	"github.com/b2kgrowth/leadsniffer/internal/logger"
	"github.com/b2kgrowth/leadsniffer/internal/processor"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "processor: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	inputPath := flag.String("input", "-", "path to a JSON array of posts, or - for stdin")
	store := flag.Bool("store", false, "store scored posts in Postgres")
	flag.Parse()

	cfg, err := config.Load(config.Path("config.yml"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	posts, err := readPosts(*inputPath)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		return fmt.Errorf("no posts to score")
	}

	lexStore := lexicon.NewStore(lexicon.Default())
	eng, err := bootstrap.NewEngine(cfg, lexStore, nil, log)
	if err != nil {
		return err
	}

	var (
		leadsRepo *database.LeadsRepository
		limiter   *processor.RateLimiter
	)
	if *store {
		db, dbErr := database.Connect(database.Config{
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
		if dbErr != nil {
			return fmt.Errorf("setup database: %w", dbErr)
		}
		defer func() { _ = db.Close() }()
		leadsRepo = database.NewLeadsRepository(db)
		limiter = processor.NewRateLimiter(0, 0, log)
	}

	ctx := context.Background()
	batch := processor.NewBatchProcessor(eng, cfg.Service.Concurrency, nil, log)
	results := batch.Process(ctx, posts)

	encoder := json.NewEncoder(os.Stdout)
	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
			redditID := ""
			if result.Post != nil {
				redditID = result.Post.RedditID
			}
			log.Warn("post skipped",
				logger.String("reddit_id", redditID),
				logger.Error(result.Err),
			)
			continue
		}

		scored := domain.NewScoredPost(result.Post, result.Record)
		if leadsRepo != nil {
			if waitErr := limiter.Wait(ctx); waitErr != nil {
				return fmt.Errorf("rate limiter: %w", waitErr)
			}
			if upsertErr := leadsRepo.Upsert(ctx, scored); upsertErr != nil {
				log.Error("failed to store post",
					logger.String("reddit_id", scored.RedditID),
					logger.Error(upsertErr),
				)
			}
			continue
		}
		if encodeErr := encoder.Encode(scored); encodeErr != nil {
			return fmt.Errorf("encode result: %w", encodeErr)
		}
	}

	log.Info("batch finished",
		logger.Int("total", len(results)),
		logger.Int("failed", failed),
	)
	return nil
}

func readPosts(path string) ([]*domain.Post, error) {
	var reader io.Reader = os.Stdin
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer func() { _ = file.Close() }()
		reader = file
	}

	var posts []*domain.Post
	if err := json.NewDecoder(reader).Decode(&posts); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	return posts, nil
}
