// Command httpd runs the lead scoring HTTP service.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/b2kgrowth/leadsniffer/internal/bootstrap"
	"github.com/b2kgrowth/leadsniffer/internal/config"
	"github.com/b2kgrowth/leadsniffer/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "leadsniffer: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
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

	log.Info("starting leadsniffer",
		logger.String("version", cfg.Service.Version),
		logger.Int("port", cfg.Service.Port),
		logger.String("tagging_strategy", cfg.Tagging.Strategy),
	)

	components, err := bootstrap.NewHTTPComponents(cfg, log)
	if err != nil {
		return err
	}
	defer components.Close()

	return components.Server.RunWithGracefulShutdown(context.Background())
}
