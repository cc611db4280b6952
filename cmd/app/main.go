package main

import (
	"context"
	"flag"
	"log"
	"os"

	"RateSpread/internal/service/fred"
	"RateSpread/internal/usecase"
	"RateSpread/pkg/cache"
	"RateSpread/pkg/config"
	"RateSpread/pkg/logger"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	// Load config
	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	zl, err := logger.New(&logger.Config{
		Level:  cfg.Logger.Level,
		Format: cfg.Logger.Format,
		Output: cfg.Logger.Output,
	})
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}

	source := fred.New(cfg, cache.NewMemoryCache(), zl)
	pipeline := usecase.NewPipeline(cfg, source, zl)

	if err := pipeline.Run(context.Background()); err != nil {
		zl.Error("analysis failed", logger.Error(err))
		os.Exit(1)
	}
}
