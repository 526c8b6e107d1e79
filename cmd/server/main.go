package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Vizlook/youtube-search/internal/cache"
	"github.com/Vizlook/youtube-search/internal/config"
	"github.com/Vizlook/youtube-search/internal/core"
	"github.com/Vizlook/youtube-search/internal/core/retrieval"
	"github.com/Vizlook/youtube-search/internal/llm"
	"github.com/Vizlook/youtube-search/internal/logger"
	"github.com/Vizlook/youtube-search/internal/server"
	"github.com/Vizlook/youtube-search/internal/vizlook"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logr, err := logger.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	llmClient, err := llm.NewClient(ctx, cfg.LLM, logr)
	if err != nil {
		logr.WithError(err).Fatal("Failed to initialize LLM client")
	}
	if closer, ok := llmClient.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	var provider retrieval.Provider = vizlook.NewClient(cfg.Search, logr)
	if cfg.Cache.Enabled {
		cached := cache.New(ctx, provider, cfg.Cache, logr)
		defer cached.Close()
		provider = cached
	}

	pipeline := core.NewPipeline(llmClient, provider, cfg, logr)
	srv := server.NewServer(pipeline, cfg.Server, logr)

	logr.WithFields(logrus.Fields{
		"llm_provider": cfg.LLM.Provider,
		"llm_model":    cfg.LLM.Model,
		"cache":        cfg.Cache.Enabled,
	}).Info("Configuration loaded")

	if err := srv.Run(ctx); err != nil {
		logr.WithError(err).Fatal("Server stopped")
	}
}
