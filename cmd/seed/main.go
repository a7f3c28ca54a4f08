package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/logging"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/seed"
)

func main() {
	file := flag.String("file", seed.DefaultPath, "YAML content document")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logCloser := logging.Setup(cfg.LogLevel, cfg.LogFile)
	defer logCloser.Close()

	content, err := seed.LoadFile(*file)
	if err != nil {
		logging.Fatal("load seed failed", "file", *file, "error", err)
	}

	ctx := context.Background()
	store, err := repository.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("connect failed", "error", err)
	}
	defer store.Close()

	// 既存のコンテンツは全て削除してから投入する
	if err := store.Content.ReplaceAll(ctx, content); err != nil {
		logging.Fatal("seed failed", "error", err)
	}
	slog.Info("database has been seeded",
		"backend", store.Backend,
		"projects", len(content.Projects),
		"experiences", len(content.Experiences),
		"achievements", len(content.Achievements),
		"social_links", len(content.SocialLinks),
	)
}
