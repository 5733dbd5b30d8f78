package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/yt-metrics/internal/analyzer"
	"github.com/yt-metrics/internal/api"
	"github.com/yt-metrics/internal/cache"
	"github.com/yt-metrics/internal/config"
	"github.com/yt-metrics/internal/scraper"
	"github.com/yt-metrics/internal/youtube"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx := context.Background()
	client, err := youtube.NewClient(ctx, cfg.YouTubeAPIKey, log.With().Str("component", "youtube").Logger())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize YouTube client")
	}

	var linkScraper analyzer.LinkScraper
	if !cfg.DisableScraper {
		linkScraper = scraper.New(true, cfg.ScrapeTimeout, log.With().Str("component", "scraper").Logger())
	}

	// The cache is optional: a failed connection degrades to uncached
	// operation rather than aborting startup.
	var store *cache.Store
	if cfg.DBPath != "" {
		store, err = cache.Open(cfg.DBPath, log.With().Str("component", "cache").Logger())
		if err != nil {
			log.Warn().Err(err).Msg("Cache unavailable, continuing without it")
			store = nil
		} else {
			defer store.Close()
		}
	}

	a := analyzer.New(client, linkScraper, log.With().Str("component", "analyzer").Logger())
	server := api.NewServer(a, store, log.With().Str("component", "api").Logger())

	log.Info().Str("port", cfg.Port).Msg("Server starting")
	if err := server.Start(cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
