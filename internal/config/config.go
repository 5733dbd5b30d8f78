package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

var (
	ErrMissingAPIKey = errors.New("YouTube API key is required")
)

// Config holds the application configuration
type Config struct {
	YouTubeAPIKey  string
	DBPath         string
	Port           string
	DisableScraper bool
	ScrapeTimeout  time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	apiKey := os.Getenv("YOUTUBE_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("%w: YOUTUBE_API_KEY environment variable is not set", ErrMissingAPIKey)
	}

	// Caching is optional; an empty DB_PATH disables it entirely.
	dbPath := os.Getenv("DB_PATH")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	disableScraper := false
	if v := os.Getenv("DISABLE_SCRAPER"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid DISABLE_SCRAPER value %q: %w", v, err)
		}
		disableScraper = parsed
	}

	scrapeTimeout := 20 * time.Second
	if v := os.Getenv("SCRAPE_TIMEOUT_SECONDS"); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil || seconds <= 0 {
			return nil, fmt.Errorf("invalid SCRAPE_TIMEOUT_SECONDS value %q", v)
		}
		scrapeTimeout = time.Duration(seconds) * time.Second
	}

	return &Config{
		YouTubeAPIKey:  apiKey,
		DBPath:         dbPath,
		Port:           port,
		DisableScraper: disableScraper,
		ScrapeTimeout:  scrapeTimeout,
	}, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.YouTubeAPIKey == "" {
		return fmt.Errorf("%w: YOUTUBE_API_KEY environment variable is not set", ErrMissingAPIKey)
	}
	return nil
}
