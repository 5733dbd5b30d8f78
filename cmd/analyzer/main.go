// Command analyzer runs channel analysis from the terminal and writes the
// report to a JSON file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/yt-metrics/internal/analyzer"
	"github.com/yt-metrics/internal/config"
	"github.com/yt-metrics/internal/export"
	"github.com/yt-metrics/internal/models"
	"github.com/yt-metrics/internal/scraper"
	"github.com/yt-metrics/internal/youtube"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found")
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
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
	a := analyzer.New(client, linkScraper, log.With().Str("component", "analyzer").Logger())

	switch os.Args[1] {
	case "channel":
		runChannel(ctx, a, log, os.Args[2:])
	case "search":
		runSearch(ctx, a, log, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage:
  analyzer channel --id ID | --username NAME | --handle HANDLE [flags]
  analyzer search QUERY [flags]

Channel flags:
  --days N            only include videos from the last N days
  --start-date DATE   only include videos published on or after DATE (YYYY-MM-DD)
  --end-date DATE     only include videos published on or before DATE (YYYY-MM-DD)
  --no-links          skip about-page link extraction
  --output FILE       report filename (default: timestamped)

Search flags:
  --max-results N     channels to analyze (default 3, max 10)
  plus the channel flags above`)
}

func runChannel(ctx context.Context, a *analyzer.Analyzer, log zerolog.Logger, args []string) {
	fs := flag.NewFlagSet("channel", flag.ExitOnError)
	id := fs.String("id", "", "channel ID")
	username := fs.String("username", "", "legacy username")
	handle := fs.String("handle", "", "channel handle, with or without @")
	days := fs.Int("days", 0, "only include videos from the last N days")
	startDate := fs.String("start-date", "", "earliest publish date (YYYY-MM-DD)")
	endDate := fs.String("end-date", "", "latest publish date (YYYY-MM-DD)")
	noLinks := fs.Bool("no-links", false, "skip about-page link extraction")
	output := fs.String("output", "", "report filename")
	fs.Parse(args)

	window, err := analyzer.NewTemporalWindow(*days, *startDate, *endDate)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid date filter")
	}

	ref := models.ChannelRef{ID: *id, Username: *username, Handle: *handle}
	result, err := a.AnalyzeChannel(ctx, ref, window, !*noLinks)
	if err != nil {
		log.Fatal().Err(err).Msg("Analysis failed")
	}
	if result == nil {
		log.Fatal().Msg("Channel not found")
	}

	results := models.NewSearchResultSet()
	results.Add(result.ChannelInfo.ID, result)
	writeReport(results, "", *output, log)
}

func runSearch(ctx context.Context, a *analyzer.Analyzer, log zerolog.Logger, args []string) {
	if len(args) == 0 || len(args[0]) == 0 || args[0][0] == '-' {
		fmt.Fprintln(os.Stderr, "search requires a query argument")
		os.Exit(2)
	}
	query := args[0]

	fs := flag.NewFlagSet("search", flag.ExitOnError)
	maxResults := fs.Int64("max-results", 3, "channels to analyze")
	days := fs.Int("days", 0, "only include videos from the last N days")
	startDate := fs.String("start-date", "", "earliest publish date (YYYY-MM-DD)")
	endDate := fs.String("end-date", "", "latest publish date (YYYY-MM-DD)")
	noLinks := fs.Bool("no-links", false, "skip about-page link extraction")
	output := fs.String("output", "", "report filename")
	fs.Parse(args[1:])

	if *maxResults < 1 {
		*maxResults = 1
	}
	if *maxResults > 10 {
		*maxResults = 10
	}

	window, err := analyzer.NewTemporalWindow(*days, *startDate, *endDate)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid date filter")
	}

	channels, err := a.SearchChannels(ctx, query, *maxResults)
	if err != nil {
		log.Fatal().Err(err).Msg("Search failed")
	}
	if len(channels) == 0 {
		log.Fatal().Str("query", query).Msg("No channels found")
	}

	results := a.AnalyzeSearchResults(ctx, channels, window, !*noLinks)
	writeReport(results, query, *output, log)
}

func writeReport(results *models.SearchResultSet, query, filename string, log zerolog.Logger) {
	doc := export.BuildDocument(results, query)
	written, err := export.WriteFile(doc, filename)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to write report")
	}
	log.Info().Str("file", written).Int("channels", doc.Channels.Len()).Msg("Report written")
}
