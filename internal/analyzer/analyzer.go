package analyzer

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/yt-metrics/internal/models"
)

// ErrNoIdentifier reports that the caller supplied nothing identifying a
// channel. It is raised before any provider call.
var ErrNoIdentifier = errors.New("you must provide either a channel ID, username, or handle")

const (
	// maxUploadsPage is the provider's single-page maximum. Channels with
	// more uploads are not fully covered by one run; full history would
	// require pagination, which this pipeline does not do.
	maxUploadsPage = 50

	// statsBatchSize is the provider's per-call limit on video IDs.
	statsBatchSize = 50
)

// Provider supplies channel and video metadata. A nil ChannelInfo with a nil
// error means the channel was not found.
type Provider interface {
	GetChannel(ctx context.Context, ref models.ChannelRef) (*models.ChannelInfo, error)
	ListUploads(ctx context.Context, channelID string, maxResults int64) ([]models.VideoStub, error)
	GetVideoStats(ctx context.Context, videoIDs []string) ([]models.VideoRecord, error)
	SearchChannels(ctx context.Context, query string, maxResults int64) ([]models.ChannelSearchResult, error)
}

// LinkScraper extracts external links from a channel's about page. It is
// best effort: any failure is treated as "scraped zero links".
type LinkScraper interface {
	AboutPageLinks(ctx context.Context, ref models.ChannelRef) ([]models.ExternalLink, error)
}

// Analyzer runs the metrics aggregation pipeline over one or more channels.
type Analyzer struct {
	provider Provider
	scraper  LinkScraper
	log      zerolog.Logger
}

// New builds an Analyzer. The scraper may be nil, in which case link
// extraction always yields an empty set.
func New(provider Provider, scraper LinkScraper, log zerolog.Logger) *Analyzer {
	return &Analyzer{
		provider: provider,
		scraper:  scraper,
		log:      log,
	}
}

// SearchChannels finds channels matching the query via the provider.
func (a *Analyzer) SearchChannels(ctx context.Context, query string, maxResults int64) ([]models.ChannelSearchResult, error) {
	return a.provider.SearchChannels(ctx, query, maxResults)
}

// AnalyzeChannel runs the full pipeline for one channel: fetch metadata,
// fetch the most recent uploads, filter by the temporal window, fetch
// per-video statistics, aggregate, and optionally scrape and normalize
// external links. A (nil, nil) return means the channel was not found.
func (a *Analyzer) AnalyzeChannel(ctx context.Context, ref models.ChannelRef, window *TemporalWindow, extractLinks bool) (*models.AnalysisResult, error) {
	if ref.IsZero() {
		return nil, ErrNoIdentifier
	}

	channel, err := a.provider.GetChannel(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch channel: %w", err)
	}
	if channel == nil {
		return nil, nil
	}

	stubs, err := a.provider.ListUploads(ctx, channel.ID, maxUploadsPage)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch uploads: %w", err)
	}
	stubs = window.Filter(stubs)

	videos, err := a.fetchVideoStats(ctx, stubs)
	if err != nil {
		return nil, err
	}

	// Attach the derived durations before aggregating; a malformed duration
	// degrades to 0 for that record only.
	for i := range videos {
		videos[i].DurationSeconds = ParseISODuration(videos[i].Duration)
	}

	result := &models.AnalysisResult{
		ChannelInfo:   *channel,
		VideoMetrics:  Summarize(videos),
		VideoAverages: DetailedAverages(videos),
		RecentVideos:  sortRecentFirst(videos),
		ExternalLinks: []models.ExternalLink{},
		RawChannel:    channel.Raw,
	}

	if extractLinks {
		result.ExternalLinks = a.scrapeLinks(ctx, ref)
	}
	return result, nil
}

// AnalyzeSearchResults runs AnalyzeChannel over each search result, strictly
// sequentially, accumulating into a result set keyed by channel ID. Channels
// that are absent or fail to fetch are skipped without aborting the batch.
func (a *Analyzer) AnalyzeSearchResults(ctx context.Context, channels []models.ChannelSearchResult, window *TemporalWindow, extractLinks bool) *models.SearchResultSet {
	results := models.NewSearchResultSet()
	for i, channel := range channels {
		a.log.Info().
			Int("index", i+1).
			Int("total", len(channels)).
			Str("channel_id", channel.ChannelID).
			Str("title", channel.Title).
			Msg("Analyzing channel")

		result, err := a.AnalyzeChannel(ctx, models.ChannelRef{ID: channel.ChannelID}, window, extractLinks)
		if err != nil {
			a.log.Warn().Str("channel_id", channel.ChannelID).Err(err).Msg("Skipping channel after fetch failure")
			continue
		}
		if result == nil {
			a.log.Warn().Str("channel_id", channel.ChannelID).Msg("Skipping channel, not found")
			continue
		}
		results.Add(channel.ChannelID, result)
	}
	return results
}

// fetchVideoStats batches statistics calls in chunks of at most
// statsBatchSize IDs and concatenates the returned records.
func (a *Analyzer) fetchVideoStats(ctx context.Context, stubs []models.VideoStub) ([]models.VideoRecord, error) {
	ids := make([]string, 0, len(stubs))
	for _, stub := range stubs {
		ids = append(ids, stub.VideoID)
	}

	var videos []models.VideoRecord
	for start := 0; start < len(ids); start += statsBatchSize {
		end := start + statsBatchSize
		if end > len(ids) {
			end = len(ids)
		}
		batch, err := a.provider.GetVideoStats(ctx, ids[start:end])
		if err != nil {
			return nil, fmt.Errorf("failed to fetch video statistics: %w", err)
		}
		videos = append(videos, batch...)
	}
	return videos, nil
}

// scrapeLinks delegates to the scraping collaborator and downgrades every
// failure to an empty link set.
func (a *Analyzer) scrapeLinks(ctx context.Context, ref models.ChannelRef) []models.ExternalLink {
	if a.scraper == nil {
		return []models.ExternalLink{}
	}

	scraped, err := a.scraper.AboutPageLinks(ctx, ref)
	if err != nil {
		a.log.Warn().Err(err).Msg("Link extraction failed, continuing without links")
		return []models.ExternalLink{}
	}
	return NormalizeLinks(scraped)
}

// sortRecentFirst returns a copy ordered by publish instant, most recent
// first. The sort is stable so provider order breaks ties.
func sortRecentFirst(videos []models.VideoRecord) []models.VideoRecord {
	recent := make([]models.VideoRecord, len(videos))
	copy(recent, videos)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].PublishedAt > recent[j].PublishedAt
	})
	return recent
}
