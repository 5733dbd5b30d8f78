// Package youtube implements the metadata provider over the YouTube Data API.
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"github.com/yt-metrics/internal/models"
)

// ErrMissingAPIKey reports that the client was constructed without a key.
var ErrMissingAPIKey = errors.New("YouTube API key is required")

// Client talks to the YouTube Data API v3. The API key is injected at
// construction time; nothing here reads global state.
type Client struct {
	svc *yt.Service
	log zerolog.Logger
}

// NewClient builds a provider client for the given API key.
func NewClient(ctx context.Context, apiKey string, log zerolog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	svc, err := yt.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	return &Client{svc: svc, log: log}, nil
}

// GetChannel fetches a channel by ID, username, or handle, in that order of
// precedence. A nil result with a nil error means no channel matched.
func (c *Client) GetChannel(ctx context.Context, ref models.ChannelRef) (*models.ChannelInfo, error) {
	call := c.svc.Channels.List([]string{"snippet", "contentDetails", "statistics"}).Context(ctx)
	switch {
	case ref.ID != "":
		call = call.Id(ref.ID)
	case ref.Username != "":
		call = call.ForUsername(ref.Username)
	case ref.Handle != "":
		call = call.ForHandle(strings.TrimPrefix(ref.Handle, "@"))
	default:
		return nil, errors.New("empty channel reference")
	}

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("channels.list: %w", err)
	}
	if len(resp.Items) == 0 {
		return nil, nil
	}

	item := resp.Items[0]
	info := &models.ChannelInfo{ID: item.Id}
	if item.Snippet != nil {
		info.Title = item.Snippet.Title
		info.CustomURL = item.Snippet.CustomUrl
		info.Country = item.Snippet.Country
		info.PublishedAt = item.Snippet.PublishedAt
		info.ProfilePictureURL = bestThumbnail(item.Snippet.Thumbnails)
	}
	if item.Statistics != nil {
		info.SubscriberCount = int64(item.Statistics.SubscriberCount)
		info.VideoCount = int64(item.Statistics.VideoCount)
		info.TotalViews = int64(item.Statistics.ViewCount)
	}
	if raw, err := json.Marshal(item); err == nil {
		info.Raw = raw
	}
	return info, nil
}

// ListUploads returns up to maxResults entries from the channel's uploads
// playlist, a single page only. Channels with more uploads than one page are
// not fully covered; callers needing full history must paginate.
func (c *Client) ListUploads(ctx context.Context, channelID string, maxResults int64) ([]models.VideoStub, error) {
	chResp, err := c.svc.Channels.List([]string{"contentDetails"}).Id(channelID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("channels.list: %w", err)
	}
	if len(chResp.Items) == 0 {
		return nil, fmt.Errorf("channel %s not found", channelID)
	}

	item := chResp.Items[0]
	if item.ContentDetails == nil || item.ContentDetails.RelatedPlaylists == nil ||
		item.ContentDetails.RelatedPlaylists.Uploads == "" {
		return nil, fmt.Errorf("uploads playlist not found for channel %s", channelID)
	}

	resp, err := c.svc.PlaylistItems.List([]string{"snippet", "contentDetails"}).
		PlaylistId(item.ContentDetails.RelatedPlaylists.Uploads).
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("playlistItems.list: %w", err)
	}

	stubs := make([]models.VideoStub, 0, len(resp.Items))
	for _, pi := range resp.Items {
		stub := models.VideoStub{}
		if pi.ContentDetails != nil {
			stub.VideoID = pi.ContentDetails.VideoId
		}
		if pi.Snippet != nil {
			stub.Title = pi.Snippet.Title
			stub.PublishedAt = pi.Snippet.PublishedAt
		}
		if stub.VideoID == "" {
			continue
		}
		stubs = append(stubs, stub)
	}
	return stubs, nil
}

// GetVideoStats fetches statistics for up to 50 video IDs in one call.
// Counts absent from the response default to 0.
func (c *Client) GetVideoStats(ctx context.Context, videoIDs []string) ([]models.VideoRecord, error) {
	if len(videoIDs) == 0 {
		return nil, nil
	}

	resp, err := c.svc.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
		Id(videoIDs...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("videos.list: %w", err)
	}

	records := make([]models.VideoRecord, 0, len(resp.Items))
	for _, v := range resp.Items {
		rec := models.VideoRecord{
			VideoID:  v.Id,
			VideoURL: fmt.Sprintf("https://www.youtube.com/watch?v=%s", v.Id),
		}
		if v.Snippet != nil {
			rec.Title = v.Snippet.Title
			rec.PublishedAt = v.Snippet.PublishedAt
			rec.ThumbnailURL = bestThumbnail(v.Snippet.Thumbnails)
		}
		if v.Statistics != nil {
			rec.Views = int64(v.Statistics.ViewCount)
			rec.Likes = int64(v.Statistics.LikeCount)
			rec.Comments = int64(v.Statistics.CommentCount)
		}
		if v.ContentDetails != nil {
			rec.Duration = v.ContentDetails.Duration
		}
		records = append(records, rec)
	}
	return records, nil
}

// SearchChannels searches for channels matching the query and enriches each
// hit with full channel details, in the order search returned them.
func (c *Client) SearchChannels(ctx context.Context, query string, maxResults int64) ([]models.ChannelSearchResult, error) {
	resp, err := c.svc.Search.List([]string{"snippet"}).
		Q(query).
		Type("channel").
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("search.list: %w", err)
	}

	channels := make([]models.ChannelSearchResult, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Snippet == nil || item.Snippet.ChannelId == "" {
			continue
		}
		channelID := item.Snippet.ChannelId

		detail, err := c.svc.Channels.List([]string{"snippet", "statistics", "contentDetails"}).
			Id(channelID).
			Context(ctx).
			Do()
		if err != nil {
			return nil, fmt.Errorf("channels.list for %s: %w", channelID, err)
		}
		if len(detail.Items) == 0 {
			c.log.Warn().Str("channel_id", channelID).Msg("Search hit vanished on detail lookup, skipping")
			continue
		}

		ch := detail.Items[0]
		result := models.ChannelSearchResult{ChannelID: channelID}
		if ch.Snippet != nil {
			result.Title = ch.Snippet.Title
			result.Description = ch.Snippet.Description
			result.PublishedAt = ch.Snippet.PublishedAt
			result.ProfilePictureURL = bestThumbnail(ch.Snippet.Thumbnails)
			if ch.Snippet.Thumbnails != nil && ch.Snippet.Thumbnails.Default != nil {
				result.Thumbnail = ch.Snippet.Thumbnails.Default.Url
			}
		}
		if ch.Statistics != nil {
			result.SubscriberCount = int64(ch.Statistics.SubscriberCount)
			result.VideoCount = int64(ch.Statistics.VideoCount)
			result.ViewCount = int64(ch.Statistics.ViewCount)
		}
		channels = append(channels, result)
	}
	return channels, nil
}

// bestThumbnail picks the largest available thumbnail: high, then medium,
// then default.
func bestThumbnail(t *yt.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	if t.High != nil && t.High.Url != "" {
		return t.High.Url
	}
	if t.Medium != nil && t.Medium.Url != "" {
		return t.Medium.Url
	}
	if t.Default != nil {
		return t.Default.Url
	}
	return ""
}
