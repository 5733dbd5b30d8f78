package models

import (
	"bytes"
	"encoding/json"
)

// VideoMetricsSummary aggregates a collection of video records. All fields
// are zero for an empty collection.
type VideoMetricsSummary struct {
	AnalyzedVideosCount int     `json:"analyzed_videos_count"`
	AvgViews            float64 `json:"avg_views"`
	MaxViews            int64   `json:"max_views"`
	MinViews            int64   `json:"min_views"`
	TotalViews          int64   `json:"total_views"`
	AvgLikes            float64 `json:"avg_likes"`
	AvgComments         float64 `json:"avg_comments"`
	EngagementRate      float64 `json:"engagement_rate"`
}

// VideoAverages is the detailed aggregate over the same input set. It must
// stay numerically consistent with VideoMetricsSummary for identical input.
type VideoAverages struct {
	Count              int     `json:"count"`
	AvgViews           float64 `json:"avg_views"`
	AvgLikes           float64 `json:"avg_likes"`
	AvgComments        float64 `json:"avg_comments"`
	EngagementRate     float64 `json:"engagement_rate"`
	MaxViews           int64   `json:"max_views"`
	MinViews           int64   `json:"min_views"`
	AvgDurationSeconds float64 `json:"avg_duration_seconds"`
	LikeToViewRatio    float64 `json:"like_to_view_ratio"`
	CommentToViewRatio float64 `json:"comment_to_view_ratio"`
}

// ExternalLink is one link scraped from a channel's about page. DirectURL is
// set when URL was a redirect wrapper and could be resolved.
type ExternalLink struct {
	Text      string `json:"text"`
	URL       string `json:"url"`
	DirectURL string `json:"direct_url,omitempty"`
}

// AnalysisResult is the terminal document of one channel analysis. It is
// never mutated after the orchestrator returns it.
type AnalysisResult struct {
	ChannelInfo   ChannelInfo         `json:"channel_info"`
	VideoMetrics  VideoMetricsSummary `json:"video_metrics"`
	VideoAverages VideoAverages       `json:"video_averages"`
	RecentVideos  []VideoRecord       `json:"recent_videos"`
	ExternalLinks []ExternalLink      `json:"external_links"`
	RawChannel    json.RawMessage     `json:"raw_data,omitempty"`
}

// SearchResultSet maps channel IDs to analysis results, preserving the order
// in which channels were added (search order, since analysis is sequential).
type SearchResultSet struct {
	ids  []string
	byID map[string]*AnalysisResult
}

// NewSearchResultSet returns an empty result set.
func NewSearchResultSet() *SearchResultSet {
	return &SearchResultSet{byID: make(map[string]*AnalysisResult)}
}

// Add inserts a result under the given channel ID. Re-adding an existing ID
// replaces the result without changing its position.
func (s *SearchResultSet) Add(channelID string, result *AnalysisResult) {
	if _, ok := s.byID[channelID]; !ok {
		s.ids = append(s.ids, channelID)
	}
	s.byID[channelID] = result
}

// Get returns the result stored under channelID.
func (s *SearchResultSet) Get(channelID string) (*AnalysisResult, bool) {
	r, ok := s.byID[channelID]
	return r, ok
}

// IDs returns the channel IDs in insertion order.
func (s *SearchResultSet) IDs() []string {
	ids := make([]string, len(s.ids))
	copy(ids, s.ids)
	return ids
}

// Len returns the number of stored results.
func (s *SearchResultSet) Len() int {
	return len(s.ids)
}

// MarshalJSON emits a JSON object keyed by channel ID, in insertion order.
func (s *SearchResultSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range s.ids {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(s.byID[id])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
