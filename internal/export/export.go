// Package export shapes analysis results into the report document written to
// disk and returned by the API.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yt-metrics/internal/models"
)

const timestampLayout = "2006-01-02 15:04:05"

// ChannelData is one channel's section of the report.
type ChannelData struct {
	ChannelInfo   models.ChannelInfo         `json:"channel_info"`
	VideoMetrics  models.VideoMetricsSummary `json:"video_metrics"`
	VideoAverages models.VideoAverages       `json:"video_averages"`
	ExternalLinks []models.ExternalLink      `json:"external_links"`
	RecentVideos  []models.VideoRecord       `json:"recent_videos"`
}

// ChannelSet maps display names to channel sections, preserving the order
// channels were added in when marshaled.
type ChannelSet struct {
	names  []string
	byName map[string]ChannelData
}

// NewChannelSet returns an empty set.
func NewChannelSet() *ChannelSet {
	return &ChannelSet{byName: make(map[string]ChannelData)}
}

// Add inserts a channel section. Re-adding a name overwrites its data but
// keeps its original position.
func (cs *ChannelSet) Add(name string, data ChannelData) {
	if _, exists := cs.byName[name]; !exists {
		cs.names = append(cs.names, name)
	}
	cs.byName[name] = data
}

// Len returns the number of channels in the set.
func (cs *ChannelSet) Len() int {
	return len(cs.names)
}

// MarshalJSON emits a JSON object whose keys appear in insertion order.
func (cs *ChannelSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range cs.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(cs.byName[name])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Document is the top-level report.
type Document struct {
	Query     string      `json:"query"`
	Timestamp string      `json:"timestamp"`
	Channels  *ChannelSet `json:"channels"`
}

// BuildDocument assembles a report from analysis results. Channels are keyed
// by title, falling back to channel ID when the title is empty. An empty
// query is recorded as "direct_export".
func BuildDocument(results *models.SearchResultSet, query string) *Document {
	if query == "" {
		query = "direct_export"
	}
	doc := &Document{
		Query:     query,
		Timestamp: time.Now().Format(timestampLayout),
		Channels:  NewChannelSet(),
	}
	if results == nil {
		return doc
	}

	for _, id := range results.IDs() {
		result, ok := results.Get(id)
		if !ok || result == nil {
			continue
		}
		name := id
		if result.ChannelInfo.Title != "" {
			name = result.ChannelInfo.Title
		}
		doc.Channels.Add(name, ChannelData{
			ChannelInfo:   result.ChannelInfo,
			VideoMetrics:  result.VideoMetrics,
			VideoAverages: result.VideoAverages,
			ExternalLinks: result.ExternalLinks,
			RecentVideos:  result.RecentVideos,
		})
	}
	return doc
}

// WriteFile serializes the document as indented JSON. An empty filename
// gets a timestamped default; a missing .json extension is appended.
func WriteFile(doc *Document, filename string) (string, error) {
	if filename == "" {
		filename = fmt.Sprintf("youtube_analysis_%s.json", time.Now().Format("20060102_150405"))
	}
	if !strings.HasSuffix(filename, ".json") {
		filename += ".json"
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize report: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return filename, nil
}
