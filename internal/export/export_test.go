package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yt-metrics/internal/models"
)

func sampleResults() *models.SearchResultSet {
	results := models.NewSearchResultSet()
	results.Add("UCbbb", &models.AnalysisResult{
		ChannelInfo:  models.ChannelInfo{ID: "UCbbb", Title: "Second Channel"},
		VideoMetrics: models.VideoMetricsSummary{AnalyzedVideosCount: 2, TotalViews: 50},
	})
	results.Add("UCaaa", &models.AnalysisResult{
		ChannelInfo:  models.ChannelInfo{ID: "UCaaa", Title: "First Channel"},
		VideoMetrics: models.VideoMetricsSummary{AnalyzedVideosCount: 1, TotalViews: 100},
	})
	return results
}

func TestBuildDocument(t *testing.T) {
	doc := BuildDocument(sampleResults(), "cooking")

	assert.Equal(t, "cooking", doc.Query)
	assert.NotEmpty(t, doc.Timestamp)
	assert.Equal(t, 2, doc.Channels.Len())
}

func TestBuildDocumentEmptyQueryFallback(t *testing.T) {
	doc := BuildDocument(models.NewSearchResultSet(), "")
	assert.Equal(t, "direct_export", doc.Query)
	assert.Equal(t, 0, doc.Channels.Len())
}

func TestBuildDocumentKeysByTitleWithIDFallback(t *testing.T) {
	results := models.NewSearchResultSet()
	results.Add("UCnotitle", &models.AnalysisResult{
		ChannelInfo: models.ChannelInfo{ID: "UCnotitle"},
	})
	doc := BuildDocument(results, "q")

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"UCnotitle":`)
}

func TestChannelSetMarshalPreservesOrder(t *testing.T) {
	doc := BuildDocument(sampleResults(), "cooking")

	data, err := json.Marshal(doc.Channels)
	require.NoError(t, err)

	body := string(data)
	second := strings.Index(body, "Second Channel")
	first := strings.Index(body, "First Channel")
	require.NotEqual(t, -1, second)
	require.NotEqual(t, -1, first)
	assert.Less(t, second, first, "insertion order must survive marshaling")
}

func TestWriteFileAppendsExtension(t *testing.T) {
	dir := t.TempDir()
	doc := BuildDocument(sampleResults(), "cooking")

	written, err := WriteFile(doc, filepath.Join(dir, "report"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(written, ".json"))

	data, err := os.ReadFile(written)
	require.NoError(t, err)

	var parsed struct {
		Query    string                     `json:"query"`
		Channels map[string]json.RawMessage `json:"channels"`
	}
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, "cooking", parsed.Query)
	assert.Len(t, parsed.Channels, 2)
}
