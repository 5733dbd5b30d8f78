package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yt-metrics/internal/analyzer"
	"github.com/yt-metrics/internal/models"
)

type stubProvider struct {
	channels      map[string]*models.ChannelInfo
	uploads       map[string][]models.VideoStub
	stats         map[string]models.VideoRecord
	searchResults []models.ChannelSearchResult
	searchErr     error
	channelErr    error
}

func (p *stubProvider) GetChannel(_ context.Context, ref models.ChannelRef) (*models.ChannelInfo, error) {
	if p.channelErr != nil {
		return nil, p.channelErr
	}
	key := ref.ID
	if key == "" {
		key = ref.Username
	}
	if key == "" {
		key = ref.Handle
	}
	return p.channels[key], nil
}

func (p *stubProvider) ListUploads(_ context.Context, channelID string, _ int64) ([]models.VideoStub, error) {
	return p.uploads[channelID], nil
}

func (p *stubProvider) GetVideoStats(_ context.Context, videoIDs []string) ([]models.VideoRecord, error) {
	records := make([]models.VideoRecord, 0, len(videoIDs))
	for _, id := range videoIDs {
		if rec, ok := p.stats[id]; ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (p *stubProvider) SearchChannels(_ context.Context, _ string, _ int64) ([]models.ChannelSearchResult, error) {
	return p.searchResults, p.searchErr
}

func newTestServer(provider *stubProvider) *Server {
	gin.SetMode(gin.TestMode)
	a := analyzer.New(provider, nil, zerolog.Nop())
	return NewServer(a, nil, zerolog.Nop())
}

func testStubProvider() *stubProvider {
	return &stubProvider{
		channels: map[string]*models.ChannelInfo{
			"UC123": {ID: "UC123", Title: "Test Channel", SubscriberCount: 1000},
		},
		uploads: map[string][]models.VideoStub{
			"UC123": {{VideoID: "v1", PublishedAt: "2024-01-10T00:00:00Z"}},
		},
		stats: map[string]models.VideoRecord{
			"v1": {VideoID: "v1", PublishedAt: "2024-01-10T00:00:00Z", Views: 100, Likes: 10, Comments: 2, Duration: "PT5M"},
		},
	}
}

func doRequest(s *Server, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	s.router.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(testStubProvider())
	rec := doRequest(s, "/api/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.NotEmpty(t, body.Timestamp)
}

func TestGetChannelMissingIdentifier(t *testing.T) {
	s := newTestServer(testStubProvider())
	rec := doRequest(s, "/api/channel")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "channel_id, username, or handle")
}

func TestGetChannelBadDays(t *testing.T) {
	s := newTestServer(testStubProvider())
	rec := doRequest(s, "/api/channel?channel_id=UC123&days=soon")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "days parameter must be an integer")
}

func TestGetChannelBadDate(t *testing.T) {
	s := newTestServer(testStubProvider())
	rec := doRequest(s, "/api/channel?channel_id=UC123&start_date=January")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetChannelNotFound(t *testing.T) {
	s := newTestServer(testStubProvider())
	rec := doRequest(s, "/api/channel?channel_id=UC999")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Could not retrieve data")
}

func TestGetChannelHappyPath(t *testing.T) {
	s := newTestServer(testStubProvider())
	rec := doRequest(s, "/api/channel?channel_id=UC123")
	require.Equal(t, http.StatusOK, rec.Code)

	var result models.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "UC123", result.ChannelInfo.ID)
	assert.Equal(t, 1, result.VideoMetrics.AnalyzedVideosCount)
	assert.Equal(t, int64(100), result.VideoMetrics.TotalViews)
}

func TestGetChannelProviderError(t *testing.T) {
	provider := testStubProvider()
	provider.channelErr = errors.New("quota exceeded")
	s := newTestServer(provider)

	rec := doRequest(s, "/api/channel?channel_id=UC123")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSearchRequiresQuery(t *testing.T) {
	s := newTestServer(testStubProvider())
	rec := doRequest(s, "/api/search")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "query parameter is required")
}

func TestSearchEmptyResults(t *testing.T) {
	s := newTestServer(testStubProvider())
	rec := doRequest(s, "/api/search?query=nothing")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No channels found")
}

func TestSearchReturnsChannels(t *testing.T) {
	provider := testStubProvider()
	provider.searchResults = []models.ChannelSearchResult{
		{ChannelID: "UC123", Title: "Test Channel"},
	}
	s := newTestServer(provider)

	rec := doRequest(s, "/api/search?query=test&max_results=5")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Query    string                       `json:"query"`
		Count    int                          `json:"count"`
		Channels []models.ChannelSearchResult `json:"channels"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "test", body.Query)
	assert.Equal(t, 1, body.Count)
	require.Len(t, body.Channels, 1)
	assert.Equal(t, "UC123", body.Channels[0].ChannelID)
}

func TestSearchBadMaxResults(t *testing.T) {
	s := newTestServer(testStubProvider())
	rec := doRequest(s, "/api/search?query=test&max_results=many")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "max_results parameter must be an integer")
}

func TestAnalyzeRequiresQuery(t *testing.T) {
	s := newTestServer(testStubProvider())
	rec := doRequest(s, "/api/analyze")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeBadMaxResults(t *testing.T) {
	s := newTestServer(testStubProvider())
	rec := doRequest(s, "/api/analyze?query=test&max_results=1.5")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "max_results parameter must be an integer")
}

func TestAnalyzeBuildsDocument(t *testing.T) {
	provider := testStubProvider()
	provider.searchResults = []models.ChannelSearchResult{
		{ChannelID: "UC123", Title: "Test Channel"},
		{ChannelID: "UC999", Title: "Gone"},
	}
	s := newTestServer(provider)

	rec := doRequest(s, "/api/analyze?query=test")
	require.Equal(t, http.StatusOK, rec.Code)

	var doc struct {
		Query     string                     `json:"query"`
		Timestamp string                     `json:"timestamp"`
		Channels  map[string]json.RawMessage `json:"channels"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "test", doc.Query)
	assert.NotEmpty(t, doc.Timestamp)
	assert.Len(t, doc.Channels, 1)
	assert.Contains(t, doc.Channels, "Test Channel")
}

func TestParseMaxResults(t *testing.T) {
	cases := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{"", 5, false},
		{"0", 1, false},
		{"-3", 1, false},
		{"200", 50, false},
		{"10", 10, false},
		{"junk", 0, true},
		{"1.5", 0, true},
	}

	for _, tc := range cases {
		got, err := parseMaxResults(tc.raw, 5, 50)
		if tc.wantErr {
			assert.Error(t, err, "input %q", tc.raw)
			continue
		}
		require.NoError(t, err, "input %q", tc.raw)
		assert.Equal(t, tc.want, got, "input %q", tc.raw)
	}
}
