package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yt-metrics/internal/models"
)

func TestSummarizeEmptyInput(t *testing.T) {
	summary := Summarize(nil)
	assert.Equal(t, models.VideoMetricsSummary{}, summary)

	averages := DetailedAverages(nil)
	assert.Equal(t, models.VideoAverages{}, averages)
}

func TestSummarizeZeroViewsNeverDivides(t *testing.T) {
	videos := []models.VideoRecord{
		{Views: 0, Likes: 10, Comments: 5},
		{Views: 0, Likes: 3, Comments: 1},
	}

	summary := Summarize(videos)
	assert.Zero(t, summary.EngagementRate)

	averages := DetailedAverages(videos)
	assert.Zero(t, averages.EngagementRate)
	assert.Zero(t, averages.LikeToViewRatio)
	assert.Zero(t, averages.CommentToViewRatio)
}

func TestSummarizeThreeVideos(t *testing.T) {
	videos := []models.VideoRecord{
		{Views: 100, Likes: 10, Comments: 2, DurationSeconds: 313},
		{Views: 50, Likes: 5, Comments: 1, DurationSeconds: 3600},
		{Views: 10, Likes: 1, Comments: 0, DurationSeconds: 0},
	}

	summary := Summarize(videos)
	assert.Equal(t, 3, summary.AnalyzedVideosCount)
	assert.InDelta(t, 53.33, summary.AvgViews, 0.01)
	assert.Equal(t, int64(100), summary.MaxViews)
	assert.Equal(t, int64(10), summary.MinViews)
	assert.Equal(t, int64(160), summary.TotalViews)
	assert.InDelta(t, 19.0/160.0, summary.EngagementRate, 1e-9)

	averages := DetailedAverages(videos)
	assert.Equal(t, 3, averages.Count)
	assert.InDelta(t, summary.AvgViews, averages.AvgViews, 1e-9)
	assert.InDelta(t, summary.EngagementRate, averages.EngagementRate, 1e-9)
	assert.Equal(t, summary.MaxViews, averages.MaxViews)
	assert.Equal(t, summary.MinViews, averages.MinViews)
	assert.InDelta(t, 16.0/160.0, averages.LikeToViewRatio, 1e-9)
	assert.InDelta(t, 3.0/160.0, averages.CommentToViewRatio, 1e-9)
	assert.InDelta(t, 3913.0/3.0, averages.AvgDurationSeconds, 1e-9)
}

func TestSummarizeExtremaOrdering(t *testing.T) {
	videos := []models.VideoRecord{
		{Views: 7}, {Views: 7}, {Views: 7},
	}
	summary := Summarize(videos)
	assert.GreaterOrEqual(t, float64(summary.MaxViews), summary.AvgViews)
	assert.GreaterOrEqual(t, summary.AvgViews, float64(summary.MinViews))
	assert.Equal(t, summary.MaxViews, summary.MinViews)
}

func TestSummarizeSingleVideo(t *testing.T) {
	videos := []models.VideoRecord{{Views: 42, Likes: 4, Comments: 2}}
	summary := Summarize(videos)
	assert.Equal(t, int64(42), summary.MaxViews)
	assert.Equal(t, int64(42), summary.MinViews)
	assert.InDelta(t, 42.0, summary.AvgViews, 1e-9)
}
