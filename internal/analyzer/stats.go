package analyzer

import "github.com/yt-metrics/internal/models"

// Summarize computes the headline aggregate over a video collection. An empty
// collection yields an all-zero summary; ratios are defined as 0 when total
// views are 0.
func Summarize(videos []models.VideoRecord) models.VideoMetricsSummary {
	if len(videos) == 0 {
		return models.VideoMetricsSummary{}
	}

	var totalViews, totalLikes, totalComments int64
	maxViews := videos[0].Views
	minViews := videos[0].Views
	for _, v := range videos {
		totalViews += v.Views
		totalLikes += v.Likes
		totalComments += v.Comments
		if v.Views > maxViews {
			maxViews = v.Views
		}
		if v.Views < minViews {
			minViews = v.Views
		}
	}

	count := float64(len(videos))
	summary := models.VideoMetricsSummary{
		AnalyzedVideosCount: len(videos),
		AvgViews:            float64(totalViews) / count,
		MaxViews:            maxViews,
		MinViews:            minViews,
		TotalViews:          totalViews,
		AvgLikes:            float64(totalLikes) / count,
		AvgComments:         float64(totalComments) / count,
	}
	if totalViews > 0 {
		summary.EngagementRate = float64(totalLikes+totalComments) / float64(totalViews)
	}
	return summary
}

// DetailedAverages computes the detailed aggregate over the same input set.
// It stays numerically consistent with Summarize for identical input.
func DetailedAverages(videos []models.VideoRecord) models.VideoAverages {
	if len(videos) == 0 {
		return models.VideoAverages{}
	}

	var totalViews, totalLikes, totalComments, totalDuration int64
	maxViews := videos[0].Views
	minViews := videos[0].Views
	for _, v := range videos {
		totalViews += v.Views
		totalLikes += v.Likes
		totalComments += v.Comments
		totalDuration += v.DurationSeconds
		if v.Views > maxViews {
			maxViews = v.Views
		}
		if v.Views < minViews {
			minViews = v.Views
		}
	}

	count := float64(len(videos))
	averages := models.VideoAverages{
		Count:              len(videos),
		AvgViews:           float64(totalViews) / count,
		AvgLikes:           float64(totalLikes) / count,
		AvgComments:        float64(totalComments) / count,
		MaxViews:           maxViews,
		MinViews:           minViews,
		AvgDurationSeconds: float64(totalDuration) / count,
	}
	if totalViews > 0 {
		averages.EngagementRate = float64(totalLikes+totalComments) / float64(totalViews)
		averages.LikeToViewRatio = float64(totalLikes) / float64(totalViews)
		averages.CommentToViewRatio = float64(totalComments) / float64(totalViews)
	}
	return averages
}
