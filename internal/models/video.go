package models

// VideoStub is one entry of a channel's uploads playlist, before per-video
// statistics have been fetched.
type VideoStub struct {
	VideoID     string `json:"video_id"`
	Title       string `json:"title"`
	PublishedAt string `json:"published_at"`
}

// VideoRecord holds one video's observable facts. PublishedAt is an RFC 3339
// UTC string so that lexical ordering matches chronological ordering.
// DurationSeconds is derived from Duration by the aggregation pipeline.
type VideoRecord struct {
	VideoID         string `json:"video_id"`
	Title           string `json:"title"`
	PublishedAt     string `json:"published_at"`
	Views           int64  `json:"views"`
	Likes           int64  `json:"likes"`
	Comments        int64  `json:"comments"`
	Duration        string `json:"duration"`
	DurationSeconds int64  `json:"duration_seconds"`
	VideoURL        string `json:"video_url"`
	ThumbnailURL    string `json:"thumbnail_url"`
}
