package models

import "encoding/json"

// ChannelRef identifies a channel by ID, username, or handle. When more than
// one is set, ID wins over username, which wins over handle.
type ChannelRef struct {
	ID       string `json:"channel_id,omitempty"`
	Username string `json:"username,omitempty"`
	Handle   string `json:"handle,omitempty"`
}

// IsZero reports whether no identifier was supplied.
func (r ChannelRef) IsZero() bool {
	return r.ID == "" && r.Username == "" && r.Handle == ""
}

// ChannelInfo is a snapshot of a channel's identity and headline statistics,
// built once per analysis run from provider data.
type ChannelInfo struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	CustomURL         string `json:"custom_url"`
	Country           string `json:"country"`
	PublishedAt       string `json:"published_at"`
	SubscriberCount   int64  `json:"subscriber_count"`
	VideoCount        int64  `json:"video_count"`
	TotalViews        int64  `json:"total_views"`
	ProfilePictureURL string `json:"profile_picture_url"`

	// Raw is the provider's channel resource as returned, kept for
	// traceability on the analysis result.
	Raw json.RawMessage `json:"-"`
}

// ChannelSearchResult is the lighter channel shape returned by search.
type ChannelSearchResult struct {
	ChannelID         string `json:"channel_id"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	PublishedAt       string `json:"published_at"`
	Thumbnail         string `json:"thumbnail"`
	ProfilePictureURL string `json:"profile_picture_url"`
	SubscriberCount   int64  `json:"subscriber_count"`
	VideoCount        int64  `json:"video_count"`
	ViewCount         int64  `json:"view_count"`
}
