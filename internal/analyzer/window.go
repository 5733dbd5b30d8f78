package analyzer

import (
	"errors"
	"time"

	"github.com/yt-metrics/internal/models"
)

// ErrInvalidDate reports a date string the caller supplied that does not
// parse as YYYY-MM-DD. It is surfaced before any filtering begins.
var ErrInvalidDate = errors.New("invalid date")

// TemporalWindow is an optional publish-time filter: a relative "last N days"
// cutoff, an absolute start, an absolute end, or any combination. All present
// constraints must hold for an item to pass.
type TemporalWindow struct {
	Days      int
	StartDate string
	EndDate   string

	startBound string
	endBound   string
	now        func() time.Time
}

// NewTemporalWindow validates the supplied constraints and returns the
// window. Days <= 0 means no relative cutoff; empty date strings impose no
// bound. Malformed dates fail fast.
func NewTemporalWindow(days int, startDate, endDate string) (*TemporalWindow, error) {
	w := &TemporalWindow{
		Days:      days,
		StartDate: startDate,
		EndDate:   endDate,
		now:       time.Now,
	}

	if startDate != "" {
		bound, err := NormalizeDayStart(startDate)
		if err != nil {
			return nil, err
		}
		w.startBound = bound
	}
	if endDate != "" {
		bound, err := NormalizeDayEnd(endDate)
		if err != nil {
			return nil, err
		}
		w.endBound = bound
	}
	return w, nil
}

// Empty reports whether the window imposes no constraint at all.
func (w *TemporalWindow) Empty() bool {
	return w == nil || (w.Days <= 0 && w.startBound == "" && w.endBound == "")
}

// Filter returns the items whose publish instant satisfies every active
// constraint, preserving input order. With no constraints it is the identity.
// Comparison is textual over RFC 3339 UTC strings, which matches
// chronological order.
func (w *TemporalWindow) Filter(items []models.VideoStub) []models.VideoStub {
	if w.Empty() {
		return items
	}

	cutoff := ""
	if w.Days > 0 {
		cutoff = w.now().UTC().AddDate(0, 0, -w.Days).Format(time.RFC3339)
	}

	filtered := make([]models.VideoStub, 0, len(items))
	for _, item := range items {
		if cutoff != "" && item.PublishedAt < cutoff {
			continue
		}
		if w.startBound != "" && item.PublishedAt < w.startBound {
			continue
		}
		if w.endBound != "" && item.PublishedAt > w.endBound {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}
