package analyzer

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

var isoDurationRe = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseISODuration converts an ISO 8601 duration of the form PT[nH][nM][nS]
// into seconds. Missing or unparsable durations yield 0 and are never fatal.
func ParseISODuration(duration string) int64 {
	if duration == "" {
		return 0
	}

	m := isoDurationRe.FindStringSubmatch(duration)
	if m == nil {
		log.Warn().Str("duration", duration).Msg("Unparsable video duration, defaulting to 0")
		return 0
	}

	var seconds int64
	if m[1] != "" {
		h, _ := strconv.ParseInt(m[1], 10, 64)
		seconds += h * 3600
	}
	if m[2] != "" {
		min, _ := strconv.ParseInt(m[2], 10, 64)
		seconds += min * 60
	}
	if m[3] != "" {
		s, _ := strconv.ParseInt(m[3], 10, 64)
		seconds += s
	}
	return seconds
}

const dateLayout = "2006-01-02"

// NormalizeDayStart turns a YYYY-MM-DD date into the RFC 3339 UTC instant at
// the start of that day. A malformed date is a caller input error.
func NormalizeDayStart(date string) (string, error) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", fmt.Errorf("%w: expected YYYY-MM-DD, got %q", ErrInvalidDate, date)
	}
	return t.UTC().Format(time.RFC3339), nil
}

// NormalizeDayEnd turns a YYYY-MM-DD date into the RFC 3339 UTC instant at
// the end of that day (23:59:59).
func NormalizeDayEnd(date string) (string, error) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", fmt.Errorf("%w: expected YYYY-MM-DD, got %q", ErrInvalidDate, date)
	}
	return t.Add(23*time.Hour + 59*time.Minute + 59*time.Second).UTC().Format(time.RFC3339), nil
}
