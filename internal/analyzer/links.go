package analyzer

import (
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/yt-metrics/internal/models"
)

const redirectMarker = "youtube.com/redirect"

// ResolveDirectURL rewrites a YouTube redirect-wrapper URL to the destination
// carried in its q parameter. Anything that is not a redirect wrapper, or
// fails to parse, is returned unchanged; the function never errors and is
// idempotent.
func ResolveDirectURL(rawURL string) string {
	if !strings.Contains(rawURL, redirectMarker) {
		return rawURL
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		log.Warn().Str("url", rawURL).Err(err).Msg("Could not parse redirect URL, keeping original")
		return rawURL
	}

	// Query() percent-decodes the parameter and drops malformed pairs.
	direct := parsed.Query().Get("q")
	if direct == "" {
		return rawURL
	}
	return direct
}

// NormalizeLinks resolves the redirect wrapper on every scraped link,
// recording the direct URL when it differs from the scraped one.
func NormalizeLinks(links []models.ExternalLink) []models.ExternalLink {
	normalized := make([]models.ExternalLink, 0, len(links))
	for _, link := range links {
		if direct := ResolveDirectURL(link.URL); direct != link.URL {
			link.DirectURL = direct
		}
		normalized = append(normalized, link)
	}
	return normalized
}
