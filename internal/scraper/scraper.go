// Package scraper extracts external links from a channel's about page with a
// headless browser. It is a best-effort collaborator: callers treat any error
// as "scraped zero links".
package scraper

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"

	"github.com/yt-metrics/internal/models"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// extractLinksJS walks the known about-page layouts for the links section and
// falls back to any external link in the about renderer. Which selectors
// match depends on the layout YouTube serves.
const extractLinksJS = `
(() => {
	const sectionSelectors = [
		'#link-list-container',
		'#links-section',
		'ytd-channel-about-metadata-renderer #links-container',
	];
	const linkSelectors = [
		'a.yt-simple-endpoint',
		'a[href]',
	];
	const external = (href) => href &&
		(href.includes('youtube.com/redirect') ||
			(!href.includes('youtube.com/') && !href.startsWith('javascript:') && href !== '#'));
	const toItem = (a) => ({ text: a.textContent.trim() || 'Link', url: a.href });

	for (const sectionSelector of sectionSelectors) {
		const section = document.querySelector(sectionSelector);
		if (!section) continue;
		for (const linkSelector of linkSelectors) {
			const anchors = section.querySelectorAll(linkSelector);
			if (!anchors || anchors.length === 0) continue;
			const links = Array.from(anchors).filter(a => external(a.href)).map(toItem);
			if (links.length > 0) return links;
		}
	}

	const about = document.querySelector('ytd-channel-about-metadata-renderer');
	if (about) {
		return Array.from(about.querySelectorAll('a[href]'))
			.filter(a => external(a.href) && !a.href.includes('youtube.com/'))
			.map(toItem);
	}
	return [];
})()
`

// ChromeScraper drives a headless Chrome instance per scrape. Every run gets
// its own browser context bounded by the configured timeout.
type ChromeScraper struct {
	headless bool
	timeout  time.Duration
	log      zerolog.Logger
}

// New builds a scraper. A non-positive timeout defaults to 20 seconds.
func New(headless bool, timeout time.Duration, log zerolog.Logger) *ChromeScraper {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &ChromeScraper{headless: headless, timeout: timeout, log: log}
}

// AboutPageLinks navigates to the channel's about page and extracts its
// external links.
func (s *ChromeScraper) AboutPageLinks(ctx context.Context, ref models.ChannelRef) ([]models.ExternalLink, error) {
	target, err := aboutURL(ref)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("url", target).Msg("Scraping channel about page")

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", s.headless),
		chromedp.UserAgent(userAgent),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancel := context.WithTimeout(browserCtx, s.timeout)
	defer cancel()

	var links []models.ExternalLink
	err = chromedp.Run(runCtx,
		chromedp.Navigate(target),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(extractLinksJS, &links),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scrape about page: %w", err)
	}

	s.log.Info().Int("count", len(links)).Msg("Extracted about page links")
	return links, nil
}

// aboutURL builds the about-page URL for the reference, with the same
// precedence the provider uses: ID, then username, then handle.
func aboutURL(ref models.ChannelRef) (string, error) {
	switch {
	case ref.ID != "":
		return fmt.Sprintf("https://www.youtube.com/channel/%s/about", ref.ID), nil
	case ref.Username != "":
		return fmt.Sprintf("https://www.youtube.com/user/%s/about", ref.Username), nil
	case ref.Handle != "":
		return fmt.Sprintf("https://www.youtube.com/@%s/about", strings.TrimPrefix(ref.Handle, "@")), nil
	default:
		return "", errors.New("empty channel reference")
	}
}
