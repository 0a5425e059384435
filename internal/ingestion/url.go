package ingestion

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/essay-assistant/internal/fetch"
)

var (
	// ErrHTTPRequestFailed is returned when fetching the page fails.
	ErrHTTPRequestFailed = fmt.Errorf("HTTP request failed")
	// ErrContentExtractionFailed is returned when no essay text can be
	// extracted from the page.
	ErrContentExtractionFailed = fmt.Errorf("content extraction failed")
)

// FromURL fetches an essay archive page and extracts its essay text. For
// JavaScript-rendered pages it falls back to a headless browser when
// useBrowser is set.
func FromURL(ctx context.Context, fetcher *fetch.CachedFetcher, urlStr string, useBrowser, verbose bool) (string, error) {
	result, err := fetcher.Fetch(ctx, urlStr)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}
	if verbose {
		log.Printf("[VERBOSE] Fetched %s: %d chars of text (cache: %v)", urlStr, len(result.Text), result.FromCache)
	}

	text := result.Text
	if fetch.ShouldUseBrowser(text) && useBrowser {
		html, err := fetch.WithBrowser(ctx, urlStr, fetch.DefaultTimeout, verbose)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
		}
		text, err = fetch.ExtractMainText(html, fetch.EssayPageSelectors(), fetch.EssayPageNoiseSelectors()...)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
		}
	}

	if text == "" {
		return "", ErrContentExtractionFailed
	}
	return text, nil
}
