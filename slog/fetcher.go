// Package slog provides logging decorators for regchat services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/regchat"
)

// Ensure LoggingFetcher implements regchat.Fetcher.
var _ regchat.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   regchat.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next regchat.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// Ensure LoggingScraper implements regchat.Scraper.
var _ regchat.Scraper = (*LoggingScraper)(nil)

// LoggingScraper wraps a Scraper, logging the page summary and, at debug
// level, every paragraph and link.
type LoggingScraper struct {
	next   regchat.Scraper
	logger *slog.Logger
}

// NewLoggingScraper creates a new LoggingScraper.
func NewLoggingScraper(next regchat.Scraper, logger *slog.Logger) *LoggingScraper {
	return &LoggingScraper{next: next, logger: logger}
}

// Scrape delegates to the wrapped scraper and logs the result.
func (s *LoggingScraper) Scrape(ctx context.Context, url string) (page *regchat.Page, err error) {
	defer func(begin time.Time) {
		if page == nil {
			s.logger.Info("scrape", "url", url, "duration", time.Since(begin), "err", err)
			return
		}
		s.logger.Info("scrape",
			"url", url,
			"title", page.Title,
			"paragraphs", len(page.Paragraphs),
			"duration", time.Since(begin),
		)
		for i, p := range page.Paragraphs {
			s.logger.Debug("paragraph", "index", i+1, "text", p.Text)
			for j, l := range p.Links {
				s.logger.Debug("link", "paragraph", i+1, "index", j+1, "url", l.URL, "text", l.Text)
			}
		}
	}(time.Now())
	return s.next.Scrape(ctx, url)
}
