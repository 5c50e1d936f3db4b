package mock

import (
	"context"

	"github.com/fwojciec/regchat"
)

var _ regchat.Scraper = (*Scraper)(nil)

// Scraper is a mock implementation of regchat.Scraper.
type Scraper struct {
	ScrapeFn func(ctx context.Context, url string) (*regchat.Page, error)
}

func (s *Scraper) Scrape(ctx context.Context, url string) (*regchat.Page, error) {
	return s.ScrapeFn(ctx, url)
}

var _ regchat.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of regchat.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

// Close calls CloseFn when set.
func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
