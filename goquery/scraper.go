// Package goquery implements regchat.Scraper by parsing paragraph text out
// of HTML with goquery.
package goquery

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/regchat"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Scraper implements regchat.Scraper at compile time.
var _ regchat.Scraper = (*Scraper)(nil)

// Scraper fetches a page and extracts its paragraphs.
type Scraper struct {
	fetcher  regchat.Fetcher
	excluded []string
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithExcludedPrefixes drops paragraphs whose normalized text begins with
// any of prefixes.
func WithExcludedPrefixes(prefixes ...string) Option {
	return func(s *Scraper) {
		s.excluded = append(s.excluded, prefixes...)
	}
}

// NewScraper creates a Scraper that retrieves pages with fetcher.
func NewScraper(fetcher regchat.Fetcher, opts ...Option) *Scraper {
	s := &Scraper{fetcher: fetcher}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scrape fetches pageURL and returns its paragraphs in document order.
func (s *Scraper) Scrape(ctx context.Context, pageURL string) (*regchat.Page, error) {
	body, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return ParsePage(body, pageURL, s.excluded)
}

// ParsePage extracts the title and the text of every <p> element from body.
// Paragraph text is the trimmed text of its descendant text nodes joined by
// single spaces. Empty paragraphs and paragraphs starting with one of the
// excluded prefixes are dropped.
func ParsePage(body, pageURL string, excluded []string) (*regchat.Page, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, regchat.Errorf(regchat.EINVALID, "invalid page URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, regchat.Errorf(regchat.EINVALID, "failed to parse HTML: %v", err)
	}

	page := &regchat.Page{
		URL:   pageURL,
		Title: normalizeSpace(doc.Find("title").First().Text()),
	}

	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		text := selectionText(sel)
		if text == "" || hasAnyPrefix(text, excluded) {
			return
		}
		page.Paragraphs = append(page.Paragraphs, regchat.Paragraph{
			Text:  text,
			Links: extractLinks(sel, base),
		})
	})

	return page, nil
}

// selectionText joins the trimmed visible text nodes under sel.
func selectionText(sel *goquery.Selection) string {
	var parts []string
	for _, n := range sel.Nodes {
		collectText(n, &parts)
	}
	return normalizeSpace(strings.Join(parts, " "))
}

func collectText(n *html.Node, parts *[]string) {
	switch n.Type {
	case html.TextNode:
		if t := strings.TrimSpace(n.Data); t != "" {
			*parts = append(*parts, t)
		}
		return
	case html.ElementNode:
		if n.DataAtom == atom.Script || n.DataAtom == atom.Style {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

func extractLinks(sel *goquery.Selection, base *url.URL) []regchat.Link {
	var links []regchat.Link
	sel.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if href == "" || isNonHTTPLink(href) {
			return
		}
		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}
		links = append(links, regchat.Link{
			URL:  resolved,
			Text: selectionText(a),
		})
	})
	return links
}

// resolveURL resolves a relative URL against a base URL.
// Returns empty string if the href cannot be parsed.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// normalizeSpace collapses whitespace runs to single spaces and trims ends.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
