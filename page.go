package regchat

import (
	"context"
	"strings"
)

// Page is the scraped content of the source document.
type Page struct {
	URL        string
	Title      string
	Paragraphs []Paragraph
}

// Paragraph is the normalized text of one paragraph element.
type Paragraph struct {
	Text  string
	Links []Link
}

// Link is a hyperlink found inside a paragraph, resolved against the page URL.
type Link struct {
	URL  string
	Text string
}

// Text returns the paragraph texts joined by newlines in document order.
func (p *Page) Text() string {
	return strings.Join(p.Lines(), "\n")
}

// Lines returns the paragraph texts in document order.
func (p *Page) Lines() []string {
	lines := make([]string, len(p.Paragraphs))
	for i, para := range p.Paragraphs {
		lines[i] = para.Text
	}
	return lines
}

// Scraper turns a web page into paragraphs of text.
type Scraper interface {
	// Scrape fetches url and returns its paragraphs.
	// Returns EFETCH if the page cannot be retrieved.
	Scrape(ctx context.Context, url string) (*Page, error)
}
