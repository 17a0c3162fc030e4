package source

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"podrank/internal/crawler"
	"podrank/internal/models"
	"podrank/pkg/utils"
)

// HTMLSource scrapes anchors from a ranking page. Every <a href> inside the
// element matched by selector becomes one record, in document order.
type HTMLSource struct {
	name     string
	pageURL  string
	selector string
	scraper  *crawler.Scraper
	text     *utils.StringHelper
}

// NewHTMLSource creates a source for pageURL. The selector is "#id",
// ".class" or a tag name; empty means the whole document.
func NewHTMLSource(name, pageURL, selector string, scraper *crawler.Scraper) *HTMLSource {
	return &HTMLSource{
		name:     name,
		pageURL:  pageURL,
		selector: strings.TrimSpace(selector),
		scraper:  scraper,
		text:     utils.NewStringHelper(),
	}
}

// Name returns the registry name.
func (s *HTMLSource) Name() string {
	return s.name
}

// Fetch downloads the page and extracts its links.
func (s *HTMLSource) Fetch(ctx context.Context) ([]models.RawRecord, error) {
	body, err := s.scraper.Fetch(ctx, s.pageURL)
	if err != nil {
		return nil, err
	}

	return s.Parse(body)
}

// Parse extracts records from an HTML document.
func (s *HTMLSource) Parse(body []byte) ([]models.RawRecord, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	base, err := url.Parse(s.pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid page URL %q: %w", s.pageURL, err)
	}

	records := []models.RawRecord{}

	for _, root := range s.roots(doc) {
		for _, a := range findAll(root, isAnchor) {
			rec, ok := s.record(a, base)
			if ok {
				records = append(records, rec)
			}
		}
	}

	return records, nil
}

func (s *HTMLSource) roots(doc *html.Node) []*html.Node {
	if s.selector == "" {
		return []*html.Node{doc}
	}

	var match func(*html.Node) bool

	switch {
	case strings.HasPrefix(s.selector, "#"):
		id := s.selector[1:]
		match = func(n *html.Node) bool { return attr(n, "id") == id }
	case strings.HasPrefix(s.selector, "."):
		class := s.selector[1:]
		match = func(n *html.Node) bool {
			return n.Type == html.ElementNode && containsField(attr(n, "class"), class)
		}
	default:
		tag := strings.ToLower(s.selector)
		match = func(n *html.Node) bool { return n.Type == html.ElementNode && n.Data == tag }
	}

	return findAll(doc, match)
}

func (s *HTMLSource) record(a *html.Node, base *url.URL) (models.RawRecord, bool) {
	href := strings.TrimSpace(attr(a, "href"))
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(strings.ToLower(href), "javascript:") {
		return nil, false
	}

	title := s.text.NormalizeWhitespace(textOf(a))
	if title == "" {
		return nil, false
	}

	ref, err := url.Parse(href)
	if err != nil {
		return nil, false
	}

	return models.RawRecord{
		"title": title,
		"url":   base.ResolveReference(ref).String(),
	}, true
}

// findAll returns every node under n (inclusive) matching fn, in document
// order. Matches are not descended into.
func findAll(n *html.Node, fn func(*html.Node) bool) []*html.Node {
	if fn(n) {
		return []*html.Node{n}
	}

	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, findAll(c, fn)...)
	}

	return out
}

func isAnchor(n *html.Node) bool {
	return n.Type == html.ElementNode && n.Data == "a"
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}

	return ""
}

func containsField(list, want string) bool {
	for _, f := range strings.Fields(list) {
		if f == want {
			return true
		}
	}

	return false
}

func textOf(n *html.Node) string {
	var b strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return b.String()
}
