// Package crawler fetches a web site breadth-first and extracts visible page
// text for training. The crawl is bounded by a link-depth limit and a total
// page budget, follows only same-host links, and visits each URL once.
package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"tribe-chatbot-be/internal/pkg/logger"
	"tribe-chatbot-be/pkg/extract"
)

// Page is one crawled page: its normalized URL and the visible text found on it.
type Page struct {
	URL  string
	Text string
}

type Crawler struct {
	client   *http.Client
	logger   logger.ILogger
	maxDepth int
	maxPages int
}

func New(maxDepth, maxPages int, log logger.ILogger) *Crawler {
	return &Crawler{
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   log,
		maxDepth: maxDepth,
		maxPages: maxPages,
	}
}

type queueItem struct {
	url   string
	depth int
}

// Crawl walks out from seedURL with an explicit worklist and visited set, so
// cyclic link graphs terminate and deep sites cannot grow the call stack.
// A failed or non-HTML page is skipped, never fatal to the crawl.
func (c *Crawler) Crawl(ctx context.Context, seedURL string) ([]Page, error) {
	seed, err := url.Parse(seedURL)
	if err != nil || seed.Host == "" {
		return nil, fmt.Errorf("crawler: invalid seed url %q", seedURL)
	}

	visited := map[string]bool{}
	queue := []queueItem{{url: normalizeURL(seed), depth: 0}}
	var pages []Page

	for len(queue) > 0 && len(visited) < c.maxPages {
		item := queue[0]
		queue = queue[1:]

		if visited[item.url] || item.depth > c.maxDepth {
			continue
		}
		visited[item.url] = true

		text, links, err := c.fetchPage(ctx, item.url)
		if err != nil {
			c.logger.Warn("crawler", "Skipping page", map[string]interface{}{
				"url":   item.url,
				"error": err.Error(),
			})
			continue
		}

		if strings.TrimSpace(text) != "" {
			pages = append(pages, Page{URL: item.url, Text: text})
		}

		for _, link := range links {
			if link.Host == seed.Host {
				queue = append(queue, queueItem{url: normalizeURL(link), depth: item.depth + 1})
			}
		}
	}

	c.logger.Info("crawler", "Crawl finished", map[string]interface{}{
		"seed":    seedURL,
		"visited": len(visited),
		"pages":   len(pages),
	})
	return pages, nil
}

// fetchPage downloads one URL and returns its visible text plus the absolute
// links found on it. Non-2xx and non-HTML responses come back as errors so the
// caller can log and move on.
func (c *Crawler) fetchPage(ctx context.Context, pageURL string) (string, []*url.URL, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	if !strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		return "", nil, fmt.Errorf("non-html content type %q", resp.Header.Get("Content-Type"))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, err
	}

	text, err := extract.HTMLText(strings.NewReader(string(body)))
	if err != nil {
		return "", nil, err
	}

	base, _ := url.Parse(pageURL)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return text, nil, nil
	}

	var links []*url.URL
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		link, err := base.Parse(href)
		if err != nil {
			return
		}
		if link.Scheme == "http" || link.Scheme == "https" {
			links = append(links, link)
		}
	})
	return text, links, nil
}

// normalizeURL drops fragments and trailing slashes so the visited set
// deduplicates aliases of the same page.
func normalizeURL(u *url.URL) string {
	clone := *u
	clone.Fragment = ""
	return strings.TrimSuffix(clone.String(), "/")
}
