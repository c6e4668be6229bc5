package crawler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tribe-chatbot-be/internal/pkg/logger"
)

func newSite(t *testing.T, pages map[string]string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for path, body := range pages {
		body := body
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			fmt.Fprint(w, body)
		})
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCrawlSelfLoopTerminates(t *testing.T) {
	srv := newSite(t, map[string]string{
		"/": `<html><body><p>home page</p><a href="/">home</a></body></html>`,
	})

	c := New(3, 10, logger.NewNopLogger())
	pages, err := c.Crawl(context.Background(), srv.URL)
	require.NoError(t, err)

	require.Len(t, pages, 1)
	assert.Contains(t, pages[0].Text, "home page")
}

func TestCrawlFollowsSameHostLinksOnly(t *testing.T) {
	srv := newSite(t, map[string]string{
		"/":      `<html><body><p>root</p><a href="/about">about</a><a href="http://other.example/x">ext</a></body></html>`,
		"/about": `<html><body><p>about us</p></body></html>`,
	})

	c := New(2, 10, logger.NewNopLogger())
	pages, err := c.Crawl(context.Background(), srv.URL)
	require.NoError(t, err)

	require.Len(t, pages, 2)
	assert.Contains(t, pages[1].Text, "about us")
}

func TestCrawlRespectsPageBudget(t *testing.T) {
	pages := map[string]string{}
	for i := 0; i < 20; i++ {
		links := ""
		for j := 0; j < 20; j++ {
			links += fmt.Sprintf(`<a href="/p%d">p%d</a>`, j, j)
		}
		pages[fmt.Sprintf("/p%d", i)] = fmt.Sprintf("<html><body><p>page %d</p>%s</body></html>", i, links)
	}
	pages["/"] = pages["/p0"]
	srv := newSite(t, pages)

	c := New(5, 4, logger.NewNopLogger())
	got, err := c.Crawl(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(got), 4)
}

func TestCrawlRespectsDepthLimit(t *testing.T) {
	srv := newSite(t, map[string]string{
		"/":   `<html><body><p>level zero</p><a href="/a">a</a></body></html>`,
		"/a":  `<html><body><p>level one</p><a href="/ab">ab</a></body></html>`,
		"/ab": `<html><body><p>level two</p></body></html>`,
	})

	c := New(1, 10, logger.NewNopLogger())
	pages, err := c.Crawl(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Len(t, pages, 2)
}

func TestCrawlSkipsBrokenAndNonHTMLPages(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body><p>ok page</p><a href="/missing">m</a><a href="/data.json">d</a></body></html>`)
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})
	mux.HandleFunc("/data.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"a":1}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(2, 10, logger.NewNopLogger())
	pages, err := c.Crawl(context.Background(), srv.URL)
	require.NoError(t, err)

	require.Len(t, pages, 1)
	assert.Contains(t, pages[0].Text, "ok page")
}

func TestCrawlInvalidSeed(t *testing.T) {
	c := New(1, 5, logger.NewNopLogger())
	_, err := c.Crawl(context.Background(), "not a url")
	assert.Error(t, err)
}
