package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"podrank/internal/config"
	"podrank/internal/crawler"
	"podrank/internal/normalizer"
)

func testScraper() *crawler.Scraper {
	policy := config.Default().Retry
	policy.MaxAttempts = 2
	policy.InitialDelayMs = 1
	policy.MaxDelayMs = 2

	return crawler.NewScraperWithConfig(policy)
}

func serve(t *testing.T, contentType, body string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestJSONSource_Fetch(t *testing.T) {
	srv := serve(t, "application/json", `[{"title":"A","url":"http://a","source":"x","score":1.5,"tags":["t"]}]`)

	src := NewJSONSource("remote", srv.URL, testScraper())
	assert.Equal(t, "remote", src.Name())

	records, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, json.Number("1.5"), records[0]["score"])
}

func TestJSONSource_NotRecordSequence(t *testing.T) {
	srv := serve(t, "application/json", `"nope"`)

	_, err := NewJSONSource("remote", srv.URL, testScraper()).Fetch(context.Background())
	assert.ErrorIs(t, err, normalizer.ErrNotRecordSequence)
}

func TestJSONSource_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)

	_, err := NewJSONSource("remote", srv.URL, testScraper()).Fetch(context.Background())
	assert.ErrorIs(t, err, crawler.ErrUnexpectedStatusCode)
}

const rankPage = `<!doctype html>
<html><body>
<nav><a href="/home">首页</a></nav>
<ol id="rank" class="list top">
  <li><a href="/podcast/1">  忽左忽右 <span>历史</span></a></li>
  <li><a href="https://other.example/p/2">得意忘形</a></li>
  <li><a href="#">跳过</a></li>
  <li><a href="javascript:void(0)">跳过</a></li>
  <li><a href="/podcast/3"> </a></li>
  <li><a>无链接</a></li>
</ol>
</body></html>`

func TestHTMLSource_Parse(t *testing.T) {
	tests := []struct {
		name     string
		selector string
		want     []string
	}{
		{"by id", "#rank", []string{"忽左忽右 历史", "得意忘形"}},
		{"by class", ".top", []string{"忽左忽右 历史", "得意忘形"}},
		{"by tag", "nav", []string{"首页"}},
		{"whole document", "", []string{"首页", "忽左忽右 历史", "得意忘形"}},
		{"no match", "#missing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := NewHTMLSource("page", "https://rank.example/top", tt.selector, nil)

			records, err := src.Parse([]byte(rankPage))
			require.NoError(t, err)
			require.NotNil(t, records)

			var titles []string
			for _, rec := range records {
				titles = append(titles, rec["title"].(string))
			}

			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestHTMLSource_ResolvesLinks(t *testing.T) {
	records, err := NewHTMLSource("page", "https://rank.example/top", "#rank", nil).Parse([]byte(rankPage))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "https://rank.example/podcast/1", records[0]["url"])
	assert.Equal(t, "https://other.example/p/2", records[1]["url"])
}

func TestHTMLSource_Fetch(t *testing.T) {
	srv := serve(t, "text/html; charset=utf-8", rankPage)

	records, err := NewHTMLSource("page", srv.URL+"/top", "#rank", testScraper()).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, srv.URL+"/podcast/1", records[0]["url"])
}

func TestHTMLSource_OversizedPage(t *testing.T) {
	var page strings.Builder

	page.WriteString(`<html><body><ol id="rank">`)

	for i := range 200 {
		fmt.Fprintf(&page, `<li><a href="/podcast/%d">播客节目 %d</a></li>`, i, i)
	}

	page.WriteString(`</ol></body></html>`)

	srv := serve(t, "text/html; charset=utf-8", page.String())

	policy := config.Default().Retry
	policy.MaxBodyKb = 4

	records, err := NewHTMLSource("page", srv.URL, "#rank", crawler.NewScraperWithConfig(policy)).Fetch(context.Background())
	require.ErrorIs(t, err, crawler.ErrBodyTooLarge)
	assert.Nil(t, records)
}
