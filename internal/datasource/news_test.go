package datasource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hedgeai/hedgeai/pkg/models"
)

const rssFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
	<title>Yahoo! Finance: ZTS News</title>
	<link>https://finance.yahoo.com</link>
	<item>
		<title>Zoetis beats earnings estimates</title>
		<link>https://example.com/a</link>
		<description>&lt;p&gt;Strong quarter for the &lt;b&gt;animal health&lt;/b&gt; giant.&lt;/p&gt;</description>
		<pubDate>Mon, 02 Jun 2025 10:00:00 +0000</pubDate>
	</item>
	<item>
		<title>Analysts raise Zoetis price target</title>
		<link>https://example.com/b</link>
		<description>Target raised to $200.</description>
		<pubDate>Tue, 03 Jun 2025 09:00:00 +0000</pubDate>
	</item>
	<item>
		<title>Sector roundup</title>
		<link>https://example.com/c</link>
		<description></description>
		<pubDate>Sun, 01 Jun 2025 08:00:00 +0000</pubDate>
	</item>
</channel>
</rss>`

func newTestNewsServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("s"); got != "ZTS" {
			t.Errorf("ticker query param: got %q", got)
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(rssFixture))
	}))
}

func TestGetStockNews(t *testing.T) {
	server := newTestNewsServer(t)
	defer server.Close()

	n := NewYahooNews(WithFeedURL(server.URL + "/rss?s=%s"))
	articles, err := n.GetStockNews(context.Background(), "zts", 0)
	if err != nil {
		t.Fatalf("GetStockNews() error: %v", err)
	}

	if len(articles) != 3 {
		t.Fatalf("articles: got %d, want 3", len(articles))
	}

	// Newest first.
	if articles[0].Title != "Analysts raise Zoetis price target" {
		t.Errorf("first article: got %q", articles[0].Title)
	}
	if articles[2].Title != "Sector roundup" {
		t.Errorf("last article: got %q", articles[2].Title)
	}

	// HTML stripped from summaries.
	if articles[1].Summary != "Strong quarter for the animal health giant." {
		t.Errorf("summary: got %q", articles[1].Summary)
	}
	if articles[0].Source != "Yahoo! Finance: ZTS News" {
		t.Errorf("source: got %q", articles[0].Source)
	}
}

func TestGetStockNewsLimit(t *testing.T) {
	server := newTestNewsServer(t)
	defer server.Close()

	n := NewYahooNews(WithFeedURL(server.URL + "/rss?s=%s"))
	articles, err := n.GetStockNews(context.Background(), "ZTS", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(articles) != 2 {
		t.Errorf("articles: got %d, want 2", len(articles))
	}
}

func TestGetStockNewsCaches(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(rssFixture))
	}))
	defer server.Close()

	n := NewYahooNews(WithFeedURL(server.URL + "/rss?s=%s"))
	for i := 0; i < 3; i++ {
		if _, err := n.GetStockNews(context.Background(), "ZTS", 5); err != nil {
			t.Fatal(err)
		}
	}
	if hits != 1 {
		t.Errorf("server hits: got %d, want 1 (cached)", hits)
	}
}

func TestCleanHTML(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"plain text", "plain text"},
		{"<p>hello <b>world</b></p>", "hello world"},
		{"  <div> spaced </div>  ", "spaced"},
	}

	for _, tt := range tests {
		if got := cleanHTML(tt.input); got != tt.expected {
			t.Errorf("cleanHTML(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestSortArticlesByDate(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	articles := []models.NewsArticle{
		{Title: "old", PublishedAt: base},
		{Title: "newest", PublishedAt: base.Add(48 * time.Hour)},
		{Title: "middle", PublishedAt: base.Add(24 * time.Hour)},
	}

	sortArticlesByDate(articles)

	want := []string{"newest", "middle", "old"}
	for i, title := range want {
		if articles[i].Title != title {
			t.Errorf("position %d: got %q, want %q", i, articles[i].Title, title)
		}
	}
}
