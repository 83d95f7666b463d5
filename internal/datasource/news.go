package datasource

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/hedgeai/hedgeai/pkg/models"
)

// defaultFeedURL is the Yahoo Finance per-ticker headline RSS feed.
// The %s placeholder takes the ticker symbol.
const defaultFeedURL = "https://feeds.finance.yahoo.com/rss/2.0/headline?s=%s&region=US&lang=en-US"

// YahooNews implements NewsProvider using the Yahoo Finance RSS feed.
type YahooNews struct {
	feedURL string
	cache   *Cache
	limiter *RateLimiter
	parser  *gofeed.Parser
}

// YahooNewsOption configures the news source.
type YahooNewsOption func(*YahooNews)

// WithFeedURL sets a custom feed URL template. The template must contain
// a single %s placeholder for the ticker.
func WithFeedURL(url string) YahooNewsOption {
	return func(n *YahooNews) { n.feedURL = url }
}

// NewYahooNews creates a news source backed by Yahoo Finance RSS.
func NewYahooNews(opts ...YahooNewsOption) *YahooNews {
	n := &YahooNews{
		feedURL: defaultFeedURL,
		cache:   NewCache(10 * time.Minute),
		limiter: NewRateLimiter(2, time.Second), // conservative: 2 req/s
		parser:  gofeed.NewParser(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Name returns the news source name.
func (n *YahooNews) Name() string { return "Yahoo Finance News" }

// GetStockNews returns recent headlines for the given ticker, newest first.
func (n *YahooNews) GetStockNews(ctx context.Context, ticker string, limit int) ([]models.NewsArticle, error) {
	symbol := strings.ToUpper(strings.TrimSpace(ticker))

	cacheKey := fmt.Sprintf("news:%s:%d", symbol, limit)
	if cached, ok := n.cache.Get(cacheKey); ok {
		return cached.([]models.NewsArticle), nil
	}

	if err := n.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	feed, err := n.parser.ParseURLWithContext(fmt.Sprintf(n.feedURL, symbol), ctx)
	if err != nil {
		return nil, fmt.Errorf("parse news feed for %s: %w", symbol, err)
	}

	articles := make([]models.NewsArticle, 0, len(feed.Items))
	for _, item := range feed.Items {
		a := models.NewsArticle{
			Title:   strings.TrimSpace(item.Title),
			URL:     item.Link,
			Source:  sourceName(item, feed),
			Summary: cleanHTML(item.Description),
		}
		if a.Title == "" {
			continue
		}
		if item.PublishedParsed != nil {
			a.PublishedAt = *item.PublishedParsed
		}
		articles = append(articles, a)
	}

	sortArticlesByDate(articles)

	if limit > 0 && len(articles) > limit {
		articles = articles[:limit]
	}

	n.cache.Set(cacheKey, articles)
	return articles, nil
}

// --- Internal helpers ---

// sourceName prefers the item-level source, falling back to the feed title.
func sourceName(item *gofeed.Item, feed *gofeed.Feed) string {
	if item.Custom != nil {
		if s, ok := item.Custom["source"]; ok && s != "" {
			return s
		}
	}
	if feed.Title != "" {
		return feed.Title
	}
	return "Yahoo Finance"
}

// cleanHTML strips HTML tags from a string using goquery.
func cleanHTML(s string) string {
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + s + "</body>"))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}

// sortArticlesByDate sorts articles by published date (newest first).
// Simple insertion sort, fine for small slices.
func sortArticlesByDate(articles []models.NewsArticle) {
	for i := 1; i < len(articles); i++ {
		key := articles[i]
		j := i - 1
		for j >= 0 && articles[j].PublishedAt.Before(key.PublishedAt) {
			articles[j+1] = articles[j]
			j--
		}
		articles[j+1] = key
	}
}
