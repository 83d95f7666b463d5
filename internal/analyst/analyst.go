// Package analyst generates risk assessment memos by combining market
// data, news headlines, and an LLM-written analysis.
package analyst

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hedgeai/hedgeai/internal/datasource"
	"github.com/hedgeai/hedgeai/internal/llm"
	"github.com/hedgeai/hedgeai/pkg/models"
)

// Config holds memo generation settings.
type Config struct {
	Model       string
	Temperature float64
	MaxTokens   int
	NewsLimit   int
}

// DefaultConfig returns the default memo generation settings.
func DefaultConfig() Config {
	return Config{
		Temperature: 0.2,
		MaxTokens:   400,
		NewsLimit:   5,
	}
}

// Analyst orchestrates data retrieval and LLM memo generation.
type Analyst struct {
	market   datasource.MarketData
	news     datasource.NewsProvider
	provider llm.LLMProvider
	cfg      Config
}

// New creates an analyst. Zero config values fall back to defaults.
func New(market datasource.MarketData, news datasource.NewsProvider, provider llm.LLMProvider, cfg Config) *Analyst {
	def := DefaultConfig()
	if cfg.Temperature == 0 {
		cfg.Temperature = def.Temperature
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = def.MaxTokens
	}
	if cfg.NewsLimit == 0 {
		cfg.NewsLimit = def.NewsLimit
	}
	return &Analyst{
		market:   market,
		news:     news,
		provider: provider,
		cfg:      cfg,
	}
}

// Analyze fetches market data and news for the ticker, asks the LLM for a
// risk memo, and returns the assembled result. Data fetches degrade
// independently: a failed quote, fundamentals, or news leg is logged and
// its fields come out as "N/A". Only an LLM failure fails the request.
func (a *Analyst) Analyze(ctx context.Context, ticker string) (*models.Memo, error) {
	var (
		quote *models.Quote
		fund  *models.Fundamentals
		news  []models.NewsArticle
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		q, err := a.market.GetQuote(gctx, ticker)
		if err != nil {
			log.Printf("analyst: quote fetch for %s failed: %v", ticker, err)
			return nil
		}
		quote = q
		return nil
	})
	g.Go(func() error {
		f, err := a.market.GetFundamentals(gctx, ticker)
		if err != nil {
			log.Printf("analyst: fundamentals fetch for %s failed: %v", ticker, err)
			return nil
		}
		fund = f
		return nil
	})
	g.Go(func() error {
		n, err := a.news.GetStockNews(gctx, ticker, a.cfg.NewsLimit)
		if err != nil {
			log.Printf("analyst: news fetch for %s failed: %v", ticker, err)
			return nil
		}
		news = n
		return nil
	})
	_ = g.Wait() // legs swallow their own errors

	metrics := BuildMetrics(quote, fund)
	prompt := buildMemoPrompt(ticker, metrics, news)

	resp, err := a.provider.Chat(ctx, []llm.Message{
		llm.SystemMessage(systemPrompt),
		llm.UserMessage(prompt),
	}, &llm.ChatOptions{
		Model:       a.cfg.Model,
		Temperature: a.cfg.Temperature,
		MaxTokens:   a.cfg.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	memo := &models.Memo{
		Ticker:      ticker,
		Rating:      ExtractRating(resp.Content),
		Metrics:     metrics,
		News:        news,
		Analysis:    resp.Content,
		GeneratedAt: time.Now().UTC(),
	}
	if quote != nil {
		memo.CompanyName = quote.Name
	}

	return memo, nil
}
