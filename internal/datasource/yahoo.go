package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hedgeai/hedgeai/pkg/models"
)

// Yahoo implements the MarketData interface using the Yahoo Finance API.
type Yahoo struct {
	baseURL string
	cache   *Cache
	limiter *RateLimiter
}

// YahooOption configures the Yahoo data source.
type YahooOption func(*Yahoo)

// WithYahooBaseURL sets a custom API base URL.
func WithYahooBaseURL(url string) YahooOption {
	return func(y *Yahoo) { y.baseURL = strings.TrimRight(url, "/") }
}

// NewYahoo creates a new Yahoo Finance data source.
func NewYahoo(opts ...YahooOption) *Yahoo {
	y := &Yahoo{
		baseURL: "https://query1.finance.yahoo.com",
		cache:   NewCache(5 * time.Minute),
		limiter: NewRateLimiter(5, time.Second), // 5 req/s
	}
	for _, opt := range opts {
		opt(y)
	}
	return y
}

// Name returns the data source name.
func (y *Yahoo) Name() string { return "Yahoo Finance" }

// --- Yahoo Finance API types ---

type yfQuoteResponse struct {
	QuoteResponse struct {
		Result []yfQuoteResult `json:"result"`
		Error  *yfError        `json:"error"`
	} `json:"quoteResponse"`
}

type yfQuoteResult struct {
	Symbol                     string  `json:"symbol"`
	ShortName                  string  `json:"shortName"`
	LongName                   string  `json:"longName"`
	RegularMarketPrice         float64 `json:"regularMarketPrice"`
	RegularMarketChange        float64 `json:"regularMarketChange"`
	RegularMarketChangePercent float64 `json:"regularMarketChangePercent"`
	RegularMarketOpen          float64 `json:"regularMarketOpen"`
	RegularMarketDayHigh       float64 `json:"regularMarketDayHigh"`
	RegularMarketDayLow        float64 `json:"regularMarketDayLow"`
	RegularMarketPreviousClose float64 `json:"regularMarketPreviousClose"`
	RegularMarketVolume        int64   `json:"regularMarketVolume"`
	AverageDailyVolume3Month   int64   `json:"averageDailyVolume3Month"`
	MarketCap                  float64 `json:"marketCap"`
	FiftyTwoWeekHigh           float64 `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow            float64 `json:"fiftyTwoWeekLow"`
	TrailingPE                 float64 `json:"trailingPE"`
	ForwardPE                  float64 `json:"forwardPE"`
	EpsTrailingTwelveMonths    float64 `json:"epsTrailingTwelveMonths"`
	RegularMarketTime          int64   `json:"regularMarketTime"`
}

type yfSummaryResponse struct {
	QuoteSummary struct {
		Result []yfSummaryResult `json:"result"`
		Error  *yfError          `json:"error"`
	} `json:"quoteSummary"`
}

type yfSummaryResult struct {
	FinancialData        *yfFinancialData  `json:"financialData"`
	DefaultKeyStatistics *yfKeyStats       `json:"defaultKeyStatistics"`
}

type yfFinancialData struct {
	DebtToEquity      *yfValue `json:"debtToEquity"`
	CurrentRatio      *yfValue `json:"currentRatio"`
	ProfitMargins     *yfValue `json:"profitMargins"`
	RevenueGrowth     *yfValue `json:"revenueGrowth"`
	EarningsGrowth    *yfValue `json:"earningsGrowth"`
	TargetMeanPrice   *yfValue `json:"targetMeanPrice"`
	RecommendationKey string   `json:"recommendationKey"`
}

type yfKeyStats struct {
	Beta                *yfValue `json:"beta"`
	ShortPercentOfFloat *yfValue `json:"shortPercentOfFloat"`
}

// yfValue is Yahoo's {"raw": 1.23, "fmt": "1.23"} wrapper. A nil pointer
// means the field was absent entirely.
type yfValue struct {
	Raw float64 `json:"raw"`
	Fmt string  `json:"fmt"`
}

type yfError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// --- Public methods ---

// GetQuote returns a near-real-time quote from Yahoo Finance.
func (y *Yahoo) GetQuote(ctx context.Context, ticker string) (*models.Quote, error) {
	symbol := strings.ToUpper(strings.TrimSpace(ticker))

	cacheKey := "quote:" + symbol
	if cached, ok := y.cache.Get(cacheKey); ok {
		return cached.(*models.Quote), nil
	}

	if err := y.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v7/finance/quote?symbols=%s", y.baseURL, symbol)
	body, _, err := doGet(ctx, url, map[string]string{
		"Accept": "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("yahoo quote %s: %w", symbol, err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var resp yfQuoteResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parse yahoo quote: %w", err)
	}

	if resp.QuoteResponse.Error != nil {
		return nil, fmt.Errorf("yahoo API error: %s", resp.QuoteResponse.Error.Description)
	}
	if len(resp.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTickerNotFound, ticker)
	}

	r := resp.QuoteResponse.Result[0]
	quote := &models.Quote{
		Ticker:     r.Symbol,
		Name:       coalesce(r.LongName, r.ShortName),
		LastPrice:  r.RegularMarketPrice,
		Change:     r.RegularMarketChange,
		ChangePct:  r.RegularMarketChangePercent,
		Open:       r.RegularMarketOpen,
		High:       r.RegularMarketDayHigh,
		Low:        r.RegularMarketDayLow,
		PrevClose:  r.RegularMarketPreviousClose,
		Volume:     r.RegularMarketVolume,
		AvgVolume:  r.AverageDailyVolume3Month,
		WeekHigh52: r.FiftyTwoWeekHigh,
		WeekLow52:  r.FiftyTwoWeekLow,
		MarketCap:  r.MarketCap,
		PE:         r.TrailingPE,
		ForwardPE:  r.ForwardPE,
		EPS:        r.EpsTrailingTwelveMonths,
		Timestamp:  time.Unix(r.RegularMarketTime, 0),
	}

	y.cache.Set(cacheKey, quote)
	return quote, nil
}

// GetFundamentals returns financial ratios from the Yahoo quoteSummary API.
func (y *Yahoo) GetFundamentals(ctx context.Context, ticker string) (*models.Fundamentals, error) {
	symbol := strings.ToUpper(strings.TrimSpace(ticker))

	cacheKey := "fund:" + symbol
	if cached, ok := y.cache.Get(cacheKey); ok {
		return cached.(*models.Fundamentals), nil
	}

	if err := y.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf(
		"%s/v10/finance/quoteSummary/%s?modules=financialData,defaultKeyStatistics",
		y.baseURL, symbol,
	)
	body, _, err := doGet(ctx, url, map[string]string{
		"Accept": "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("yahoo fundamentals %s: %w", symbol, err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var resp yfSummaryResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parse yahoo fundamentals: %w", err)
	}

	if resp.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo API error: %s", resp.QuoteSummary.Error.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTickerNotFound, ticker)
	}

	r := resp.QuoteSummary.Result[0]
	fund := &models.Fundamentals{Ticker: symbol}

	if fd := r.FinancialData; fd != nil {
		fund.DebtToEquity = rawOrZero(fd.DebtToEquity)
		fund.CurrentRatio = rawOrZero(fd.CurrentRatio)
		fund.ProfitMargin = rawOrZero(fd.ProfitMargins)
		fund.RevenueGrowth = rawOrZero(fd.RevenueGrowth)
		fund.EarningsGrowth = rawOrZero(fd.EarningsGrowth)
		fund.TargetPrice = rawOrZero(fd.TargetMeanPrice)
		fund.Recommendation = fd.RecommendationKey
	}
	if ks := r.DefaultKeyStatistics; ks != nil {
		fund.Beta = rawOrZero(ks.Beta)
		fund.ShortPctFloat = rawOrZero(ks.ShortPercentOfFloat)
	}

	y.cache.SetWithTTL(cacheKey, fund, 1*time.Hour)
	return fund, nil
}

// --- Helpers ---

func rawOrZero(v *yfValue) float64 {
	if v == nil {
		return 0
	}
	return v.Raw
}

func coalesce(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
