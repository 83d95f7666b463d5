// Package models defines the core data structures used throughout HedgeAI.
package models

import "time"

// Quote represents a real-time stock quote from a market data provider.
// Fields the provider did not return are left at their zero value; the
// analyst layer maps zero values to the "N/A" sentinel for display.
type Quote struct {
	Ticker     string    `json:"ticker"`
	Name       string    `json:"name"`
	LastPrice  float64   `json:"last_price"`
	Change     float64   `json:"change"`
	ChangePct  float64   `json:"change_pct"`
	PrevClose  float64   `json:"prev_close"`
	Open       float64   `json:"open"`
	High       float64   `json:"high"`
	Low        float64   `json:"low"`
	WeekHigh52 float64   `json:"week_high_52"`
	WeekLow52  float64   `json:"week_low_52"`
	MarketCap  float64   `json:"market_cap"`
	PE         float64   `json:"pe,omitempty"`
	ForwardPE  float64   `json:"forward_pe,omitempty"`
	EPS        float64   `json:"eps,omitempty"`
	Volume     int64     `json:"volume"`
	AvgVolume  int64     `json:"avg_volume"`
	Timestamp  time.Time `json:"timestamp"`
}

// Fundamentals holds slower-moving financial ratios fetched from the
// provider's fundamentals endpoint. All values are raw (not formatted);
// fractional ratios (margins, growth, short interest) are 0..1 fractions.
type Fundamentals struct {
	Ticker         string  `json:"ticker"`
	Beta           float64 `json:"beta,omitempty"`
	ShortPctFloat  float64 `json:"short_pct_float,omitempty"`
	DebtToEquity   float64 `json:"debt_to_equity,omitempty"`
	CurrentRatio   float64 `json:"current_ratio,omitempty"`
	ProfitMargin   float64 `json:"profit_margin,omitempty"`
	RevenueGrowth  float64 `json:"revenue_growth,omitempty"`
	EarningsGrowth float64 `json:"earnings_growth,omitempty"`
	TargetPrice    float64 `json:"target_price,omitempty"`
	Recommendation string  `json:"recommendation,omitempty"`
}

// NewsArticle represents a single news headline for a ticker.
type NewsArticle struct {
	Title       string    `json:"title"`
	Source      string    `json:"source"`
	URL         string    `json:"url,omitempty"`
	Summary     string    `json:"summary,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}
