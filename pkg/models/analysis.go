package models

import "time"

// Rating is the coarse categorical verdict extracted from a memo.
// The extraction is a best-effort keyword scan over unstructured model
// output, not a guarantee of the memo's actual tone.
type Rating string

const (
	RatingBearish Rating = "BEARISH"
	RatingNeutral Rating = "NEUTRAL"
)

// NA is the sentinel used for metrics the data provider could not supply.
const NA = "N/A"

// StockMetrics is the fixed, display-ready schema the templating stage
// consumes. Every field is a pre-formatted string; missing data is NA,
// never an empty string.
type StockMetrics struct {
	Price          string `json:"price"`
	PriceChange    string `json:"price_change"`
	PriceChangePct string `json:"price_change_pct"`
	PrevClose      string `json:"prev_close"`
	Week52High     string `json:"week_52_high"`
	Week52Low      string `json:"week_52_low"`
	PctFromHigh    string `json:"pct_from_high"`
	MarketCap      string `json:"market_cap"`
	PERatio        string `json:"pe_ratio"`
	ForwardPE      string `json:"forward_pe"`
	VolumeVsAvg    string `json:"volume_vs_avg"`
	Beta           string `json:"beta"`
	ShortPercent   string `json:"short_percent"`
	DebtToEquity   string `json:"debt_to_equity"`
	CurrentRatio   string `json:"current_ratio"`
	ProfitMargin   string `json:"profit_margin"`
	RevenueGrowth  string `json:"revenue_growth"`
	EarningsGrowth string `json:"earnings_growth"`
	TargetPrice    string `json:"target_price"`
	TargetUpside   string `json:"target_upside"`
	Recommendation string `json:"recommendation"`
}

// Memo is the full risk assessment returned to API callers.
type Memo struct {
	Ticker      string        `json:"ticker"`
	CompanyName string        `json:"company_name,omitempty"`
	Rating      Rating        `json:"rating"`
	Metrics     StockMetrics  `json:"metrics"`
	News        []NewsArticle `json:"news"`
	Analysis    string        `json:"analysis"`
	GeneratedAt time.Time     `json:"generated_at"`
}
