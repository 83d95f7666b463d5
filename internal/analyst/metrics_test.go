package analyst

import (
	"testing"

	"github.com/hedgeai/hedgeai/pkg/models"
)

func TestBuildMetricsAllMissing(t *testing.T) {
	m := BuildMetrics(nil, nil)

	// Every field defaults to the sentinel, never empty.
	checks := map[string]string{
		"Price":          m.Price,
		"PriceChange":    m.PriceChange,
		"PriceChangePct": m.PriceChangePct,
		"PrevClose":      m.PrevClose,
		"Week52High":     m.Week52High,
		"Week52Low":      m.Week52Low,
		"PctFromHigh":    m.PctFromHigh,
		"MarketCap":      m.MarketCap,
		"PERatio":        m.PERatio,
		"ForwardPE":      m.ForwardPE,
		"VolumeVsAvg":    m.VolumeVsAvg,
		"Beta":           m.Beta,
		"ShortPercent":   m.ShortPercent,
		"DebtToEquity":   m.DebtToEquity,
		"CurrentRatio":   m.CurrentRatio,
		"ProfitMargin":   m.ProfitMargin,
		"RevenueGrowth":  m.RevenueGrowth,
		"EarningsGrowth": m.EarningsGrowth,
		"TargetPrice":    m.TargetPrice,
		"TargetUpside":   m.TargetUpside,
		"Recommendation": m.Recommendation,
	}
	for field, value := range checks {
		if value != models.NA {
			t.Errorf("%s: got %q, want %q", field, value, models.NA)
		}
	}
}

func TestBuildMetricsFullQuote(t *testing.T) {
	quote := &models.Quote{
		Ticker:     "ZTS",
		LastPrice:  150.25,
		Change:     -2.5,
		ChangePct:  -1.64,
		PrevClose:  152.75,
		WeekHigh52: 200.50,
		WeekLow52:  144.80,
		MarketCap:  68e9,
		PE:         28.5,
		ForwardPE:  24.1,
		Volume:     2500000,
		AvgVolume:  2000000,
	}

	m := BuildMetrics(quote, nil)

	if m.Price != "$150.25" {
		t.Errorf("price: got %q", m.Price)
	}
	if m.PriceChange != "-$2.50" {
		t.Errorf("price change: got %q", m.PriceChange)
	}
	if m.PriceChangePct != "-1.64%" {
		t.Errorf("price change pct: got %q", m.PriceChangePct)
	}
	if m.Week52High != "$200.50" {
		t.Errorf("52w high: got %q", m.Week52High)
	}
	// (150.25 - 200.50) / 200.50 * 100 = -25.06%
	if m.PctFromHigh != "-25.06%" {
		t.Errorf("pct from high: got %q", m.PctFromHigh)
	}
	if m.MarketCap != "$68B" {
		t.Errorf("market cap: got %q", m.MarketCap)
	}
	if m.PERatio != "28.50" {
		t.Errorf("pe: got %q", m.PERatio)
	}
	if m.VolumeVsAvg != "1.25x" {
		t.Errorf("volume vs avg: got %q", m.VolumeVsAvg)
	}

	// Fundamentals were absent; those fields stay N/A.
	if m.Beta != models.NA || m.TargetPrice != models.NA {
		t.Errorf("fundamental fields should be N/A, got beta=%q target=%q", m.Beta, m.TargetPrice)
	}
}

func TestBuildMetricsFundamentals(t *testing.T) {
	quote := &models.Quote{LastPrice: 150.0}
	fund := &models.Fundamentals{
		Beta:           0.85,
		ShortPctFloat:  0.012,
		DebtToEquity:   132.5,
		CurrentRatio:   1.4,
		ProfitMargin:   0.27,
		RevenueGrowth:  0.08,
		EarningsGrowth: -0.05,
		TargetPrice:    180.0,
		Recommendation: "buy",
	}

	m := BuildMetrics(quote, fund)

	if m.Beta != "0.85" {
		t.Errorf("beta: got %q", m.Beta)
	}
	if m.ShortPercent != "1.20%" {
		t.Errorf("short percent: got %q", m.ShortPercent)
	}
	if m.DebtToEquity != "132.50" {
		t.Errorf("debt/equity: got %q", m.DebtToEquity)
	}
	if m.ProfitMargin != "27.00%" {
		t.Errorf("profit margin: got %q", m.ProfitMargin)
	}
	if m.RevenueGrowth != "+8.00%" {
		t.Errorf("revenue growth: got %q", m.RevenueGrowth)
	}
	if m.EarningsGrowth != "-5.00%" {
		t.Errorf("earnings growth: got %q", m.EarningsGrowth)
	}
	if m.TargetPrice != "$180.00" {
		t.Errorf("target price: got %q", m.TargetPrice)
	}
	// (180 - 150) / 150 * 100 = +20.00%
	if m.TargetUpside != "+20.00%" {
		t.Errorf("target upside: got %q", m.TargetUpside)
	}
	if m.Recommendation != "BUY" {
		t.Errorf("recommendation: got %q", m.Recommendation)
	}
}

func TestBuildMetricsNoUpsideWithoutPrice(t *testing.T) {
	fund := &models.Fundamentals{TargetPrice: 180.0}

	m := BuildMetrics(nil, fund)
	if m.TargetPrice != "$180.00" {
		t.Errorf("target price: got %q", m.TargetPrice)
	}
	if m.TargetUpside != models.NA {
		t.Errorf("target upside without a price should be N/A, got %q", m.TargetUpside)
	}
}
