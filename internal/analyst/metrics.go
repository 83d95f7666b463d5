package analyst

import (
	"fmt"
	"strings"

	"github.com/hedgeai/hedgeai/pkg/models"
	"github.com/hedgeai/hedgeai/pkg/utils"
)

// BuildMetrics normalizes raw provider data into the fixed display schema.
// Either input may be nil when its fetch failed; any field the provider
// did not supply comes out as the "N/A" sentinel, never an empty string.
func BuildMetrics(quote *models.Quote, fund *models.Fundamentals) models.StockMetrics {
	m := models.StockMetrics{
		Price:          models.NA,
		PriceChange:    models.NA,
		PriceChangePct: models.NA,
		PrevClose:      models.NA,
		Week52High:     models.NA,
		Week52Low:      models.NA,
		PctFromHigh:    models.NA,
		MarketCap:      models.NA,
		PERatio:        models.NA,
		ForwardPE:      models.NA,
		VolumeVsAvg:    models.NA,
		Beta:           models.NA,
		ShortPercent:   models.NA,
		DebtToEquity:   models.NA,
		CurrentRatio:   models.NA,
		ProfitMargin:   models.NA,
		RevenueGrowth:  models.NA,
		EarningsGrowth: models.NA,
		TargetPrice:    models.NA,
		TargetUpside:   models.NA,
		Recommendation: models.NA,
	}

	if quote != nil {
		if quote.LastPrice > 0 {
			m.Price = utils.FormatUSD(quote.LastPrice)
			m.PriceChange = signedUSD(quote.Change)
			m.PriceChangePct = utils.FormatPct(quote.ChangePct)
		}
		if quote.PrevClose > 0 {
			m.PrevClose = utils.FormatUSD(quote.PrevClose)
		}
		if quote.WeekHigh52 > 0 {
			m.Week52High = utils.FormatUSD(quote.WeekHigh52)
		}
		if quote.WeekLow52 > 0 {
			m.Week52Low = utils.FormatUSD(quote.WeekLow52)
		}
		if quote.WeekHigh52 > 0 && quote.LastPrice > 0 {
			pct := (quote.LastPrice - quote.WeekHigh52) / quote.WeekHigh52 * 100
			m.PctFromHigh = utils.FormatPct(pct)
		}
		if quote.MarketCap > 0 {
			m.MarketCap = utils.FormatUSDCompact(quote.MarketCap)
		}
		if quote.PE > 0 {
			m.PERatio = utils.FormatRatio(quote.PE)
		}
		if quote.ForwardPE > 0 {
			m.ForwardPE = utils.FormatRatio(quote.ForwardPE)
		}
		if quote.AvgVolume > 0 && quote.Volume > 0 {
			m.VolumeVsAvg = fmt.Sprintf("%.2fx", float64(quote.Volume)/float64(quote.AvgVolume))
		}
	}

	if fund != nil {
		if fund.Beta != 0 {
			m.Beta = utils.FormatRatio(fund.Beta)
		}
		if fund.ShortPctFloat > 0 {
			m.ShortPercent = plainPct(fund.ShortPctFloat * 100)
		}
		if fund.DebtToEquity > 0 {
			m.DebtToEquity = utils.FormatRatio(fund.DebtToEquity)
		}
		if fund.CurrentRatio > 0 {
			m.CurrentRatio = utils.FormatRatio(fund.CurrentRatio)
		}
		if fund.ProfitMargin != 0 {
			m.ProfitMargin = plainPct(fund.ProfitMargin * 100)
		}
		if fund.RevenueGrowth != 0 {
			m.RevenueGrowth = utils.FormatPct(fund.RevenueGrowth * 100)
		}
		if fund.EarningsGrowth != 0 {
			m.EarningsGrowth = utils.FormatPct(fund.EarningsGrowth * 100)
		}
		if fund.TargetPrice > 0 {
			m.TargetPrice = utils.FormatUSD(fund.TargetPrice)
			if quote != nil && quote.LastPrice > 0 {
				upside := (fund.TargetPrice - quote.LastPrice) / quote.LastPrice * 100
				m.TargetUpside = utils.FormatPct(upside)
			}
		}
		if fund.Recommendation != "" {
			m.Recommendation = strings.ToUpper(fund.Recommendation)
		}
	}

	return m
}

// signedUSD formats a dollar delta with an explicit sign, e.g. "+$2.50".
func signedUSD(amount float64) string {
	if amount >= 0 {
		return "+" + utils.FormatUSD(amount)
	}
	return utils.FormatUSD(amount)
}

// plainPct formats an unsigned percentage, e.g. 27.0 → "27.00%".
func plainPct(pct float64) string {
	return fmt.Sprintf("%.2f%%", pct)
}
