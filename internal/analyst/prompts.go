package analyst

import (
	"fmt"
	"strings"

	"github.com/hedgeai/hedgeai/pkg/models"
)

// systemPrompt sets the persona for memo generation.
const systemPrompt = `You are a cynical, risk-focused hedge fund analyst.
Your job is to protect capital by identifying DOWNSIDE risks.
You do not cheerlead.`

// buildMemoPrompt assembles the user prompt from normalized data. Metrics
// are passed pre-formatted so the model cannot hallucinate numbers.
func buildMemoPrompt(ticker string, metrics models.StockMetrics, news []models.NewsArticle) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Analyze the stock ticker: %s\n\n", ticker)
	b.WriteString("HERE IS THE REAL-TIME DATA (Do not hallucinate numbers):\n")
	fmt.Fprintf(&b, "- Current Price: %s (%s, %s)\n", metrics.Price, metrics.PriceChange, metrics.PriceChangePct)
	fmt.Fprintf(&b, "- Previous Close: %s\n", metrics.PrevClose)
	fmt.Fprintf(&b, "- 52-Week Range: %s - %s (%s from high)\n", metrics.Week52Low, metrics.Week52High, metrics.PctFromHigh)
	fmt.Fprintf(&b, "- Market Cap: %s\n", metrics.MarketCap)
	fmt.Fprintf(&b, "- P/E: %s (forward %s)\n", metrics.PERatio, metrics.ForwardPE)
	fmt.Fprintf(&b, "- Volume vs Average: %s\n", metrics.VolumeVsAvg)
	fmt.Fprintf(&b, "- Beta: %s, Short %% of Float: %s\n", metrics.Beta, metrics.ShortPercent)
	fmt.Fprintf(&b, "- Debt/Equity: %s, Current Ratio: %s\n", metrics.DebtToEquity, metrics.CurrentRatio)
	fmt.Fprintf(&b, "- Profit Margin: %s, Revenue Growth: %s, Earnings Growth: %s\n",
		metrics.ProfitMargin, metrics.RevenueGrowth, metrics.EarningsGrowth)
	fmt.Fprintf(&b, "- Analyst Target: %s (%s upside), Consensus: %s\n",
		metrics.TargetPrice, metrics.TargetUpside, metrics.Recommendation)

	b.WriteString("- Recent News Headlines:\n")
	if len(news) == 0 {
		b.WriteString("No recent news found.\n")
	}
	for _, a := range news {
		fmt.Fprintf(&b, "- %s (Source: %s)\n", a.Title, a.Source)
	}

	b.WriteString("\nTASK:\n")
	b.WriteString("Write a 'Risk Assessment Memo' (max 150 words).\n")
	b.WriteString("1. Acknowledge the price action.\n")
	b.WriteString("2. Identify 2 major risks based on the news provided.\n")
	b.WriteString("3. Conclude with a 'Bearish' or 'Neutral' rating.\n")

	return b.String()
}
