package resolver

import (
	"context"
	"fmt"

	"github.com/hedgeai/hedgeai/internal/llm"
)

// lookupPrompt constrains the model to answer a bare ticker symbol or
// the UNKNOWN sentinel, nothing else.
const lookupPrompt = `You are a stock market expert. Given a company name or partial name, return ONLY the stock ticker symbol.

Rules:
- Return ONLY the ticker symbol (e.g., "AAPL", "GOOGL", "MSFT")
- If it's already a ticker symbol, return it as-is
- If the company is not publicly traded or you're not sure, return "UNKNOWN"
- Do not include any explanation, just the ticker symbol

Company name: %s

Ticker symbol:`

// LLMTickerLookup implements TickerLookup on top of an LLM provider,
// using a cheap fast model with temperature 0 and a tiny token budget.
type LLMTickerLookup struct {
	provider llm.LLMProvider
	model    string
}

// NewLLMTickerLookup creates an AI lookup backed by the given provider.
// model may be empty to use the provider's default.
func NewLLMTickerLookup(provider llm.LLMProvider, model string) *LLMTickerLookup {
	return &LLMTickerLookup{provider: provider, model: model}
}

// LookupTicker asks the model for the ticker of the given company name.
// The raw answer is returned as-is; the resolver owns validation.
func (l *LLMTickerLookup) LookupTicker(ctx context.Context, input string) (string, error) {
	resp, err := l.provider.Chat(ctx,
		[]llm.Message{llm.UserMessage(fmt.Sprintf(lookupPrompt, input))},
		&llm.ChatOptions{
			Model:     l.model,
			MaxTokens: 10,
		})
	if err != nil {
		return "", fmt.Errorf("ticker lookup: %w", err)
	}
	return resp.Content, nil
}
