package resolver

import (
	"context"
	"log"
	"strings"
	"time"
)

// Method identifies which strategy produced a resolution.
type Method string

const (
	MethodExact       Method = "EXACT"
	MethodFuzzy       Method = "FUZZY"
	MethodAI          Method = "AI"
	MethodPassthrough Method = "PASSTHROUGH"
)

// Resolution describes the outcome of a single resolve call. It exists
// for logging and observability; only Ticker feeds the pipeline.
type Resolution struct {
	Ticker      string `json:"ticker"`
	Method      Method `json:"method"`
	SourceAlias string `json:"source_alias,omitempty"` // set for EXACT and FUZZY
}

// TickerLookup is the external AI-assisted lookup. Implementations answer
// either a ticker-shaped string or the sentinel UnknownTicker; any error
// is treated by the resolver as a miss and never propagated.
type TickerLookup interface {
	LookupTicker(ctx context.Context, input string) (string, error)
}

// UnknownTicker is the sentinel an AI lookup returns when it cannot
// identify a publicly traded company.
const UnknownTicker = "UNKNOWN"

// maxAITickerLen bounds how long an AI-supplied ticker may be. Longer
// answers are prose, not symbols, and are discarded.
const maxAITickerLen = 5

// Config holds the resolver's tunable thresholds.
type Config struct {
	// FuzzyCutoff is the minimum similarity to accept a fuzzy match.
	FuzzyCutoff float64
	// MinAIInputLen is the minimum original-input length (in bytes) at
	// which the AI lookup is attempted. Shorter inputs are likely already
	// valid tickers and skip straight to passthrough.
	MinAIInputLen int
	// AITimeout bounds the single AI lookup call.
	AITimeout time.Duration
}

// DefaultConfig returns the resolver defaults.
func DefaultConfig() Config {
	return Config{
		FuzzyCutoff:   DefaultFuzzyCutoff,
		MinAIInputLen: 3,
		AITimeout:     5 * time.Second,
	}
}

// Resolver turns free-form input into a ticker symbol. It never fails:
// the passthrough terminal state always produces some ticker string, and
// rejecting semantically meaningless output (empty, overlong) is the
// boundary layer's job, not the resolver's.
type Resolver struct {
	dict       *Dictionary
	lookup     TickerLookup // nil disables the AI-assisted step
	cfg        Config
	strategies []strategy
}

// strategy attempts one resolution step. raw is the original input,
// normalized is its trimmed lower-case form.
type strategy func(ctx context.Context, raw, normalized string) (Resolution, bool)

// New creates a resolver over the given dictionary. lookup may be nil,
// in which case the AI-assisted step is skipped entirely. Zero-valued
// config fields fall back to defaults.
func New(dict *Dictionary, lookup TickerLookup, cfg Config) *Resolver {
	def := DefaultConfig()
	if cfg.FuzzyCutoff <= 0 {
		cfg.FuzzyCutoff = def.FuzzyCutoff
	}
	if cfg.MinAIInputLen <= 0 {
		cfg.MinAIInputLen = def.MinAIInputLen
	}
	if cfg.AITimeout <= 0 {
		cfg.AITimeout = def.AITimeout
	}

	r := &Resolver{dict: dict, lookup: lookup, cfg: cfg}
	r.strategies = []strategy{r.exact, r.fuzzy, r.aiAssisted}
	return r
}

// Resolve returns the best-effort ticker for the input. It always
// succeeds; see ResolveDetailed for the method that produced the answer.
func (r *Resolver) Resolve(ctx context.Context, input string) string {
	return r.ResolveDetailed(ctx, input).Ticker
}

// ResolveDetailed runs the strategy chain in order and stops at the
// first success. Given a fixed dictionary and a deterministic lookup,
// the same input always yields the same resolution.
func (r *Resolver) ResolveDetailed(ctx context.Context, input string) Resolution {
	normalized := strings.ToLower(strings.TrimSpace(input))

	for _, attempt := range r.strategies {
		if res, ok := attempt(ctx, input, normalized); ok {
			log.Printf("resolver: %q -> %s via %s", input, res.Ticker, res.Method)
			return res
		}
	}

	// Terminal fallback: assume the caller already supplied a ticker.
	res := Resolution{
		Ticker: strings.ToUpper(strings.TrimSpace(input)),
		Method: MethodPassthrough,
	}
	log.Printf("resolver: no match for %q, passing through as %q", input, res.Ticker)
	return res
}

func (r *Resolver) exact(_ context.Context, _, normalized string) (Resolution, bool) {
	ticker, ok := r.dict.Lookup(normalized)
	if !ok {
		return Resolution{}, false
	}
	return Resolution{Ticker: ticker, Method: MethodExact, SourceAlias: normalized}, true
}

func (r *Resolver) fuzzy(_ context.Context, _, normalized string) (Resolution, bool) {
	alias, ok := BestMatch(normalized, r.dict.Aliases(), r.cfg.FuzzyCutoff)
	if !ok {
		return Resolution{}, false
	}
	ticker, ok := r.dict.Lookup(alias)
	if !ok {
		// Cannot happen: alias came from the dictionary's own key set.
		return Resolution{}, false
	}
	return Resolution{Ticker: ticker, Method: MethodFuzzy, SourceAlias: alias}, true
}

func (r *Resolver) aiAssisted(ctx context.Context, raw, _ string) (Resolution, bool) {
	if r.lookup == nil || len(raw) < r.cfg.MinAIInputLen {
		return Resolution{}, false
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.AITimeout)
	defer cancel()

	answer, err := r.lookup.LookupTicker(ctx, raw)
	if err != nil {
		log.Printf("resolver: AI lookup failed for %q: %v", raw, err)
		return Resolution{}, false
	}

	ticker := strings.ToUpper(strings.TrimSpace(answer))
	if ticker == "" || ticker == UnknownTicker || len(ticker) > maxAITickerLen {
		return Resolution{}, false
	}
	return Resolution{Ticker: ticker, Method: MethodAI}, true
}
