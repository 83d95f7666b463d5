package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/hedgeai/hedgeai/internal/config"
)

// Router routes LLM requests to the configured primary provider and
// falls back through the remaining providers on failure.
type Router struct {
	mu         sync.RWMutex
	providers  map[string]LLMProvider
	primary    string
	fallbacks  []string
	maxRetries int
	retryDelay time.Duration
}

// RouterOption configures the router.
type RouterOption func(*Router)

// WithFallbacks sets the fallback provider chain.
func WithFallbacks(providers ...string) RouterOption {
	return func(r *Router) { r.fallbacks = providers }
}

// WithMaxRetries sets the maximum number of retry attempts per provider.
func WithMaxRetries(n int) RouterOption {
	return func(r *Router) { r.maxRetries = n }
}

// WithRetryDelay sets the base delay between retries.
func WithRetryDelay(d time.Duration) RouterOption {
	return func(r *Router) { r.retryDelay = d }
}

// NewRouter creates a new LLM router with the given primary provider.
func NewRouter(primary string, opts ...RouterOption) *Router {
	r := &Router{
		providers:  make(map[string]LLMProvider),
		primary:    primary,
		maxRetries: 2,
		retryDelay: 1 * time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewRouterFromConfig builds a router from application configuration,
// registering every provider that has an API key. The configured primary
// comes first; any other configured provider becomes a fallback.
func NewRouterFromConfig(cfg *config.Config) (*Router, error) {
	var fallbacks []string

	register := func(name string) (LLMProvider, error) {
		switch name {
		case ProviderAnthropic:
			if cfg.LLM.AnthropicKey == "" {
				return nil, nil
			}
			return NewAnthropicProvider(cfg.LLM.AnthropicKey, WithAnthropicModel(cfg.LLM.Model))
		case ProviderOpenAI:
			if cfg.LLM.OpenAIKey == "" {
				return nil, nil
			}
			return NewOpenAIProvider(cfg.LLM.OpenAIKey, WithOpenAIModel(cfg.LLM.Model))
		default:
			return nil, fmt.Errorf("llm: unknown provider %q", name)
		}
	}

	router := NewRouter(cfg.LLM.Primary)
	registered := 0
	for _, name := range []string{ProviderAnthropic, ProviderOpenAI} {
		p, err := register(name)
		if err != nil {
			return nil, err
		}
		if p == nil {
			continue
		}
		router.RegisterProvider(p)
		registered++
		if name != cfg.LLM.Primary {
			fallbacks = append(fallbacks, name)
		}
	}

	if registered == 0 {
		return nil, ErrNoProviders
	}
	if _, ok := router.GetProvider(cfg.LLM.Primary); !ok {
		return nil, fmt.Errorf("%w: primary provider %q has no API key", ErrNoProviders, cfg.LLM.Primary)
	}

	router.fallbacks = fallbacks
	return router, nil
}

// RegisterProvider adds a provider to the router.
func (r *Router) RegisterProvider(provider LLMProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[provider.Name()] = provider
}

// GetProvider returns a registered provider by name.
func (r *Router) GetProvider(name string) (LLMProvider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[name]
	return p, ok
}

// Primary returns the primary provider.
func (r *Router) Primary() (LLMProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[r.primary]
	if !ok {
		return nil, fmt.Errorf("%w: primary provider %q not registered", ErrNoProviders, r.primary)
	}
	return p, nil
}

// Name identifies the router itself as a provider, so it can stand in
// anywhere an LLMProvider is expected.
func (r *Router) Name() string { return "router" }

// Ping checks the primary provider.
func (r *Router) Ping(ctx context.Context) error {
	p, err := r.Primary()
	if err != nil {
		return err
	}
	return p.Ping(ctx)
}

// Chat routes a chat request through the provider chain with fallback.
// It tries the primary provider first, then falls back in order.
func (r *Router) Chat(ctx context.Context, messages []Message, opts *ChatOptions) (*Response, error) {
	chain := r.providerChain()
	if len(chain) == 0 {
		return nil, ErrNoProviders
	}

	var lastErr error
	for _, providerName := range chain {
		provider, ok := r.GetProvider(providerName)
		if !ok {
			continue
		}

		resp, err := r.chatWithRetry(ctx, provider, messages, opts)
		if err == nil {
			return resp, nil
		}

		lastErr = err
		log.Printf("llm/router: provider %s failed: %v, trying next", providerName, err)
	}

	if lastErr == nil {
		lastErr = ErrNoProviders
	}
	return nil, fmt.Errorf("llm: all providers failed: %w", lastErr)
}

// chatWithRetry retries transient failures against a single provider.
// Auth errors are terminal and returned immediately.
func (r *Router) chatWithRetry(ctx context.Context, provider LLMProvider, messages []Message, opts *ChatOptions) (*Response, error) {
	var lastErr error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(r.retryDelay * time.Duration(attempt)):
			}
		}

		resp, err := provider.Chat(ctx, messages, opts)
		if err == nil {
			return resp, nil
		}
		if errors.Is(err, ErrNoAPIKey) || errors.Is(err, context.Canceled) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// providerChain returns the ordered provider names to try.
func (r *Router) providerChain() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	chain := make([]string, 0, 1+len(r.fallbacks))
	chain = append(chain, r.primary)
	chain = append(chain, r.fallbacks...)
	return chain
}
