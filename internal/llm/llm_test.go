package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// ── Messages ──

func TestMessageConstructors(t *testing.T) {
	m := SystemMessage("you are a risk analyst")
	if m.Role != RoleSystem || m.Content != "you are a risk analyst" {
		t.Errorf("SystemMessage: got %+v", m)
	}

	m = UserMessage("analyze AAPL")
	if m.Role != RoleUser || m.Content != "analyze AAPL" {
		t.Errorf("UserMessage: got %+v", m)
	}

	m = NewMessage(RoleAssistant, "done")
	if m.Role != RoleAssistant {
		t.Errorf("NewMessage role: got %q", m.Role)
	}
}

func TestResponseString(t *testing.T) {
	r := &Response{
		Content:  strings.Repeat("x", 150),
		Model:    "claude-3-5-sonnet-20241022",
		Provider: ProviderAnthropic,
		Usage:    Usage{TotalTokens: 42},
		Latency:  1234 * time.Millisecond,
	}
	s := r.String()
	if !strings.Contains(s, "anthropic") {
		t.Errorf("String() missing provider: %s", s)
	}
	if !strings.Contains(s, "...") {
		t.Errorf("String() should truncate long content: %s", s)
	}
	if !strings.Contains(s, "42 tokens") {
		t.Errorf("String() missing token count: %s", s)
	}
}

// ── Anthropic ──

func TestAnthropicRequiresKey(t *testing.T) {
	if _, err := NewAnthropicProvider(""); !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("expected ErrNoAPIKey, got %v", err)
	}
}

func TestAnthropicChat(t *testing.T) {
	var gotReq anthropicRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("missing x-api-key header")
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Errorf("missing anthropic-version header")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(anthropicResponse{
			Model: "claude-3-5-sonnet-20241022",
			Content: []anthropicContentBlock{
				{Type: "text", Text: "BEARISH. "},
				{Type: "text", Text: "Overvalued."},
			},
			Usage: anthropicUsage{InputTokens: 10, OutputTokens: 5},
		})
	}))
	defer server.Close()

	p, err := NewAnthropicProvider("test-key", WithAnthropicBaseURL(server.URL))
	if err != nil {
		t.Fatal(err)
	}

	resp, err := p.Chat(context.Background(), []Message{
		SystemMessage("be cynical"),
		UserMessage("analyze ZTS"),
	}, &ChatOptions{MaxTokens: 400, Temperature: 0.2})
	if err != nil {
		t.Fatalf("Chat() error: %v", err)
	}

	if resp.Content != "BEARISH. Overvalued." {
		t.Errorf("content: got %q", resp.Content)
	}
	if resp.Usage.TotalTokens != 15 {
		t.Errorf("total tokens: got %d, want 15", resp.Usage.TotalTokens)
	}

	// System prompt travels in its own field, not the messages list.
	if gotReq.System != "be cynical" {
		t.Errorf("system field: got %q", gotReq.System)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Role != "user" {
		t.Errorf("messages: got %+v", gotReq.Messages)
	}
	if gotReq.MaxTokens != 400 {
		t.Errorf("max_tokens: got %d", gotReq.MaxTokens)
	}
	if gotReq.Temperature == nil || *gotReq.Temperature != 0.2 {
		t.Errorf("temperature: got %v", gotReq.Temperature)
	}
}

func TestAnthropicErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantErr    error
	}{
		{"unauthorized", http.StatusUnauthorized, ErrNoAPIKey},
		{"rate limited", http.StatusTooManyRequests, ErrRateLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				json.NewEncoder(w).Encode(map[string]any{
					"type":  "error",
					"error": map[string]string{"type": "api_error", "message": "nope"},
				})
			}))
			defer server.Close()

			p, _ := NewAnthropicProvider("test-key", WithAnthropicBaseURL(server.URL))
			_, err := p.Chat(context.Background(), []Message{UserMessage("hi")}, nil)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ── OpenAI ──

func TestOpenAIRequiresKey(t *testing.T) {
	if _, err := NewOpenAIProvider(""); !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("expected ErrNoAPIKey, got %v", err)
	}
}

func TestOpenAIChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path: got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer token")
		}
		w.Write([]byte(`{
			"id": "chatcmpl-1",
			"model": "gpt-4o-mini",
			"choices": [{"message": {"role": "assistant", "content": "NEUTRAL"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 8, "completion_tokens": 2, "total_tokens": 10}
		}`))
	}))
	defer server.Close()

	p, err := NewOpenAIProvider("test-key", WithOpenAIBaseURL(server.URL))
	if err != nil {
		t.Fatal(err)
	}

	resp, err := p.Chat(context.Background(), []Message{UserMessage("rate KO")}, nil)
	if err != nil {
		t.Fatalf("Chat() error: %v", err)
	}
	if resp.Content != "NEUTRAL" {
		t.Errorf("content: got %q", resp.Content)
	}
	if resp.Provider != ProviderOpenAI {
		t.Errorf("provider: got %q", resp.Provider)
	}
	if resp.Usage.TotalTokens != 10 {
		t.Errorf("total tokens: got %d", resp.Usage.TotalTokens)
	}
}

// ── Router ──

// stubProvider is a minimal LLMProvider for router tests.
type stubProvider struct {
	name  string
	calls int
	err   error
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Chat(ctx context.Context, messages []Message, opts *ChatOptions) (*Response, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &Response{Content: "ok from " + s.name, Provider: s.name}, nil
}

func (s *stubProvider) Ping(ctx context.Context) error { return s.err }

func TestRouterUsesPrimary(t *testing.T) {
	primary := &stubProvider{name: "anthropic"}
	fallback := &stubProvider{name: "openai"}

	r := NewRouter("anthropic", WithFallbacks("openai"), WithMaxRetries(0))
	r.RegisterProvider(primary)
	r.RegisterProvider(fallback)

	resp, err := r.Chat(context.Background(), []Message{UserMessage("hi")}, nil)
	if err != nil {
		t.Fatalf("Chat() error: %v", err)
	}
	if resp.Provider != "anthropic" {
		t.Errorf("provider: got %q, want primary", resp.Provider)
	}
	if fallback.calls != 0 {
		t.Errorf("fallback was called %d times", fallback.calls)
	}
}

func TestRouterFallsBack(t *testing.T) {
	primary := &stubProvider{name: "anthropic", err: ErrProviderDown}
	fallback := &stubProvider{name: "openai"}

	r := NewRouter("anthropic", WithFallbacks("openai"), WithMaxRetries(0), WithRetryDelay(time.Millisecond))
	r.RegisterProvider(primary)
	r.RegisterProvider(fallback)

	resp, err := r.Chat(context.Background(), []Message{UserMessage("hi")}, nil)
	if err != nil {
		t.Fatalf("Chat() error: %v", err)
	}
	if resp.Provider != "openai" {
		t.Errorf("provider: got %q, want fallback", resp.Provider)
	}
	if primary.calls != 1 {
		t.Errorf("primary calls: got %d, want 1", primary.calls)
	}
}

func TestRouterAuthErrorIsTerminal(t *testing.T) {
	primary := &stubProvider{name: "anthropic", err: ErrNoAPIKey}

	r := NewRouter("anthropic", WithMaxRetries(3), WithRetryDelay(time.Millisecond))
	r.RegisterProvider(primary)

	_, err := r.Chat(context.Background(), []Message{UserMessage("hi")}, nil)
	if !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("got %v, want ErrNoAPIKey", err)
	}
	if primary.calls != 1 {
		t.Errorf("auth errors should not retry: %d calls", primary.calls)
	}
}

func TestRouterRetriesTransientErrors(t *testing.T) {
	primary := &stubProvider{name: "anthropic", err: ErrProviderDown}

	r := NewRouter("anthropic", WithMaxRetries(2), WithRetryDelay(time.Millisecond))
	r.RegisterProvider(primary)

	_, err := r.Chat(context.Background(), []Message{UserMessage("hi")}, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if primary.calls != 3 {
		t.Errorf("calls: got %d, want 3 (1 + 2 retries)", primary.calls)
	}
}

func TestRouterNoProviders(t *testing.T) {
	r := NewRouter("anthropic")
	_, err := r.Chat(context.Background(), []Message{UserMessage("hi")}, nil)
	if err == nil {
		t.Fatal("expected error with no providers")
	}
}
