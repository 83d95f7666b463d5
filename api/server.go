// Package api provides the HTTP REST API server for HedgeAI.
//
// It exposes endpoints for ticker resolution, risk memo generation,
// quotes, news, and WebSocket streaming.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/hedgeai/hedgeai/internal/analyst"
	"github.com/hedgeai/hedgeai/internal/config"
	"github.com/hedgeai/hedgeai/internal/datasource"
	"github.com/hedgeai/hedgeai/internal/llm"
	"github.com/hedgeai/hedgeai/internal/resolver"
)

// apiVersion is reported by the health endpoint.
const apiVersion = "1.0.0"

// maxTickerLen is the boundary limit on resolved ticker length. Anything
// longer is not a plausible symbol and the request is rejected.
const maxTickerLen = 10

// Server is the HTTP API server.
type Server struct {
	router   chi.Router
	cfg      *config.Config
	resolver *resolver.Resolver
	analyst  *analyst.Analyst
	market   datasource.MarketData
	news     datasource.NewsProvider
	wsHub    *WSHub
}

// Deps bundles the collaborators the server routes requests to.
type Deps struct {
	Resolver *resolver.Resolver
	Analyst  *analyst.Analyst
	Market   datasource.MarketData
	News     datasource.NewsProvider
}

// NewServer creates a fully wired API server from configuration.
func NewServer(cfg *config.Config) (*Server, error) {
	router, err := llm.NewRouterFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("LLM setup failed: %w", err)
	}

	market := datasource.NewYahoo()
	news := datasource.NewYahooNews()

	res := resolver.New(
		resolver.DefaultDictionary(),
		resolver.NewLLMTickerLookup(router, cfg.LLM.LookupModel),
		resolver.Config{
			FuzzyCutoff:   cfg.Resolver.FuzzyCutoff,
			MinAIInputLen: cfg.Resolver.MinAIInputLen,
			AITimeout:     cfg.Resolver.AITimeout(),
		},
	)

	an := analyst.New(market, news, router, analyst.Config{
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		NewsLimit:   cfg.News.MaxResults,
	})

	return NewServerWithDeps(cfg, Deps{
		Resolver: res,
		Analyst:  an,
		Market:   market,
		News:     news,
	}), nil
}

// NewServerWithDeps creates a server around pre-built collaborators.
func NewServerWithDeps(cfg *config.Config, deps Deps) *Server {
	srv := &Server{
		cfg:      cfg,
		resolver: deps.Resolver,
		analyst:  deps.Analyst,
		market:   deps.Market,
		news:     deps.News,
		wsHub:    NewWSHub(),
	}
	srv.router = srv.buildRouter()
	return srv
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe starts the HTTP server with graceful shutdown.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start WebSocket hub
	go s.wsHub.Run()

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return httpSrv.Shutdown(ctx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	// CORS
	origins := []string{"*"}
	if len(s.cfg.API.CORSOrigins) > 0 {
		origins = s.cfg.API.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", s.handleHealth)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		// Ticker resolution
		r.Get("/resolve/{query}", s.handleResolve)

		// Risk memo generation
		r.Get("/analyze/{query}", s.handleAnalyze)

		// Market data
		r.Get("/quote/{ticker}", s.handleQuote)
		r.Get("/news/{ticker}", s.handleNews)

		// Configuration
		r.Get("/config/keys", s.handleGetConfigKeys)

		// WebSocket
		r.Get("/ws", s.handleWebSocket)
	})

	return r
}

// ============================================================
// Request / Response types
// ============================================================

// APIResponse is the standard JSON envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ============================================================
// Handlers
// ============================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":  "active",
			"message": "HedgeAI API is online",
			"version": apiVersion,
		},
	})
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	query := chi.URLParam(r, "query")
	if query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	res := s.resolver.ResolveDetailed(r.Context(), query)
	if res.Ticker == "" || len(res.Ticker) > maxTickerLen {
		writeError(w, http.StatusBadRequest, "invalid ticker symbol or company name")
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    res,
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	query := chi.URLParam(r, "query")
	if query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	ticker := s.resolver.Resolve(r.Context(), query)
	if ticker == "" || len(ticker) > maxTickerLen {
		writeError(w, http.StatusBadRequest, "invalid ticker symbol or company name")
		return
	}

	log.Printf("api: analysis request %q resolved to %q", query, ticker)

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	memo, err := s.analyst.Analyze(ctx, ticker)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Broadcast to WebSocket clients
	s.wsHub.Broadcast(WSMessage{
		Type: "analysis_complete",
		Data: map[string]interface{}{
			"ticker": ticker,
			"rating": memo.Rating,
		},
	})

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    memo,
	})
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	if ticker == "" {
		writeError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	quote, err := s.market.GetQuote(ctx, ticker)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    quote,
	})
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	if ticker == "" {
		writeError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	limit := s.cfg.News.MaxResults
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	articles, err := s.news.GetStockNews(ctx, ticker, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    articles,
	})
}

func (s *Server) handleGetConfigKeys(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    config.CheckAPIKeys(s.cfg),
	})
}

// ============================================================
// Helpers
// ============================================================

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   msg,
	})
}
