// HedgeAI — AI-powered stock risk assessment
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hedgeai/hedgeai/api"
	"github.com/hedgeai/hedgeai/internal/analyst"
	"github.com/hedgeai/hedgeai/internal/config"
	"github.com/hedgeai/hedgeai/internal/datasource"
	"github.com/hedgeai/hedgeai/internal/llm"
	"github.com/hedgeai/hedgeai/internal/resolver"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hedgeai",
	Short: "HedgeAI — AI-powered stock risk assessment",
	Long: `HedgeAI resolves free-form company names to ticker symbols,
pulls live market data and news, and generates a cynical, risk-focused
assessment memo with an LLM.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(newsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
}

// newLLMRouter builds the provider router from the loaded config.
func newLLMRouter() (*llm.Router, error) {
	router, err := llm.NewRouterFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("LLM setup failed: %w", err)
	}
	return router, nil
}

// newResolver builds a ticker resolver; withAI controls whether the
// AI-assisted lookup step is wired in.
func newResolver(withAI bool) (*resolver.Resolver, error) {
	var lookup resolver.TickerLookup
	if withAI {
		router, err := newLLMRouter()
		if err != nil {
			return nil, err
		}
		lookup = resolver.NewLLMTickerLookup(router, cfg.LLM.LookupModel)
	}
	return resolver.New(resolver.DefaultDictionary(), lookup, resolver.Config{
		FuzzyCutoff:   cfg.Resolver.FuzzyCutoff,
		MinAIInputLen: cfg.Resolver.MinAIInputLen,
		AITimeout:     cfg.Resolver.AITimeout(),
	}), nil
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("HedgeAI %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Resolve Command ---

var resolveCmd = &cobra.Command{
	Use:   "resolve [query]",
	Short: "Resolve a company name or ticker to a canonical ticker symbol",
	Long: `Resolve free-form input to a ticker symbol.

Examples:
  hedgeai resolve apple
  hedgeai resolve gogle
  hedgeai resolve "berkshire hathaway"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		noAI, _ := cmd.Flags().GetBool("no-ai")

		res, err := newResolver(!noAI)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		result := res.ResolveDetailed(ctx, args[0])
		fmt.Printf("%s  (via %s)\n", result.Ticker, result.Method)
		if result.SourceAlias != "" {
			fmt.Printf("  matched alias: %q\n", result.SourceAlias)
		}
		return nil
	},
}

func init() {
	resolveCmd.Flags().Bool("no-ai", false, "skip the AI-assisted lookup step")
}

// --- Analyze Command ---

var analyzeCmd = &cobra.Command{
	Use:   "analyze [query]",
	Short: "Generate a risk assessment memo for a stock",
	Long: `Resolve the input to a ticker, fetch live market data and news,
and generate a risk assessment memo.

Examples:
  hedgeai analyze NVDA
  hedgeai analyze "palantir"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		router, err := newLLMRouter()
		if err != nil {
			return err
		}

		res, err := newResolver(true)
		if err != nil {
			return err
		}

		market := datasource.NewYahoo()
		news := datasource.NewYahooNews()
		an := analyst.New(market, news, router, analyst.Config{
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			MaxTokens:   cfg.LLM.MaxTokens,
			NewsLimit:   cfg.News.MaxResults,
		})

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		ticker := res.Resolve(ctx, args[0])
		fmt.Printf("Analyzing %s...\n\n", ticker)

		memo, err := an.Analyze(ctx, ticker)
		if err != nil {
			return err
		}

		fmt.Printf("═══ Risk Assessment: %s", memo.Ticker)
		if memo.CompanyName != "" {
			fmt.Printf(" (%s)", memo.CompanyName)
		}
		fmt.Println(" ═══")
		fmt.Printf("Rating: %s\n", memo.Rating)
		fmt.Printf("Price:  %s (%s)\n\n", memo.Metrics.Price, memo.Metrics.PriceChangePct)
		fmt.Println(memo.Analysis)

		if len(memo.News) > 0 {
			fmt.Println("\nHeadlines:")
			for _, a := range memo.News {
				fmt.Printf("  - %s (%s)\n", a.Title, a.Source)
			}
		}
		return nil
	},
}

// --- Quote Command ---

var quoteCmd = &cobra.Command{
	Use:   "quote [ticker]",
	Short: "Fetch a live quote",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		market := datasource.NewYahoo()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		quote, err := market.GetQuote(ctx, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s  %s\n", quote.Ticker, quote.Name)
		fmt.Printf("  Price:      $%.2f (%+.2f, %+.2f%%)\n", quote.LastPrice, quote.Change, quote.ChangePct)
		fmt.Printf("  Prev Close: $%.2f\n", quote.PrevClose)
		fmt.Printf("  Day Range:  $%.2f - $%.2f\n", quote.Low, quote.High)
		fmt.Printf("  52W Range:  $%.2f - $%.2f\n", quote.WeekLow52, quote.WeekHigh52)
		fmt.Printf("  Volume:     %d (avg %d)\n", quote.Volume, quote.AvgVolume)
		return nil
	},
}

// --- News Command ---

var newsCmd = &cobra.Command{
	Use:   "news [ticker]",
	Short: "Fetch recent news headlines for a ticker",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		if limit <= 0 {
			limit = cfg.News.MaxResults
		}

		news := datasource.NewYahooNews()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		articles, err := news.GetStockNews(ctx, args[0], limit)
		if err != nil {
			return err
		}

		if len(articles) == 0 {
			fmt.Println("No recent news found.")
			return nil
		}
		for _, a := range articles {
			fmt.Printf("- %s (Source: %s)\n", a.Title, a.Source)
		}
		return nil
	},
}

func init() {
	newsCmd.Flags().Int("limit", 0, "maximum number of headlines (default from config)")
}

// --- Serve Command (API Server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := api.NewServer(cfg)
		if err != nil {
			return err
		}

		addr := cfg.API.Addr()
		fmt.Printf("Starting HedgeAI API server on %s\n", addr)
		return srv.ListenAndServe(addr)
	},
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show system status and configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  HedgeAI — System Status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version:       %s (%s)\n", version, commit)
		fmt.Println()

		// Config summary
		fmt.Println("  Configuration:")
		fmt.Printf("    LLM Provider:  %s (model: %s)\n", cfg.LLM.Primary, cfg.LLM.Model)
		fmt.Printf("    Lookup Model:  %s\n", cfg.LLM.LookupModel)
		fmt.Printf("    Fuzzy Cutoff:  %.2f\n", cfg.Resolver.FuzzyCutoff)
		fmt.Printf("    API Server:    %s:%d\n", cfg.API.Host, cfg.API.Port)
		fmt.Println()

		// API keys status
		fmt.Println("  API Keys:")
		keys := config.CheckAPIKeys(cfg)
		for _, k := range keys {
			status := "not set"
			if k.IsSet {
				status = fmt.Sprintf("set (%s: %s)", k.Source, k.Masked)
			}
			fmt.Printf("    %-25s %s\n", k.Name+":", status)
		}

		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}
