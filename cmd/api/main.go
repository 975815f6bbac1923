package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/finsight/finsight/internal/api/handlers"
	"github.com/finsight/finsight/internal/api/middleware"
	"github.com/finsight/finsight/internal/config"
	"github.com/finsight/finsight/internal/intelligence"
	"github.com/finsight/finsight/internal/logger"
	"github.com/finsight/finsight/internal/store"
	storebq "github.com/finsight/finsight/internal/store/bigquery"
	"github.com/finsight/finsight/internal/store/memory"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Parse command-line flags (override env)
	var (
		port      = flag.String("port", cfg.Port, "HTTP server port")
		storeKind = flag.String("store", cfg.Store, "Backing store: memory or bigquery")
	)
	flag.Parse()

	ctx := context.Background()

	st, cleanup, err := openStore(ctx, *storeKind, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("store", *storeKind).Msg("Failed to open store")
	}
	defer cleanup()

	svc := intelligence.NewService(st, intelligence.DefaultLexicon(), log)

	intelligenceHandler := handlers.NewIntelligenceHandler(svc, log)
	analyticsHandler := handlers.NewAnalyticsHandler(svc.Aggregator(), log)

	// Create router
	mux := http.NewServeMux()

	mux.HandleFunc("/api/intelligence/categorize", post(intelligenceHandler.Categorize))
	mux.HandleFunc("/api/intelligence/insights", get(intelligenceHandler.Insights))
	mux.HandleFunc("/api/intelligence/budget-suggestions", get(intelligenceHandler.BudgetSuggestions))
	mux.HandleFunc("/api/intelligence/predictions", get(intelligenceHandler.Predictions))
	mux.HandleFunc("/api/intelligence/chat", post(intelligenceHandler.Chat))

	mux.HandleFunc("/api/analytics/overview", get(analyticsHandler.Overview))
	mux.HandleFunc("/api/analytics/spending-by-category", get(analyticsHandler.SpendingByCategory))
	mux.HandleFunc("/api/analytics/trends", get(analyticsHandler.Trends))
	mux.HandleFunc("/api/analytics/daily", get(analyticsHandler.Daily))

	api := middleware.RequireUser(mux)

	root := http.NewServeMux()
	root.Handle("/api/", api)

	// Health check endpoint
	root.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Apply middleware
	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(root),
			),
		),
	)

	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", *port).Str("store", *storeKind).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// openStore builds the configured backing store and returns a cleanup func.
func openStore(ctx context.Context, kind string, cfg *config.Config, log zerolog.Logger) (store.Store, func(), error) {
	switch kind {
	case "bigquery":
		st, err := storebq.NewStore(ctx, cfg.BigQueryProject, cfg.BigQueryDataset)
		if err != nil {
			return nil, nil, err
		}
		return st, func() {
			if err := st.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close BigQuery store")
			}
		}, nil
	default:
		st := memory.NewStore()
		if cfg.SeedDemoData {
			memory.SeedDemoData(st, time.Now())
			log.Info().Str("user_id", memory.DemoUserID).Msg("Seeded demo data")
		}
		return st, func() {}, nil
	}
}

func get(h http.HandlerFunc) http.HandlerFunc {
	return methodOnly(http.MethodGet, h)
}

func post(h http.HandlerFunc) http.HandlerFunc {
	return methodOnly(http.MethodPost, h)
}

func methodOnly(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		h(w, r)
	}
}
