package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avolkov/pennywise/internal/ai"
	"github.com/avolkov/pennywise/internal/api/handlers"
	"github.com/avolkov/pennywise/internal/api/middleware"
	"github.com/avolkov/pennywise/internal/catclient"
	"github.com/avolkov/pennywise/internal/config"
	"github.com/avolkov/pennywise/internal/directory"
	"github.com/avolkov/pennywise/internal/ledger"
	"github.com/avolkov/pennywise/internal/logger"
	"github.com/avolkov/pennywise/internal/store"
)

func main() {
	cfg := config.Load()

	// Flags override the environment
	var (
		port      = flag.String("port", cfg.Port, "HTTP server port")
		dataDir   = flag.String("data-dir", cfg.DataDir, "Directory for per-user JSON files (ignored when a GCS bucket is configured)")
		staticDir = flag.String("static-dir", cfg.StaticDir, "Directory holding the front-end entry page")
	)
	flag.Parse()

	// Initialize logger
	log := logger.New()

	ctx := context.Background()

	// Pick the persistence backend: GCS objects when a bucket is
	// configured, local flat files otherwise.
	var st store.Store
	if cfg.GCSBucket != "" {
		gcs, err := store.NewGCSStore(ctx, cfg.GCSBucket)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create GCS store")
		}
		defer gcs.Close()
		st = gcs
		log.Info().Str("bucket", cfg.GCSBucket).Msg("Persisting collections to GCS")
	} else {
		fs, err := store.NewFileStore(*dataDir)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create file store")
		}
		st = fs
		log.Info().Str("dir", *dataDir).Msg("Persisting collections to local files")
	}

	led := ledger.New(st)
	dir := directory.New(led)

	// The chat responder: Gemini when a key is configured, canned echo
	// otherwise.
	var responder ai.Responder = ai.Canned{}
	if cfg.GeminiAPIKey != "" {
		gemini, err := ai.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Warn().Err(err).Msg("Gemini unavailable, using canned responder")
		} else {
			responder = gemini
			log.Info().Str("model", cfg.GeminiModel).Msg("Using Gemini responder")
		}
	}

	// Initialize handlers
	transactionsHandler := handlers.NewTransactionsHandler(led, log)
	settingsHandler := handlers.NewSettingsHandler(led, log)
	usersHandler := handlers.NewUsersHandler(dir, log)
	chatHandler := handlers.NewChatHandler(led, log)
	analyticsHandler := handlers.NewAnalyticsHandler(led, log)
	aiHandler := handlers.NewAIHandler(responder, log)
	catsHandler := handlers.NewCatsHandler(catclient.New())
	pagesHandler := handlers.NewPagesHandler(*staticDir)

	// Create router
	mux := http.NewServeMux()

	mux.HandleFunc("/api/transactions", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			transactionsHandler.List(w, r)
		case http.MethodPost:
			transactionsHandler.Create(w, r)
		case http.MethodPut:
			transactionsHandler.Update(w, r)
		case http.MethodDelete:
			transactionsHandler.Delete(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/settings", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			settingsHandler.Get(w, r)
		case http.MethodPost:
			settingsHandler.Update(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/users", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			usersHandler.Handle(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			chatHandler.History(w, r)
		case http.MethodPost:
			chatHandler.Post(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/ai-response", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			aiHandler.Respond(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/analytics", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			analyticsHandler.Report(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/cat-fact", catsHandler.Fact)
	mux.HandleFunc("/api/cat-image", catsHandler.Image)

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Every human-facing route serves the same entry page; routing
	// between views happens on the client.
	for _, route := range handlers.PageRoutes {
		mux.HandleFunc(route, pagesHandler.ServePage)
	}

	// Apply middleware
	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(mux),
			),
		),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", *port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
