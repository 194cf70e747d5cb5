package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/jwebster45206/cliffhanger/internal/config"
	"github.com/jwebster45206/cliffhanger/internal/engine"
	"github.com/jwebster45206/cliffhanger/internal/handlers"
	"github.com/jwebster45206/cliffhanger/internal/logger"
	"github.com/jwebster45206/cliffhanger/internal/middleware"
	"github.com/jwebster45206/cliffhanger/internal/services"
	"github.com/jwebster45206/cliffhanger/internal/storage"
	"github.com/jwebster45206/cliffhanger/pkg/continuity"
	"github.com/jwebster45206/cliffhanger/pkg/story"
)

func main() {
	// Missing .env is fine; real deployments use the environment.
	_ = godotenv.Load()

	providerFlag := flag.String("provider", "", "AI provider: openai or anthropic (overrides AI_PROVIDER)")
	reset := flag.Bool("reset", false, "delete all stored sessions on startup")
	flag.Parse()

	cfg := config.Load()
	if *providerFlag != "" {
		cfg.Provider = config.ParseProvider(*providerFlag)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Cliffhanger Stories API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"provider", cfg.Provider,
		"tracking_profile", cfg.TrackingProfile)

	var llmService services.LLMService
	var modelName string
	switch cfg.Provider {
	case config.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			log.Error("Anthropic API key is required when using anthropic provider")
			os.Exit(1)
		}
		modelName = cfg.AnthropicModel
		llmService = services.NewAnthropicService(cfg.AnthropicAPIKey, modelName, log)
		log.Info("Using Anthropic provider", "model", modelName)
	default:
		if cfg.OpenAIAPIKey == "" {
			log.Error("OpenAI API key is required when using openai provider")
			os.Exit(1)
		}
		modelName = cfg.OpenAIModel
		llmService = services.NewOpenAIService(cfg.OpenAIAPIKey, modelName, log)
		log.Info("Using OpenAI provider", "model", modelName)
	}

	store := storage.NewRedisStorage(cfg.RedisURL, log)
	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()

	if err := store.WaitForConnection(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}

	if *reset {
		deleted, err := store.ResetSessions(storageCtx)
		if err != nil {
			log.Error("Failed to reset sessions", "error", err)
			os.Exit(1)
		}
		log.Info("Sessions reset on startup", "deleted", deleted)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	if err := llmService.InitModel(ctx, modelName); err != nil {
		log.Error("Failed to initialize model", "error", err, "model", modelName)
		os.Exit(1)
	}

	catalog, err := story.LoadCatalog(filepath.Join(cfg.DataDir, "stories"))
	if err != nil {
		log.Error("Failed to load story catalog", "error", err, "data_dir", cfg.DataDir)
		os.Exit(1)
	}
	log.Info("Story catalog loaded", "stories", catalog.Len())

	tracker := continuity.NewTracker(continuity.ParseProfile(cfg.TrackingProfile), log)
	eng := engine.New(llmService, catalog, tracker, log)

	mux := http.NewServeMux()
	mux.Handle("/health", handlers.NewHealthHandler(store, log))
	mux.Handle("/api/stories", handlers.NewStoriesHandler(catalog, log))
	mux.Handle("/api/start/", handlers.NewStartHandler(eng, store, log))
	mux.Handle("/api/next", handlers.NewNextHandler(eng, store, log))
	mux.Handle("/api/user-input", handlers.NewUserInputHandler(eng, store, log))

	handler := middleware.Logger(mux)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 180 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}
