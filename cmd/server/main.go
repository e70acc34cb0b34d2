package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/adiwiguna/chatpdf/internal/api"
	"github.com/adiwiguna/chatpdf/internal/config"
	"github.com/adiwiguna/chatpdf/internal/embedding"
	"github.com/adiwiguna/chatpdf/internal/ingest"
	"github.com/adiwiguna/chatpdf/internal/llm/groq"
	"github.com/adiwiguna/chatpdf/internal/rag"
	"github.com/adiwiguna/chatpdf/internal/service"
	"github.com/adiwiguna/chatpdf/internal/session"
	"github.com/adiwiguna/chatpdf/internal/store"
)

func main() {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogger(cfg.Logging)

	log.Info().
		Str("addr", cfg.Server.Addr()).
		Msg("Starting ChatPDF API server")

	if cfg.LLM.GroqAPIKey == "" {
		log.Warn().Msg("GROQ_API_KEY is not set, chat requests will fail")
	}
	if cfg.Embedding.GoogleAPIKey == "" {
		log.Warn().Msg("GOOGLE_API_KEY is not set, uploads will fail")
	}

	if dir := filepath.Dir(cfg.Store.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatal().Err(err).Msg("Failed to create store directory")
		}
	}

	chunkStore, err := store.NewSQLiteStore(cfg.Store.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open chunk store")
	}
	defer chunkStore.Close()

	embedder, err := embedding.NewGeminiEmbedder(context.Background(), cfg.Embedding.GoogleAPIKey, cfg.Embedding.Model)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create embedding client")
	}
	defer embedder.Close()

	registry := session.NewRegistry(cfg.Session.TTL, cfg.Session.CleanupInterval)
	registry.OnEvicted(func(sessionID string) {
		if err := chunkStore.DeleteBySession(context.Background(), sessionID); err != nil {
			log.Error().Err(err).Str("session_id", sessionID).Msg("Failed to drop chunks for expired session")
		}
	})

	splitter := ingest.NewSplitter(cfg.Ingest.ChunkSize, cfg.Ingest.ChunkOverlap)
	retriever := rag.NewRetriever(chunkStore, embedder, cfg.Retrieval.TopK, cfg.Retrieval.MinSimilarity)
	provider := groq.NewProvider(cfg.LLM.GroqAPIKey, cfg.LLM.GroqBaseURL, cfg.LLM.DefaultModel, cfg.LLM.Timeout)

	router := api.NewRouter(cfg, api.Services{
		Ingest:  service.NewIngestService(registry, chunkStore, embedder, splitter),
		Chat:    service.NewChatService(registry, retriever, provider),
		History: service.NewHistoryService(registry),
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

func setupLogger(cfg config.LoggingConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
