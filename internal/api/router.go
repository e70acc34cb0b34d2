package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/adiwiguna/chatpdf/internal/api/handler"
	customMiddleware "github.com/adiwiguna/chatpdf/internal/api/middleware"
	"github.com/adiwiguna/chatpdf/internal/config"
)

// Services groups the application services the router exposes.
type Services struct {
	Ingest  handler.Ingester
	Chat    handler.Asker
	History handler.Historian
}

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, svc Services) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.WriteTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	uploadHandler := handler.NewUploadHandler(svc.Ingest, cfg.Server.MaxUploadMB)
	chatHandler := handler.NewChatHandler(svc.Chat)
	historyHandler := handler.NewHistoryHandler(svc.History)

	r.Get("/", handler.Root)
	r.Get("/models", handler.ListModels)
	r.Post("/upload", uploadHandler.Upload)
	r.Post("/chat/{sessionID}", chatHandler.Ask)
	r.Route("/history/{sessionID}", func(r chi.Router) {
		r.Get("/", historyHandler.Get)
		r.Delete("/", historyHandler.Clear)
	})
	r.Get("/download/{sessionID}", historyHandler.Download)

	return r
}
