package api

import (
	"net/http"

	"github.com/dom/hero-service/internal/api/handlers"
	"github.com/dom/hero-service/internal/api/middleware"
	"github.com/dom/hero-service/internal/metrics"
	"github.com/dom/hero-service/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func NewRouter(services *service.Services, logger *zap.Logger) http.Handler {
	metrics.Init()

	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Metrics)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	// Initialize handlers
	heroHandler := handlers.NewHeroHandler(services.Hero, logger)

	r.Route("/hero", func(r chi.Router) {
		r.Post("/", heroHandler.Create)
		r.Get("/", heroHandler.List)
	})

	return r
}
