package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/megambeast/fincompare/internal/catalog"
	"github.com/megambeast/fincompare/internal/collab"
	"github.com/megambeast/fincompare/internal/compare"
	"github.com/megambeast/fincompare/internal/config"
	"github.com/megambeast/fincompare/internal/experiment"
	"github.com/megambeast/fincompare/internal/recommend"
	"github.com/megambeast/fincompare/internal/storage"
	"github.com/megambeast/fincompare/internal/track"
)

// Server represents the HTTP API server
type Server struct {
	config         config.ServerConfig
	router         *chi.Mux
	catalog        *catalog.Loader
	manager        compare.Manager
	recommender    *recommend.Service
	tracker        *track.Tracker
	identity       experiment.IdentityProvider
	registry       *collab.Registry
	repo           storage.Repository
	authMiddleware *AuthMiddleware
}

// NewServer creates a new API server
func NewServer(
	cfg config.ServerConfig,
	loader *catalog.Loader,
	manager compare.Manager,
	recommender *recommend.Service,
	tracker *track.Tracker,
	identity experiment.IdentityProvider,
	registry *collab.Registry,
	repo storage.Repository,
) *Server {
	s := &Server{
		config:         cfg,
		catalog:        loader,
		manager:        manager,
		recommender:    recommender,
		tracker:        tracker,
		identity:       identity,
		registry:       registry,
		repo:           repo,
		authMiddleware: NewAuthMiddleware(repo),
	}
	s.setupRouter()
	return s
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter configures all routes and middleware
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check (outside versioned API - public)
	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	// API v1 routes (protected by authentication)
	r.Route("/api/v1", func(r chi.Router) {
		// Apply authentication middleware to all /api/v1/* routes
		r.Use(s.authMiddleware.Authenticate)

		// Catalog
		r.Route("/categories", func(r chi.Router) {
			r.With(s.authMiddleware.RequirePermission("catalog:read")).Get("/", s.handleListCategories)
			r.With(s.authMiddleware.RequirePermission("catalog:read")).Get("/{category}/products", s.handleListProducts)
			r.With(s.authMiddleware.RequirePermission("catalog:read")).Get("/{category}/features", s.handleListFeatures)
		})
		r.With(s.authMiddleware.RequirePermission("catalog:read")).Get("/products/{id}", s.handleGetProduct)

		// Visitor identity and layout variant
		r.With(s.authMiddleware.RequirePermission("sessions:write")).Post("/identity", s.handleCreateIdentity)

		// Comparison sessions
		r.Route("/sessions", func(r chi.Router) {
			r.With(s.authMiddleware.RequirePermission("sessions:write")).Post("/", s.handleCreateSession)

			r.Route("/{id}", func(r chi.Router) {
				r.With(s.authMiddleware.RequirePermission("sessions:read")).Get("/", s.handleGetSession)
				r.With(s.authMiddleware.RequirePermission("sessions:write")).Delete("/", s.handleDeleteSession)
				r.With(s.authMiddleware.RequirePermission("sessions:write")).Put("/category", s.handleSetCategory)
				r.With(s.authMiddleware.RequirePermission("sessions:write")).Put("/filters", s.handleSetFilters)
				r.With(s.authMiddleware.RequirePermission("sessions:write")).Post("/filters/reset", s.handleResetFilters)
				r.With(s.authMiddleware.RequirePermission("sessions:write")).Post("/sort", s.handleSort)
				r.With(s.authMiddleware.RequirePermission("sessions:write")).Post("/selection/{productID}", s.handleToggleSelection)
				r.With(s.authMiddleware.RequirePermission("sessions:write")).Delete("/selection", s.handleClearSelection)
				r.With(s.authMiddleware.RequirePermission("sessions:read")).Get("/products", s.handleSessionProducts)
				r.With(s.authMiddleware.RequirePermission("sessions:read")).Get("/comparison", s.handleComparison)
			})
		})

		// Recommendations
		r.With(s.authMiddleware.RequirePermission("recommendations:read")).Get("/recommendations", s.handleRecommendations)

		// Interaction events
		r.Route("/events", func(r chi.Router) {
			r.With(s.authMiddleware.RequirePermission("events:write")).Post("/", s.handleRecordEvent)
			r.With(s.authMiddleware.RequirePermission("events:read")).Get("/recent", s.handleRecentEvents)
			r.With(s.authMiddleware.RequirePermission("events:read")).Get("/ws", s.handleEventsWS)
		})
	})

	s.router = r
}

// loggingMiddleware logs HTTP requests using slog
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
