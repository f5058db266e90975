package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"tradebook/internal/modules/cashflows"
	"tradebook/internal/modules/reports"
	"tradebook/internal/modules/settings"
	"tradebook/internal/modules/trades"
)

// Config holds server configuration
type Config struct {
	Port    int
	Log     zerolog.Logger
	DevMode bool

	Trades    *trades.Handler
	CashFlows *cashflows.Handler
	Settings  *settings.Handler
	Reports   *reports.Handler

	DatabasePath     string
	RemoteConfigured bool
}

// Server represents the HTTP server
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger
	cfg    Config
	start  time.Time
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router: chi.NewRouter(),
		log:    cfg.Log.With().Str("component", "server").Logger(),
		cfg:    cfg,
		start:  time.Now(),
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	// Recovery from panics
	s.router.Use(middleware.Recoverer)

	// Request ID
	s.router.Use(middleware.RequestID)

	// Real IP
	s.router.Use(middleware.RealIP)

	// Logging
	s.router.Use(s.loggingMiddleware)

	// Timeout
	s.router.Use(middleware.Timeout(60 * time.Second))

	// CORS
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Compress responses
	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	// Health check
	s.router.Get("/health", s.handleHealth)

	// API routes
	s.router.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			r.Get("/status", s.handleSystemStatus)
		})

		r.Route("/trades", func(r chi.Router) {
			r.Get("/", s.cfg.Trades.HandleList)
			r.Post("/", s.cfg.Trades.HandleCreate)
			r.Put("/{id}", s.cfg.Trades.HandleUpdate)
			r.Delete("/{id}", s.cfg.Trades.HandleDelete)
		})

		r.Route("/cash-flows", func(r chi.Router) {
			r.Get("/", s.cfg.CashFlows.HandleList)
			r.Post("/", s.cfg.CashFlows.HandleCreate)
			r.Delete("/{id}", s.cfg.CashFlows.HandleDelete)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/opening-balance", s.cfg.Settings.HandleGetOpeningBalance)
			r.Put("/opening-balance", s.cfg.Settings.HandleSetOpeningBalance)
		})

		r.Route("/portfolio", func(r chi.Router) {
			r.Get("/", s.cfg.Reports.HandleGetPortfolio)
			r.Put("/", s.cfg.Reports.HandleRestorePortfolio)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/summary", s.cfg.Reports.HandleSummary)
			r.Get("/balance-history", s.cfg.Reports.HandleBalanceHistory)
			r.Get("/daily", s.cfg.Reports.HandleDaily)
			r.Get("/by-type", s.cfg.Reports.HandleByType)
			r.Get("/risk", s.cfg.Reports.HandleRisk)
			r.Get("/export.csv", s.cfg.Reports.HandleExportCSV)
		})
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.cfg.Port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
