package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"riskstat/app"
	"riskstat/domain/sample"
	"riskstat/internal"
	"riskstat/internal/report"
	"riskstat/stats/descriptive"
)

// Server is the HTTP surface over the statistics services.
type Server struct {
	router      *chi.Mux
	calc        *descriptive.Calculator
	sweep       *app.SweepService
	series      *app.SeriesService
	reports     *report.Builder
	defaultMode sample.VarianceMode
	logger      *internal.Logger
}

// Config holds server construction options.
type Config struct {
	DefaultMode sample.VarianceMode
}

// NewServer creates the API server and wires its routes.
func NewServer(cfg Config, sweep *app.SweepService, series *app.SeriesService) *Server {
	mode := cfg.DefaultMode
	if mode == "" {
		mode = sample.Population
	}

	s := &Server{
		router:      chi.NewRouter(),
		calc:        descriptive.NewCalculator(),
		sweep:       sweep,
		series:      series,
		reports:     report.NewBuilder(),
		defaultMode: mode,
		logger:      internal.DefaultLogger,
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures HTTP middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Post("/compute", s.handleCompute)
	s.router.Post("/sweep", s.handleSweep)

	s.router.Route("/series", func(r chi.Router) {
		r.Get("/", s.handleListSeries)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSeries)
			r.Delete("/", s.handleDeleteSeries)
			r.Get("/statistics", s.handleSeriesStatistics)
			r.Get("/summary", s.handleSeriesSummary)
			r.Get("/profile", s.handleSeriesProfile)
			r.Get("/risk", s.handleSeriesRisk)
			r.Get("/report", s.handleSeriesReport)
		})
	})
}

// Router exposes the configured handler for serving and tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// ListenAndServe starts the HTTP server on the given port.
func (s *Server) ListenAndServe(port string) error {
	s.logger.Info("API server listening on :%s", port)
	return http.ListenAndServe(":"+port, s.router)
}
