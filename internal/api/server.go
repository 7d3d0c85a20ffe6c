package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pwpl/pds-engine/internal/archive"
	"github.com/pwpl/pds-engine/internal/catalog"
	"github.com/pwpl/pds-engine/internal/config"
	"github.com/pwpl/pds-engine/internal/datasheets"
	"github.com/pwpl/pds-engine/internal/health"
	"github.com/pwpl/pds-engine/internal/metrics"
	"github.com/pwpl/pds-engine/internal/report"
	"github.com/pwpl/pds-engine/internal/sheets"
	"github.com/pwpl/pds-engine/internal/storage"
)

// Deps are the collaborators the API serves. Archiver may be nil when
// archiving is disabled.
type Deps struct {
	Pipeline   *report.Pipeline
	Renderer   *report.Renderer
	Fetcher    *sheets.Fetcher
	Integrator datasheets.Integrator
	Datasheets *datasheets.Service
	Catalog    *catalog.Loader
	Repo       storage.Repository
	Archiver   *archive.Archiver
	Health     *health.Registry
}

// Server represents the HTTP API server
type Server struct {
	config config.ServerConfig
	router *chi.Mux
	deps   Deps
}

// NewServer creates a new API server
func NewServer(cfg config.ServerConfig, deps Deps) *Server {
	if deps.Integrator == nil {
		deps.Integrator = datasheets.Disabled()
	}
	if deps.Health == nil {
		deps.Health = health.NewRegistry()
	}

	s := &Server{
		config: cfg,
		deps:   deps,
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
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)
	r.Handle("/metrics", promhttp.Handler())

	// Sheet service endpoints consumed by the sheet fetcher
	r.Get("/sheet-data", s.handleSheetData)
	r.Get("/list-sheets", s.handleListSheets)

	// Datasheet integration API, flat {success, ..., error} contract
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleDatasheetHealth)
		r.Get("/test-connection", s.handleTestConnection)
		r.Post("/search-datasheets", s.handleSearchDatasheets)
		r.Post("/get-datasheet", s.handleGetDatasheet)
		r.Post("/integrate-datasheet", s.handleIntegrateDatasheet)
		r.Post("/auto-generate-report", s.handleAutoGenerateReport)

		r.Route("/v1", func(r chi.Router) {
			r.Post("/parse", s.handleParse)
			r.Get("/sheet", s.handleFetchSheet)

			r.Route("/reports", func(r chi.Router) {
				r.Get("/", s.handleListReports)
				r.Post("/standard", s.handleStandardReport)
				r.Post("/enhanced", s.handleEnhancedReport)
				r.Post("/compliance", s.handleComplianceReport)
				r.Get("/{id}", s.handleGetReport)
				r.Get("/{id}/html", s.handleGetReportHTML)
			})

			r.Route("/render", func(r chi.Router) {
				r.Post("/html", s.handleRenderHTML)
				r.Post("/text", s.handleRenderText)
			})

			r.Route("/standards", func(r chi.Router) {
				r.Get("/", s.handleListStandards)
				r.Get("/{id}", s.handleGetStandard)
			})

			r.Route("/products", func(r chi.Router) {
				r.Get("/", s.handleListProducts)
				r.Post("/", s.handleCreateProduct)
				r.Get("/{id}", s.handleGetProduct)
			})

			r.Route("/datasheets", func(r chi.Router) {
				r.Get("/", s.handleListDatasheets)
				r.Post("/", s.handleUpsertDatasheet)
			})
		})
	})

	s.router = r
}

// loggingMiddleware logs HTTP requests using slog and records request metrics
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			duration := time.Since(start)

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}
			metrics.RecordRequest(r.Method, route, strconv.Itoa(ww.Status()), duration)

			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", duration.Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
