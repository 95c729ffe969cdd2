package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tagfiler/tagfiler/internal/browse"
	"github.com/tagfiler/tagfiler/internal/fileops"
	"github.com/tagfiler/tagfiler/internal/logger"
	"github.com/tagfiler/tagfiler/pkg/api/handlers"
	"github.com/tagfiler/tagfiler/pkg/metastore/store"
	"github.com/tagfiler/tagfiler/pkg/metrics"
)

// NewRouter creates and configures the chi router with all middleware and
// routes.
//
// Routes:
//   - GET  /health - Liveness probe
//   - GET  /health/ready - Readiness probe (metadata store round trip)
//   - GET  /metrics - Prometheus metrics (when enabled)
//   - GET  /api/v1/browse?path= - Directory listing
//   - GET  /api/v1/browse/roots - Drive root listing
//   - GET  /api/v1/browse/exists?path= - Directory existence probe
//   - GET  /api/v1/browse/home - Home directory
//   - POST /api/v1/files/move - Batch move
//   - POST /api/v1/files/copy - Batch copy
//   - POST /api/v1/files/rename - Single rename
//   - POST /api/v1/files/delete - Batch delete
//   - POST /api/v1/files/tags - Batch tag attachment
//   - GET  /api/v1/tags - Tag listing
//   - GET  /api/v1/tags/search - Tag search
//   - POST /api/v1/tags - Tag creation
//   - PATCH /api/v1/tags/{id} - Partial tag update
func NewRouter(cfg APIConfig, lister *browse.Lister, coordinator *fileops.Coordinator, st *store.Store, m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()

	// Middleware stack - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	healthHandler := handlers.NewHealthHandler(st, m)

	// Health routes - unauthenticated
	r.Route("/health", func(r chi.Router) {
		r.Get("/", healthHandler.Liveness)
		r.Get("/ready", healthHandler.Readiness)
	})

	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	// Root redirect to health for convenience
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/health", http.StatusTemporaryRedirect)
	})

	browseHandler := handlers.NewBrowseHandler(lister)
	fileOpsHandler := handlers.NewFileOpsHandler(coordinator)
	tagHandler := handlers.NewTagHandler(st, m)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/browse", func(r chi.Router) {
			r.Get("/", browseHandler.List)
			r.Get("/roots", browseHandler.Roots)
			r.Get("/exists", browseHandler.Exists)
			r.Get("/home", browseHandler.Home)
		})

		r.Route("/files", func(r chi.Router) {
			r.Post("/move", fileOpsHandler.Move)
			r.Post("/copy", fileOpsHandler.Copy)
			r.Post("/rename", fileOpsHandler.Rename)
			r.Post("/delete", fileOpsHandler.Delete)
			r.Post("/tags", fileOpsHandler.AttachTags)
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", tagHandler.List)
			r.Get("/search", tagHandler.Search)
			r.Post("/", tagHandler.Create)
			r.Patch("/{id}", tagHandler.Modify)
		})
	})

	return r
}

// requestLogger logs request start and completion with the request id.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := middleware.GetReqID(r.Context())

		logger.Debug("API request started",
			logger.KeyRequestID, requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		logArgs := []any{
			logger.KeyRequestID, requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).String(),
		}

		// Probes log at DEBUG to avoid polluting logs
		if isHealthPath(r.URL.Path) {
			logger.Debug("API request completed", logArgs...)
			return
		}
		logger.Info("API request completed", logArgs...)
	})
}

func isHealthPath(path string) bool {
	return path == "/metrics" || path == "/health" || strings.HasPrefix(path, "/health/")
}
