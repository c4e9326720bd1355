// Package api serves the drive's HTTP surface: authentication, file and
// folder management, listings, search, uploads, and health probes.
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/skydrive/skydrive/internal/logger"
	"github.com/skydrive/skydrive/pkg/api/auth"
	"github.com/skydrive/skydrive/pkg/api/handlers"
	apiMiddleware "github.com/skydrive/skydrive/pkg/api/middleware"
	"github.com/skydrive/skydrive/pkg/drive/store"
	"github.com/skydrive/skydrive/pkg/metrics"
	"github.com/skydrive/skydrive/pkg/storage"
)

// NewRouter creates and configures the chi router with all middleware and routes.
//
// The router is configured with:
//   - Request ID middleware for request tracking
//   - Real IP extraction for proper client identification
//   - Custom request logging using the internal logger
//   - Panic recovery to prevent server crashes
//   - Request timeout to prevent hung requests
//
// Routes:
//   - GET /health - Liveness probe
//   - GET /health/ready - Readiness probe
//   - GET /metrics - Prometheus metrics (when enabled)
//   - GET /uploads/{key} - Stored file download (local backend)
//   - POST /api/v1/auth/login - User authentication
//   - POST /api/v1/auth/refresh - Token refresh
//   - GET /api/v1/auth/me - Current user info
//   - GET /api/v1/drive - Scoped drive listing (root, folder, starred, trashed)
//   - GET /api/v1/drive/search - Name search across the drive
//   - /api/v1/files/* - File metadata management
//   - /api/v1/folders/* - Folder management and breadcrumb paths
//   - POST /api/v1/uploads - Multipart file upload
func NewRouter(driveStore store.Store, jwtService *auth.JWTService, blobs storage.BlobStore) http.Handler {
	r := chi.NewRouter()

	// Middleware stack - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	if httpMetrics := metrics.NewHTTPMetrics(); httpMetrics != nil {
		r.Use(httpMetrics.Middleware)
	}

	// Health routes - unauthenticated
	healthHandler := handlers.NewHealthHandler(driveStore)
	r.Route("/health", func(r chi.Router) {
		r.Get("/", healthHandler.Liveness)
		r.Get("/ready", healthHandler.Readiness)
	})

	if metrics.IsEnabled() {
		r.Get("/metrics", metrics.Handler().ServeHTTP)
	}

	// Root redirect to health for convenience
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/health", http.StatusTemporaryRedirect)
	})

	authHandler := handlers.NewAuthHandler(driveStore, jwtService)
	driveHandler := handlers.NewDriveHandler(driveStore)
	fileHandler := handlers.NewFileHandler(driveStore, blobs)
	folderHandler := handlers.NewFolderHandler(driveStore)
	uploadHandler := handlers.NewUploadHandler(driveStore, blobs)

	// Stored bytes for the local backend; links embed the key
	r.Get("/uploads/{key}", uploadHandler.Download)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Auth routes - mostly unauthenticated
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			r.Group(func(r chi.Router) {
				r.Use(apiMiddleware.JWTAuth(jwtService))
				r.Get("/me", authHandler.Me)
			})
		})

		// Every drive route is scoped to the authenticated owner
		r.Group(func(r chi.Router) {
			r.Use(apiMiddleware.JWTAuth(jwtService))

			r.Route("/drive", func(r chi.Router) {
				r.Get("/", driveHandler.List)
				r.Get("/search", driveHandler.Search)
			})

			r.Route("/files", func(r chi.Router) {
				r.Post("/", fileHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", fileHandler.Get)
					r.Delete("/", fileHandler.DeleteForever)
					r.Patch("/name", fileHandler.Rename)
					r.Patch("/starred", fileHandler.SetStarred)
					r.Patch("/trashed", fileHandler.SetTrashed)
				})
			})

			r.Route("/folders", func(r chi.Router) {
				r.Post("/", folderHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", folderHandler.Get)
					r.Delete("/", folderHandler.DeleteForever)
					r.Patch("/name", folderHandler.Rename)
					r.Patch("/starred", folderHandler.SetStarred)
					r.Patch("/trashed", folderHandler.SetTrashed)
					r.Get("/path", folderHandler.Path)
				})
			})

			r.Post("/uploads", uploadHandler.Upload)
		})
	})

	return r
}

// isHealthPath returns true if the request path is a healthcheck endpoint.
func isHealthPath(path string) bool {
	return path == "/health" || strings.HasPrefix(path, "/health/")
}

// requestLogger is a custom middleware that logs requests using the internal logger.
//
// It logs:
//   - Request start (DEBUG level): method, path, remote addr
//   - Request completion (INFO level): method, path, status, duration
//   - Healthcheck requests are logged at DEBUG level to reduce noise
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := middleware.GetReqID(r.Context())

		logger.Debug("API request started",
			logger.KeyRequestID, requestID,
			logger.KeyMethod, r.Method,
			logger.KeyPath, r.URL.Path,
			logger.KeyClientIP, r.RemoteAddr,
		)

		// Wrap response writer to capture status code
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		logArgs := []any{
			logger.KeyRequestID, requestID,
			logger.KeyMethod, r.Method,
			logger.KeyPath, r.URL.Path,
			logger.KeyStatus, ww.Status(),
			"bytes", ww.BytesWritten(),
			logger.KeyDurationMS, logger.Duration(start),
		}

		// Log healthcheck requests at DEBUG to avoid polluting logs in k8s
		if isHealthPath(r.URL.Path) {
			logger.Debug("API request completed", logArgs...)
		} else {
			logger.Info("API request completed", logArgs...)
		}
	})
}
