// Package api provides the HTTP API server and handlers for the BookNest application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/booknest/booknest-server/internal/http/response"
	"github.com/booknest/booknest-server/internal/metadata/googlebooks"
	"github.com/booknest/booknest-server/internal/service"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	bookListService *service.BookListService
	feedbackService *service.FeedbackService
	booksClient     *googlebooks.Client
	corsOrigins     []string
	router          *chi.Mux
	logger          *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(bookListService *service.BookListService, feedbackService *service.FeedbackService, booksClient *googlebooks.Client, corsOrigins []string, logger *slog.Logger) *Server {
	s := &Server{
		bookListService: bookListService,
		feedbackService: feedbackService,
		booksClient:     booksClient,
		corsOrigins:     corsOrigins,
		router:          chi.NewRouter(),
		logger:          logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	origins := s.corsOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	// Prometheus metrics.
	s.router.Handle("/metrics", promhttp.Handler())

	// API v1.
	s.router.Route("/api/v1", func(r chi.Router) {
		// Book list records.
		r.Route("/booklists", func(r chi.Router) {
			r.Get("/", s.handleListBookLists)
			r.Post("/", s.handleCreateBookList)

			r.Get("/isbn/{isbn}", s.handleLookupISBN)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetBookList)
				r.Patch("/", s.handleUpdateBookList)
				r.Put("/", s.handleReplaceBookList)
				r.Delete("/", s.handleDeleteBookList)

				r.Get("/duplicates", s.handleGetDuplicates)

				r.Route("/comments", func(r chi.Router) {
					r.Get("/", s.handleGetComments)
					r.Post("/", s.handleAddComment)
					r.Delete("/{commentId}", s.handleDeleteComment)
				})
			})
		})

		// Feedback.
		r.Route("/feedback", func(r chi.Router) {
			r.Get("/", s.handleListFeedback)
			r.Post("/", s.handleCreateFeedback)
			r.Get("/{id}", s.handleGetFeedback)
			r.Delete("/{id}", s.handleDeleteFeedback)
		})
	})
}

// handleHealthCheck returns server health status.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"status": "healthy",
	}, s.logger)
}
