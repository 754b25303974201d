package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	core_ports "rems-service/internal/core/port"
)

// Handlers bundles every handler group the router mounts.
type Handlers struct {
	Search   *SearchHandlers
	Property *PropertyHandlers
	Auth     *AuthHandlers
	Recovery *RecoveryHandlers
	// Events serves the server-sent listing feed; usually the SSE notifier.
	Events http.Handler
}

type Server struct {
	httpServer *http.Server
	logger     core_ports.LoggerPort
}

func NewServer(port string, allowedOrigins []string, handlers Handlers, baseLogger core_ports.LoggerPort) *Server {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware(baseLogger)) // logs every request (method, path, duration)
	r.Use(middleware.Recoverer)         // turns panics into 500s so the server stays up
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},
		AllowCredentials: true,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/properties", func(r chi.Router) {
			r.Get("/", handlers.Search.SearchProperties)
			r.Post("/", handlers.Property.CreateProperty)
			r.Get("/{propertyID}", handlers.Property.GetPropertyDetails)
		})

		r.Route("/filters", func(r chi.Router) {
			r.Get("/", handlers.Search.GetFilters)
			r.Put("/", handlers.Search.UpdateFilters)
			r.Delete("/", handlers.Search.ResetFilters)
			r.Get("/options", handlers.Search.GetFilterOptions)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", handlers.Auth.Login)
			r.Post("/register", handlers.Auth.Register)
			r.Post("/logout", handlers.Auth.Logout)
			r.Get("/session", handlers.Auth.GetSession)
		})

		r.Route("/recovery", func(r chi.Router) {
			r.Post("/code", handlers.Recovery.RequestCode)
			r.Post("/code/resend", handlers.Recovery.ResendCode)
			r.Post("/verify", handlers.Recovery.VerifyCode)
			r.Post("/password", handlers.Recovery.ResetPassword)
		})

		if handlers.Events != nil {
			r.Method(http.MethodGet, "/events", handlers.Events)
		}
	})

	return &Server{
		httpServer: &http.Server{
			Addr:    ":" + port,
			Handler: r,
		},
		logger: baseLogger,
	}
}

// Start runs the HTTP server until it errors or is shut down.
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", core_ports.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}
