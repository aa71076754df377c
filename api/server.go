package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpupo63/lifestyle-cms-backend/config"
	"github.com/rpupo63/lifestyle-cms-backend/database"
	"github.com/rpupo63/lifestyle-cms-backend/media"
	"github.com/rpupo63/lifestyle-cms-backend/services"
	"github.com/rs/zerolog/log"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(cfg *config.Config, svc *services.Services, resolver *media.Resolver, db database.Database) (Server, error) {
	if cfg.Port == "" {
		return Server{}, fmt.Errorf("server: no port configured")
	}
	// Bind to 0.0.0.0 for external access
	address := fmt.Sprintf("0.0.0.0:%s", cfg.Port)

	startupTime := time.Now()

	router := NewRouter(svc, resolver, db,
		WithAcceptedOrigins(cfg.AcceptedOrigins),
		WithColoredLogs(cfg.IsDevelopment()),
		WithStartupTime(startupTime),
	)

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,  // Timeout for reading the entire request
		WriteTimeout: cfg.WriteTimeout, // Timeout for writing the response
		IdleTimeout:  cfg.IdleTimeout,  // Timeout for idle connections
	}

	return Server{server, startupTime}, nil
}

type router struct {
	acceptedOrigins []string
	coloredLogs     bool
	startupTime     time.Time
}

type RouterOption func(*router)

func WithAcceptedOrigins(origins []string) RouterOption {
	return func(r *router) {
		r.acceptedOrigins = origins
	}
}

func WithColoredLogs(colored bool) RouterOption {
	return func(r *router) {
		r.coloredLogs = colored
	}
}

func WithStartupTime(startupTime time.Time) RouterOption {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

// NewRouter wires every handler and middleware onto a chi router
func NewRouter(svc *services.Services, resolver *media.Resolver, db pinger, opts ...RouterOption) *chi.Mux {
	settings := router{startupTime: time.Now()}
	for _, opt := range opts {
		opt(&settings)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(middleware.RequestID)
	chiRouter.Use(LogInternalServerErrors)

	handlers := initializeHandlers(svc, resolver, db, settings.startupTime)

	if len(settings.acceptedOrigins) > 0 {
		chiRouter.Use(CORSCheckMiddleware(settings.acceptedOrigins))
		chiRouter.Use(corsMiddleware(settings.acceptedOrigins))
	}

	setupRoutes(chiRouter, handlers, ColoredHTTPLoggingMiddleware(settings.coloredLogs))

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
