package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/loragriffin/blog-app/app/config"
	"github.com/loragriffin/blog-app/app/controllers"
	"github.com/loragriffin/blog-app/app/database"
	"github.com/loragriffin/blog-app/app/metrics"
	"github.com/loragriffin/blog-app/app/repositories"
	"github.com/loragriffin/blog-app/app/routes"
	"github.com/loragriffin/blog-app/app/views"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 30 * time.Second

// Server is the blog's HTTP server together with its template set.
type Server struct {
	*http.Server
	Renderer *views.Renderer
}

// NewServer wires templates, controllers and routes over repo.
func NewServer(cfg *config.Config, repo *repositories.Repository) (*Server, error) {
	renderer, err := views.NewRenderer(cfg.Views.TemplateDir)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics.RegisterCollectors(reg)

	controller := controllers.NewBlogController(repo, renderer)
	return &Server{
		Server: &http.Server{
			Addr:         cfg.Server.Addr(),
			Handler:      routes.SetupRoutes(controller, cfg.Views.StaticDir, reg),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		Renderer: renderer,
	}, nil
}

func (s *Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s *Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefulCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefulCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}

// RunAppServer serves the blog until ctx is cancelled or SIGINT/SIGTERM arrives.
func RunAppServer(ctx context.Context, cfg *config.Config) error {
	repo, err := database.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := repo.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close storage")
		}
	}()

	server, err := NewServer(cfg, repo)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Views.Reload {
		go func() {
			if err := server.Renderer.Watch(ctx); err != nil {
				log.Warn().Err(err).Msg("template live reload disabled")
			}
		}()
	}

	errChannel := make(chan error, 1)
	go server.Start(errChannel)

	select {
	case err := <-errChannel:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		log.Info().Msg("Closing server: shutdown signal received")
	}

	server.ShutdownGracefully(shutdownTimeout)
	return nil
}
