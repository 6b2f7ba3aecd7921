// Package server wires configuration into the HTTP endpoint and the health
// service and runs them until the context is cancelled.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"photoarchive/internal/api"
	"photoarchive/internal/archive"
	"photoarchive/internal/health"
	"photoarchive/pkg/config"
	"photoarchive/pkg/logger"
)

const readHeaderTimeout = 10 * time.Second

type Server struct {
	cfg     *config.Config
	handler http.Handler
	health  *health.Server
	logger  *logger.Logger
}

func New(cfg *config.Config, log *logger.Logger) (*Server, error) {
	if log == nil {
		log = logger.WithField("mode", "server")
	}

	resolver, err := archive.NewResolver(cfg.Archive.RootDir)
	if err != nil {
		return nil, fmt.Errorf("invalid archive root: %w", err)
	}

	streamer := archive.NewStreamer(archive.Options{
		Command:       cfg.Archive.Command,
		ChunkSize:     cfg.Archive.ChunkSize,
		GracePeriod:   cfg.Archive.GracePeriod,
		ContentType:   cfg.Archive.ContentType,
		MaxConcurrent: cfg.Archive.MaxConcurrent,
		Logger:        log.WithField("component", "archive-streamer"),
	})
	pages := api.NewPages(cfg.Pages.Index, cfg.Pages.NotFound, log.WithField("component", "pages"))
	handler := api.NewHandler(resolver, streamer, pages, log.WithField("component", "http"))

	s := &Server{
		cfg:     cfg,
		handler: handler.Routes(),
		logger:  log,
	}
	if cfg.Health.Address != "" {
		s.health = health.NewServer(log.WithField("component", "health"))
	}

	log.Info("server configured",
		"root", resolver.Root(),
		"command", cfg.Archive.Command,
		"chunkSize", cfg.Archive.ChunkSize,
		"maxConcurrent", cfg.Archive.MaxConcurrent)
	return s, nil
}

// Run listens on the configured addresses and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.cfg.GetServerAddress())
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	var healthLis net.Listener
	if s.health != nil {
		healthLis, err = health.Listen(s.cfg.Health.Address)
		if err != nil {
			_ = lis.Close()
			return err
		}
	}

	return s.Serve(ctx, lis, healthLis)
}

// Serve serves HTTP on lis, and health checks on healthLis when the health
// service is enabled, until ctx is done or either server fails.
//
// On shutdown the health status flips to NOT_SERVING and the base context of
// every request is cancelled before the HTTP server drains, so in-flight
// downloads stop their archivers instead of holding up the drain.
func (s *Server) Serve(ctx context.Context, lis, healthLis net.Listener) error {
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()

	httpServer := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("starting HTTP server", "address", lis.Addr().String())
		if err := httpServer.Serve(lis); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	if s.health != nil && healthLis != nil {
		g.Go(func() error {
			return s.health.Serve(healthLis)
		})
		s.health.SetServing(true)
	}

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down server", "timeout", s.cfg.Server.ShutdownTimeout)

		if s.health != nil {
			s.health.SetServing(false)
		}
		cancelBase()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
		defer cancel()
		err := httpServer.Shutdown(shutdownCtx)

		if s.health != nil {
			s.health.Stop()
		}
		if err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		s.logger.Info("server stopped gracefully")
		return nil
	})

	return g.Wait()
}
