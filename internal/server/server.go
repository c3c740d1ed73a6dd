// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os/signal"
	"syscall"
	"time"

	"github.com/Paalmessenlien/spondadmin/internal/config"
	"github.com/Paalmessenlien/spondadmin/internal/handler"
	"github.com/Paalmessenlien/spondadmin/internal/logger"
)

// shutdownTimeout bounds how long a stop waits for the listener to drain and
// for running passes to finish.
const shutdownTimeout = 30 * time.Second

type server struct {
	httpServer *httpServer
	address    string
	background Background
	logger     *logger.Logger
}

func NewServer(handlers *handler.Handlers, background Background, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil || cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		address:    cfg.HTTPAddress,
		background: background,
		logger:     logger,
	}, nil
}

func (s *server) RunServer(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.address, err)
	}
	return s.run(ctx, ln)
}

func (s *server) run(ctx context.Context, ln net.Listener) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	if err := s.background.Start(ctx); err != nil {
		ln.Close()
		return fmt.Errorf("start workers: %w", err)
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.RunServer(ln)
	}()

	var errs []error
	select {
	case <-ctx.Done():
		s.logger.Info().Msg("stop requested")
	case err := <-serveErr:
		// listener failed on its own
		errs = append(errs, err)
		serveErr = nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if serveErr != nil {
		if err := <-serveErr; err != nil {
			errs = append(errs, err)
		}
	}
	if err := s.background.Stop(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("stop workers: %w", err))
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}
	s.logger.Info().Msg("server shutdown gracefully")
	return nil
}
