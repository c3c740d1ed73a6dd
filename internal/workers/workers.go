// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"fmt"

	"github.com/Paalmessenlien/spondadmin/internal/logger"
	"github.com/Paalmessenlien/spondadmin/internal/service"
)

type Workers struct {
	workers []Worker
	started []Worker

	logger *logger.Logger
}

// NewWorkers registers the pull scheduler of services.
func NewWorkers(services *service.Services, logger *logger.Logger) *Workers {
	return &Workers{
		workers: []Worker{&scheduler{orchestrator: services.Orchestrator}},
		logger:  logger,
	}
}

// Start starts the workers in registration order. If one fails the workers
// already running are stopped again.
func (w *Workers) Start(ctx context.Context) error {
	for _, worker := range w.workers {
		if err := worker.Start(ctx); err != nil {
			w.logger.Err(err).Str("worker", worker.Name()).Msg("worker failed to start")
			return errors.Join(fmt.Errorf("start %s: %w", worker.Name(), err), w.Stop(ctx))
		}
		w.started = append(w.started, worker)
		w.logger.Info().Str("worker", worker.Name()).Msg("worker started")
	}
	return nil
}

// Stop stops the started workers in reverse order.
func (w *Workers) Stop(ctx context.Context) error {
	var errs []error
	for i := len(w.started) - 1; i >= 0; i-- {
		worker := w.started[i]
		if err := worker.Stop(ctx); err != nil {
			w.logger.Err(err).Str("worker", worker.Name()).Msg("worker did not stop cleanly")
			errs = append(errs, fmt.Errorf("stop %s: %w", worker.Name(), err))
			continue
		}
		w.logger.Info().Str("worker", worker.Name()).Msg("worker stopped")
	}
	w.started = nil
	return errors.Join(errs...)
}

// scheduler runs the orchestrator's pull timers.
type scheduler struct {
	orchestrator service.Orchestrator
}

func (s *scheduler) Name() string {
	return "scheduler"
}

func (s *scheduler) Start(ctx context.Context) error {
	return s.orchestrator.Start(ctx)
}

func (s *scheduler) Stop(ctx context.Context) error {
	return s.orchestrator.Stop(ctx)
}
