// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Paalmessenlien/spondadmin/internal/logger"
	"github.com/Paalmessenlien/spondadmin/internal/store"
	"github.com/Paalmessenlien/spondadmin/internal/utils"
	"github.com/Paalmessenlien/spondadmin/models"
)

// abandonedReason is the fatal error of runs a previous process left open.
const abandonedReason = "interrupted: process stopped before the pass finished"

// HistoryRecorder keeps the append-only ledger of pull passes. A run is
// written when its pass starts and finalised exactly once when it ends.
type HistoryRecorder struct {
	runs   store.SyncRunRepository
	ids    *utils.ULIDGenerator
	now    func() time.Time
	logger *logger.Logger
}

func NewHistoryRecorder(runs store.SyncRunRepository, logger *logger.Logger) *HistoryRecorder {
	return &HistoryRecorder{
		runs:   runs,
		ids:    utils.NewULIDGenerator(),
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger,
	}
}

// Start persists a new running SyncRun for kind.
func (h *HistoryRecorder) Start(ctx context.Context, kind models.Kind, scope models.ScopeFilter) (models.SyncRun, error) {
	started := h.now()
	run := models.SyncRun{
		ID:        h.ids.Generate(started),
		Kind:      kind,
		Status:    models.RunRunning,
		Scope:     scope.String(),
		StartedAt: started,
		Messages:  []models.RunMessage{},
	}
	if err := h.runs.Create(ctx, run); err != nil {
		return models.SyncRun{}, fmt.Errorf("start %s run: %w", kind, err)
	}
	return run, nil
}

// Finish marks run completed with its final totals.
func (h *HistoryRecorder) Finish(ctx context.Context, run *models.SyncRun) error {
	return h.finalize(ctx, run, models.RunCompleted, "")
}

// Fail marks run failed with cause as its run-level error. Records already
// upserted by the pass stay as they are.
func (h *HistoryRecorder) Fail(ctx context.Context, run *models.SyncRun, cause error) error {
	msg := "unknown error"
	if cause != nil {
		msg = cause.Error()
	}
	return h.finalize(ctx, run, models.RunFailed, msg)
}

func (h *HistoryRecorder) finalize(ctx context.Context, run *models.SyncRun, status models.RunStatus, fatal string) error {
	if run.Finalized() {
		return store.ErrSyncRunFinalized
	}
	ended := h.now()
	if ended.Before(run.StartedAt) {
		ended = run.StartedAt
	}

	final := *run
	final.Status = status
	final.FatalError = fatal
	final.EndedAt = &ended
	if err := h.runs.Finalize(ctx, final); err != nil {
		return fmt.Errorf("finalize run %s: %w", run.ID, err)
	}
	*run = final
	return nil
}

func (h *HistoryRecorder) Latest(ctx context.Context, kind models.Kind) (models.SyncRun, error) {
	return h.runs.Latest(ctx, kind)
}

func (h *HistoryRecorder) List(ctx context.Context, kind models.Kind, limit uint64) ([]models.SyncRun, error) {
	return h.runs.List(ctx, kind, limit)
}

// AbandonRunning fails every run still marked running. Only one process
// owns the ledger, so such runs belong to a process that died mid-pass.
func (h *HistoryRecorder) AbandonRunning(ctx context.Context) (int64, error) {
	n, err := h.runs.AbandonRunning(ctx, h.now(), abandonedReason)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		h.logger.Warn().Int64("runs", n).Msg("marked interrupted sync runs as failed")
	}
	return n, nil
}
