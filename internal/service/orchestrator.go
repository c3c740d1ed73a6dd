// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Paalmessenlien/spondadmin/internal/config"
	"github.com/Paalmessenlien/spondadmin/internal/logger"
	"github.com/Paalmessenlien/spondadmin/internal/store"
	"github.com/Paalmessenlien/spondadmin/models"
	"github.com/robfig/cron"
	"golang.org/x/sync/errgroup"
)

// kindState is everything the orchestrator owns for one kind.
type kindState struct {
	syncer   KindSyncer
	schedule config.Schedule
	inFlight atomic.Bool
}

func (s *kindState) scheduledRequest() models.PullRequest {
	return models.PullRequest{
		Scope:      models.ScopeFilter{GroupID: s.schedule.GroupID},
		MaxRecords: s.schedule.MaxRecords,
	}
}

// kindJob is the cron job of one kind. Entries are matched back to their
// kind through it.
type kindJob struct {
	o    *orchestrator
	kind models.Kind
}

func (j kindJob) Run() {
	j.o.runScheduled(j.kind)
}

type orchestrator struct {
	kinds   map[models.Kind]*kindState
	order   []models.Kind
	history *HistoryRecorder
	cron    *cron.Cron
	logger  *logger.Logger

	mu      sync.Mutex
	started bool
	stopped bool
	wg      sync.WaitGroup
}

// NewOrchestrator schedules the given syncers with the per-kind settings of
// workers. Timers only start with Start; manual triggers work right away.
func NewOrchestrator(syncers []KindSyncer, history *HistoryRecorder, workers config.Workers, logger *logger.Logger) Orchestrator {
	o := &orchestrator{
		kinds:   make(map[models.Kind]*kindState, len(syncers)),
		history: history,
		cron:    cron.New(),
		logger:  logger,
	}
	for _, s := range syncers {
		kind := s.Kind()
		o.kinds[kind] = &kindState{syncer: s, schedule: workers.For(kind)}
		o.order = append(o.order, kind)
	}
	return o
}

func (o *orchestrator) Start(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.stopped {
		return ErrSyncStopped
	}
	if o.started {
		return nil
	}
	if _, err := o.history.AbandonRunning(ctx); err != nil {
		return fmt.Errorf("close interrupted runs: %w", err)
	}

	for _, kind := range o.order {
		schedule := o.kinds[kind].schedule
		if !schedule.IsEnabled() || schedule.Interval <= 0 {
			o.logger.Info().Str("kind", kind.String()).Msg("automatic pull disabled")
			continue
		}
		o.cron.Schedule(cron.Every(schedule.Interval), kindJob{o: o, kind: kind})
		o.logger.Info().
			Str("kind", kind.String()).
			Dur("interval", schedule.Interval).
			Str("scope", models.ScopeFilter{GroupID: schedule.GroupID}.String()).
			Msg("automatic pull scheduled")
	}
	o.cron.Start()
	o.started = true
	return nil
}

func (o *orchestrator) Stop(ctx context.Context) error {
	o.mu.Lock()
	alreadyStopped := o.stopped
	o.stopped = true
	o.mu.Unlock()

	if !alreadyStopped {
		o.cron.Stop()
		o.logger.Info().Msg("scheduler stopped, waiting for running passes")
	}

	done := make(chan struct{})
	go func() {
		o.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (o *orchestrator) runScheduled(kind models.Kind) {
	st := o.kinds[kind]
	ctx := o.logger.WithContext(context.Background())

	_, err := o.TriggerPullSync(ctx, kind, st.scheduledRequest())
	switch {
	case errors.Is(err, ErrSyncAlreadyRunning):
		o.logger.Info().Str("kind", kind.String()).Msg("scheduled pull skipped, previous pass still running")
	case errors.Is(err, ErrSyncStopped):
	case err != nil:
		// already logged with the run; the timer keeps going
		o.logger.Debug().Err(err).Str("kind", kind.String()).Msg("scheduled pull failed")
	}
}

// TriggerPullSync admits at most one pass per kind. The in-flight flag is
// claimed before the pass starts and released when it returns, even if it
// panics.
func (o *orchestrator) TriggerPullSync(ctx context.Context, kind models.Kind, req models.PullRequest) (run models.SyncRun, err error) {
	st, err := o.state(kind)
	if err != nil {
		return models.SyncRun{}, err
	}

	o.mu.Lock()
	if o.stopped {
		o.mu.Unlock()
		return models.SyncRun{}, ErrSyncStopped
	}
	if !st.inFlight.CompareAndSwap(false, true) {
		o.mu.Unlock()
		return models.SyncRun{}, fmt.Errorf("%w: %s", ErrSyncAlreadyRunning, kind)
	}
	o.wg.Add(1)
	o.mu.Unlock()

	defer o.wg.Done()
	defer st.inFlight.Store(false)
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrPassPanicked, p)
			o.logger.Error().Err(err).Str("kind", kind.String()).Msg("pull pass crashed")
		}
	}()

	return st.syncer.Pull(ctx, req)
}

// TriggerAll runs every enabled kind concurrently. Runs that started are
// returned even when other kinds failed; the error joins every failure.
func (o *orchestrator) TriggerAll(ctx context.Context) ([]models.SyncRun, error) {
	var kinds []models.Kind
	for _, kind := range o.order {
		if o.kinds[kind].schedule.IsEnabled() {
			kinds = append(kinds, kind)
		}
	}

	runs := make([]models.SyncRun, len(kinds))
	errs := make([]error, len(kinds))
	var g errgroup.Group
	for i, kind := range kinds {
		g.Go(func() error {
			runs[i], errs[i] = o.TriggerPullSync(ctx, kind, o.kinds[kind].scheduledRequest())
			return nil
		})
	}
	_ = g.Wait()

	out := make([]models.SyncRun, 0, len(kinds))
	for i, run := range runs {
		if run.ID != "" {
			out = append(out, run)
		}
		if errs[i] != nil {
			errs[i] = fmt.Errorf("%s: %w", kinds[i], errs[i])
		}
	}
	return out, errors.Join(errs...)
}

func (o *orchestrator) GetSyncStatus(ctx context.Context, kind models.Kind) (models.SyncStatus, error) {
	st, err := o.state(kind)
	if err != nil {
		return models.SyncStatus{}, err
	}

	o.mu.Lock()
	stopped := o.stopped
	o.mu.Unlock()

	status := models.SyncStatus{
		Kind:            kind,
		Enabled:         st.schedule.IsEnabled() && !stopped,
		IntervalSeconds: int64(st.schedule.Interval / time.Second),
		InFlight:        st.inFlight.Load(),
	}

	last, err := o.history.Latest(ctx, kind)
	switch {
	case err == nil:
		status.LastRun = &last
	case !errors.Is(err, store.ErrSyncRunNotFound):
		return models.SyncStatus{}, err
	}

	if status.Enabled {
		status.NextRunEstimate = o.nextRun(kind)
	}
	return status, nil
}

// nextRun reads the next activation of kind from the cron schedule.
func (o *orchestrator) nextRun(kind models.Kind) *time.Time {
	for _, e := range o.cron.Entries() {
		job, ok := e.Job.(kindJob)
		if !ok || job.kind != kind || e.Next.IsZero() {
			continue
		}
		next := e.Next.UTC()
		return &next
	}
	return nil
}

func (o *orchestrator) Statuses(ctx context.Context) ([]models.SyncStatus, error) {
	out := make([]models.SyncStatus, 0, len(o.order))
	for _, kind := range o.order {
		status, err := o.GetSyncStatus(ctx, kind)
		if err != nil {
			return nil, err
		}
		out = append(out, status)
	}
	return out, nil
}

// PushRecord runs in the caller's goroutine and is not serialised against
// pull passes; the store's row locks keep the two consistent.
func (o *orchestrator) PushRecord(ctx context.Context, kind models.Kind, req models.PushRequest) (models.PushOutcome, error) {
	st, err := o.state(kind)
	if err != nil {
		return models.PushOutcome{}, err
	}
	return st.syncer.Push(ctx, req)
}

func (o *orchestrator) Runs(ctx context.Context, kind models.Kind, limit uint64) ([]models.SyncRun, error) {
	if _, err := o.state(kind); err != nil {
		return nil, err
	}
	return o.history.List(ctx, kind, limit)
}

func (o *orchestrator) Record(ctx context.Context, kind models.Kind, id int64) (models.Entity, error) {
	st, err := o.state(kind)
	if err != nil {
		return nil, err
	}
	return st.syncer.Get(ctx, id)
}

func (o *orchestrator) Records(ctx context.Context, kind models.Kind, filter models.ListFilter) ([]models.Entity, error) {
	st, err := o.state(kind)
	if err != nil {
		return nil, err
	}
	return st.syncer.List(ctx, filter)
}

func (o *orchestrator) CreateLocal(ctx context.Context, kind models.Kind, req models.CreateRequest) (models.Entity, error) {
	st, err := o.state(kind)
	if err != nil {
		return nil, err
	}
	return st.syncer.CreateLocal(ctx, req)
}

func (o *orchestrator) EditRecord(ctx context.Context, kind models.Kind, id int64, patch map[string]json.RawMessage) (models.Entity, error) {
	st, err := o.state(kind)
	if err != nil {
		return nil, err
	}
	return st.syncer.Edit(ctx, id, patch)
}

func (o *orchestrator) state(kind models.Kind) (*kindState, error) {
	st, ok := o.kinds[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownKind, kind)
	}
	return st, nil
}
