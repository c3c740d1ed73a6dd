// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"

	"github.com/Paalmessenlien/spondadmin/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/orchestrator_mock.go -package=mock

// KindSyncer is the kind-agnostic view of one entity kind's reconciler, push
// gateway and local editor. Entities are returned as [models.Entity].
type KindSyncer interface {
	Kind() models.Kind
	Pull(ctx context.Context, req models.PullRequest) (models.SyncRun, error)
	Push(ctx context.Context, req models.PushRequest) (models.PushOutcome, error)
	Get(ctx context.Context, id int64) (models.Entity, error)
	List(ctx context.Context, filter models.ListFilter) ([]models.Entity, error)
	CreateLocal(ctx context.Context, req models.CreateRequest) (models.Entity, error)
	Edit(ctx context.Context, id int64, patch map[string]json.RawMessage) (models.Entity, error)
}

// Orchestrator is the trigger/status interface of the sync engine.
type Orchestrator interface {
	// Start closes runs left open by a previous process and starts the
	// interval timers of every enabled kind.
	Start(ctx context.Context) error

	// Stop halts the timers and waits for in-flight passes, or until ctx
	// is done.
	Stop(ctx context.Context) error

	// TriggerPullSync runs one pull pass of kind now. It fails with
	// ErrSyncAlreadyRunning if a pass of the same kind is in flight.
	TriggerPullSync(ctx context.Context, kind models.Kind, req models.PullRequest) (models.SyncRun, error)

	// TriggerAll pulls every enabled kind concurrently with its configured
	// scope and cap. A failing kind does not stop the others.
	TriggerAll(ctx context.Context) ([]models.SyncRun, error)

	GetSyncStatus(ctx context.Context, kind models.Kind) (models.SyncStatus, error)
	Statuses(ctx context.Context) ([]models.SyncStatus, error)

	// PushRecord sends one local record upstream. Remote failures are
	// reported in the outcome, not as an error.
	PushRecord(ctx context.Context, kind models.Kind, req models.PushRequest) (models.PushOutcome, error)

	Runs(ctx context.Context, kind models.Kind, limit uint64) ([]models.SyncRun, error)
	Record(ctx context.Context, kind models.Kind, id int64) (models.Entity, error)
	Records(ctx context.Context, kind models.Kind, filter models.ListFilter) ([]models.Entity, error)
	CreateLocal(ctx context.Context, kind models.Kind, req models.CreateRequest) (models.Entity, error)
	EditRecord(ctx context.Context, kind models.Kind, id int64, patch map[string]json.RawMessage) (models.Entity, error)
}
