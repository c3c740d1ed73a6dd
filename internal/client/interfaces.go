// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"encoding/json"

	"github.com/Paalmessenlien/spondadmin/models"
)

// SyncAPI is the set of server operations syncctl uses.
type SyncAPI interface {
	Version(ctx context.Context) (string, error)
	Statuses(ctx context.Context) ([]models.SyncStatus, error)
	Status(ctx context.Context, kind models.Kind) (models.SyncStatus, error)
	Pull(ctx context.Context, kind models.Kind, req models.PullRequest) (models.SyncRunSummary, error)
	PullAll(ctx context.Context) ([]models.SyncRunSummary, error)
	Runs(ctx context.Context, kind models.Kind, limit uint64) ([]models.SyncRunSummary, error)
	Records(ctx context.Context, kind models.Kind, filter models.ListFilter) (json.RawMessage, error)
	Record(ctx context.Context, kind models.Kind, id int64) (json.RawMessage, error)
	Create(ctx context.Context, kind models.Kind, req models.CreateRequest) (json.RawMessage, error)
	Edit(ctx context.Context, kind models.Kind, id int64, patch map[string]json.RawMessage) (json.RawMessage, error)
	Push(ctx context.Context, kind models.Kind, req models.PushRequest) (models.PushOutcome, error)
}
