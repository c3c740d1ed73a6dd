// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"

	"github.com/Paalmessenlien/spondadmin/internal/adapter"
	"github.com/Paalmessenlien/spondadmin/internal/logger"
	"github.com/Paalmessenlien/spondadmin/internal/mapper"
	"github.com/Paalmessenlien/spondadmin/internal/store"
	"github.com/Paalmessenlien/spondadmin/models"
)

type kindSyncer[T models.Entity] struct {
	kind       models.Kind
	repo       store.EntityRepository[T]
	reconciler *Reconciler[T]
	gateway    *PushGateway[T]
	editor     *LocalEditor[T]
}

// NewKindSyncer assembles the pull, push and edit pipeline of one kind.
func NewKindSyncer[T models.Entity](
	m mapper.Mapper[T],
	repo store.EntityRepository[T],
	remote adapter.RemoteAdapter,
	history *HistoryRecorder,
	pageSize int,
	logger *logger.Logger,
) KindSyncer {
	return &kindSyncer[T]{
		kind:       m.Kind(),
		repo:       repo,
		reconciler: NewReconciler(m, repo, remote, history, pageSize, logger),
		gateway:    NewPushGateway(m, repo, remote, logger),
		editor:     NewLocalEditor(m, repo, logger),
	}
}

func (s *kindSyncer[T]) Kind() models.Kind {
	return s.kind
}

func (s *kindSyncer[T]) Pull(ctx context.Context, req models.PullRequest) (models.SyncRun, error) {
	return s.reconciler.Pull(ctx, req)
}

func (s *kindSyncer[T]) Push(ctx context.Context, req models.PushRequest) (models.PushOutcome, error) {
	return s.gateway.Push(ctx, req)
}

func (s *kindSyncer[T]) Get(ctx context.Context, id int64) (models.Entity, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *kindSyncer[T]) List(ctx context.Context, filter models.ListFilter) ([]models.Entity, error) {
	entities, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]models.Entity, 0, len(entities))
	for _, e := range entities {
		out = append(out, e)
	}
	return out, nil
}

func (s *kindSyncer[T]) CreateLocal(ctx context.Context, req models.CreateRequest) (models.Entity, error) {
	entity, err := s.editor.CreateLocal(ctx, req)
	if err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *kindSyncer[T]) Edit(ctx context.Context, id int64, patch map[string]json.RawMessage) (models.Entity, error) {
	entity, err := s.editor.Edit(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return entity, nil
}
