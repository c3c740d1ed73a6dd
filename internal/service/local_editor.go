// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Paalmessenlien/spondadmin/internal/logger"
	"github.com/Paalmessenlien/spondadmin/internal/mapper"
	"github.com/Paalmessenlien/spondadmin/internal/store"
	"github.com/Paalmessenlien/spondadmin/models"
)

// LocalEditor applies user changes to the local cache. Changes to pushable
// fields mark them dirty so the next pull keeps them and the next push
// sends them.
type LocalEditor[T models.Entity] struct {
	mapper mapper.Mapper[T]
	repo   store.EntityRepository[T]
	now    func() time.Time
	logger *logger.Logger
}

func NewLocalEditor[T models.Entity](m mapper.Mapper[T], repo store.EntityRepository[T], logger *logger.Logger) *LocalEditor[T] {
	return &LocalEditor[T]{
		mapper: m,
		repo:   repo,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger,
	}
}

// CreateLocal stores a record that does not exist upstream yet. It stays
// local_only until its first push.
func (e *LocalEditor[T]) CreateLocal(ctx context.Context, req models.CreateRequest) (T, error) {
	var zero T

	entity := e.mapper.New()
	if _, err := mapper.PatchPayload(entity.Payload(), req.Fields, mapper.Editable(e.mapper)); err != nil {
		return zero, err
	}
	if err := e.mapper.Validate(entity); err != nil {
		return zero, err
	}
	// members are written under their group upstream
	if e.mapper.Kind() == models.KindMembers && req.ParentExternalID == "" {
		return zero, fmt.Errorf("%w: a member needs a parent group", mapper.ErrInvalidField)
	}

	now := e.now()
	m := entity.Meta()
	if req.ParentExternalID != "" {
		m.ParentExternalID = models.StringPtr(req.ParentExternalID)
	}
	m.SyncState = models.StateLocalOnly
	m.DirtyFields = models.FieldSet{}
	m.CreatedAt = now
	m.UpdatedAt = now

	created, err := e.repo.Create(ctx, entity)
	if err != nil {
		return zero, err
	}
	logger.FromContextOr(ctx, e.logger).Info().
		Str("kind", e.mapper.Kind().String()).
		Int64("id", created.Meta().ID).
		Msg("local record created")
	return created, nil
}

// Edit applies a partial update to record id. A JSON null resets a field.
// Only changed pushable fields are marked dirty; local-only fields never
// change the sync state.
func (e *LocalEditor[T]) Edit(ctx context.Context, id int64, patch map[string]json.RawMessage) (T, error) {
	now := e.now()
	return e.repo.Modify(ctx, id, func(current T) (T, error) {
		changed, err := mapper.PatchPayload(current.Payload(), patch, mapper.Editable(e.mapper))
		if err != nil {
			return current, err
		}
		if err = e.mapper.Validate(current); err != nil {
			return current, err
		}
		if changed.Empty() {
			return current, nil
		}

		m := current.Meta()
		if dirty := changed.Intersect(e.mapper.Pushable()); !dirty.Empty() {
			m.DirtyFields = m.DirtyFields.Union(dirty)
			m.SyncState = m.SyncState.OnLocalEdit()
			m.ErrorDetail = nil
		}
		m.UpdatedAt = now
		return current, nil
	})
}
