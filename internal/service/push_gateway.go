// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Paalmessenlien/spondadmin/internal/adapter"
	"github.com/Paalmessenlien/spondadmin/internal/logger"
	"github.com/Paalmessenlien/spondadmin/internal/mapper"
	"github.com/Paalmessenlien/spondadmin/internal/store"
	"github.com/Paalmessenlien/spondadmin/models"
)

// PushGateway sends single local records upstream and moves them through
// the sync state machine. Remote failures never lose local data: the record
// keeps its field values and lands in push_error with the cause attached.
type PushGateway[T models.Entity] struct {
	mapper mapper.Mapper[T]
	repo   store.EntityRepository[T]
	remote adapter.RemoteAdapter
	now    func() time.Time
	logger *logger.Logger
}

func NewPushGateway[T models.Entity](
	m mapper.Mapper[T],
	repo store.EntityRepository[T],
	remote adapter.RemoteAdapter,
	logger *logger.Logger,
) *PushGateway[T] {
	return &PushGateway[T]{
		mapper: m,
		repo:   repo,
		remote: remote,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger,
	}
}

// Push sends the record with local id req.ID. A record without an external
// id is created upstream and adopts the id the remote assigns; any other
// record is updated in place.
//
// Without req.Fields a pending edit sends its dirty fields and a first push
// sends every pushable field. Remote failures are reported in the outcome;
// the returned error is reserved for precondition and storage failures.
func (g *PushGateway[T]) Push(ctx context.Context, req models.PushRequest) (models.PushOutcome, error) {
	kind := g.mapper.Kind()
	log := logger.FromContextOr(ctx, g.logger).With().
		Str("kind", kind.String()).
		Int64("id", req.ID).
		Logger()

	snapshot, err := g.repo.GetByID(ctx, req.ID)
	if err != nil {
		return models.PushOutcome{}, err
	}
	meta := snapshot.Meta()
	if !meta.SyncState.CanPush() {
		return models.PushOutcome{}, fmt.Errorf("%w: %s record %d is %s", ErrPushPrecondition, kind, req.ID, meta.SyncState)
	}

	fields := g.fieldsToSend(meta, req.Fields)
	payload, err := g.mapper.ToRemote(snapshot, fields)
	if err != nil {
		return models.PushOutcome{}, err
	}
	if fields.Empty() {
		fields = g.mapper.Pushable()
	}

	var scope models.ScopeFilter
	if meta.ParentExternalID != nil {
		scope.GroupID = *meta.ParentExternalID
	}

	externalID := meta.ExternalIDValue()
	creating := meta.ExternalID == nil
	if creating {
		externalID, err = g.remote.CreateRemote(ctx, kind, scope, payload)
	} else {
		err = g.remote.UpdateRemote(ctx, kind, scope, externalID, payload)
	}

	// the outcome is stored even if the caller went away mid-push
	storeCtx := context.WithoutCancel(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("push failed")
		return g.recordFailure(storeCtx, req.ID, fields, err)
	}
	return g.recordSuccess(storeCtx, snapshot, externalID, creating, fields)
}

func (g *PushGateway[T]) fieldsToSend(meta *models.SyncMeta, requested models.FieldSet) models.FieldSet {
	if !requested.Empty() {
		return requested
	}
	if meta.ExternalID == nil {
		return nil
	}
	// an empty selection sends every pushable field
	return meta.DirtyFields.Intersect(g.mapper.Pushable())
}

func (g *PushGateway[T]) recordFailure(ctx context.Context, id int64, fields models.FieldSet, cause error) (models.PushOutcome, error) {
	now := g.now()
	detail := cause.Error()
	stored, err := g.repo.Modify(ctx, id, func(current T) (T, error) {
		m := current.Meta()
		m.SyncState = m.SyncState.OnPushFailed()
		m.ErrorDetail = &detail
		m.UpdatedAt = now
		return current, nil
	})
	if err != nil {
		return models.PushOutcome{}, fmt.Errorf("record push failure: %w", err)
	}
	return g.outcome(stored, false, fields), nil
}

func (g *PushGateway[T]) recordSuccess(ctx context.Context, snapshot T, externalID string, created bool, fields models.FieldSet) (models.PushOutcome, error) {
	now := g.now()
	hash, err := mapper.ContentHash(snapshot.Payload(), g.mapper.LocalFields())
	if err != nil {
		return models.PushOutcome{}, err
	}

	apply := func(current T) (T, error) {
		m := current.Meta()
		// fields edited again while the push was in flight stay dirty
		editedMeanwhile, err := mapper.DiffPayload(snapshot.Payload(), current.Payload())
		if err != nil {
			return current, err
		}
		remaining := m.DirtyFields.Without(fields.Without(editedMeanwhile))
		m.DirtyFields = remaining
		m.SyncState = m.SyncState.OnPushSucceeded(!remaining.Empty())
		m.ErrorDetail = nil
		m.ContentHash = hash
		m.LastSyncedAt = &now
		m.UpdatedAt = now
		return current, nil
	}

	var stored T
	if created {
		stored, err = g.repo.Adopt(ctx, snapshot.Meta().ID, externalID, func(current, pulled T, found bool) (T, error) {
			if !found {
				return apply(current)
			}
			return g.absorbPulled(current, pulled, apply)
		})
	} else {
		stored, err = g.repo.Modify(ctx, snapshot.Meta().ID, apply)
	}
	if err != nil {
		g.logger.Error().Err(err).
			Str("kind", g.mapper.Kind().String()).
			Int64("id", snapshot.Meta().ID).
			Str("external_id", externalID).
			Msg("push succeeded upstream but the local record could not be updated")
		return models.PushOutcome{}, fmt.Errorf("record push success: %w", err)
	}
	return g.outcome(stored, created, fields), nil
}

// absorbPulled folds the row a pull stored for the new external id into
// the pushed record. Editable fields keep their local values; everything the
// remote derives (raw payload, remote-only fields) comes from the pull.
func (g *PushGateway[T]) absorbPulled(current, pulled T, apply store.ModifyFunc[T]) (T, error) {
	if err := mapper.MergePayload(current.Payload(), pulled.Payload(), mapper.Editable(g.mapper)); err != nil {
		return current, err
	}
	m, pm := current.Meta(), pulled.Meta()
	if m.ParentExternalID == nil {
		m.ParentExternalID = pm.ParentExternalID
	}
	m.RawData = pm.RawData

	next, err := apply(current)
	if err != nil {
		return next, err
	}
	// the hash tracks what the remote holds, which the pull just read
	next.Meta().ContentHash = pm.ContentHash
	return next, nil
}

func (g *PushGateway[T]) outcome(entity T, created bool, fields models.FieldSet) models.PushOutcome {
	m := entity.Meta()
	out := models.PushOutcome{
		Kind:       g.mapper.Kind(),
		ID:         m.ID,
		ExternalID: m.ExternalIDValue(),
		State:      m.SyncState,
		Created:    created,
		Fields:     fields,
	}
	if m.ErrorDetail != nil {
		out.ErrorDetail = *m.ErrorDetail
	}
	return out
}
