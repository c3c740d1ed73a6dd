// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Paalmessenlien/spondadmin/internal/adapter"
	"github.com/Paalmessenlien/spondadmin/internal/logger"
	"github.com/Paalmessenlien/spondadmin/internal/mapper"
	"github.com/Paalmessenlien/spondadmin/internal/store"
	"github.com/Paalmessenlien/spondadmin/internal/utils"
	"github.com/Paalmessenlien/spondadmin/models"
)

const defaultPageSize = 50

// errRecordSkipped marks failures that reject one record without aborting
// the pass.
var errRecordSkipped = errors.New("record skipped")

// Reconciler runs pull passes for one entity kind: remote records are
// fetched page by page, normalised by the mapper and upserted by external
// id. It holds no per-pass state and may be shared; the orchestrator keeps
// passes of the same kind from overlapping.
type Reconciler[T models.Entity] struct {
	mapper   mapper.Mapper[T]
	repo     store.EntityRepository[T]
	remote   adapter.RemoteAdapter
	history  *HistoryRecorder
	pageSize int
	now      func() time.Time
	logger   *logger.Logger
}

func NewReconciler[T models.Entity](
	m mapper.Mapper[T],
	repo store.EntityRepository[T],
	remote adapter.RemoteAdapter,
	history *HistoryRecorder,
	pageSize int,
	logger *logger.Logger,
) *Reconciler[T] {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Reconciler[T]{
		mapper:   m,
		repo:     repo,
		remote:   remote,
		history:  history,
		pageSize: pageSize,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   logger,
	}
}

// Pull executes one pass and returns its finalised SyncRun.
//
// Malformed records are counted as errors and skipped. Failures of the
// remote collaborator or of the store abort the pass: the run is finalised
// as failed and returned together with the error, and records upserted
// before the failure stay committed.
func (r *Reconciler[T]) Pull(ctx context.Context, req models.PullRequest) (run models.SyncRun, err error) {
	kind := r.mapper.Kind()
	run, err = r.history.Start(ctx, kind, req.Scope)
	if err != nil {
		return models.SyncRun{}, err
	}

	log := logger.FromContextOr(ctx, r.logger).With().
		Str("kind", kind.String()).
		Str("run_id", run.ID).
		Logger()
	ctx = utils.WithRunID(log.WithContext(ctx), run.ID)
	// the ledger entry must be closed even when the trigger's context is gone
	finalCtx := context.WithoutCancel(ctx)

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrPassPanicked, p)
		}
		if err != nil {
			log.Error().Err(err).
				Int("fetched", run.Fetched).
				Int("created", run.Created).
				Int("updated", run.Updated).
				Msg("pull pass failed")
			if ferr := r.history.Fail(finalCtx, &run, err); ferr != nil {
				log.Error().Err(ferr).Msg("failed to record failed pass")
			}
			return
		}
		if err = r.history.Finish(finalCtx, &run); err != nil {
			log.Error().Err(err).Msg("failed to finalize pass")
			return
		}
		log.Info().
			Int("fetched", run.Fetched).
			Int("created", run.Created).
			Int("updated", run.Updated).
			Int("errors", run.Errors).
			Int("warnings", run.Warnings).
			Int("unseen", run.Unseen).
			Dur("duration", run.Duration()).
			Msg("pull pass completed")
	}()

	log.Info().Str("scope", req.Scope.String()).Int("max_records", req.MaxRecords).Msg("pull pass started")
	err = r.pass(ctx, req, &run)
	return run, err
}

func (r *Reconciler[T]) pass(ctx context.Context, req models.PullRequest, run *models.SyncRun) error {
	kind := r.mapper.Kind()
	seen := make(map[string]struct{})

	var (
		cursor    string
		processed int
		capped    bool
	)
	for !capped {
		if err := ctx.Err(); err != nil {
			return err
		}

		size := r.pageSize
		if req.MaxRecords > 0 && req.MaxRecords-processed < size {
			size = req.MaxRecords - processed
		}
		page, err := r.remote.FetchPage(ctx, kind, models.PageRequest{Cursor: cursor, PageSize: size, Scope: req.Scope})
		if err != nil {
			return fmt.Errorf("fetch %s page: %w", kind, err)
		}

		for _, rec := range page.Records {
			if req.MaxRecords > 0 && processed >= req.MaxRecords {
				capped = true
				break
			}
			processed++
			run.Fetched++
			if err = r.apply(ctx, rec, req.Scope, seen, run); err != nil {
				return err
			}
		}

		if page.Done() {
			break
		}
		if page.NextCursor == cursor {
			return fmt.Errorf("%w: cursor %q did not advance", adapter.ErrMalformedPage, cursor)
		}
		if req.MaxRecords > 0 && processed >= req.MaxRecords {
			capped = true
		}
		cursor = page.NextCursor
	}

	// records missing upstream are left untouched and only counted; a capped
	// or scoped pass has not seen the whole collection
	if capped || !req.Scope.Empty() {
		return nil
	}
	unseen, err := r.repo.CountNotSyncedSince(ctx, run.StartedAt)
	if err != nil {
		return fmt.Errorf("count unseen %s: %w", kind, err)
	}
	run.Unseen = unseen
	return nil
}

// apply maps and upserts one remote record. Only run-fatal errors are
// returned; per-record failures go to the run's error list.
func (r *Reconciler[T]) apply(ctx context.Context, rec models.RemoteRecord, scope models.ScopeFilter, seen map[string]struct{}, run *models.SyncRun) error {
	log := logger.FromContext(ctx)

	incoming, err := r.mapper.FromRemote(rec)
	if err != nil {
		id := mapper.RecordID(rec)
		run.RecordError(id, err.Error())
		log.Warn().Err(err).Str("external_id", id).Msg("skipping malformed remote record")
		return nil
	}

	meta := incoming.Meta()
	externalID := meta.ExternalIDValue()
	if _, dup := seen[externalID]; dup {
		log.Debug().Str("external_id", externalID).Msg("record already applied in this pass")
		return nil
	}
	seen[externalID] = struct{}{}

	if meta.ParentExternalID == nil && scope.GroupID != "" && r.mapper.Kind().HasParent() {
		meta.ParentExternalID = models.StringPtr(scope.GroupID)
	}

	hash, err := mapper.ContentHash(incoming.Payload(), r.mapper.LocalFields())
	if err != nil {
		run.RecordError(externalID, err.Error())
		log.Warn().Err(err).Str("external_id", externalID).Msg("failed to hash remote record")
		return nil
	}

	now := r.now()
	var held models.FieldSet
	_, created, err := r.repo.Upsert(ctx, externalID, func(existing T, found bool) (T, error) {
		held = nil
		if !found {
			m := incoming.Meta()
			m.SyncState = models.StateRemoteSynced
			m.ErrorDetail = nil
			m.DirtyFields = models.FieldSet{}
			m.ContentHash = hash
			m.LastSyncedAt = &now
			m.CreatedAt = now
			m.UpdatedAt = now
			return incoming, nil
		}

		em := existing.Meta()
		keep := r.mapper.LocalFields()
		localEdits := em.SyncState.HoldsLocalEdits() && !em.DirtyFields.Empty()
		if localEdits {
			keep = keep.Union(em.DirtyFields)
			if em.ContentHash != hash {
				held = em.DirtyFields
			}
		}
		if err := mapper.MergePayload(existing.Payload(), incoming.Payload(), keep); err != nil {
			return existing, fmt.Errorf("%w: %w", errRecordSkipped, err)
		}

		em.SyncState = em.SyncState.OnPull(localEdits)
		if em.SyncState == models.StateRemoteSynced {
			em.DirtyFields = models.FieldSet{}
			em.ErrorDetail = nil
		}
		if meta.ParentExternalID != nil {
			em.ParentExternalID = meta.ParentExternalID
		}
		em.RawData = meta.RawData
		em.ContentHash = hash
		em.LastSyncedAt = &now
		em.UpdatedAt = now
		return existing, nil
	})

	switch {
	case errors.Is(err, errRecordSkipped), errors.Is(err, store.ErrDuplicateExternalID):
		run.RecordError(externalID, err.Error())
		log.Warn().Err(err).Str("external_id", externalID).Msg("failed to apply remote record")
		return nil
	case err != nil:
		return fmt.Errorf("upsert %s %s: %w", r.mapper.Kind(), externalID, err)
	}

	if created {
		run.Created++
	} else {
		run.Updated++
	}
	if !held.Empty() {
		msg := fmt.Sprintf("remote changed while local edits were pending; kept local values of %s", strings.Join(held, ", "))
		run.RecordWarning(externalID, msg)
		log.Warn().Str("external_id", externalID).Strs("fields", held).Msg("conflict with pending local edit")
	}
	return nil
}
