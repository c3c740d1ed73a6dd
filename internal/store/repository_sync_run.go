// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/Paalmessenlien/spondadmin/internal/logger"
	"github.com/Paalmessenlien/spondadmin/models"
)

const syncRunsTable = "sync_runs"

type syncRunRepository struct {
	*DB
	logger *logger.Logger
}

func NewSyncRunRepository(db *DB, logger *logger.Logger) SyncRunRepository {
	return &syncRunRepository{DB: db, logger: logger}
}

func (r *syncRunRepository) Create(ctx context.Context, run models.SyncRun) error {
	values, err := syncRunValues(run)
	if err != nil {
		return err
	}

	query, args, err := r.builder.Insert(syncRunsTable).Columns(syncRunColumns...).Values(values...).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "syncRunRepository.Create").
			Str("run_id", run.ID).
			Msg("failed to insert sync run")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// Finalize only touches runs whose ended_at is still NULL.
func (r *syncRunRepository) Finalize(ctx context.Context, run models.SyncRun) error {
	values, err := syncRunValues(run)
	if err != nil {
		return err
	}

	u := r.builder.Update(syncRunsTable)
	// id and kind never change
	for i, col := range syncRunColumns {
		if col == "id" || col == "kind" {
			continue
		}
		u = u.Set(col, values[i])
	}
	query, args, err := u.Where(sq.Eq{"id": run.ID, "ended_at": nil}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "syncRunRepository.Finalize").
			Str("run_id", run.ID).
			Msg("failed to finalize sync run")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrSyncRunFinalized, run.ID)
	}
	return nil
}

func (r *syncRunRepository) Latest(ctx context.Context, kind models.Kind) (models.SyncRun, error) {
	query, args, err := r.builder.Select(syncRunColumns...).From(syncRunsTable).
		Where(sq.Eq{"kind": string(kind)}).
		OrderBy("started_at DESC", "id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return models.SyncRun{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	run, err := scanSyncRun(r.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncRun{}, fmt.Errorf("%w: %s", ErrSyncRunNotFound, kind)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "syncRunRepository.Latest").
			Str("kind", kind.String()).
			Msg("failed to read latest sync run")
		return models.SyncRun{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return run, nil
}

// List returns the most recent runs of kind, newest first.
func (r *syncRunRepository) List(ctx context.Context, kind models.Kind, limit uint64) ([]models.SyncRun, error) {
	log := logger.FromContext(ctx)

	b := r.builder.Select(syncRunColumns...).From(syncRunsTable).
		Where(sq.Eq{"kind": string(kind)}).
		OrderBy("started_at DESC", "id DESC")
	if limit > 0 {
		b = b.Limit(limit)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "syncRunRepository.List").Msg("failed to list sync runs")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	runs := make([]models.SyncRun, 0, limit)
	for rows.Next() {
		run, scanErr := scanSyncRun(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "syncRunRepository.List").Msg("failed to scan row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		runs = append(runs, run)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return runs, nil
}

func (r *syncRunRepository) AbandonRunning(ctx context.Context, endedAt time.Time, reason string) (int64, error) {
	query, args, err := r.builder.Update(syncRunsTable).
		Set("status", string(models.RunFailed)).
		Set("ended_at", endedAt.UTC()).
		Set("fatal_error", reason).
		Where(sq.Eq{"ended_at": nil}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "syncRunRepository.AbandonRunning").
			Msg("failed to close abandoned sync runs")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return res.RowsAffected()
}
