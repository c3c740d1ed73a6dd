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

// maxUpsertAttempts allows one retry after losing an insert race on the
// external id: the retry finds the winner's row and updates it.
const maxUpsertAttempts = 2

// errInsertRaced signals that ON CONFLICT DO NOTHING skipped the insert.
var errInsertRaced = errors.New("concurrent insert of the same external id")

// entityRepository is the SQL implementation of [EntityRepository] shared
// by all kinds. Kind-specific fields live in the JSON "fields" column.
type entityRepository[T models.Entity] struct {
	*DB
	kind      models.Kind
	newEntity func() T
	logger    *logger.Logger
}

// NewEntityRepository constructs the repository of kind, storing rows in
// kind.Table(). newEntity must return an empty, non-nil entity.
func NewEntityRepository[T models.Entity](db *DB, kind models.Kind, newEntity func() T, logger *logger.Logger) EntityRepository[T] {
	return &entityRepository[T]{
		DB:        db,
		kind:      kind,
		newEntity: newEntity,
		logger:    logger,
	}
}

func (r *entityRepository[T]) table() string {
	return r.kind.Table()
}

func (r *entityRepository[T]) selectBuilder() sq.SelectBuilder {
	return r.builder.Select(entityColumns...).From(r.table())
}

func (r *entityRepository[T]) GetByID(ctx context.Context, id int64) (T, error) {
	return r.getOne(ctx, r.DB.DB, r.selectBuilder().Where(sq.Eq{"id": id}), "entityRepository.GetByID")
}

func (r *entityRepository[T]) GetByExternalID(ctx context.Context, externalID string) (T, error) {
	return r.getOne(ctx, r.DB.DB, r.selectBuilder().Where(sq.Eq{"external_id": externalID}), "entityRepository.GetByExternalID")
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *entityRepository[T]) getOne(ctx context.Context, q queryer, b sq.SelectBuilder, fn string) (T, error) {
	var zero T
	log := logger.FromContext(ctx)

	query, args, err := b.ToSql()
	if err != nil {
		log.Err(err).Str("func", fn).Str("kind", r.kind.String()).Msg("failed to build query")
		return zero, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	entity, err := scanEntity(q.QueryRowContext(ctx, query, args...), r.newEntity)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, fmt.Errorf("%w: %s", ErrEntityNotFound, r.kind)
	}
	if err != nil {
		log.Err(err).Str("func", fn).Str("kind", r.kind.String()).Msg("failed to scan row")
		return zero, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return entity, nil
}

// List returns records ordered by local id.
func (r *entityRepository[T]) List(ctx context.Context, filter models.ListFilter) ([]T, error) {
	log := logger.FromContext(ctx)

	b := r.selectBuilder().OrderBy("id")
	if filter.State != "" {
		b = b.Where(sq.Eq{"sync_state": string(filter.State)})
	}
	if filter.ParentExternalID != "" {
		b = b.Where(sq.Eq{"parent_external_id": filter.ParentExternalID})
	}
	if filter.Limit > 0 {
		b = b.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		b = b.Offset(filter.Offset)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "entityRepository.List").
			Str("kind", r.kind.String()).
			Msg("failed to execute query for listing records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]T, 0, 50)
	for rows.Next() {
		entity, scanErr := scanEntity(rows, r.newEntity)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "entityRepository.List").
				Str("kind", r.kind.String()).
				Msg("failed to scan row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		results = append(results, entity)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "entityRepository.List").
			Str("kind", r.kind.String()).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

// Create inserts entity as a new row. An external id that already exists
// yields ErrDuplicateExternalID.
func (r *entityRepository[T]) Create(ctx context.Context, entity T) (T, error) {
	var zero T
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		id, err := r.insert(ctx, tx, entity, false)
		if err != nil {
			return err
		}
		entity.Meta().ID = id
		return nil
	})
	if err != nil {
		return zero, err
	}
	return entity, nil
}

// Upsert runs the select-apply-write cycle for one external id in a single
// transaction. The row is locked on PostgreSQL; SQLite transactions hold the
// write lock from BEGIN. A lost insert race is retried once, after which the
// unique index on external_id surfaces as ErrDuplicateExternalID.
func (r *entityRepository[T]) Upsert(ctx context.Context, externalID string, apply UpsertFunc[T]) (T, bool, error) {
	var zero T
	log := logger.FromContext(ctx)

	var (
		result  T
		created bool
		err     error
	)
	for attempt := 1; attempt <= maxUpsertAttempts; attempt++ {
		err = r.inTx(ctx, func(tx *sql.Tx) error {
			var txErr error
			result, created, txErr = r.upsertTx(ctx, tx, externalID, apply)
			return txErr
		})
		if err == nil {
			return result, created, nil
		}
		if !errors.Is(err, errInsertRaced) && !r.errorClassificator.IsUniqueViolation(err) {
			return zero, false, err
		}
		log.Warn().Err(err).
			Str("func", "entityRepository.Upsert").
			Str("kind", r.kind.String()).
			Str("external_id", externalID).
			Int("attempt", attempt).
			Msg("lost insert race, retrying as update")
	}
	return zero, false, fmt.Errorf("%w: %s %s", ErrDuplicateExternalID, r.kind, externalID)
}

func (r *entityRepository[T]) upsertTx(ctx context.Context, tx *sql.Tx, externalID string, apply UpsertFunc[T]) (T, bool, error) {
	var zero T

	existing, err := r.getOne(ctx, tx, r.lockForUpdate(r.selectBuilder().Where(sq.Eq{"external_id": externalID})), "entityRepository.Upsert")
	found := err == nil
	if err != nil && !errors.Is(err, ErrEntityNotFound) {
		return zero, false, err
	}

	next, err := apply(existing, found)
	if err != nil {
		return zero, false, err
	}
	next.Meta().ExternalID = &externalID

	if found {
		next.Meta().ID = existing.Meta().ID
		if err = r.update(ctx, tx, next); err != nil {
			return zero, false, err
		}
		return next, false, nil
	}

	id, err := r.insert(ctx, tx, next, true)
	if err != nil {
		return zero, false, err
	}
	next.Meta().ID = id
	return next, true, nil
}

// Modify locks the row with local id id, applies fn and writes the result.
func (r *entityRepository[T]) Modify(ctx context.Context, id int64, fn ModifyFunc[T]) (T, error) {
	var zero T
	var result T
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		current, err := r.getOne(ctx, tx, r.lockForUpdate(r.selectBuilder().Where(sq.Eq{"id": id})), "entityRepository.Modify")
		if err != nil {
			return err
		}
		next, err := fn(current)
		if err != nil {
			return err
		}
		next.Meta().ID = id
		if err = r.update(ctx, tx, next); err != nil {
			return err
		}
		result = next
		return nil
	})
	if err != nil {
		return zero, err
	}
	return result, nil
}

// Adopt retries once when a concurrent pull commits the external id
// between the lookup and the update.
func (r *entityRepository[T]) Adopt(ctx context.Context, id int64, externalID string, fn AdoptFunc[T]) (T, error) {
	var zero T
	var (
		result T
		err    error
	)
	for attempt := 1; attempt <= maxUpsertAttempts; attempt++ {
		err = r.inTx(ctx, func(tx *sql.Tx) error {
			var txErr error
			result, txErr = r.adoptTx(ctx, tx, id, externalID, fn)
			return txErr
		})
		if err == nil || !errors.Is(err, ErrDuplicateExternalID) {
			break
		}
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "entityRepository.Adopt").
			Str("kind", r.kind.String()).
			Str("external_id", externalID).
			Int("attempt", attempt).
			Msg("external id taken by a concurrent pull, retrying")
	}
	if err != nil {
		return zero, err
	}
	return result, nil
}

func (r *entityRepository[T]) adoptTx(ctx context.Context, tx *sql.Tx, id int64, externalID string, fn AdoptFunc[T]) (T, error) {
	var zero T

	current, err := r.getOne(ctx, tx, r.lockForUpdate(r.selectBuilder().Where(sq.Eq{"id": id})), "entityRepository.Adopt")
	if err != nil {
		return zero, err
	}

	pulled, err := r.getOne(ctx, tx, r.lockForUpdate(r.selectBuilder().Where(sq.Eq{"external_id": externalID})), "entityRepository.Adopt")
	found := err == nil
	if err != nil && !errors.Is(err, ErrEntityNotFound) {
		return zero, err
	}
	if found && pulled.Meta().ID == id {
		found = false
	}

	next, err := fn(current, pulled, found)
	if err != nil {
		return zero, err
	}

	if found {
		if err = r.delete(ctx, tx, pulled.Meta().ID); err != nil {
			return zero, err
		}
		logger.FromContext(ctx).Info().
			Str("kind", r.kind.String()).
			Int64("id", id).
			Int64("merged_id", pulled.Meta().ID).
			Str("external_id", externalID).
			Msg("merged pulled duplicate into pushed record")
	}

	next.Meta().ID = id
	next.Meta().ExternalID = &externalID
	if err = r.update(ctx, tx, next); err != nil {
		return zero, err
	}
	return next, nil
}

func (r *entityRepository[T]) CountNotSyncedSince(ctx context.Context, since time.Time) (int, error) {
	query, args, err := r.builder.Select("COUNT(*)").From(r.table()).
		Where(sq.NotEq{"external_id": nil}).
		Where(sq.NotEq{"sync_state": string(models.StateLocalOnly)}).
		Where(sq.Or{sq.Eq{"last_synced_at": nil}, sq.Lt{"last_synced_at": since.UTC()}}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int
	if err = r.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "entityRepository.CountNotSyncedSince").
			Str("kind", r.kind.String()).
			Msg("failed to count unseen records")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return count, nil
}

// insert writes a new row and returns its id. With onConflictSkip a clash
// on external_id returns errInsertRaced instead of a driver error.
func (r *entityRepository[T]) insert(ctx context.Context, tx *sql.Tx, entity T, onConflictSkip bool) (int64, error) {
	values, err := entityValues(entity)
	if err != nil {
		return 0, err
	}

	b := r.builder.Insert(r.table()).Columns(entityWriteColumns...).Values(values...)
	if onConflictSkip {
		b = b.Suffix("ON CONFLICT (external_id) DO NOTHING RETURNING id")
	} else {
		b = b.Suffix("RETURNING id")
	}
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var id int64
	err = tx.QueryRowContext(ctx, query, args...).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows) && onConflictSkip:
		return 0, errInsertRaced
	case err != nil && r.errorClassificator.IsUniqueViolation(err):
		return 0, fmt.Errorf("%w: %w", ErrDuplicateExternalID, err)
	case err != nil:
		logger.FromContext(ctx).Err(err).
			Str("func", "entityRepository.insert").
			Str("kind", r.kind.String()).
			Msg("failed to insert record")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return id, nil
}

func (r *entityRepository[T]) delete(ctx context.Context, tx *sql.Tx, id int64) error {
	query, args, err := r.builder.Delete(r.table()).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "entityRepository.delete").
			Str("kind", r.kind.String()).
			Int64("id", id).
			Msg("failed to delete record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r *entityRepository[T]) update(ctx context.Context, tx *sql.Tx, entity T) error {
	values, err := entityValues(entity)
	if err != nil {
		return err
	}

	query, args, err := updateEntity(r.builder, r.table(), entity.Meta().ID, values).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		if r.errorClassificator.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %w", ErrDuplicateExternalID, err)
		}
		logger.FromContext(ctx).Err(err).
			Str("func", "entityRepository.update").
			Str("kind", r.kind.String()).
			Int64("id", entity.Meta().ID).
			Msg("failed to update record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
