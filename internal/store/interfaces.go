// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/Paalmessenlien/spondadmin/models"
)

// UpsertFunc computes the record to store for an external id. existing is
// the current record when found is true. It runs inside the upsert
// transaction, may be called more than once and must not do I/O.
type UpsertFunc[T models.Entity] func(existing T, found bool) (T, error)

// ModifyFunc computes the new version of a locked record.
type ModifyFunc[T models.Entity] func(current T) (T, error)

// AdoptFunc computes the record that takes over an external id. pulled is
// the row a pull stored under that id in the meantime, when found is true.
type AdoptFunc[T models.Entity] func(current, pulled T, found bool) (T, error)

// EntityRepository stores synced records of one kind. Every write is a
// single transaction; external_id is unique per kind.
type EntityRepository[T models.Entity] interface {
	GetByID(ctx context.Context, id int64) (T, error)
	GetByExternalID(ctx context.Context, externalID string) (T, error)
	List(ctx context.Context, filter models.ListFilter) ([]T, error)

	// Create inserts a new record and returns it with its local id.
	Create(ctx context.Context, entity T) (T, error)

	// Upsert atomically creates or updates the record keyed by externalID.
	// created reports whether a new row was inserted.
	Upsert(ctx context.Context, externalID string, apply UpsertFunc[T]) (entity T, created bool, err error)

	// Modify locks the record with local id id, applies fn and stores the
	// result.
	Modify(ctx context.Context, id int64, fn ModifyFunc[T]) (T, error)

	// Adopt assigns externalID to the record with local id id after its
	// first push. A row a pull inserted for externalID in the meantime is
	// handed to fn and deleted in the same transaction, so the local id
	// survives and external_id stays unique.
	Adopt(ctx context.Context, id int64, externalID string, fn AdoptFunc[T]) (T, error)

	// CountNotSyncedSince counts records with an external id that no pull
	// has touched since the given instant.
	CountNotSyncedSince(ctx context.Context, since time.Time) (int, error)
}

// SyncRunRepository is the append-only ledger of pull passes.
type SyncRunRepository interface {
	Create(ctx context.Context, run models.SyncRun) error

	// Finalize writes the final totals of a run that has not ended yet.
	Finalize(ctx context.Context, run models.SyncRun) error

	Latest(ctx context.Context, kind models.Kind) (models.SyncRun, error)
	List(ctx context.Context, kind models.Kind, limit uint64) ([]models.SyncRun, error)

	// AbandonRunning fails every run left open by a previous process.
	AbandonRunning(ctx context.Context, endedAt time.Time, reason string) (int64, error)
}

// ErrorClassificator maps driver errors to retry decisions and detects
// uniqueness violations.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
	IsUniqueViolation(err error) bool
}
