// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/Paalmessenlien/spondadmin/models"
)

// entityColumns is the column order of every synced table; scanEntity and
// entityValues follow it.
var entityColumns = []string{
	"id",
	"external_id",
	"parent_external_id",
	"sync_state",
	"error_detail",
	"dirty_fields",
	"content_hash",
	"fields",
	"raw_data",
	"last_synced_at",
	"created_at",
	"updated_at",
}

// entityWriteColumns are the columns written by INSERT and UPDATE.
var entityWriteColumns = entityColumns[1:]

var syncRunColumns = []string{
	"id",
	"kind",
	"status",
	"scope",
	"started_at",
	"ended_at",
	"fetched",
	"created",
	"updated",
	"errors",
	"warnings",
	"unseen",
	"messages",
	"fatal_error",
}

type rowScanner interface {
	Scan(dest ...any) error
}

// entityValues returns the values of entityWriteColumns for e.
func entityValues(e models.Entity) ([]any, error) {
	meta := e.Meta()

	fields, err := json.Marshal(e.Payload())
	if err != nil {
		return nil, fmt.Errorf("%w: fields: %w", ErrEncodingColumn, err)
	}
	dirty, err := json.Marshal(meta.DirtyFields)
	if err != nil {
		return nil, fmt.Errorf("%w: dirty_fields: %w", ErrEncodingColumn, err)
	}
	var raw *string
	if len(meta.RawData) > 0 {
		s := string(meta.RawData)
		raw = &s
	}
	var lastSynced *time.Time
	if meta.LastSyncedAt != nil {
		t := meta.LastSyncedAt.UTC()
		lastSynced = &t
	}

	return []any{
		meta.ExternalID,
		meta.ParentExternalID,
		string(meta.SyncState),
		meta.ErrorDetail,
		string(dirty),
		meta.ContentHash,
		string(fields),
		raw,
		lastSynced,
		meta.CreatedAt.UTC(),
		meta.UpdatedAt.UTC(),
	}, nil
}

// scanEntity reads one row in entityColumns order into a fresh entity.
func scanEntity[T models.Entity](row rowScanner, newEntity func() T) (T, error) {
	var zero T
	entity := newEntity()
	meta := entity.Meta()

	var (
		externalID, parentID, errorDetail sql.NullString
		state, contentHash                string
		dirty, fields, raw                []byte
		lastSynced                        sql.NullTime
	)
	err := row.Scan(
		&meta.ID,
		&externalID,
		&parentID,
		&state,
		&errorDetail,
		&dirty,
		&contentHash,
		&fields,
		&raw,
		&lastSynced,
		&meta.CreatedAt,
		&meta.UpdatedAt,
	)
	if err != nil {
		return zero, err
	}

	if externalID.Valid {
		meta.ExternalID = &externalID.String
	}
	if parentID.Valid {
		meta.ParentExternalID = &parentID.String
	}
	if errorDetail.Valid {
		meta.ErrorDetail = &errorDetail.String
	}
	if lastSynced.Valid {
		t := lastSynced.Time.UTC()
		meta.LastSyncedAt = &t
	}
	meta.SyncState = models.SyncState(state)
	meta.ContentHash = contentHash
	meta.CreatedAt = meta.CreatedAt.UTC()
	meta.UpdatedAt = meta.UpdatedAt.UTC()
	if len(raw) > 0 {
		meta.RawData = json.RawMessage(raw)
	}
	if len(dirty) > 0 {
		if err = json.Unmarshal(dirty, &meta.DirtyFields); err != nil {
			return zero, fmt.Errorf("%w: dirty_fields: %w", ErrEncodingColumn, err)
		}
	}
	if err = json.Unmarshal(fields, entity.Payload()); err != nil {
		return zero, fmt.Errorf("%w: fields: %w", ErrEncodingColumn, err)
	}
	return entity, nil
}

func syncRunValues(run models.SyncRun) ([]any, error) {
	messages := run.Messages
	if messages == nil {
		messages = []models.RunMessage{}
	}
	encoded, err := json.Marshal(messages)
	if err != nil {
		return nil, fmt.Errorf("%w: messages: %w", ErrEncodingColumn, err)
	}
	var endedAt *time.Time
	if run.EndedAt != nil {
		t := run.EndedAt.UTC()
		endedAt = &t
	}
	return []any{
		run.ID,
		string(run.Kind),
		string(run.Status),
		run.Scope,
		run.StartedAt.UTC(),
		endedAt,
		run.Fetched,
		run.Created,
		run.Updated,
		run.Errors,
		run.Warnings,
		run.Unseen,
		string(encoded),
		run.FatalError,
	}, nil
}

func scanSyncRun(row rowScanner) (models.SyncRun, error) {
	var (
		run      models.SyncRun
		kind     string
		status   string
		endedAt  sql.NullTime
		messages []byte
	)
	err := row.Scan(
		&run.ID,
		&kind,
		&status,
		&run.Scope,
		&run.StartedAt,
		&endedAt,
		&run.Fetched,
		&run.Created,
		&run.Updated,
		&run.Errors,
		&run.Warnings,
		&run.Unseen,
		&messages,
		&run.FatalError,
	)
	if err != nil {
		return models.SyncRun{}, err
	}
	run.Kind = models.Kind(kind)
	run.Status = models.RunStatus(status)
	run.StartedAt = run.StartedAt.UTC()
	if endedAt.Valid {
		t := endedAt.Time.UTC()
		run.EndedAt = &t
	}
	if len(messages) > 0 {
		if err = json.Unmarshal(messages, &run.Messages); err != nil {
			return models.SyncRun{}, fmt.Errorf("%w: messages: %w", ErrEncodingColumn, err)
		}
	}
	return run, nil
}

// updateEntity builds an UPDATE of every write column for the row id.
func updateEntity(b sq.StatementBuilderType, table string, id int64, values []any) sq.UpdateBuilder {
	u := b.Update(table)
	for i, col := range entityWriteColumns {
		u = u.Set(col, values[i])
	}
	return u.Where(sq.Eq{"id": id})
}
