// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Paalmessenlien/spondadmin/internal/logger"
	"github.com/Paalmessenlien/spondadmin/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSyncRunRepo(t *testing.T) (SyncRunRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newTestDB(t, DialectPostgres)
	return NewSyncRunRepository(db, logger.Nop()), mock
}

func syncRunRow(id string, endedAt any, messages string) []driver.Value {
	return []driver.Value{
		id, "events", "completed", "", testNow, endedAt,
		3, 2, 0, 1, 0, 0, []byte(messages), "",
	}
}

func TestSyncRunRepository_Create(t *testing.T) {
	repo, mock := newTestSyncRunRepo(t)

	run := models.SyncRun{ID: "01HZX", Kind: models.KindEvents, Status: models.RunRunning, StartedAt: testNow}
	mock.ExpectExec(`INSERT INTO sync_runs \(id,kind,status,scope,started_at,ended_at,fetched,created,updated,errors,warnings,unseen,messages,fatal_error\)`).
		WithArgs("01HZX", "events", "running", "", testNow, nil, 0, 0, 0, 0, 0, 0, "[]", "").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), run))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncRunRepository_Finalize(t *testing.T) {
	repo, mock := newTestSyncRunRepo(t)
	ended := testNow.Add(2 * time.Second)
	run := models.SyncRun{ID: "01HZX", Kind: models.KindEvents, Status: models.RunCompleted, StartedAt: testNow, EndedAt: &ended}

	t.Run("open run", func(t *testing.T) {
		mock.ExpectExec(`UPDATE sync_runs SET (.+) WHERE ended_at IS NULL AND id = \$13`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		require.NoError(t, repo.Finalize(context.Background(), run))
	})

	t.Run("already finalized", func(t *testing.T) {
		mock.ExpectExec(`UPDATE sync_runs SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		err := repo.Finalize(context.Background(), run)
		assert.ErrorIs(t, err, ErrSyncRunFinalized)
	})

	t.Run("driver error", func(t *testing.T) {
		mock.ExpectExec(`UPDATE sync_runs SET`).
			WillReturnError(errors.New("disk full"))
		err := repo.Finalize(context.Background(), run)
		assert.ErrorIs(t, err, ErrExecutingStatement)
	})
}

func TestSyncRunRepository_Latest(t *testing.T) {
	repo, mock := newTestSyncRunRepo(t)

	ended := testNow.Add(time.Second)
	mock.ExpectQuery(`SELECT (.+) FROM sync_runs WHERE kind = \$1 ORDER BY started_at DESC, id DESC LIMIT 1`).
		WithArgs("events").
		WillReturnRows(sqlmock.NewRows(syncRunColumns).
			AddRow(syncRunRow("01HZX", ended, `[{"external_id":"ev-3","severity":"error","message":"missing heading"}]`)...))

	run, err := repo.Latest(context.Background(), models.KindEvents)
	require.NoError(t, err)
	assert.Equal(t, "01HZX", run.ID)
	assert.Equal(t, models.RunCompleted, run.Status)
	assert.Equal(t, 3, run.Fetched)
	assert.Equal(t, 1, run.Errors)
	require.True(t, run.Finalized())
	assert.Equal(t, time.Second, run.Duration())
	require.Len(t, run.Messages, 1)
	assert.Equal(t, models.SeverityError, run.Messages[0].Severity)
	assert.Equal(t, "ev-3", run.Messages[0].ExternalID)
}

func TestSyncRunRepository_Latest_None(t *testing.T) {
	repo, mock := newTestSyncRunRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM sync_runs`).
		WillReturnRows(sqlmock.NewRows(syncRunColumns))

	_, err := repo.Latest(context.Background(), models.KindGroups)
	assert.ErrorIs(t, err, ErrSyncRunNotFound)
}

func TestSyncRunRepository_List(t *testing.T) {
	repo, mock := newTestSyncRunRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM sync_runs WHERE kind = \$1 ORDER BY started_at DESC, id DESC LIMIT 5`).
		WithArgs("events").
		WillReturnRows(sqlmock.NewRows(syncRunColumns).
			AddRow(syncRunRow("02", testNow, `[]`)...).
			AddRow(syncRunRow("01", nil, `[]`)...))

	runs, err := repo.List(context.Background(), models.KindEvents, 5)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "02", runs[0].ID)
	assert.False(t, runs[1].Finalized())
}

func TestSyncRunRepository_AbandonRunning(t *testing.T) {
	repo, mock := newTestSyncRunRepo(t)

	mock.ExpectExec(`UPDATE sync_runs SET status = \$1, ended_at = \$2, fatal_error = \$3 WHERE ended_at IS NULL`).
		WithArgs("failed", testNow, "interrupted by restart").
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := repo.AbandonRunning(context.Background(), testNow, "interrupted by restart")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
