// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Paalmessenlien/spondadmin/internal/adapter"
	"github.com/Paalmessenlien/spondadmin/internal/logger"
	"github.com/Paalmessenlien/spondadmin/internal/mapper"
	"github.com/Paalmessenlien/spondadmin/internal/mock"
	"github.com/Paalmessenlien/spondadmin/internal/store"
	"github.com/Paalmessenlien/spondadmin/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	runStart = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	passTime = runStart.Add(time.Second)
)

type eventFixture struct {
	remote     *mock.MockRemoteAdapter
	repo       *memRepo[*models.Event]
	runs       *memRunRepo
	history    *HistoryRecorder
	reconciler *Reconciler[*models.Event]
	gateway    *PushGateway[*models.Event]
	editor     *LocalEditor[*models.Event]
}

func newEventFixture(t *testing.T) *eventFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &eventFixture{
		remote: mock.NewMockRemoteAdapter(ctrl),
		repo:   newMemRepo(func() *models.Event { return &models.Event{} }),
		runs:   newMemRunRepo(),
	}
	f.history = NewHistoryRecorder(f.runs, logger.Nop())
	f.history.now = func() time.Time { return runStart }

	m := mapper.NewEventMapper()
	f.reconciler = NewReconciler[*models.Event](m, f.repo, f.remote, f.history, 10, logger.Nop())
	f.reconciler.now = func() time.Time { return passTime }
	f.gateway = NewPushGateway[*models.Event](m, f.repo, f.remote, logger.Nop())
	f.gateway.now = func() time.Time { return passTime }
	f.editor = NewLocalEditor[*models.Event](m, f.repo, logger.Nop())
	f.editor.now = func() time.Time { return passTime }
	return f
}

func remoteEvent(id, heading, start string) models.RemoteRecord {
	return models.RemoteRecord(fmt.Sprintf(`{
		"id": %q,
		"heading": %q,
		"startTimestamp": %q,
		"endTimestamp": "2026-03-05T19:00:00Z",
		"recipients": {"group": {"id": "G1"}}
	}`, id, heading, start))
}

func page(next string, recs ...models.RemoteRecord) models.RemotePage {
	return models.RemotePage{Records: recs, NextCursor: next}
}

func (f *eventFixture) event(t *testing.T, externalID string) *models.Event {
	t.Helper()
	e, err := f.repo.GetByExternalID(context.Background(), externalID)
	require.NoError(t, err)
	return e
}

func TestReconciler_Pull_MalformedRecordIsSkipped(t *testing.T) {
	f := newEventFixture(t)
	f.remote.EXPECT().
		FetchPage(gomock.Any(), models.KindEvents, models.PageRequest{PageSize: 10}).
		Return(page("",
			remoteEvent("E1", "Training", "2026-03-05T17:00:00Z"),
			remoteEvent("E2", "Match", "not a timestamp"),
			remoteEvent("E3", "Meeting", "2026-03-05T18:00:00Z"),
		), nil)

	run, err := f.reconciler.Pull(context.Background(), models.PullRequest{})
	require.NoError(t, err)

	assert.Equal(t, models.RunCompleted, run.Status)
	assert.Equal(t, 3, run.Fetched)
	assert.Equal(t, 2, run.Created)
	assert.Equal(t, 0, run.Updated)
	assert.Equal(t, 1, run.Errors)
	require.Len(t, run.Messages, 1)
	assert.Equal(t, "E2", run.Messages[0].ExternalID)
	assert.Equal(t, models.SeverityError, run.Messages[0].Severity)
	assert.Contains(t, run.Messages[0].Message, mapper.ErrMalformedTimestamp.Error())

	for _, id := range []string{"E1", "E3"} {
		e := f.event(t, id)
		assert.Equal(t, models.StateRemoteSynced, e.SyncState)
		assert.Equal(t, passTime, e.CreatedAt)
		assert.Equal(t, passTime, e.UpdatedAt)
		require.NotNil(t, e.LastSyncedAt)
		require.NotNil(t, e.ParentExternalID)
		assert.Equal(t, "G1", *e.ParentExternalID)
		assert.NotEmpty(t, e.ContentHash)
	}
	_, err = f.repo.GetByExternalID(context.Background(), "E2")
	assert.ErrorIs(t, err, store.ErrEntityNotFound)

	stored := f.runs.get(run.ID)
	assert.Equal(t, run, stored, "the ledger holds the finalized totals")
	require.NotNil(t, stored.EndedAt)
	assert.Equal(t, time.Duration(0), stored.Duration())
}

func TestReconciler_Pull_Idempotent(t *testing.T) {
	f := newEventFixture(t)
	recs := []models.RemoteRecord{
		remoteEvent("E1", "Training", "2026-03-05T17:00:00Z"),
		remoteEvent("E2", "Match", "2026-03-05T18:00:00Z"),
	}
	f.remote.EXPECT().FetchPage(gomock.Any(), models.KindEvents, gomock.Any()).
		Return(page("", recs...), nil).Times(2)

	first, err := f.reconciler.Pull(context.Background(), models.PullRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, first.Created)
	before := []*models.Event{f.event(t, "E1"), f.event(t, "E2")}

	second, err := f.reconciler.Pull(context.Background(), models.PullRequest{})
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 2, second.Updated)
	assert.Zero(t, second.Warnings)

	after := []*models.Event{f.event(t, "E1"), f.event(t, "E2")}
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("second pass changed records (-first +second):\n%s", diff)
	}
	assert.Equal(t, 2, f.repo.count())
}

func TestReconciler_Pull_KeepsPendingLocalEdit(t *testing.T) {
	f := newEventFixture(t)
	original := remoteEvent("E1", "Training", "2026-03-05T17:00:00Z")
	changed := models.RemoteRecord(`{
		"id": "E1",
		"heading": "Training moved",
		"description": "New pitch",
		"startTimestamp": "2026-03-05T17:00:00Z",
		"endTimestamp": "2026-03-05T19:00:00Z"
	}`)
	gomock.InOrder(
		f.remote.EXPECT().FetchPage(gomock.Any(), models.KindEvents, gomock.Any()).Return(page("", original), nil),
		f.remote.EXPECT().FetchPage(gomock.Any(), models.KindEvents, gomock.Any()).Return(page("", changed), nil),
	)

	_, err := f.reconciler.Pull(context.Background(), models.PullRequest{})
	require.NoError(t, err)

	id := f.event(t, "E1").ID
	_, err = f.editor.Edit(context.Background(), id, patch(`{"heading": "Local heading", "admin_notes": "call coach"}`))
	require.NoError(t, err)

	run, err := f.reconciler.Pull(context.Background(), models.PullRequest{})
	require.NoError(t, err)

	e := f.event(t, "E1")
	assert.Equal(t, models.StatePendingPush, e.SyncState)
	assert.Equal(t, "Local heading", e.Fields.Heading, "uncommitted edit survives the pull")
	assert.Equal(t, "New pitch", e.Fields.Description, "other fields follow the remote")
	assert.Equal(t, "call coach", e.Fields.AdminNotes, "local-only field is never overwritten")
	assert.Equal(t, models.NewFieldSet("heading"), e.DirtyFields)
	require.NotNil(t, e.ParentExternalID, "parent is kept when the remote omits it")
	assert.Equal(t, "G1", *e.ParentExternalID)

	assert.Equal(t, 1, run.Updated)
	assert.Equal(t, 0, run.Errors)
	assert.Equal(t, 1, run.Warnings)
	require.Len(t, run.Messages, 1)
	assert.Equal(t, models.SeverityWarning, run.Messages[0].Severity)
	assert.Contains(t, run.Messages[0].Message, "heading")
}

func TestReconciler_Pull_RemoteSyncedIsOverwritten(t *testing.T) {
	f := newEventFixture(t)
	seeded := &models.Event{Fields: models.EventFields{Heading: "Stale", AdminNotes: "keep me"}}
	seeded.ExternalID = models.StringPtr("E1")
	seeded.SyncState = models.StateRemoteSynced
	seeded.CreatedAt = runStart.Add(-time.Hour)
	f.repo.put(seeded)

	f.remote.EXPECT().FetchPage(gomock.Any(), models.KindEvents, gomock.Any()).
		Return(page("", remoteEvent("E1", "Fresh", "2026-03-05T17:00:00Z")), nil)

	run, err := f.reconciler.Pull(context.Background(), models.PullRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, run.Updated)
	assert.Zero(t, run.Warnings)

	e := f.event(t, "E1")
	assert.Equal(t, "Fresh", e.Fields.Heading)
	assert.Equal(t, "keep me", e.Fields.AdminNotes)
	assert.Equal(t, runStart.Add(-time.Hour), e.CreatedAt)
	assert.Equal(t, passTime, e.UpdatedAt)
}

func TestReconciler_Pull_PagesAndCap(t *testing.T) {
	f := newEventFixture(t)
	gomock.InOrder(
		f.remote.EXPECT().
			FetchPage(gomock.Any(), models.KindEvents, models.PageRequest{PageSize: 3, Scope: models.ScopeFilter{GroupID: "G1"}}).
			Return(page("2",
				remoteEvent("E1", "One", "2026-03-05T17:00:00Z"),
				remoteEvent("E2", "Two", "2026-03-05T17:00:00Z"),
			), nil),
		f.remote.EXPECT().
			FetchPage(gomock.Any(), models.KindEvents, models.PageRequest{Cursor: "2", PageSize: 1, Scope: models.ScopeFilter{GroupID: "G1"}}).
			Return(page("4",
				remoteEvent("E3", "Three", "2026-03-05T17:00:00Z"),
				remoteEvent("E4", "Four", "2026-03-05T17:00:00Z"),
			), nil),
	)

	run, err := f.reconciler.Pull(context.Background(), models.PullRequest{
		Scope:      models.ScopeFilter{GroupID: "G1"},
		MaxRecords: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, run.Fetched)
	assert.Equal(t, 3, run.Created)
	assert.Equal(t, "group:G1", run.Scope)
	assert.Equal(t, 3, f.repo.count())
}

func TestReconciler_Pull_DuplicateWithinPass(t *testing.T) {
	f := newEventFixture(t)
	rec := remoteEvent("E1", "Training", "2026-03-05T17:00:00Z")
	f.remote.EXPECT().FetchPage(gomock.Any(), models.KindEvents, gomock.Any()).Return(page("", rec, rec), nil)

	run, err := f.reconciler.Pull(context.Background(), models.PullRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, run.Fetched)
	assert.Equal(t, 1, run.Created)
	assert.Equal(t, 0, run.Updated)
	assert.Equal(t, 1, f.repo.count())
}

func TestReconciler_Pull_CountsUnseen(t *testing.T) {
	f := newEventFixture(t)
	synced := runStart.Add(-24 * time.Hour)
	gone := &models.Event{Fields: models.EventFields{Heading: "Deleted upstream"}}
	gone.ExternalID = models.StringPtr("OLD")
	gone.SyncState = models.StateRemoteSynced
	gone.LastSyncedAt = &synced
	f.repo.put(gone)

	local := &models.Event{Fields: models.EventFields{Heading: "Draft"}}
	local.SyncState = models.StateLocalOnly
	f.repo.put(local)

	f.remote.EXPECT().FetchPage(gomock.Any(), models.KindEvents, gomock.Any()).
		Return(page("", remoteEvent("E1", "Training", "2026-03-05T17:00:00Z")), nil)

	run, err := f.reconciler.Pull(context.Background(), models.PullRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, run.Unseen)

	kept := f.event(t, "OLD")
	assert.Equal(t, "Deleted upstream", kept.Fields.Heading, "missing remote records are not removed")
	assert.Equal(t, models.StateRemoteSynced, kept.SyncState)
}

func TestReconciler_Pull_FetchFailureIsFatal(t *testing.T) {
	f := newEventFixture(t)
	gomock.InOrder(
		f.remote.EXPECT().FetchPage(gomock.Any(), models.KindEvents, gomock.Any()).
			Return(page("10", remoteEvent("E1", "Training", "2026-03-05T17:00:00Z")), nil),
		f.remote.EXPECT().FetchPage(gomock.Any(), models.KindEvents, gomock.Any()).
			Return(models.RemotePage{}, adapter.ErrAuthExpired),
	)

	run, err := f.reconciler.Pull(context.Background(), models.PullRequest{})
	require.ErrorIs(t, err, adapter.ErrAuthExpired)

	assert.Equal(t, models.RunFailed, run.Status)
	assert.Contains(t, run.FatalError, adapter.ErrAuthExpired.Error())
	assert.Equal(t, 1, run.Created)
	assert.Equal(t, run, f.runs.get(run.ID))
	assert.Equal(t, models.StateRemoteSynced, f.event(t, "E1").SyncState, "committed upserts are kept")
}

func TestReconciler_Pull_StoreFailureIsFatal(t *testing.T) {
	f := newEventFixture(t)
	f.repo.upsertErr = store.ErrExecutingStatement
	f.remote.EXPECT().FetchPage(gomock.Any(), models.KindEvents, gomock.Any()).
		Return(page("", remoteEvent("E1", "Training", "2026-03-05T17:00:00Z")), nil)

	run, err := f.reconciler.Pull(context.Background(), models.PullRequest{})
	require.ErrorIs(t, err, store.ErrExecutingStatement)
	assert.Equal(t, models.RunFailed, run.Status)
}

func TestReconciler_Pull_StuckCursor(t *testing.T) {
	f := newEventFixture(t)
	gomock.InOrder(
		f.remote.EXPECT().FetchPage(gomock.Any(), models.KindEvents, gomock.Any()).Return(page("5"), nil),
		f.remote.EXPECT().FetchPage(gomock.Any(), models.KindEvents, gomock.Any()).Return(page("5"), nil),
	)

	_, err := f.reconciler.Pull(context.Background(), models.PullRequest{})
	assert.ErrorIs(t, err, adapter.ErrMalformedPage)
}

func TestReconciler_Pull_PanicFailsRun(t *testing.T) {
	f := newEventFixture(t)
	f.remote.EXPECT().FetchPage(gomock.Any(), models.KindEvents, gomock.Any()).
		DoAndReturn(func(context.Context, models.Kind, models.PageRequest) (models.RemotePage, error) {
			panic("boom")
		})

	run, err := f.reconciler.Pull(context.Background(), models.PullRequest{})
	require.ErrorIs(t, err, ErrPassPanicked)
	assert.Equal(t, models.RunFailed, run.Status)
	assert.Contains(t, f.runs.get(run.ID).FatalError, "boom")
}

func TestReconciler_Pull_HistoryUnavailable(t *testing.T) {
	f := newEventFixture(t)
	f.runs.createErr = errors.New("disk full")

	_, err := f.reconciler.Pull(context.Background(), models.PullRequest{})
	assert.ErrorContains(t, err, "disk full")
}

func TestReconciler_Pull_MembersInheritScope(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mock.NewMockRemoteAdapter(ctrl)
	repo := newMemRepo(func() *models.Member { return &models.Member{} })
	history := NewHistoryRecorder(newMemRunRepo(), logger.Nop())
	r := NewReconciler[*models.Member](mapper.NewMemberMapper(), repo, remote, history, 0, logger.Nop())

	remote.EXPECT().
		FetchPage(gomock.Any(), models.KindMembers, models.PageRequest{PageSize: defaultPageSize, Scope: models.ScopeFilter{GroupID: "G7"}}).
		Return(page("", models.RemoteRecord(`{"id": "M1", "firstName": "Ada", "lastName": "Lovelace"}`)), nil)

	run, err := r.Pull(context.Background(), models.PullRequest{Scope: models.ScopeFilter{GroupID: "G7"}})
	require.NoError(t, err)
	assert.Equal(t, 1, run.Created)

	m, err := repo.GetByExternalID(context.Background(), "M1")
	require.NoError(t, err)
	require.NotNil(t, m.ParentExternalID)
	assert.Equal(t, "G7", *m.ParentExternalID)
}

func TestReconciler_Pull_ScopedGroupsHaveNoParent(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mock.NewMockRemoteAdapter(ctrl)
	repo := newMemRepo(func() *models.Group { return &models.Group{} })
	history := NewHistoryRecorder(newMemRunRepo(), logger.Nop())
	r := NewReconciler[*models.Group](mapper.NewGroupMapper(), repo, remote, history, 0, logger.Nop())

	remote.EXPECT().
		FetchPage(gomock.Any(), models.KindGroups, models.PageRequest{PageSize: defaultPageSize, Scope: models.ScopeFilter{GroupID: "G7"}}).
		Return(page("", models.RemoteRecord(`{"id": "G7", "name": "Seniors"}`)), nil)

	run, err := r.Pull(context.Background(), models.PullRequest{Scope: models.ScopeFilter{GroupID: "G7"}})
	require.NoError(t, err)
	assert.Equal(t, 1, run.Created)

	g, err := repo.GetByExternalID(context.Background(), "G7")
	require.NoError(t, err)
	assert.Nil(t, g.ParentExternalID)
}
