// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Paalmessenlien/spondadmin/internal/client"
	"github.com/Paalmessenlien/spondadmin/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI records the requests it receives and answers with canned values.
type fakeAPI struct {
	client.SyncAPI

	pullReq  models.PullRequest
	pullKind models.Kind
	pullRun  models.SyncRunSummary
	pullErr  error

	editPatch map[string]json.RawMessage
	createReq models.CreateRequest

	pushReq models.PushRequest
	pushOut models.PushOutcome

	statuses []models.SyncStatus
}

func (f *fakeAPI) Statuses(context.Context) ([]models.SyncStatus, error) {
	return f.statuses, nil
}

func (f *fakeAPI) Pull(_ context.Context, kind models.Kind, req models.PullRequest) (models.SyncRunSummary, error) {
	f.pullKind, f.pullReq = kind, req
	return f.pullRun, f.pullErr
}

func (f *fakeAPI) Edit(_ context.Context, _ models.Kind, _ int64, patch map[string]json.RawMessage) (json.RawMessage, error) {
	f.editPatch = patch
	return json.RawMessage(`{"id":12,"sync_state":"pending_push"}`), nil
}

func (f *fakeAPI) Create(_ context.Context, _ models.Kind, req models.CreateRequest) (json.RawMessage, error) {
	f.createReq = req
	return json.RawMessage(`{"id":5,"sync_state":"local_only"}`), nil
}

func (f *fakeAPI) Push(_ context.Context, _ models.Kind, req models.PushRequest) (models.PushOutcome, error) {
	f.pushReq = req
	return f.pushOut, nil
}

func execute(t *testing.T, api *fakeAPI, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd("test", func(client.Config) (client.SyncAPI, error) {
		return api, nil
	})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestConnect_EnvAndFlags(t *testing.T) {
	t.Setenv("SYNCCTL_SERVER", "http://sync.internal:9000")
	t.Setenv("SYNCCTL_TOKEN", "from-env")

	var got client.Config
	root := newRootCmd("test", func(cfg client.Config) (client.SyncAPI, error) {
		got = cfg
		return &fakeAPI{}, nil
	})
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"status", "--token", "from-flag"})
	require.NoError(t, root.Execute())

	assert.Equal(t, "http://sync.internal:9000", got.Server)
	assert.Equal(t, "from-flag", got.Token)
	assert.Equal(t, 5*time.Minute, got.Timeout)
}

func TestConnect_BadOutput(t *testing.T) {
	_, err := execute(t, &fakeAPI{}, "status", "-o", "yaml")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestStatusCmd_Table(t *testing.T) {
	next := time.Date(2026, 3, 1, 12, 15, 0, 0, time.UTC)
	api := &fakeAPI{statuses: []models.SyncStatus{
		{Kind: models.KindGroups, Enabled: true, IntervalSeconds: 900, NextRunEstimate: &next},
		{Kind: models.KindEvents},
	}}

	out, err := execute(t, api, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "groups")
	assert.Contains(t, out, "900s")
	assert.Contains(t, out, "events")
}

func TestPullCmd(t *testing.T) {
	api := &fakeAPI{pullRun: models.SyncRunSummary{SyncRun: models.SyncRun{
		ID:     "01RUN",
		Kind:   models.KindEvents,
		Status: models.RunCompleted,
		Errors: 1,
		Messages: []models.RunMessage{
			{ExternalID: "E3", Severity: models.SeverityError, Message: "invalid field value"},
		},
	}}}

	out, err := execute(t, api, "pull", "event", "--group", "G1", "--max", "50")
	require.NoError(t, err)

	assert.Equal(t, models.KindEvents, api.pullKind)
	assert.Equal(t, models.PullRequest{Scope: models.ScopeFilter{GroupID: "G1"}, MaxRecords: 50}, api.pullReq)
	assert.Contains(t, out, "01RUN")
	assert.Contains(t, out, "E3")
	assert.Contains(t, out, "invalid field value")
}

func TestPullCmd_FailedRunPrintsRun(t *testing.T) {
	failed := models.SyncRunSummary{SyncRun: models.SyncRun{ID: "01FAIL", Status: models.RunFailed, FatalError: "remote service unavailable"}}
	api := &fakeAPI{pullErr: &client.APIError{Status: 502, Message: "remote service unavailable", Run: &failed}}

	out, err := execute(t, api, "pull", "events")

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, out, "01FAIL")
	assert.Contains(t, out, "fatal: remote service unavailable")
}

func TestPullCmd_UnknownKind(t *testing.T) {
	_, err := execute(t, &fakeAPI{}, "pull", "widgets")
	assert.ErrorIs(t, err, models.ErrUnknownKind)
}

func TestRecordsEditCmd(t *testing.T) {
	api := &fakeAPI{}

	out, err := execute(t, api, "records", "edit", "events", "12",
		"--data", `{"description":"Bring water"}`,
		"--set", "heading=Renamed",
		"--set", "max_accepted=18",
	)
	require.NoError(t, err)

	require.Len(t, api.editPatch, 3)
	assert.JSONEq(t, `"Renamed"`, string(api.editPatch["heading"]))
	assert.JSONEq(t, `18`, string(api.editPatch["max_accepted"]))
	assert.JSONEq(t, `"Bring water"`, string(api.editPatch["description"]))
	assert.Contains(t, out, "pending_push")
}

func TestRecordsEditCmd_Rejected(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "no changes", args: []string{"records", "edit", "events", "12"}, want: errNoChanges.Error()},
		{name: "bad id", args: []string{"records", "edit", "events", "x", "--set", "heading=a"}, want: errInvalidRecord.Error()},
		{name: "data not an object", args: []string{"records", "edit", "events", "1", "--data", "[1]"}, want: "JSON object"},
		{name: "set without value", args: []string{"records", "edit", "events", "1", "--set", "heading"}, want: "field=value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, &fakeAPI{}, tt.args...)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestRecordsCreateCmd(t *testing.T) {
	api := &fakeAPI{}

	_, err := execute(t, api, "records", "create", "members", "--group", "G1", "--set", "first_name=Ada")
	require.NoError(t, err)

	assert.Equal(t, "G1", api.createReq.ParentExternalID)
	assert.JSONEq(t, `"Ada"`, string(api.createReq.Fields["first_name"]))
}

func TestPushCmd(t *testing.T) {
	tests := []struct {
		name    string
		outcome models.PushOutcome
		wantErr error
	}{
		{name: "pushed", outcome: models.PushOutcome{ID: 12, ExternalID: "E1", State: models.StateRemoteSynced}},
		{name: "rejected", outcome: models.PushOutcome{ID: 12, State: models.StatePushError, ErrorDetail: "remote rejected request"}, wantErr: errPushRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{pushOut: tt.outcome}

			out, err := execute(t, api, "push", "events", "12", "--field", "heading,description", "-o", "json")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, models.PushRequest{ID: 12, Fields: models.NewFieldSet("description", "heading")}, api.pushReq)
			assert.Contains(t, out, string(tt.outcome.State))
		})
	}
}
