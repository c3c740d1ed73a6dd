// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package mapper

import (
	"testing"
	"time"

	"github.com/Paalmessenlien/spondadmin/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const sampleEvent = `{
	"id": "EV1",
	"heading": "Training",
	"description": "Bring water",
	"spondType": "RECURRING",
	"startTimestamp": "2025-05-01T17:00:00Z",
	"endTimestamp": "2025-05-01T18:30:00Z",
	"createdTime": "2025-04-01T08:00:00.123Z",
	"inviteTime": "2025-04-02T08:00:00+02:00",
	"cancelled": false,
	"hidden": true,
	"maxAccepted": 20,
	"location": {"address": "Main field", "latitude": 59.91, "longitude": 10.75},
	"recipients": {"group": {"id": "G1"}},
	"responses": {"acceptedIds": ["m1"], "declinedIds": ["m2"], "unansweredIds": ["m3"]}
}`

func TestEventMapper_FromRemote(t *testing.T) {
	e, err := NewEventMapper().FromRemote(models.RemoteRecord(sampleEvent))
	require.NoError(t, err)

	assert.Equal(t, "EV1", e.ExternalIDValue())
	require.NotNil(t, e.ParentExternalID)
	assert.Equal(t, "G1", *e.ParentExternalID)
	assert.Equal(t, "Training", e.Fields.Heading)
	assert.Equal(t, "Bring water", e.Fields.Description)
	assert.Equal(t, "RECURRING", e.Fields.Type)
	assert.Equal(t, time.Date(2025, 5, 1, 17, 0, 0, 0, time.UTC), e.Fields.StartTime)
	assert.Equal(t, time.Date(2025, 5, 1, 18, 30, 0, 0, time.UTC), e.Fields.EndTime)
	require.NotNil(t, e.Fields.InviteTime)
	assert.Equal(t, time.Date(2025, 4, 2, 6, 0, 0, 0, time.UTC), *e.Fields.InviteTime)
	require.NotNil(t, e.Fields.CreatedTime)
	assert.True(t, e.Fields.Hidden)
	assert.False(t, e.Fields.Cancelled)
	assert.Equal(t, 20, e.Fields.MaxAccepted)
	require.NotNil(t, e.Fields.Location)
	assert.Equal(t, "Main field", e.Fields.Location.Address)
	require.NotNil(t, e.Fields.Location.Latitude)
	assert.InDelta(t, 59.91, *e.Fields.Location.Latitude, 1e-9)
	require.NotNil(t, e.Fields.Responses)
	assert.Equal(t, []string{"m1"}, e.Fields.Responses.Accepted)
	assert.JSONEq(t, sampleEvent, string(e.RawData))
	assert.Empty(t, e.SyncState, "state is decided by the reconciler")
}

func TestEventMapper_FromRemote_Defaults(t *testing.T) {
	e, err := NewEventMapper().FromRemote(models.RemoteRecord(`{
		"id": 42, "heading": " Match ",
		"startTimestamp": "2025-05-01T17:00:00Z", "endTimestamp": "2025-05-01T19:00:00Z",
		"createdTime": null
	}`))
	require.NoError(t, err)
	assert.Equal(t, "42", e.ExternalIDValue())
	assert.Equal(t, "Match", e.Fields.Heading)
	assert.Equal(t, defaultEventType, e.Fields.Type)
	assert.Nil(t, e.ParentExternalID)
	assert.Nil(t, e.Fields.CreatedTime)
	assert.Nil(t, e.Fields.Location)
	assert.Nil(t, e.Fields.Responses)
}

func TestEventMapper_FromRemote_FailsClosed(t *testing.T) {
	base := `{"id":"EV1","heading":"h","startTimestamp":"2025-05-01T17:00:00Z","endTimestamp":"2025-05-01T18:00:00Z"}`

	tests := []struct {
		name    string
		payload string
		wantErr error
	}{
		{name: "not json", payload: `{"id":`, wantErr: ErrMalformedPayload},
		{name: "array", payload: `[` + base + `]`, wantErr: ErrMalformedPayload},
		{name: "missing id", payload: `{"heading":"h","startTimestamp":"2025-05-01T17:00:00Z","endTimestamp":"2025-05-01T18:00:00Z"}`, wantErr: ErrMissingExternalID},
		{name: "empty id", payload: `{"id":"","heading":"h","startTimestamp":"2025-05-01T17:00:00Z","endTimestamp":"2025-05-01T18:00:00Z"}`, wantErr: ErrMissingExternalID},
		{name: "blank heading", payload: `{"id":"EV1","heading":"  ","startTimestamp":"2025-05-01T17:00:00Z","endTimestamp":"2025-05-01T18:00:00Z"}`, wantErr: ErrMissingRequiredField},
		{name: "missing start", payload: `{"id":"EV1","heading":"h","endTimestamp":"2025-05-01T18:00:00Z"}`, wantErr: ErrMissingRequiredField},
		{name: "unparsable end", payload: `{"id":"EV1","heading":"h","startTimestamp":"2025-05-01T17:00:00Z","endTimestamp":"tomorrow"}`, wantErr: ErrMalformedTimestamp},
		{name: "numeric start", payload: `{"id":"EV1","heading":"h","startTimestamp":1714582800,"endTimestamp":"2025-05-01T18:00:00Z"}`, wantErr: ErrMalformedTimestamp},
		{name: "unparsable invite time", payload: base[:len(base)-1] + `,"inviteTime":"soon"}`, wantErr: ErrMalformedTimestamp},
		{name: "broken responses", payload: base[:len(base)-1] + `,"responses":{"acceptedIds":"m1"}}`, wantErr: ErrMalformedResponses},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewEventMapper().FromRemote(models.RemoteRecord(tt.payload))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, e)
		})
	}
}

func TestEventMapper_ToRemote(t *testing.T) {
	m := NewEventMapper()
	e, err := m.FromRemote(models.RemoteRecord(sampleEvent))
	require.NoError(t, err)
	e.Fields.AdminNotes = "internal"

	t.Run("subset", func(t *testing.T) {
		body, err := m.ToRemote(e, models.NewFieldSet("heading", "start_time"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"heading":"Training","startTimestamp":"2025-05-01T17:00:00Z"}`, string(body))
	})

	t.Run("all pushable fields", func(t *testing.T) {
		body, err := m.ToRemote(e, nil)
		require.NoError(t, err)
		r := gjson.ParseBytes(body)
		assert.Equal(t, "RECURRING", r.Get("spondType").String())
		assert.Equal(t, "Main field", r.Get("location.address").String())
		assert.Equal(t, int64(20), r.Get("maxAccepted").Int())
		assert.False(t, r.Get("admin_notes").Exists())
		assert.False(t, r.Get("adminNotes").Exists())
		assert.False(t, r.Get("responses").Exists())
		assert.False(t, r.Get("recipients").Exists(), "existing events are not re-addressed")
	})

	t.Run("local only record addresses its group", func(t *testing.T) {
		local := *e
		local.ExternalID = nil
		body, err := m.ToRemote(&local, models.NewFieldSet("heading"))
		require.NoError(t, err)
		assert.Equal(t, "G1", gjson.GetBytes(body, "recipients.group.id").String())
	})

	t.Run("cleared location", func(t *testing.T) {
		cleared := *e
		cleared.Fields.Location = nil
		body, err := m.ToRemote(&cleared, models.NewFieldSet("location"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"location":null}`, string(body))
	})

	t.Run("local field rejected", func(t *testing.T) {
		_, err := m.ToRemote(e, models.NewFieldSet("admin_notes"))
		assert.ErrorIs(t, err, ErrFieldNotPushable)
	})

	t.Run("read-only field rejected", func(t *testing.T) {
		_, err := m.ToRemote(e, models.NewFieldSet("responses"))
		assert.ErrorIs(t, err, ErrFieldNotPushable)
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		_, err := m.ToRemote(e, models.NewFieldSet("colour"))
		assert.ErrorIs(t, err, ErrUnknownField)
	})
}

func TestEventMapper_RoundTrip(t *testing.T) {
	m := NewEventMapper()
	e, err := m.FromRemote(models.RemoteRecord(sampleEvent))
	require.NoError(t, err)

	body, err := m.ToRemote(e, nil)
	require.NoError(t, err)
	withID, err := sjsonSetID(body, "EV1")
	require.NoError(t, err)

	again, err := m.FromRemote(models.RemoteRecord(withID))
	require.NoError(t, err)
	changed, err := DiffPayload(e.Payload(), again.Payload())
	require.NoError(t, err)
	assert.Equal(t, models.NewFieldSet("created_time", "responses"), changed)
}

func TestEventMapper_Validate(t *testing.T) {
	start := time.Date(2025, 5, 1, 17, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		fields  models.EventFields
		wantErr bool
	}{
		{name: "ok", fields: models.EventFields{Heading: "h", StartTime: start, EndTime: start.Add(time.Hour)}},
		{name: "no heading", fields: models.EventFields{StartTime: start, EndTime: start}, wantErr: true},
		{name: "no times", fields: models.EventFields{Heading: "h"}, wantErr: true},
		{name: "inverted", fields: models.EventFields{Heading: "h", StartTime: start, EndTime: start.Add(-time.Minute)}, wantErr: true},
		{name: "negative capacity", fields: models.EventFields{Heading: "h", StartTime: start, EndTime: start, MaxAccepted: -1}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewEventMapper().Validate(&models.Event{Fields: tt.fields})
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidField)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func sjsonSetID(body models.RemotePayload, id string) ([]byte, error) {
	return sjson.SetBytes([]byte(body), "id", id)
}
