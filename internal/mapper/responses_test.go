// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package mapper

import (
	"slices"
	"testing"

	"github.com/Paalmessenlien/spondadmin/models"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestNormalizeResponses_ShapesAgree(t *testing.T) {
	flat := `{
		"acceptedIds": ["m1", "m4"],
		"declinedIds": ["m2"],
		"unansweredIds": ["m3"],
		"waitinglistIds": ["m5"],
		"unconfirmedIds": ["m6"]
	}`
	nested := `{"responses": [
		{"answer": "accepted", "profile": {"id": "m4"}},
		{"answer": "declined", "profile": {"id": "m2"}},
		{"answer": "unanswered", "profile": {"id": "m3"}},
		{"answer": "ACCEPTED", "profile": {"id": "m1"}},
		{"answer": "waitinglistavailable", "profile": {"id": "m5"}},
		{"answer": "unconfirmed", "profile": {"id": "m6"}}
	]}`
	legacy := `{
		"accepted_uids": ["m1", "m4"],
		"declined_uids": ["m2"],
		"unanswered_uids": ["m3"],
		"waiting_list_uids": ["m5"],
		"unconfirmed_uids": ["m6"]
	}`

	fromFlat, err := NormalizeResponses(gjson.Parse(flat))
	require.NoError(t, err)
	fromNested, err := NormalizeResponses(gjson.Parse(nested))
	require.NoError(t, err)
	fromLegacy, err := NormalizeResponses(gjson.Parse(legacy))
	require.NoError(t, err)

	want := &models.ResponseSet{
		Accepted:   []string{"m1", "m4"},
		Declined:   []string{"m2"},
		Unanswered: []string{"m3", "m5", "m6"},
	}
	ignoreAnswers := cmpopts.IgnoreFields(models.ResponseSet{}, "Answers")
	for name, got := range map[string]*models.ResponseSet{"flat": fromFlat, "nested": fromNested, "legacy": fromLegacy} {
		if diff := cmp.Diff(want, got, ignoreAnswers); diff != "" {
			t.Errorf("%s shape mismatch (-want +got):\n%s", name, diff)
		}
	}
	assert.Len(t, fromNested.Answers, 6)
}

func TestNormalizeResponses_Partition(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		invited int
	}{
		{
			name:    "participant in two flat lists",
			payload: `{"acceptedIds": ["a"], "declinedIds": ["a", "b"], "unansweredIds": ["b", "c"]}`,
			invited: 3,
		},
		{
			name: "both shapes at once",
			payload: `{"declinedIds": ["a"], "responses": [
				{"answer": "accepted", "profile": {"id": "a"}},
				{"answer": "maybe", "profile": {"id": "d"}}
			]}`,
			invited: 2,
		},
		{
			name:    "duplicate in one list",
			payload: `{"acceptedIds": ["a", "a", "a"]}`,
			invited: 1,
		},
		{
			name:    "numeric ids in nested shape",
			payload: `{"responses": [{"answer": "declined", "id": 17}, {"answer": "accepted", "memberId": "x"}]}`,
			invited: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := NormalizeResponses(gjson.Parse(tt.payload))
			require.NoError(t, err)
			require.NotNil(t, set)

			seen := make(map[string]int)
			for _, list := range [][]string{set.Accepted, set.Declined, set.Unanswered} {
				for _, id := range list {
					seen[id]++
				}
			}
			for id, n := range seen {
				assert.Equal(t, 1, n, "participant %s in %d categories", id, n)
			}
			assert.Equal(t, tt.invited, set.Invited())
			assert.Len(t, set.Answers, tt.invited)
			for _, a := range set.Answers {
				_, ok := seen[a.ParticipantID]
				assert.True(t, ok, "answer for %s not partitioned", a.ParticipantID)
			}
		})
	}
}

func TestNormalizeResponses_Precedence(t *testing.T) {
	set, err := NormalizeResponses(gjson.Parse(`{"unansweredIds": ["a"], "declinedIds": ["a"], "acceptedIds": ["a"]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, set.Accepted)
	assert.Empty(t, set.Declined)
	assert.Empty(t, set.Unanswered)
}

func TestNormalizeResponses_Absent(t *testing.T) {
	set, err := NormalizeResponses(gjson.Parse(`{"heading": "x"}`).Get("responses"))
	require.NoError(t, err)
	assert.Nil(t, set)

	set, err = NormalizeResponses(gjson.Parse(`{"responses": null}`).Get("responses"))
	require.NoError(t, err)
	assert.Nil(t, set)
}

func TestNormalizeResponses_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "not an object", payload: `["a", "b"]`},
		{name: "id list is a string", payload: `{"acceptedIds": "a"}`},
		{name: "responses is an object", payload: `{"responses": {"answer": "accepted"}}`},
		{name: "answer without participant", payload: `{"responses": [{"answer": "accepted"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeResponses(gjson.Parse(tt.payload))
			assert.ErrorIs(t, err, ErrMalformedResponses)
		})
	}
}

func TestNormalizeResponses_SortedOutput(t *testing.T) {
	set, err := NormalizeResponses(gjson.Parse(`{"acceptedIds": ["z", "b", "m"]}`))
	require.NoError(t, err)
	assert.True(t, slices.IsSorted(set.Accepted))
	assert.Equal(t, models.AnswerAccepted, set.Answers[0].Category)
}
