// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package mapper

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/Paalmessenlien/spondadmin/models"
	"github.com/tidwall/gjson"
)

// responseShape is one upstream representation of event attendance. Both
// shapes are reduced to a flat answer list before partitioning, so nothing
// shape-specific leaves this file.
type responseShape interface {
	answers() ([]models.ParticipantAnswer, error)
}

// flatResponses is the id-list shape:
//
//	{"acceptedIds": ["a"], "declinedIds": ["b"], "unansweredIds": [], ...}
//
// The snake_case *_uids keys written by older dashboards are read as well.
type flatResponses struct {
	r gjson.Result
}

// flatAnswerKeys maps id-list keys to the answer they stand for.
var flatAnswerKeys = []struct {
	key    string
	answer string
}{
	{"acceptedIds", "accepted"},
	{"declinedIds", "declined"},
	{"unansweredIds", "unanswered"},
	{"waitinglistIds", "waitinglistavailable"},
	{"unconfirmedIds", "unconfirmed"},
	{"accepted_uids", "accepted"},
	{"declined_uids", "declined"},
	{"unanswered_uids", "unanswered"},
	{"waiting_list_uids", "waitinglistavailable"},
	{"unconfirmed_uids", "unconfirmed"},
}

func (f flatResponses) answers() ([]models.ParticipantAnswer, error) {
	out := make([]models.ParticipantAnswer, 0)
	for _, k := range flatAnswerKeys {
		v := f.r.Get(k.key)
		if !v.Exists() || v.Type == gjson.Null {
			continue
		}
		if !v.IsArray() {
			return nil, fmt.Errorf("%w: %s is not an array", ErrMalformedResponses, k.key)
		}
		for _, id := range idSet(v) {
			out = append(out, models.ParticipantAnswer{ParticipantID: id, Answer: k.answer})
		}
	}
	return out, nil
}

// nestedResponses is the per-response-object shape:
//
//	{"responses": [{"answer": "accepted", "profile": {"id": "a"}}, ...]}
type nestedResponses struct {
	items gjson.Result
}

func (n nestedResponses) answers() ([]models.ParticipantAnswer, error) {
	out := make([]models.ParticipantAnswer, 0)
	var err error
	n.items.ForEach(func(_, item gjson.Result) bool {
		id, idErr := externalID(item, "profile.id", "id", "memberId")
		if idErr != nil {
			err = fmt.Errorf("%w: response without participant id", ErrMalformedResponses)
			return false
		}
		out = append(out, models.ParticipantAnswer{
			ParticipantID: id,
			Answer:        strings.ToLower(strings.TrimSpace(item.Get("answer").String())),
		})
		return true
	})
	return out, err
}

// responseShapes detects which shapes a payload carries. Payloads seen in
// the wild carry either one or both.
func responseShapes(r gjson.Result) ([]responseShape, error) {
	if !r.IsObject() {
		return nil, fmt.Errorf("%w: expected an object", ErrMalformedResponses)
	}
	shapes := []responseShape{flatResponses{r: r}}
	if items := r.Get("responses"); items.Exists() && items.Type != gjson.Null {
		if !items.IsArray() {
			return nil, fmt.Errorf("%w: responses is not an array", ErrMalformedResponses)
		}
		shapes = append(shapes, nestedResponses{items: items})
	}
	return shapes, nil
}

// answerCategory sorts an upstream answer into a ResponseSet partition.
// Waiting-list, unconfirmed and unrecognised answers count as unanswered.
func answerCategory(answer string) string {
	switch answer {
	case models.AnswerAccepted:
		return models.AnswerAccepted
	case models.AnswerDeclined:
		return models.AnswerDeclined
	}
	return models.AnswerUnanswered
}

func categoryRank(category string) int {
	switch category {
	case models.AnswerAccepted:
		return 0
	case models.AnswerDeclined:
		return 1
	}
	return 2
}

// NormalizeResponses turns an event's response payload into a ResponseSet.
// A participant reported with several answers is placed in one category
// only, with accepted taking precedence over declined over unanswered, so
// the three lists always partition the invited population.
func NormalizeResponses(r gjson.Result) (*models.ResponseSet, error) {
	if !r.Exists() || r.Type == gjson.Null {
		return nil, nil
	}
	shapes, err := responseShapes(r)
	if err != nil {
		return nil, err
	}

	best := make(map[string]models.ParticipantAnswer)
	for _, shape := range shapes {
		answers, err := shape.answers()
		if err != nil {
			return nil, err
		}
		for _, a := range answers {
			a.Category = answerCategory(a.Answer)
			prev, seen := best[a.ParticipantID]
			if !seen || categoryRank(a.Category) < categoryRank(prev.Category) {
				best[a.ParticipantID] = a
			}
		}
	}

	set := &models.ResponseSet{
		Accepted:   []string{},
		Declined:   []string{},
		Unanswered: []string{},
		Answers:    make([]models.ParticipantAnswer, 0, len(best)),
	}
	for _, a := range best {
		set.Answers = append(set.Answers, a)
	}
	slices.SortFunc(set.Answers, func(a, b models.ParticipantAnswer) int {
		return cmp.Compare(a.ParticipantID, b.ParticipantID)
	})
	for _, a := range set.Answers {
		switch a.Category {
		case models.AnswerAccepted:
			set.Accepted = append(set.Accepted, a.ParticipantID)
		case models.AnswerDeclined:
			set.Declined = append(set.Declined, a.ParticipantID)
		default:
			set.Unanswered = append(set.Unanswered, a.ParticipantID)
		}
	}
	return set, nil
}
