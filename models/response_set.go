// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Answer categories of a ResponseSet.
const (
	AnswerAccepted   = "accepted"
	AnswerDeclined   = "declined"
	AnswerUnanswered = "unanswered"
)

// ResponseSet is the normalised attendance of an event. Accepted, Declined
// and Unanswered partition the invited population; every participant in
// Answers appears in exactly one of them.
type ResponseSet struct {
	Accepted   []string            `json:"accepted"`
	Declined   []string            `json:"declined"`
	Unanswered []string            `json:"unanswered"`
	Answers    []ParticipantAnswer `json:"answers"`
}

// ParticipantAnswer is one participant's answer as reported upstream.
// Answer keeps the upstream wording (e.g. "waitinglistavailable"),
// Category the partition it was sorted into.
type ParticipantAnswer struct {
	ParticipantID string `json:"participant_id"`
	Answer        string `json:"answer"`
	Category      string `json:"category"`
}

// Invited returns the number of distinct participants.
func (r *ResponseSet) Invited() int {
	if r == nil {
		return 0
	}
	return len(r.Accepted) + len(r.Declined) + len(r.Unanswered)
}
