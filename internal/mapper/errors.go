// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package mapper

import "errors"

var (
	// ErrMalformedPayload is returned when a remote record is not a JSON object.
	ErrMalformedPayload = errors.New("malformed remote payload")

	// ErrMissingExternalID is returned when a remote record carries no id.
	ErrMissingExternalID = errors.New("remote record has no external id")

	// ErrMissingRequiredField is returned when a required attribute such as
	// the heading, the name or a start timestamp is absent or empty.
	ErrMissingRequiredField = errors.New("required field is missing")

	// ErrMalformedTimestamp is returned when a timestamp is not ISO-8601.
	ErrMalformedTimestamp = errors.New("malformed timestamp")

	// ErrMalformedResponses is returned when an event's response payload has
	// an answer without a participant id or an unexpected layout.
	ErrMalformedResponses = errors.New("malformed event responses")

	// ErrUnknownField is returned for field names the entity does not have.
	ErrUnknownField = errors.New("unknown field")

	// ErrFieldNotPushable is returned when a push asks for a field the remote
	// system does not accept (read-only or local-only fields).
	ErrFieldNotPushable = errors.New("field cannot be pushed")

	// ErrInvalidField is returned when a locally supplied value is rejected,
	// e.g. a null heading or an end time before the start time.
	ErrInvalidField = errors.New("invalid field value")

	// ErrEncodingPayload is returned when building a push payload fails.
	ErrEncodingPayload = errors.New("failed to encode remote payload")
)
