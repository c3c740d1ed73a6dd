// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

// Sentinel errors returned by [RemoteAdapter] implementations. Callers match
// them with [errors.Is]; the wrapped message carries the remote response body.
var (
	// ErrRemoteUnavailable is returned for transport failures, timeouts,
	// 429 and 5xx responses after retries are exhausted.
	ErrRemoteUnavailable = errors.New("remote service unavailable")

	// ErrAuthExpired is returned when the session token is expired or the
	// remote answers 401. No request of a pass can succeed after it.
	ErrAuthExpired = errors.New("remote session expired")

	// ErrRemoteRejected is returned when the remote refuses a request as
	// invalid (400, 403, 409, 422).
	ErrRemoteRejected = errors.New("remote rejected request")

	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("remote record not found")

	// ErrMalformedPage is returned when a page body is neither a JSON array
	// nor an object with an items array.
	ErrMalformedPage = errors.New("malformed remote page")

	// ErrMissingScope is returned when a member is written without the id of
	// its group.
	ErrMissingScope = errors.New("member requests need a group scope")

	// ErrMissingRemoteID is returned when a create response carries no id.
	ErrMissingRemoteID = errors.New("create response has no id")

	// ErrUnsupportedKind is returned for kinds the adapter has no route for.
	ErrUnsupportedKind = errors.New("unsupported entity kind")
)
