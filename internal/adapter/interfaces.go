// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the contract of the remote team-management service
// the sync engine reconciles against, and its HTTP/REST implementation.
//
// The primary abstraction is [RemoteAdapter], which decouples the sync
// services from the remote's URL layout, paging and authentication. Records
// travel as raw JSON; interpreting them is the mapper's job.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrAuthExpired] for 401, [ErrRemoteRejected] for 400).
package adapter

import (
	"context"

	"github.com/Paalmessenlien/spondadmin/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_adapter_mock.go -package=mock

// RemoteAdapter is the remote collaborator of the sync engine.
type RemoteAdapter interface {
	// FetchPage returns one page of raw records of kind. An empty
	// NextCursor on the result means there are no further pages.
	FetchPage(ctx context.Context, kind models.Kind, req models.PageRequest) (models.RemotePage, error)

	// CreateRemote creates a record and returns the id the remote assigned.
	// scope names the owning group where the remote route needs one.
	CreateRemote(ctx context.Context, kind models.Kind, scope models.ScopeFilter, payload models.RemotePayload) (string, error)

	// UpdateRemote writes payload to the existing record externalID.
	UpdateRemote(ctx context.Context, kind models.Kind, scope models.ScopeFilter, externalID string, payload models.RemotePayload) error
}
