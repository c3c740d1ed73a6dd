// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/Paalmessenlien/spondadmin/internal/adapter"
	"github.com/Paalmessenlien/spondadmin/internal/mapper"
	"github.com/Paalmessenlien/spondadmin/internal/service"
	"github.com/Paalmessenlien/spondadmin/internal/store"
	"github.com/Paalmessenlien/spondadmin/internal/validators"
	"github.com/Paalmessenlien/spondadmin/models"
)

var errorStatusMap = map[error]int{
	errInvalidJSON:  http.StatusBadRequest,
	errInvalidID:    http.StatusBadRequest,
	errInvalidQuery: http.StatusBadRequest,

	validators.ErrInvalidRecordID:   http.StatusBadRequest,
	validators.ErrInvalidMaxRecords: http.StatusBadRequest,
	validators.ErrInvalidGroupID:    http.StatusBadRequest,
	validators.ErrInvalidState:      http.StatusBadRequest,
	validators.ErrInvalidLimit:      http.StatusBadRequest,
	validators.ErrInvalidFieldName:  http.StatusBadRequest,
	validators.ErrEmptyFields:       http.StatusBadRequest,
	validators.ErrNoFieldsToUpdate:  http.StatusBadRequest,

	models.ErrUnknownKind:         http.StatusNotFound,
	service.ErrSyncAlreadyRunning: http.StatusConflict,
	service.ErrPushPrecondition:   http.StatusConflict,
	service.ErrSyncStopped:        http.StatusServiceUnavailable,
	service.ErrPassPanicked:       http.StatusInternalServerError,

	mapper.ErrUnknownField:       http.StatusBadRequest,
	mapper.ErrInvalidField:       http.StatusBadRequest,
	mapper.ErrFieldNotPushable:   http.StatusBadRequest,
	mapper.ErrMalformedTimestamp: http.StatusBadRequest,

	adapter.ErrRemoteUnavailable: http.StatusBadGateway,
	adapter.ErrAuthExpired:       http.StatusBadGateway,
	adapter.ErrRemoteRejected:    http.StatusBadGateway,
	adapter.ErrNotFound:          http.StatusBadGateway,
	adapter.ErrMalformedPage:     http.StatusBadGateway,
	adapter.ErrMissingScope:      http.StatusBadRequest,

	store.ErrEntityNotFound:      http.StatusNotFound,
	store.ErrDuplicateExternalID: http.StatusConflict,
	store.ErrSyncRunNotFound:     http.StatusNotFound,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
	store.ErrEncodingColumn:       http.StatusInternalServerError,

	context.DeadlineExceeded: http.StatusGatewayTimeout,
}

// statusFromError maps err to a status. When err wraps several sentinels
// (a joined error from a multi-kind pull) the most severe status wins.
func statusFromError(err error) int {
	status := 0
	for target, s := range errorStatusMap {
		if errors.Is(err, target) && s > status {
			status = s
		}
	}
	if status == 0 {
		return http.StatusInternalServerError
	}
	return status
}
