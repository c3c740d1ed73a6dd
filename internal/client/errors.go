// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"errors"
	"fmt"

	"github.com/Paalmessenlien/spondadmin/models"
)

// ErrEmptyServerAddress is returned by NewClient without a server address.
var ErrEmptyServerAddress = errors.New("empty server address")

// APIError is a non-2xx answer of the server.
type APIError struct {
	Status  int
	Message string
	TraceID string

	// Run is the failed pass, when the server recorded one before failing.
	Run *models.SyncRunSummary
}

func (e *APIError) Error() string {
	if e.TraceID != "" {
		return fmt.Sprintf("server answered %d: %s (trace %s)", e.Status, e.Message, e.TraceID)
	}
	return fmt.Sprintf("server answered %d: %s", e.Status, e.Message)
}
