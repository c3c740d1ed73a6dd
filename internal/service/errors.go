// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	// ErrSyncAlreadyRunning is returned when a pull of the same kind is
	// still in flight. The trigger is a no-op.
	ErrSyncAlreadyRunning = errors.New("sync already running")

	// ErrSyncStopped is returned for triggers received after Stop.
	ErrSyncStopped = errors.New("sync engine stopped")

	// ErrPushPrecondition is returned when the record's state does not allow
	// a push. Nothing is sent upstream.
	ErrPushPrecondition = errors.New("record cannot be pushed in its current state")

	// ErrPassPanicked is the fatal error of a pass that panicked.
	ErrPassPanicked = errors.New("sync pass panicked")
)
