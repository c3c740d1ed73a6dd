// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers manages the background workers of the server: the pull
// scheduler and anything else that runs beside the HTTP listener.
package workers

import "context"

// Worker is a background component with an explicit lifecycle.
//
// Start must not block; Stop waits for in-flight work until ctx expires.
type Worker interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
