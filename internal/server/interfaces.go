// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server defines the lifecycle of the process's serving side.
//
// RunServer blocks until ctx is cancelled or a stop signal arrives, then
// shuts everything down.
type Server interface {
	RunServer(ctx context.Context) error
}

// Background is started before the listener accepts requests and stopped
// after it has drained.
type Background interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
