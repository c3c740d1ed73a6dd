// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http exposes the sync engine over a small JSON API: manual pull
// triggers, per-kind status and run history, and the local record
// operations (create, edit, push).
//
// Request tracing, access logging, response compression and the optional
// bearer-token check are applied as chi middleware before handlers reach
// the orchestrator.
package http
