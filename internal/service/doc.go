// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the bidirectional sync engine.
//
// One generic pipeline serves every entity kind:
//
//   - [Reconciler] pulls pages from the remote collaborator, maps each record
//     and upserts it by external id. Remote wins, except for fields holding
//     uncommitted local edits.
//   - [PushGateway] sends one local record upstream and moves it through the
//     sync state machine.
//   - [LocalEditor] creates and edits records locally, marking changed
//     fields dirty.
//   - [HistoryRecorder] keeps the append-only ledger of pull passes.
//
// [Orchestrator] schedules pulls per kind, guarantees at most one pass per
// kind in flight and isolates failures between kinds.
package service
