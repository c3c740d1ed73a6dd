// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SyncState is the per-record synchronisation state stored in the
// sync_state column of every synced table.
type SyncState string

const (
	// StateRemoteSynced means the local record mirrors the remote one and the
	// last push or pull succeeded.
	StateRemoteSynced SyncState = "remote_synced"

	// StatePendingPush means local fields changed since the last successful
	// push and have not been sent yet.
	StatePendingPush SyncState = "pending_push"

	// StateLocalOnly means the record was created locally and never pushed,
	// so it has no external id yet.
	StateLocalOnly SyncState = "local_only"

	// StatePushError means the last push attempt failed; ErrorDetail holds the
	// cause and the local edit is kept for a retry.
	StatePushError SyncState = "push_error"
)

// Valid reports whether s is one of the four known states.
func (s SyncState) Valid() bool {
	switch s {
	case StateRemoteSynced, StatePendingPush, StateLocalOnly, StatePushError:
		return true
	}
	return false
}

// CanPush reports whether the push gateway may send a record in this state
// upstream. push_error is accepted so that failed pushes can be retried.
func (s SyncState) CanPush() bool {
	switch s {
	case StatePendingPush, StateLocalOnly, StatePushError:
		return true
	}
	return false
}

// HoldsLocalEdits reports whether a pull must preserve the record's dirty
// fields instead of overwriting them.
func (s SyncState) HoldsLocalEdits() bool {
	return s == StatePendingPush || s == StatePushError
}

// OnPull returns the state after a pull pass applied the remote version of
// the record. Remote wins unless uncommitted local edits exist, in which case
// the record keeps its state so the edit is not lost.
func (s SyncState) OnPull(hasLocalEdits bool) SyncState {
	if hasLocalEdits && s.HoldsLocalEdits() {
		return s
	}
	return StateRemoteSynced
}

// OnLocalEdit returns the state after a user changed local fields.
// Local-only records stay local-only until their first push.
func (s SyncState) OnLocalEdit() SyncState {
	if s == StateLocalOnly {
		return StateLocalOnly
	}
	return StatePendingPush
}

// OnPushSucceeded returns the state after a successful push. Fields edited
// while the push was in flight keep the record in pending_push.
func (s SyncState) OnPushSucceeded(remainingDirty bool) SyncState {
	if remainingDirty {
		return StatePendingPush
	}
	return StateRemoteSynced
}

// OnPushFailed returns the state after a failed push attempt.
func (s SyncState) OnPushFailed() SyncState {
	return StatePushError
}
