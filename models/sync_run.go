// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// RunStatus is the lifecycle status of a SyncRun.
type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// Severity of a per-record message in a SyncRun.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// SyncRun is the audit record of one pull pass. It is inserted when the
// pass starts (EndedAt nil) and finalised exactly once.
type SyncRun struct {
	ID         string       `json:"id"`
	Kind       Kind         `json:"kind"`
	Status     RunStatus    `json:"status"`
	Scope      string       `json:"scope,omitempty"`
	StartedAt  time.Time    `json:"started_at"`
	EndedAt    *time.Time   `json:"ended_at"`
	Fetched    int          `json:"fetched"`
	Created    int          `json:"created"`
	Updated    int          `json:"updated"`
	Errors     int          `json:"errors"`
	Warnings   int          `json:"warnings"`
	// Unseen counts local records a complete, unscoped pass did not
	// encounter upstream. They are reported, never deleted.
	Unseen     int          `json:"unseen"`
	Messages   []RunMessage `json:"messages"`
	FatalError string       `json:"fatal_error,omitempty"`
}

// RunMessage is a per-record error or conflict warning.
type RunMessage struct {
	ExternalID string   `json:"external_id,omitempty"`
	Severity   Severity `json:"severity"`
	Message    string   `json:"message"`
}

// Finalized reports whether the run has ended.
func (r *SyncRun) Finalized() bool {
	return r.EndedAt != nil
}

// Duration is the wall-clock time of a finalised run, or zero.
func (r *SyncRun) Duration() time.Duration {
	if r.EndedAt == nil {
		return 0
	}
	return r.EndedAt.Sub(r.StartedAt)
}

// RecordError appends a hard per-record error and bumps the error counter.
func (r *SyncRun) RecordError(externalID, message string) {
	r.Errors++
	r.Messages = append(r.Messages, RunMessage{ExternalID: externalID, Severity: SeverityError, Message: message})
}

// RecordWarning appends a non-fatal warning (e.g. a local/remote conflict).
func (r *SyncRun) RecordWarning(externalID, message string) {
	r.Warnings++
	r.Messages = append(r.Messages, RunMessage{ExternalID: externalID, Severity: SeverityWarning, Message: message})
}

// SyncRunSummary is what the trigger interface returns to callers.
type SyncRunSummary struct {
	SyncRun
	DurationMS int64 `json:"duration_ms"`
}

// Summary wraps the run with its duration in milliseconds.
func (r SyncRun) Summary() SyncRunSummary {
	return SyncRunSummary{SyncRun: r, DurationMS: r.Duration().Milliseconds()}
}

// SyncStatus describes the scheduling state of one kind.
type SyncStatus struct {
	Kind            Kind       `json:"kind"`
	Enabled         bool       `json:"enabled"`
	IntervalSeconds int64      `json:"interval_seconds"`
	LastRun         *SyncRun   `json:"last_run"`
	NextRunEstimate *time.Time `json:"next_run_estimate"`
	InFlight        bool       `json:"in_flight"`
}

// PushOutcome is the explicit result of a push; failures are reported here
// rather than as errors.
type PushOutcome struct {
	Kind        Kind      `json:"kind"`
	ID          int64     `json:"id"`
	ExternalID  string    `json:"external_id,omitempty"`
	State       SyncState `json:"sync_state"`
	ErrorDetail string    `json:"error_detail,omitempty"`
	Created     bool      `json:"created"`
	Fields      FieldSet  `json:"fields"`
}

// Succeeded reports whether the remote write went through.
func (o PushOutcome) Succeeded() bool {
	return o.State != StatePushError
}
