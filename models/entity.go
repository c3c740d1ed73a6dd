// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// Entity is implemented by every synced record type (*Event, *Group,
// *Member). Meta exposes the sync columns shared by all kinds, Payload the
// kind-specific fields, which are persisted as one JSON document.
type Entity interface {
	Meta() *SyncMeta
	Payload() any
}

// SyncMeta holds the persisted fields every synced table carries.
type SyncMeta struct {
	// ID is the local primary key. It identifies local-only records that do
	// not have an external id yet.
	ID int64 `json:"id"`

	// ExternalID is the remote system's immutable identifier and the upsert
	// key. Nil only for records that were never pushed.
	ExternalID *string `json:"external_id"`

	// ParentExternalID is the owning group of an event or member, if any.
	ParentExternalID *string `json:"parent_external_id,omitempty"`

	SyncState   SyncState `json:"sync_state"`
	ErrorDetail *string   `json:"error_detail"`

	// DirtyFields lists payload fields holding uncommitted local edits.
	DirtyFields FieldSet `json:"dirty_fields"`

	// ContentHash fingerprints the last remote version applied by a pull.
	ContentHash string `json:"content_hash,omitempty"`

	RawData json.RawMessage `json:"raw_data,omitempty"`

	LastSyncedAt *time.Time `json:"last_synced_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Meta returns m itself; it is promoted to every type embedding SyncMeta.
func (m *SyncMeta) Meta() *SyncMeta {
	return m
}

// ExternalIDValue returns the external id or an empty string.
func (m *SyncMeta) ExternalIDValue() string {
	if m.ExternalID == nil {
		return ""
	}
	return *m.ExternalID
}

// StringPtr returns nil for empty strings and a pointer otherwise.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Event is a cached remote event.
type Event struct {
	SyncMeta
	Fields EventFields `json:"fields"`
}

func (e *Event) Payload() any {
	return &e.Fields
}

// EventFields are the event attributes owned by the remote system, plus
// AdminNotes which is never overwritten by a pull.
type EventFields struct {
	Heading     string       `json:"heading"`
	Description string       `json:"description,omitempty"`
	Type        string       `json:"type"`
	StartTime   time.Time    `json:"start_time"`
	EndTime     time.Time    `json:"end_time"`
	CreatedTime *time.Time   `json:"created_time,omitempty"`
	InviteTime  *time.Time   `json:"invite_time,omitempty"`
	Cancelled   bool         `json:"cancelled"`
	Hidden      bool         `json:"hidden"`
	Location    *Location    `json:"location,omitempty"`
	MaxAccepted int          `json:"max_accepted"`
	Responses   *ResponseSet `json:"responses,omitempty"`
	AdminNotes  string       `json:"admin_notes,omitempty"`
}

// Location is where an event takes place.
type Location struct {
	Address   string   `json:"address,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// Group is a cached remote group.
type Group struct {
	SyncMeta
	Fields GroupFields `json:"fields"`
}

func (g *Group) Payload() any {
	return &g.Fields
}

type GroupFields struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Roles       []NamedRef `json:"roles"`
	Subgroups   []NamedRef `json:"subgroups"`
}

// NamedRef is a remote id with its display name (roles, subgroups).
type NamedRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Member is a cached remote group member.
type Member struct {
	SyncMeta
	Fields MemberFields `json:"fields"`
}

func (m *Member) Payload() any {
	return &m.Fields
}

type MemberFields struct {
	FirstName         string     `json:"first_name"`
	LastName          string     `json:"last_name"`
	Email             string     `json:"email,omitempty"`
	PhoneNumber       string     `json:"phone_number,omitempty"`
	MemberCreatedTime *time.Time `json:"member_created_time,omitempty"`
	RoleIDs           []string   `json:"role_ids"`
	SubgroupIDs       []string   `json:"subgroup_ids"`
}

// FullName joins first and last name.
func (m MemberFields) FullName() string {
	if m.LastName == "" {
		return m.FirstName
	}
	return m.FirstName + " " + m.LastName
}
