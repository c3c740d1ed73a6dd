// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "encoding/json"

// RemoteRecord is one record as returned by the remote system, before the
// entity mapper has looked at it.
type RemoteRecord json.RawMessage

// MarshalJSON keeps the record verbatim.
func (r RemoteRecord) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return r, nil
}

func (r *RemoteRecord) UnmarshalJSON(b []byte) error {
	*r = append((*r)[:0], b...)
	return nil
}

// ScopeFilter narrows a pull to the records of one parent group.
type ScopeFilter struct {
	GroupID string `json:"group_id,omitempty"`
}

func (s ScopeFilter) Empty() bool {
	return s.GroupID == ""
}

func (s ScopeFilter) String() string {
	if s.GroupID == "" {
		return ""
	}
	return "group:" + s.GroupID
}

// PageRequest asks the remote collaborator for one page of records.
type PageRequest struct {
	Cursor   string
	PageSize int
	Scope    ScopeFilter
}

// RemotePage is one page of remote records. An empty NextCursor means the
// collection is exhausted.
type RemotePage struct {
	Records    []RemoteRecord `json:"items"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// Done reports whether no further page follows.
func (p RemotePage) Done() bool {
	return p.NextCursor == ""
}

// RemotePayload is the JSON body written upstream by a push.
type RemotePayload json.RawMessage

func (p RemotePayload) MarshalJSON() ([]byte, error) {
	if len(p) == 0 {
		return []byte("{}"), nil
	}
	return p, nil
}

// PullRequest parameterises one reconciler pass.
type PullRequest struct {
	Scope      ScopeFilter `json:"scope"`
	MaxRecords int         `json:"max_records,omitempty"`
}

// PushRequest asks the push gateway to send one local record upstream.
// An empty Fields set means "every dirty field" (or every field on first push).
type PushRequest struct {
	ID     int64    `json:"id"`
	Fields FieldSet `json:"fields,omitempty"`
}

// ListFilter narrows local record listings.
type ListFilter struct {
	State            SyncState
	ParentExternalID string
	Limit            uint64
	Offset           uint64
}

// CreateRequest describes a record created locally before it exists
// upstream. Fields uses the payload's JSON field names.
type CreateRequest struct {
	ParentExternalID string                     `json:"parent_external_id,omitempty"`
	Fields           map[string]json.RawMessage `json:"fields"`
}
