// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package mapper translates records of the remote team-management service
// into local entities and back.
//
// Remote payloads are loosely typed and drift between API versions, so they
// are read with gjson rather than decoded into fixed structs. Every
// FromRemote implementation fails closed: a record missing its external id,
// its heading or name, or carrying an unparsable timestamp yields an error
// and no entity at all.
//
// Push payloads are assembled with sjson from an explicit field subset, so a
// push only ever sends the fields the caller asked for.
//
// The payload helpers (MergePayload, DiffPayload, PatchPayload, ContentHash)
// operate on the JSON view of an entity's Fields struct and are shared by
// all kinds.
package mapper
