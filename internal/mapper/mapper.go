// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package mapper

import (
	"slices"

	"github.com/Paalmessenlien/spondadmin/models"
	"github.com/tidwall/gjson"
)

// Mapper converts between remote records and local entities of one kind.
// Implementations are stateless and safe for concurrent use.
type Mapper[T models.Entity] interface {
	// Kind is the collection this mapper handles.
	Kind() models.Kind

	// New returns an empty entity, used for local creates.
	New() T

	// FromRemote normalises one remote record. It never returns a partially
	// populated entity: on error the entity is the zero value.
	FromRemote(rec models.RemoteRecord) (T, error)

	// ToRemote serialises the given payload fields of entity into the remote
	// request shape. An empty field set selects every pushable field.
	ToRemote(entity T, fields models.FieldSet) (models.RemotePayload, error)

	// Validate checks a locally created or edited entity before it is stored.
	Validate(entity T) error

	// Pushable lists the payload fields the remote system accepts on writes.
	Pushable() models.FieldSet

	// LocalFields lists local-edit-only fields. A pull never overwrites them
	// and a push never sends them.
	LocalFields() models.FieldSet
}

// Editable returns the fields a user may change locally.
func Editable[T models.Entity](m Mapper[T]) models.FieldSet {
	return m.Pushable().Union(m.LocalFields())
}

func parseObject(rec models.RemoteRecord) (gjson.Result, error) {
	if !gjson.ValidBytes(rec) {
		return gjson.Result{}, ErrMalformedPayload
	}
	r := gjson.ParseBytes(rec)
	if !r.IsObject() {
		return gjson.Result{}, ErrMalformedPayload
	}
	return r, nil
}

// externalID reads the first non-empty id found at paths. Numeric ids are
// accepted and rendered in their decimal form.
func externalID(r gjson.Result, paths ...string) (string, error) {
	for _, p := range paths {
		v := r.Get(p)
		switch v.Type {
		case gjson.String:
			if v.Str != "" {
				return v.Str, nil
			}
		case gjson.Number:
			return v.Raw, nil
		}
	}
	return "", ErrMissingExternalID
}

// firstString returns the first non-empty string found at paths.
func firstString(r gjson.Result, paths ...string) string {
	for _, p := range paths {
		if s := r.Get(p).String(); s != "" {
			return s
		}
	}
	return ""
}

// idSet reads an array of ids (plain strings or objects with an id key) and
// returns them sorted and deduplicated.
func idSet(r gjson.Result) []string {
	ids := make([]string, 0)
	r.ForEach(func(_, v gjson.Result) bool {
		if v.IsObject() {
			v = v.Get("id")
		}
		if s := v.String(); s != "" {
			ids = append(ids, s)
		}
		return true
	})
	slices.Sort(ids)
	return slices.Compact(ids)
}

// RecordID returns the remote id of rec if one can be found, for labelling
// records the mapper rejected. It never fails.
func RecordID(rec models.RemoteRecord) string {
	if !gjson.ValidBytes(rec) {
		return ""
	}
	id, _ := externalID(gjson.ParseBytes(rec), "id", "profile.id")
	return id
}
