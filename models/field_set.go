// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"slices"
)

// FieldSet is a sorted set of payload field names (the JSON keys of an
// entity's Fields struct). It is used for dirty-field tracking and for the
// subset of fields sent by a push.
type FieldSet []string

// NewFieldSet builds a normalised set from names, dropping duplicates and
// empty strings.
func NewFieldSet(names ...string) FieldSet {
	out := make(FieldSet, 0, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		out = append(out, n)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func (f FieldSet) Has(name string) bool {
	_, found := slices.BinarySearch(f, name)
	return found
}

func (f FieldSet) Empty() bool {
	return len(f) == 0
}

// Union returns a new set containing the names of both sets.
func (f FieldSet) Union(other FieldSet) FieldSet {
	return NewFieldSet(append(slices.Clone(f), other...)...)
}

// Intersect returns the names present in both sets.
func (f FieldSet) Intersect(other FieldSet) FieldSet {
	out := make(FieldSet, 0)
	for _, n := range f {
		if other.Has(n) {
			out = append(out, n)
		}
	}
	return out
}

// Without returns f minus the names in other.
func (f FieldSet) Without(other FieldSet) FieldSet {
	out := make(FieldSet, 0, len(f))
	for _, n := range f {
		if !other.Has(n) {
			out = append(out, n)
		}
	}
	return out
}

// MarshalJSON always encodes an array, never null.
func (f FieldSet) MarshalJSON() ([]byte, error) {
	if f == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(f))
}

func (f *FieldSet) UnmarshalJSON(b []byte) error {
	var names []string
	if err := json.Unmarshal(b, &names); err != nil {
		return err
	}
	*f = NewFieldSet(names...)
	return nil
}
