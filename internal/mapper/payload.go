// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package mapper

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/Paalmessenlien/spondadmin/models"
	"golang.org/x/crypto/blake2b"
)

// FieldNames returns the JSON field names of a payload struct (or pointer
// to one).
func FieldNames(payload any) models.FieldSet {
	t := reflect.TypeOf(payload)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	names := make([]string, 0, t.NumField())
	for i := range t.NumField() {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		names = append(names, name)
	}
	return models.NewFieldSet(names...)
}

func fieldsOf(payload any) (map[string]json.RawMessage, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	fields := make(map[string]json.RawMessage)
	if err = json.Unmarshal(b, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// decodeInto replaces *dst with the struct described by fields. dst is left
// unchanged when decoding fails.
func decodeInto(dst any, fields map[string]json.RawMessage) error {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return fmt.Errorf("%w: payload must be a non-nil pointer", ErrInvalidField)
	}
	b, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	fresh := reflect.New(v.Elem().Type())
	if err = json.Unmarshal(b, fresh.Interface()); err != nil {
		return err
	}
	v.Elem().Set(fresh.Elem())
	return nil
}

func diffFields(names models.FieldSet, a, b map[string]json.RawMessage) models.FieldSet {
	changed := make([]string, 0)
	for _, name := range names {
		if !bytes.Equal(a[name], b[name]) {
			changed = append(changed, name)
		}
	}
	return models.NewFieldSet(changed...)
}

// DiffPayload returns the names of the fields whose values differ between
// two payloads of the same type.
func DiffPayload(a, b any) (models.FieldSet, error) {
	am, err := fieldsOf(a)
	if err != nil {
		return nil, err
	}
	bm, err := fieldsOf(b)
	if err != nil {
		return nil, err
	}
	return diffFields(FieldNames(a), am, bm), nil
}

// MergePayload copies every field of src into dst except the ones in keep.
// Both must be pointers to the same payload type.
func MergePayload(dst, src any, keep models.FieldSet) error {
	dm, err := fieldsOf(dst)
	if err != nil {
		return err
	}
	sm, err := fieldsOf(src)
	if err != nil {
		return err
	}
	for _, name := range FieldNames(dst) {
		if keep.Has(name) {
			continue
		}
		if v, ok := sm[name]; ok {
			dm[name] = v
		} else {
			delete(dm, name)
		}
	}
	return decodeInto(dst, dm)
}

// PatchPayload applies a partial JSON update to dst. Only names in allowed
// may be set; a JSON null resets a field to its zero value. It returns the
// fields whose value actually changed.
func PatchPayload(dst any, patch map[string]json.RawMessage, allowed models.FieldSet) (models.FieldSet, error) {
	before, err := fieldsOf(dst)
	if err != nil {
		return nil, err
	}
	after := make(map[string]json.RawMessage, len(before)+len(patch))
	for k, v := range before {
		after[k] = v
	}
	for name, raw := range patch {
		if !allowed.Has(name) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, name)
		}
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			delete(after, name)
			continue
		}
		after[name] = raw
	}
	if err = decodeInto(dst, after); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidField, err)
	}
	normalized, err := fieldsOf(dst)
	if err != nil {
		return nil, err
	}
	return diffFields(FieldNames(dst), before, normalized), nil
}

// ContentHash fingerprints a payload, ignoring the excluded fields. Equal
// payloads always hash equally because encoding/json sorts map keys.
func ContentHash(payload any, exclude models.FieldSet) (string, error) {
	fields, err := fieldsOf(payload)
	if err != nil {
		return "", err
	}
	for _, name := range exclude {
		delete(fields, name)
	}
	b, err := json.Marshal(fields)
	if err != nil {
		return "", err
	}
	sum := blake2b.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}
