// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package mapper

import (
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Layouts accepted for remote timestamps. Fractional seconds are accepted by
// time.Parse even when the layout omits them. Layouts without a zone are
// interpreted as UTC.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses an ISO-8601 timestamp and returns it in UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrMalformedTimestamp)
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, s)
}

// FormatTimestamp renders t the way the remote API expects it.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func requiredTime(r gjson.Result, path string) (time.Time, error) {
	v := r.Get(path)
	if !v.Exists() || v.Type == gjson.Null {
		return time.Time{}, fmt.Errorf("%w: %s", ErrMissingRequiredField, path)
	}
	if v.Type != gjson.String {
		return time.Time{}, fmt.Errorf("%w: %s is not a string", ErrMalformedTimestamp, path)
	}
	t, err := ParseTimestamp(v.Str)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// optionalTime returns nil when the value is absent, null or empty, and an
// error when it is present but unparsable.
func optionalTime(r gjson.Result, path string) (*time.Time, error) {
	v := r.Get(path)
	if !v.Exists() || v.Type == gjson.Null || (v.Type == gjson.String && v.Str == "") {
		return nil, nil
	}
	if v.Type != gjson.String {
		return nil, fmt.Errorf("%w: %s is not a string", ErrMalformedTimestamp, path)
	}
	t, err := ParseTimestamp(v.Str)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &t, nil
}
