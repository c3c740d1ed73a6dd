// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidRecordID   = errors.New("invalid record ID")
	ErrInvalidMaxRecords = errors.New("max records cannot be negative")
	ErrInvalidGroupID    = errors.New("invalid group id")
	ErrInvalidState      = errors.New("invalid sync state")
	ErrInvalidLimit      = errors.New("limit is out of range")
	ErrInvalidFieldName  = errors.New("invalid field name")
	ErrEmptyFields       = errors.New("at least one field is required")
	ErrNoFieldsToUpdate  = errors.New("at least one field must be provided for update")
)
