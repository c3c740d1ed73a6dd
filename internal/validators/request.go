// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Paalmessenlien/spondadmin/models"
)

// Field name constants used to restrict Validate to a subset of fields.
const (
	// FieldID targets the local id of a record.
	FieldID = "id"

	// FieldScope targets the remote group a pull or create is scoped to.
	FieldScope = "scope"

	// FieldMaxRecords targets the per-pass record cap of a pull request.
	FieldMaxRecords = "max_records"

	// FieldFields targets the field names or values carried by a request.
	FieldFields = "fields"

	// FieldState targets the sync state of a list filter.
	FieldState = "state"

	// FieldLimit targets the page size of a list filter.
	FieldLimit = "limit"
)

const (
	// MaxListLimit is the largest page a list filter may ask for.
	MaxListLimit = 500

	maxGroupIDLength = 128
)

// Patch is the body of a record edit: payload field names mapped to their
// new values.
type Patch map[string]json.RawMessage

// RequestValidator implements Validator for PullRequest, PushRequest,
// CreateRequest, ListFilter and Patch. Both value and pointer forms are
// accepted.
type RequestValidator struct{}

// NewRequestValidator returns a RequestValidator as a Validator.
func NewRequestValidator() Validator {
	return &RequestValidator{}
}

func (v *RequestValidator) Validate(ctx context.Context, data any, fields ...string) error {
	switch value := data.(type) {
	case models.PullRequest:
		return v.validatePullRequest(ctx, value, fields...)
	case *models.PullRequest:
		return v.validatePullRequest(ctx, *value, fields...)

	case models.PushRequest:
		return v.validatePushRequest(ctx, value, fields...)
	case *models.PushRequest:
		return v.validatePushRequest(ctx, *value, fields...)

	case models.CreateRequest:
		return v.validateCreateRequest(ctx, value, fields...)
	case *models.CreateRequest:
		return v.validateCreateRequest(ctx, *value, fields...)

	case models.ListFilter:
		return v.validateListFilter(ctx, value, fields...)
	case *models.ListFilter:
		return v.validateListFilter(ctx, *value, fields...)

	case Patch:
		return v.validatePatch(ctx, value, fields...)
	case map[string]json.RawMessage:
		return v.validatePatch(ctx, value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *RequestValidator) validatePullRequest(_ context.Context, req models.PullRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldScope, FieldMaxRecords}
	}

	for _, f := range fields {
		switch f {
		case FieldScope:
			if err := validateGroupID(req.Scope.GroupID); err != nil {
				return err
			}
		case FieldMaxRecords:
			if req.MaxRecords < 0 {
				return ErrInvalidMaxRecords
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RequestValidator) validatePushRequest(_ context.Context, req models.PushRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldFields}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if req.ID <= 0 {
				return ErrInvalidRecordID
			}
		case FieldFields:
			for i, name := range req.Fields {
				if !validFieldName(name) {
					return fmt.Errorf("%w at index %d: %q", ErrInvalidFieldName, i, name)
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RequestValidator) validateCreateRequest(_ context.Context, req models.CreateRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldScope, FieldFields}
	}

	for _, f := range fields {
		switch f {
		case FieldScope:
			if err := validateGroupID(req.ParentExternalID); err != nil {
				return err
			}
		case FieldFields:
			if len(req.Fields) == 0 {
				return ErrEmptyFields
			}
			if err := validateFieldNames(req.Fields); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RequestValidator) validateListFilter(_ context.Context, filter models.ListFilter, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldState, FieldScope, FieldLimit}
	}

	for _, f := range fields {
		switch f {
		case FieldState:
			if filter.State != "" && !filter.State.Valid() {
				return fmt.Errorf("%w: %q", ErrInvalidState, filter.State)
			}
		case FieldScope:
			if err := validateGroupID(filter.ParentExternalID); err != nil {
				return err
			}
		case FieldLimit:
			if filter.Limit > MaxListLimit {
				return fmt.Errorf("%w: %d > %d", ErrInvalidLimit, filter.Limit, MaxListLimit)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RequestValidator) validatePatch(_ context.Context, patch map[string]json.RawMessage, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldFields}
	}

	for _, f := range fields {
		switch f {
		case FieldFields:
			if len(patch) == 0 {
				return ErrNoFieldsToUpdate
			}
			if err := validateFieldNames(patch); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateGroupID accepts an empty id. A set id is sent to the remote as a
// query value and must be a single printable token.
func validateGroupID(id string) error {
	if id == "" {
		return nil
	}
	if len(id) > maxGroupIDLength || strings.TrimSpace(id) != id || strings.ContainsAny(id, " /?#&") {
		return fmt.Errorf("%w: %q", ErrInvalidGroupID, id)
	}
	return nil
}

func validateFieldNames(values map[string]json.RawMessage) error {
	for name := range values {
		if !validFieldName(name) {
			return fmt.Errorf("%w: %q", ErrInvalidFieldName, name)
		}
	}
	return nil
}

func validFieldName(name string) bool {
	return name != "" && strings.TrimSpace(name) == name
}
