// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPostgresErrorClassifier(t *testing.T) {
	c := NewPostgresErrorClassifier()

	tests := []struct {
		name       string
		err        error
		wantClass  ErrorClassification
		wantUnique bool
	}{
		{name: "nil", err: nil, wantClass: NonRetryable},
		{name: "plain error", err: errors.New("boom"), wantClass: NonRetryable},
		{name: "deadlock", err: &pgconn.PgError{Code: pgerrcode.DeadlockDetected}, wantClass: Retryable},
		{name: "wrapped serialization failure", err: fmt.Errorf("upsert: %w", &pgconn.PgError{Code: pgerrcode.SerializationFailure}), wantClass: Retryable},
		{name: "connection failure", err: &pgconn.PgError{Code: pgerrcode.ConnectionFailure}, wantClass: Retryable},
		{name: "unique violation", err: &pgconn.PgError{Code: pgerrcode.UniqueViolation}, wantClass: NonRetryable, wantUnique: true},
		{name: "syntax error", err: &pgconn.PgError{Code: pgerrcode.SyntaxError}, wantClass: NonRetryable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantClass, c.Classify(tt.err))
			assert.Equal(t, tt.wantUnique, c.IsUniqueViolation(tt.err))
		})
	}
}
