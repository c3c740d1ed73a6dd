// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Paalmessenlien/spondadmin/internal/logger"
	"github.com/Paalmessenlien/spondadmin/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeAuth(h *Handler, authHeader string) (*httptest.ResponseRecorder, bool) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/sync/status", nil)
	req = req.WithContext(logger.Nop().WithContext(req.Context()))
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rr := httptest.NewRecorder()
	h.auth(next).ServeHTTP(rr, req)
	return rr, called
}

func TestGetTokenFromAuthHeader_TableTest(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantToken string
		wantErr   error
	}{
		{name: "valid Bearer token", header: "Bearer s3cret", wantToken: "s3cret"},
		{name: "missing token part", header: "Bearer", wantErr: ErrInvalidAuthorizationHeader},
		{name: "empty header", header: "", wantErr: ErrInvalidAuthorizationHeader},
		{name: "only spaces", header: " ", wantErr: ErrEmptyToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := getTokenFromAuthHeader(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

func TestAuth_Middleware_TableTest(t *testing.T) {
	tests := []struct {
		name       string
		apiToken   string
		header     string
		wantStatus int
		wantCalled bool
		wantErr    error
	}{
		{name: "no token configured", header: "", wantStatus: http.StatusOK, wantCalled: true},
		{name: "valid token", apiToken: "s3cret", header: "Bearer s3cret", wantStatus: http.StatusOK, wantCalled: true},
		{name: "missing header", apiToken: "s3cret", wantStatus: http.StatusUnauthorized, wantErr: ErrEmptyAuthorizationHeader},
		{name: "malformed header", apiToken: "s3cret", header: "Bearer", wantStatus: http.StatusUnauthorized, wantErr: ErrInvalidAuthorizationHeader},
		{name: "wrong token", apiToken: "s3cret", header: "Bearer guess", wantStatus: http.StatusUnauthorized, wantErr: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{logger: logger.Nop(), apiToken: tt.apiToken}
			rr, called := executeAuth(h, tt.header)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantCalled, called)
			if tt.wantErr != nil {
				var body utils.ErrorResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
				assert.Equal(t, tt.wantErr.Error(), body.Error)
			}
		})
	}
}
