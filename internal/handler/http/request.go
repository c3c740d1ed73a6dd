// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/Paalmessenlien/spondadmin/internal/logger"
	"github.com/Paalmessenlien/spondadmin/internal/utils"
	"github.com/Paalmessenlien/spondadmin/internal/validators"
	"github.com/Paalmessenlien/spondadmin/models"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const (
	defaultRunsLimit    = 20
	maxRequestBodyBytes = 1 << 20
)

// writeFailure logs err against the request and answers with the mapped
// status.
func writeFailure(w http.ResponseWriter, r *http.Request, err error, msg string) {
	status := statusFromError(err)
	level := zerolog.WarnLevel
	if status >= http.StatusInternalServerError {
		level = zerolog.ErrorLevel
	}
	logger.FromRequest(r).WithLevel(level).Err(err).Int("status", status).Msg(msg)
	utils.WriteError(w, r, err, status)
}

func kindParam(r *http.Request) (models.Kind, error) {
	return models.ParseKind(chi.URLParam(r, "kind"))
}

func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", errInvalidID, chi.URLParam(r, "id"))
	}
	return id, nil
}

// decodeBody decodes the JSON body into dst. An empty body leaves dst
// untouched unless required is set.
func decodeBody(r *http.Request, dst any, required bool) error {
	if r.Body == nil {
		if required {
			return fmt.Errorf("%w: empty body", errInvalidJSON)
		}
		return nil
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) && !required {
			return nil
		}
		return fmt.Errorf("%w: %w", errInvalidJSON, err)
	}
	return nil
}

// uintQuery reads a non-negative integer query parameter, falling back to
// def when absent and clamping to the largest list page.
func uintQuery(r *http.Request, name string, def uint64) (uint64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", errInvalidQuery, name, raw)
	}
	return min(v, validators.MaxListLimit), nil
}
