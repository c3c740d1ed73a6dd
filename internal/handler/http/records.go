// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/Paalmessenlien/spondadmin/internal/logger"
	"github.com/Paalmessenlien/spondadmin/internal/utils"
	"github.com/Paalmessenlien/spondadmin/internal/validators"
	"github.com/Paalmessenlien/spondadmin/models"
)

func (h *Handler) listRecords(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		writeFailure(w, r, err, "list rejected")
		return
	}

	filter, err := listFilter(r)
	if err != nil {
		writeFailure(w, r, err, "list rejected")
		return
	}
	if err = h.validator.Validate(r.Context(), filter); err != nil {
		writeFailure(w, r, err, "list rejected")
		return
	}

	records, err := h.orchestrator.Records(r.Context(), kind, filter)
	if err != nil {
		writeFailure(w, r, err, "error listing records")
		return
	}
	utils.WriteJSON(w, records, http.StatusOK)
}

func listFilter(r *http.Request) (models.ListFilter, error) {
	q := r.URL.Query()
	filter := models.ListFilter{
		State:            models.SyncState(q.Get("state")),
		ParentExternalID: q.Get("group"),
	}

	var err error
	if filter.Limit, err = uintQuery(r, "limit", 0); err != nil {
		return models.ListFilter{}, err
	}
	if filter.Offset, err = uintQuery(r, "offset", 0); err != nil {
		return models.ListFilter{}, err
	}
	return filter, nil
}

func (h *Handler) getRecord(w http.ResponseWriter, r *http.Request) {
	kind, id, err := recordParams(r)
	if err != nil {
		writeFailure(w, r, err, "get rejected")
		return
	}

	record, err := h.orchestrator.Record(r.Context(), kind, id)
	if err != nil {
		writeFailure(w, r, err, "error loading record")
		return
	}
	utils.WriteJSON(w, record, http.StatusOK)
}

// createRecord stores a local_only record. It reaches the remote on its
// first push.
func (h *Handler) createRecord(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		writeFailure(w, r, err, "create rejected")
		return
	}

	var req models.CreateRequest
	if err = decodeBody(r, &req, true); err != nil {
		writeFailure(w, r, err, "create rejected")
		return
	}
	if err = h.validator.Validate(r.Context(), req); err != nil {
		writeFailure(w, r, err, "create rejected")
		return
	}

	record, err := h.orchestrator.CreateLocal(r.Context(), kind, req)
	if err != nil {
		writeFailure(w, r, err, "error creating record")
		return
	}

	logger.FromRequest(r).Info().
		Str("kind", kind.String()).
		Int64("id", record.Meta().ID).
		Msg("local record created")
	utils.WriteJSON(w, record, http.StatusCreated)
}

// editRecord applies a partial update. The body maps payload field names to
// their new values.
func (h *Handler) editRecord(w http.ResponseWriter, r *http.Request) {
	kind, id, err := recordParams(r)
	if err != nil {
		writeFailure(w, r, err, "edit rejected")
		return
	}

	var patch validators.Patch
	if err = decodeBody(r, &patch, true); err != nil {
		writeFailure(w, r, err, "edit rejected")
		return
	}
	if err = h.validator.Validate(r.Context(), patch); err != nil {
		writeFailure(w, r, err, "edit rejected")
		return
	}

	record, err := h.orchestrator.EditRecord(r.Context(), kind, id, patch)
	if err != nil {
		writeFailure(w, r, err, "error editing record")
		return
	}
	utils.WriteJSON(w, record, http.StatusOK)
}

// pushRecord sends a record's pending changes upstream. A remote failure is
// not a request error: the outcome is returned with 502 and the record is
// left in push_error.
func (h *Handler) pushRecord(w http.ResponseWriter, r *http.Request) {
	kind, id, err := recordParams(r)
	if err != nil {
		writeFailure(w, r, err, "push rejected")
		return
	}

	var req models.PushRequest
	if err = decodeBody(r, &req, false); err != nil {
		writeFailure(w, r, err, "push rejected")
		return
	}
	req.ID = id
	if err = h.validator.Validate(r.Context(), req); err != nil {
		writeFailure(w, r, err, "push rejected")
		return
	}

	outcome, err := h.orchestrator.PushRecord(r.Context(), kind, req)
	if err != nil {
		writeFailure(w, r, err, "push failed")
		return
	}

	log := logger.FromRequest(r).With().
		Str("kind", kind.String()).
		Int64("id", id).
		Str("sync_state", string(outcome.State)).
		Logger()
	if !outcome.Succeeded() {
		log.Warn().Str("error_detail", outcome.ErrorDetail).Msg("push rejected by remote")
		utils.WriteJSON(w, outcome, http.StatusBadGateway)
		return
	}
	log.Info().Bool("created", outcome.Created).Msg("record pushed")
	utils.WriteJSON(w, outcome, http.StatusOK)
}

func recordParams(r *http.Request) (models.Kind, int64, error) {
	kind, err := kindParam(r)
	if err != nil {
		return "", 0, err
	}
	id, err := idParam(r)
	if err != nil {
		return "", 0, err
	}
	return kind, id, nil
}
