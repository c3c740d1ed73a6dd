// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/Paalmessenlien/spondadmin/internal/logger"
	"github.com/Paalmessenlien/spondadmin/internal/utils"
	"github.com/Paalmessenlien/spondadmin/models"
)

// pullFailure is the body of a failed pull. Run is set when the pass started
// and was recorded before failing.
type pullFailure struct {
	utils.ErrorResponse
	Run *models.SyncRunSummary `json:"run,omitempty"`
}

// pullAllResponse lists the runs that started. Error joins the failures of
// the kinds that did not finish.
type pullAllResponse struct {
	Runs  []models.SyncRunSummary `json:"runs"`
	Error string                  `json:"error,omitempty"`
}

// pull runs one pass for the kind in the URL and answers once it finished.
// The body is an optional PullRequest.
func (h *Handler) pull(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		writeFailure(w, r, err, "pull rejected")
		return
	}

	var req models.PullRequest
	if err = decodeBody(r, &req, false); err != nil {
		writeFailure(w, r, err, "pull rejected")
		return
	}
	if err = h.validator.Validate(r.Context(), req); err != nil {
		writeFailure(w, r, err, "pull rejected")
		return
	}

	run, err := h.orchestrator.TriggerPullSync(r.Context(), kind, req)
	if err != nil {
		status := statusFromError(err)
		logger.FromRequest(r).Err(err).Str("kind", kind.String()).Int("status", status).Msg("pull failed")

		traceID, _ := utils.GetTraceIDFromContext(r.Context())
		body := pullFailure{ErrorResponse: utils.ErrorResponse{Error: err.Error(), TraceID: traceID}}
		if run.ID != "" {
			summary := run.Summary()
			body.Run = &summary
		}
		utils.WriteJSON(w, body, status)
		return
	}

	utils.WriteJSON(w, run.Summary(), http.StatusOK)
}

// pullAll runs every enabled kind. Partial failures answer with the status of
// the most severe error and still list the runs that completed.
func (h *Handler) pullAll(w http.ResponseWriter, r *http.Request) {
	runs, err := h.orchestrator.TriggerAll(r.Context())

	resp := pullAllResponse{Runs: make([]models.SyncRunSummary, 0, len(runs))}
	for _, run := range runs {
		resp.Runs = append(resp.Runs, run.Summary())
	}

	status := http.StatusOK
	if err != nil {
		status = statusFromError(err)
		resp.Error = err.Error()
		logger.FromRequest(r).Err(err).Int("status", status).Msg("pull of all kinds failed")
	}
	utils.WriteJSON(w, resp, status)
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		writeFailure(w, r, err, "status rejected")
		return
	}

	status, err := h.orchestrator.GetSyncStatus(r.Context(), kind)
	if err != nil {
		writeFailure(w, r, err, "error reading sync status")
		return
	}
	utils.WriteJSON(w, status, http.StatusOK)
}

func (h *Handler) statuses(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.orchestrator.Statuses(r.Context())
	if err != nil {
		writeFailure(w, r, err, "error reading sync statuses")
		return
	}
	utils.WriteJSON(w, statuses, http.StatusOK)
}

// runs lists the most recent runs of a kind, newest first.
func (h *Handler) runs(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		writeFailure(w, r, err, "runs rejected")
		return
	}
	limit, err := uintQuery(r, "limit", defaultRunsLimit)
	if err != nil {
		writeFailure(w, r, err, "runs rejected")
		return
	}
	if limit == 0 {
		limit = defaultRunsLimit
	}

	runs, err := h.orchestrator.Runs(r.Context(), kind, limit)
	if err != nil {
		writeFailure(w, r, err, "error listing runs")
		return
	}

	out := make([]models.SyncRunSummary, 0, len(runs))
	for _, run := range runs {
		out = append(out, run.Summary())
	}
	utils.WriteJSON(w, out, http.StatusOK)
}
