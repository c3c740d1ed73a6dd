// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)
	router.Use(middleware.Compress(5, "application/json"))

	router.Get("/api/version", h.getServerVersion)

	router.Route("/api/sync", func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/pull", h.pullAll)
		r.Get("/status", h.statuses)

		r.Route("/{kind}", func(r chi.Router) {
			r.Post("/pull", h.pull)
			r.Get("/status", h.status)
			r.Get("/runs", h.runs)

			r.Get("/records", h.listRecords)
			r.Post("/records", h.createRecord)
			r.Get("/records/{id}", h.getRecord)
			r.Patch("/records/{id}", h.editRecord)
			r.Post("/records/{id}/push", h.pushRecord)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
