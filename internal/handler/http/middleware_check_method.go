// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Paalmessenlien/spondadmin/internal/utils"
	"github.com/go-chi/chi/v5"
)

var errMethodNotAllowed = errors.New("method not allowed")

var knownMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPatch,
	http.MethodPut,
	http.MethodDelete,
}

// CheckHTTPMethod is registered as the router's MethodNotAllowed handler.
// It answers 405 with a JSON body and an Allow header listing the methods
// the matched path does accept.
//
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var allowed []string
		for _, method := range knownMethods {
			if router.Match(chi.NewRouteContext(), method, r.URL.Path) {
				allowed = append(allowed, method)
			}
		}

		if len(allowed) > 0 {
			w.Header().Set("Allow", strings.Join(allowed, ", "))
		}
		utils.WriteError(w, r, errMethodNotAllowed, http.StatusMethodNotAllowed)
	}
}
