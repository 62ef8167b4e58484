// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-mapping-keeper/internal/utils"
	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod is a MethodNotAllowed handler for router that answers 404
// instead of 405, so a wrong method does not reveal that a route exists.
// Patterns are compared to the raw path; parameterized routes always get 404.
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, route := range router.Routes() {
			if route.Pattern != r.URL.Path {
				continue
			}
			if _, ok := route.Handlers[r.Method]; ok {
				router.ServeHTTP(w, r)
				return
			}
			break
		}
		utils.WriteError(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	}
}
