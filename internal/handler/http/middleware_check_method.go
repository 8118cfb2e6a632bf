// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
)

// methodNotAllowed returns the router's MethodNotAllowed handler. It answers
// 405 with an "Allow" header listing the methods the matched pattern
// accepts, so clients can tell a wrong verb from a missing route.
//
// Usage:
//
//	router.MethodNotAllowed(methodNotAllowed(router))
func methodNotAllowed(router *chi.Mux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		allowed := allowedMethods(router, r.URL.Path)
		if len(allowed) > 0 {
			w.Header().Set("Allow", strings.Join(allowed, ", "))
		}
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

// allowedMethods probes every standard method against the router tree and
// collects the ones that resolve for path.
func allowedMethods(router *chi.Mux, path string) []string {
	candidates := []string{
		http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions,
	}

	var allowed []string
	for _, method := range candidates {
		rctx := chi.NewRouteContext()
		if router.Match(rctx, method, path) {
			allowed = append(allowed, method)
		}
	}
	sort.Strings(allowed)

	return allowed
}
