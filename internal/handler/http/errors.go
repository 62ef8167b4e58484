// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-mapping-keeper/internal/server"
	"github.com/MKhiriev/go-mapping-keeper/internal/utils"
)

// Sentinel errors of the admin API. Callers can match against them with
// [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidCredentials is returned by the login route for a wrong
	// password or an empty admin name.
	ErrInvalidCredentials = errors.New("invalid admin credentials")

	// ErrAdminAPIDisabled is returned by the login route when no token sign
	// key is configured.
	ErrAdminAPIDisabled = errors.New("admin tokens are not configured")
)

var errorStatusMap = map[error]int{
	ErrEmptyAuthorizationHeader: http.StatusUnauthorized,
	ErrInvalidCredentials:       http.StatusUnauthorized,
	ErrAdminAPIDisabled:         http.StatusNotFound,
	utils.ErrInvalidAuthHeader:  http.StatusUnauthorized,
	server.ErrUnknownUser:       http.StatusNotFound,
	server.ErrServerClosed:      http.StatusServiceUnavailable,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
