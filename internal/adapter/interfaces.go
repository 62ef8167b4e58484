// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter talks to the admin HTTP API of a mapping server.
//
// [StatusAdapter] is what the terminal client uses for its /status command.
// Non-2xx answers are mapped by mapHTTPError to the sentinel errors of this
// package so callers can use [errors.Is].
package adapter

import (
	"context"

	"github.com/MKhiriev/go-mapping-keeper/internal/server"
)

// StatusAdapter reads the public part of the admin API.
type StatusAdapter interface {
	// Status fetches users, live locks and the save state.
	Status(ctx context.Context) (server.Status, error)

	// Version fetches the server build version.
	Version(ctx context.Context) (string, error)
}
