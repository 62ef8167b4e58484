// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	errNoServersAreCreated = errors.New("no servers are created")

	// ErrServerClosed is returned by Serve and by operations submitted after
	// Stop.
	ErrServerClosed = errors.New("mapping server closed")
	// ErrUnknownUser is returned by KickUser for a username nobody holds.
	ErrUnknownUser = errors.New("no such user")
)
