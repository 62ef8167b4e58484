// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"github.com/MKhiriev/go-mapping-keeper/internal/mapping"
	"github.com/MKhiriev/go-mapping-keeper/models"
)

// Runner defines the minimal lifecycle contract for runnable client
// applications.
type Runner interface {
	// Run starts the client application and blocks until exit.
	Run() error
}

// Handler receives session events. All calls are made from the reader
// goroutine of the Client, one at a time and in the order the packets
// arrived, so implementations must not block for long.
type Handler interface {
	// OnSyncMappings is called with a copy of the full tree sent after login.
	OnSyncMappings(tree *mapping.HashTree)

	// OnEntryChange is called after a change from the server was applied to
	// the mirror. current is the resulting mapping of the changed entry.
	// Corrections of rejected local edits arrive here too.
	OnEntryChange(change models.EntryChange, current models.Mapping)

	// OnMessage is called with every rendered server message.
	OnMessage(text string)

	// OnUserList is called with the sorted names of the logged-in users.
	OnUserList(users []string)

	// OnDisconnect is called once when the session ends. reason is the kick
	// reason sent by the server or a description of the failure.
	OnDisconnect(reason string)
}
