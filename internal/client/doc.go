// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the client side of a collaborative mapping
// session.
//
// A Client keeps a local mirror of the server's mapping tree. Edits are
// applied to the mirror first and then proposed to the server; changes made
// by other users arrive as EntryChanged packets, are applied to the mirror
// and confirmed back so the server can release the entry lock. UI layers
// observe the session through a Handler.
//
// App wires a Client to the terminal UI for the cmd/client binary.
package client
