// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package protocol defines the packets exchanged between the mapping server
// and its clients and the registry that frames them on a TCP stream.
//
// A frame is a single packet id byte followed by the packet body. Bodies are
// fixed per packet type and carry no length prefix, so an unknown id leaves
// the stream unreadable and is fatal to the connection.
package protocol

const (
	// DefaultPort is the TCP port the server listens on unless configured.
	DefaultPort = 34712
	// ProtocolVersion is sent first in every Login packet.
	ProtocolVersion uint16 = 0x1002
	// ChecksumSize is the length of a SHA-1 jar checksum.
	ChecksumSize = 20
	// MaxPasswordLength is the longest password, in bytes, a Login carries.
	MaxPasswordLength = 255
	// DummySyncID marks changes that hold no lock and need no confirmation.
	DummySyncID uint16 = 0
)

// Kick reasons sent to clients. Clients may translate them for display.
const (
	ReasonInvalidUsername  = "disconnect.invalid_username"
	ReasonWrongPassword    = "disconnect.wrong_password"
	ReasonUsernameTaken    = "disconnect.username_taken"
	ReasonWrongJar         = "disconnect.wrong_jar"
	ReasonDisconnected     = "disconnect.disconnected"
	ReasonServerClosed     = "disconnect.server_closed"
	ReasonTooManyRejected  = "disconnect.too_many_rejected_edits"
	ReasonSlowConsumer     = "disconnect.slow_consumer"
	ReasonKickedByAdmin    = "disconnect.kicked"
	ReasonNotLoggedIn      = "disconnect.not_logged_in"
	ReasonAlreadyLoggedIn  = "disconnect.already_logged_in"
	ReasonProtocolError    = "disconnect.protocol_error"
	ReasonProtocolMismatch = "disconnect.protocol_mismatch"
)

// Direction tells which side of the connection sends a packet.
type Direction uint8

const (
	ClientToServer Direction = iota
	ServerToClient
)

func (d Direction) String() string {
	if d == ClientToServer {
		return "c2s"
	}
	return "s2c"
}
