// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/MKhiriev/go-mapping-keeper/internal/protocol"
)

var disconnectReasons = map[string]string{
	protocol.ReasonInvalidUsername:  "invalid username",
	protocol.ReasonWrongPassword:    "wrong password",
	protocol.ReasonUsernameTaken:    "username already taken",
	protocol.ReasonWrongJar:         "your jar does not match the server's",
	protocol.ReasonDisconnected:     "disconnected",
	protocol.ReasonServerClosed:     "server closed",
	protocol.ReasonTooManyRejected:  "too many rejected edits",
	protocol.ReasonSlowConsumer:     "connection too slow",
	protocol.ReasonKickedByAdmin:    "kicked by an operator",
	protocol.ReasonNotLoggedIn:      "not logged in",
	protocol.ReasonAlreadyLoggedIn:  "already logged in",
	protocol.ReasonProtocolError:    "protocol error",
	protocol.ReasonProtocolMismatch: "client and server versions differ",
}

func humanizeReason(reason string) string {
	if text, ok := disconnectReasons[reason]; ok {
		return text
	}
	return reason
}

func humanizeServerUnavailableError(err error) string {
	if err == nil {
		return ""
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "server unavailable"
	}

	return err.Error()
}
