package protocol

import "errors"

var (
	ErrUnknownPacket      = errors.New("unknown packet id")
	ErrUnregisteredPacket = errors.New("packet type not registered")
	ErrDuplicatePacket    = errors.New("packet id already registered")
	ErrProtocolMismatch   = errors.New("mismatching protocol version")
	ErrPasswordTooLong    = errors.New("password too long")
	ErrTooManyUsers       = errors.New("user list too long")
)
