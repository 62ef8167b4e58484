package client

import "errors"

var (
	ErrClosed       = errors.New("client is closed")
	ErrAlreadyLogin = errors.New("login already sent")
	ErrNoopChange   = errors.New("change does not modify the entry")
)
