package codec

import "errors"

var (
	ErrStringTooLong    = errors.New("string too long")
	ErrUnknownEntryKind = errors.New("unknown entry kind")
	ErrInvalidParent    = errors.New("entry parent does not match its kind")
	ErrEntryTooDeep     = errors.New("entry nesting too deep")
	ErrIndexOutOfRange  = errors.New("local variable index out of range")
	ErrInvalidTristate  = errors.New("invalid tristate")
	ErrInvalidAccess    = errors.New("invalid access modifier")
	ErrTooManyChildren  = errors.New("too many child nodes")
	ErrValueOutOfRange  = errors.New("value out of range")
)
