// Package utils provides helpers shared by the server, the client and the
// admin API: jar checksums, admin tokens, ids, context keys and small HTTP
// helpers.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// AdminCtxKey is the key under which the admin API stores the subject of a
// verified admin token.
//
//	ctx := context.WithValue(ctx, utils.AdminCtxKey, "ops")
var AdminCtxKey = contextKey("admin")

// GetAdminFromContext returns the admin subject stored by the auth
// middleware. ok is false when the request was not authenticated.
func GetAdminFromContext(ctx context.Context) (string, bool) {
	admin, ok := ctx.Value(AdminCtxKey).(string)
	return admin, ok && admin != ""
}
