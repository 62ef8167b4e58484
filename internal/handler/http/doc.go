// Package http implements the admin HTTP API of the mapping server.
//
// It exposes the server version and a status snapshot (users, live locks,
// save state) to anyone, and guards the operator actions (save now, kick a
// user) behind a JWT bearer token obtained from the login route with the
// server password. Request tracing and access logging are handled here as
// middleware.
package http
