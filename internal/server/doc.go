// Package server runs the authoritative mapping server and the process-level
// lifecycle around it.
//
// MappingServer owns the mapping tree, the roster of connected users and the
// per-entry edit locks. Every mutation of that state runs on one mutator
// goroutine fed by a FIFO task queue; each connection has its own reader and
// writer goroutines that only parse and serialize packets.
//
// The Server interface wraps the TCP listener and the optional admin HTTP
// API so that cmd/server can start them together and shut them down on a
// signal, saving pending changes on the way out.
package server
