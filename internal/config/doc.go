// Package config provides configuration loading, merging, and validation
// for the mapping server and client.
//
// Configuration is assembled from multiple sources; for every field the
// first source that sets it wins:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// The main entry points are [GetStructuredConfig] for the server and
// [GetClientConfig] for the client.
package config
