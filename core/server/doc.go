// Package server holds the HTTP server configuration: listen port, API key and
// the replica id stamped on records this process writes.
package server
