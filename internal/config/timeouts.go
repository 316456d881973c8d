// Package config provides centralized timeout constants for the application.
//
// Query understanding is CPU-only over an in-memory snapshot, so request
// handling is fast; the generous write timeout exists for the reload
// endpoint, which re-reads the snapshot file from disk.
package config

import "time"

// HTTP server timeouts
const (
	// APIHTTPRead is the HTTP server read timeout. Request bodies are small
	// JSON payloads, so a short window is enough.
	APIHTTPRead = 10 * time.Second

	// APIHTTPWrite is the HTTP server write timeout. Covers request
	// processing plus response serialization, including a snapshot reload.
	APIHTTPWrite = 30 * time.Second

	// APIHTTPIdle is the HTTP server idle timeout for keep-alive connections.
	APIHTTPIdle = 120 * time.Second
)

// Snapshot timeouts
const (
	// SnapshotLoad is the timeout for reading and decoding the catalogue
	// snapshot file. A load that takes longer indicates a broken volume,
	// not a large file.
	SnapshotLoad = 30 * time.Second
)

// Graceful shutdown
const (
	// GracefulShutdown is the timeout for graceful server shutdown.
	// Allows in-flight requests to complete before forceful termination.
	GracefulShutdown = 30 * time.Second
)
