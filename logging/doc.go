// Package logging provides a minimal logging interface and adapters for
// AgentRoute.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) that the session loop and façade use for observability. This
// package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - NoOpLogger for silent operation (testing, minimal setups)
//   - RouteLogger with contextual helpers (session, worker) and domain
//     specific logging helpers for handoffs, worker turns and session ends
//
// The design intentionally keeps the interface minimal to avoid vendor
// lock-in while supporting structured logging where available.
package logging
