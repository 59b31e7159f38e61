// Package registry holds the closed set of workers participating in a routing
// graph together with the edges between them. It validates the graph at
// construction time (unknown workers, duplicate names, conflicting default
// edges) so that routing at run time is a pure lookup.
//
// A Registry is mutable while the graph is being assembled and becomes
// read-only the moment the first session is constructed from it (Freeze).
// Frozen registries are safe to share across concurrent sessions.
package registry
