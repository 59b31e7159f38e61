// Package core provides the foundational domain types used by AgentRoute. It
// defines the core abstractions for:
//
//   - Messages (immutable conversational turns with optional routing directives)
//   - Workers (named units of conversational capability with declared handoff
//     targets)
//
// The package intentionally keeps implementation concerns (routing policy,
// session driving, concrete worker kinds, completion providers) out of scope,
// exposing small types and interfaces so the registry, router and session
// packages can build on a shared vocabulary without cyclic dependencies.
package core
