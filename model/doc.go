// Package model defines the completion provider interface consumed by model
// backed workers, together with a deterministic MockModel for tests and
// offline demos. Concrete adapters for the OpenAI and Anthropic APIs live in
// the openai and anthropic sub-packages.
//
// The interface is intentionally narrow: one call, one completed message.
// Failure modes of the underlying API (timeout, rate limit, auth) surface as
// ordinary errors which the session loop converts into a terminal
// cancellation record.
package model
