// Package router wraps registry resolution with session-level policy: which
// worker a conversation starts at, and which worker acts next given the last
// message. Signal extraction is stringly-typed by design — a literal substring
// match on free-form worker output — because that is the observed contract of
// the routing conditions this package models. The extraction lives entirely
// behind NextWorker, so a stricter structured variant can replace it without
// touching the session loop.
package router
