// Package worker provides the built-in worker kinds registered into a routing
// graph:
//
//   - FuncWorker wraps a plain handler function for deterministic, rule-based
//     capabilities.
//   - ModelWorker delegates each turn to a completion provider with a fixed
//     instruction.
//   - HumanWorker brings a human into the loop through a Prompter; a console
//     implementation is included.
//
// All constructors follow the functional options pattern and produce values
// implementing core.Worker.
package worker
