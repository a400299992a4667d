// Package orchestrator wires form definitions, decorators, themes and
// renderers into a single Generate call.
package orchestrator
