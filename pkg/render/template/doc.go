// Package template defines the engine interface HTML renderers depend on.
// The pongo2 implementation lives in the gotemplate subpackage.
package template
