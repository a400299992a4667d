// Package formdef loads form definitions from JSON or YAML files and turns
// them into model.FormModel values. Definitions are validated eagerly: every
// rule must compile, field names must be unique and select fields must list
// their options. Help markup is sanitized before it reaches a renderer.
//
// The built-in job application lives under definitions/ and is available
// through JobApplication.
package formdef
