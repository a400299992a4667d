// Package openapi describes a form's HTTP surface as an OpenAPI 3 document:
// the multipart submit operation with every field's constraints and the
// per-field validation endpoint. Documents are built and validated with
// kin-openapi.
package openapi
