// Package form implements the field registry: each named field is bound to
// an ordered rule set and to its current FieldState. Changing one field's
// value re-evaluates that field only; ValidateAll re-checks the whole form
// ahead of a submission.
package form
