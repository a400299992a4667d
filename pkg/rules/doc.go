// Package rules compiles declarative model.ValidationRule entries into pure
// predicates and evaluates them in declaration order.
//
// Length and pattern constraints only apply to non-empty values, so optional
// fields stay valid when left blank. Age and upload checks always run, which
// means an absent date of birth or photo fails them too; pair them with a
// required rule to get the friendlier message first.
//
// The minAge rule subtracts calendar years only (current year minus birth
// year) and ignores month and day. Someone turning 18 later in the current
// year is therefore already accepted.
package rules
