// Package model defines the typed form model shared by the field registry,
// the rule evaluator and the renderers. A FormModel is an ordered list of
// Fields; each Field carries its declarative ValidationRules in declaration
// order, which is also the order the evaluator checks them in. Rule
// parameters are strings so definitions stay stable when round-tripped
// through YAML or JSON. Values travel as Value, a small tagged union over
// plain text and uploaded files.
package model
