package rules

import (
	"time"

	"github.com/goliatone/go-jobform/pkg/model"
)

// Env carries derived context rules may consult besides the value itself.
type Env struct {
	Now time.Time
}

func (e Env) now() time.Time {
	if e.Now.IsZero() {
		return time.Now()
	}
	return e.Now
}

// Predicate reports whether value satisfies a rule.
type Predicate func(value model.Value, env Env) bool

// Rule is one compiled validation check. Rules are immutable once built.
type Rule struct {
	kind    string
	message string
	check   Predicate
}

// New builds a custom rule. A nil predicate always passes.
func New(kind, message string, check Predicate) Rule {
	return Rule{kind: kind, message: message, check: check}
}

// Kind returns the rule identifier (for example "required").
func (r Rule) Kind() string {
	return r.kind
}

// Message returns the text reported when the rule fails.
func (r Rule) Message() string {
	return r.message
}

// Check runs the rule, returning its message and false on failure.
func (r Rule) Check(value model.Value, env Env) (string, bool) {
	if r.check == nil || r.check(value, env) {
		return "", true
	}
	return r.message, false
}
