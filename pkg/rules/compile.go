package rules

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-jobform/pkg/model"
)

// Compile turns a field's declarative validations into rules, keeping the
// declaration order. Unknown kinds and malformed parameters are errors.
func Compile(field model.Field) ([]Rule, error) {
	if len(field.Validations) == 0 {
		return nil, nil
	}
	label := fieldLabel(field)
	out := make([]Rule, 0, len(field.Validations))
	for idx, v := range field.Validations {
		rule, err := compileRule(label, v)
		if err != nil {
			return nil, fmt.Errorf("rules: field %q validation %d: %w", field.Name, idx, err)
		}
		out = append(out, rule)
	}
	return out, nil
}

// MustCompile panics when Compile fails. Useful for built-in definitions.
func MustCompile(field model.Field) []Rule {
	out, err := Compile(field)
	if err != nil {
		panic(err)
	}
	return out
}

func compileRule(label string, v model.ValidationRule) (Rule, error) {
	message := strings.TrimSpace(v.Message)
	switch v.Kind {
	case model.ValidationRuleRequired:
		return Required(orDefault(message, "%s is required", label)), nil
	case model.ValidationRuleMinLength:
		n, err := intParam(v, "value")
		if err != nil {
			return Rule{}, err
		}
		return MinLength(n, orDefault(message, "%s must be at least %d characters", label, n)), nil
	case model.ValidationRuleMaxLength:
		n, err := intParam(v, "value")
		if err != nil {
			return Rule{}, err
		}
		return MaxLength(n, orDefault(message, "%s must be at most %d characters", label, n)), nil
	case model.ValidationRulePattern:
		expr := v.Params["pattern"]
		if expr == "" {
			return Rule{}, fmt.Errorf("%s: pattern param is required", v.Kind)
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return Rule{}, fmt.Errorf("%s: compile %q: %w", v.Kind, expr, err)
		}
		return Pattern(re, orDefault(message, "%s has an invalid format", label)), nil
	case model.ValidationRuleMinAge:
		n, err := intParam(v, "value")
		if err != nil {
			return Rule{}, err
		}
		return MinAge(n, orDefault(message, "You must be at least %d years old", n)), nil
	case model.ValidationRuleAccept:
		types := splitList(v.Params["types"])
		if len(types) == 0 {
			return Rule{}, fmt.Errorf("%s: types param is required", v.Kind)
		}
		return Accept(types, orDefault(message, "%s must be one of %s", label, strings.Join(types, ", "))), nil
	case model.ValidationRuleMaxFileSize:
		raw := strings.TrimSpace(v.Params["value"])
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			return Rule{}, fmt.Errorf("%s: invalid value %q", v.Kind, raw)
		}
		return MaxFileSize(n, orDefault(message, "%s must be at most %d bytes", label, n)), nil
	case "":
		return Rule{}, errors.New("rule kind is required")
	default:
		return Rule{}, fmt.Errorf("unknown rule kind %q", v.Kind)
	}
}

func intParam(v model.ValidationRule, key string) (int, error) {
	raw := strings.TrimSpace(v.Params[key])
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s: invalid %s %q", v.Kind, key, raw)
	}
	return n, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func orDefault(message, format string, args ...any) string {
	if message != "" {
		return message
	}
	return fmt.Sprintf(format, args...)
}

func fieldLabel(field model.Field) string {
	if label := strings.TrimSpace(field.Label); label != "" {
		return label
	}
	return model.DefaultLabeler(field.Name)
}
