package model

import (
	"maps"
	"slices"
	"strings"
)

// FieldType is the simplified enum for the input controls a form can hold.
type FieldType string

const (
	FieldTypeText   FieldType = "text"
	FieldTypeDate   FieldType = "date"
	FieldTypeSelect FieldType = "select"
	FieldTypeFile   FieldType = "file"
)

// Valid reports whether t names a known field type.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeDate, FieldTypeSelect, FieldTypeFile:
		return true
	default:
		return false
	}
}

const (
	ValidationRuleRequired    = "required"
	ValidationRuleMinLength   = "minLength"
	ValidationRuleMaxLength   = "maxLength"
	ValidationRulePattern     = "pattern"
	ValidationRuleMinAge      = "minAge"
	ValidationRuleAccept      = "accept"
	ValidationRuleMaxFileSize = "maxFileSize"
)

// ValidationRule represents a single validation constraint applied to a field.
// Length, age and size thresholds encode their bound in Params["value"],
// pattern rules keep the expression in Params["pattern"] and accept rules list
// MIME types in Params["types"] (comma separated). Message is the text shown
// when the rule fails.
type ValidationRule struct {
	Kind    string            `json:"kind" yaml:"kind"`
	Params  map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
	Message string            `json:"message,omitempty" yaml:"message,omitempty"`
}

// Option is one entry of a select field.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Field models an individual input inside a form.
type Field struct {
	Name        string            `json:"name" yaml:"name"`
	Type        FieldType         `json:"type" yaml:"type"`
	Label       string            `json:"label,omitempty" yaml:"label,omitempty"`
	Section     string            `json:"section,omitempty" yaml:"section,omitempty"`
	Placeholder string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	HelpHTML    string            `json:"helpHTML,omitempty" yaml:"helpHTML,omitempty"`
	Options     []Option          `json:"options,omitempty" yaml:"options,omitempty"`
	Validations []ValidationRule  `json:"validations,omitempty" yaml:"validations,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Required reports whether the field declares a required rule.
func (f Field) Required() bool {
	for _, rule := range f.Validations {
		if rule.Kind == ValidationRuleRequired {
			return true
		}
	}
	return false
}

// Rule returns the first rule of the given kind.
func (f Field) Rule(kind string) (ValidationRule, bool) {
	for _, rule := range f.Validations {
		if rule.Kind == kind {
			return rule, true
		}
	}
	return ValidationRule{}, false
}

// FormModel is the top-level representation renderers consume.
type FormModel struct {
	ID          string            `json:"id" yaml:"id"`
	Title       string            `json:"title,omitempty" yaml:"title,omitempty"`
	Endpoint    string            `json:"endpoint" yaml:"endpoint"`
	Method      string            `json:"method" yaml:"method"`
	SubmitLabel string            `json:"submitLabel,omitempty" yaml:"submitLabel,omitempty"`
	BusyLabel   string            `json:"busyLabel,omitempty" yaml:"busyLabel,omitempty"`
	Fields      []Field           `json:"fields" yaml:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Field looks up a field by name.
func (m FormModel) Field(name string) (Field, bool) {
	name = strings.TrimSpace(name)
	for _, field := range m.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Clone returns a deep copy so decorators can mutate it freely.
func (m FormModel) Clone() FormModel {
	out := m
	out.Metadata = maps.Clone(m.Metadata)
	out.Fields = make([]Field, len(m.Fields))
	for idx, field := range m.Fields {
		field.Options = slices.Clone(field.Options)
		field.Metadata = maps.Clone(field.Metadata)
		rules := make([]ValidationRule, len(field.Validations))
		for i, rule := range field.Validations {
			rule.Params = maps.Clone(rule.Params)
			rules[i] = rule
		}
		if field.Validations == nil {
			rules = nil
		}
		field.Validations = rules
		out.Fields[idx] = field
	}
	if m.Fields == nil {
		out.Fields = nil
	}
	return out
}
