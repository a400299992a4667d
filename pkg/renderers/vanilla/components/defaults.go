package components

import (
	"bytes"
	"fmt"
	"strings"
)

const templatePrefix = "templates/components/"

// DefaultPartials maps each built-in partial key to its embedded template.
func DefaultPartials() map[string]string {
	return map[string]string{
		PartialInput:  templatePrefix + "input.tmpl",
		PartialSelect: templatePrefix + "select.tmpl",
		PartialFile:   templatePrefix + "file.tmpl",
	}
}

// NewDefaultRegistry constructs a registry pre-populated with the built-in
// components used by the vanilla renderer.
func NewDefaultRegistry() *Registry {
	registry := New()
	partials := DefaultPartials()

	registry.MustRegister(NameInput, Descriptor{
		Renderer: templateComponentRenderer(PartialInput, partials[PartialInput]),
	})
	registry.MustRegister(NameSelect, Descriptor{
		Renderer: templateComponentRenderer(PartialSelect, partials[PartialSelect]),
	})
	registry.MustRegister(NameFile, Descriptor{
		Renderer: templateComponentRenderer(PartialFile, partials[PartialFile]),
	})
	return registry
}

func templateComponentRenderer(partialKey, templateName string) Renderer {
	return func(buf *bytes.Buffer, control Control, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", templateName)
		}

		resolvedTemplate := templateName
		if candidate := strings.TrimSpace(data.Partials[partialKey]); candidate != "" {
			resolvedTemplate = candidate
		}

		rendered, err := data.Template.RenderTemplate(resolvedTemplate, templatePayload(control))
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", resolvedTemplate, err)
		}
		buf.WriteString(rendered)
		return nil
	}
}

func templatePayload(control Control) map[string]any {
	options := make([]map[string]any, 0, len(control.Field.Options))
	for _, option := range control.Field.Options {
		options = append(options, map[string]any{
			"value":    option.Value,
			"label":    option.Label,
			"selected": option.Value == control.Value,
		})
	}
	return map[string]any{
		"id":          control.ID,
		"name":        control.Field.Name,
		"inputType":   control.InputType,
		"value":       control.Value,
		"placeholder": control.Field.Placeholder,
		"required":    control.Field.Required(),
		"accept":      control.Field.Metadata["accept"],
		"options":     options,
		"invalid":     control.Invalid,
		"describedBy": control.DescribedBy,
		"class":       control.Class,
		"disabled":    control.Disabled,
	}
}
