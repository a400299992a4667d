package vanilla

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/goliatone/go-jobform/pkg/formdef"
	"github.com/goliatone/go-jobform/pkg/model"
	"github.com/goliatone/go-jobform/pkg/render"
	"github.com/goliatone/go-jobform/pkg/render/template"
	"github.com/goliatone/go-jobform/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-jobform/pkg/themes"
	"github.com/goliatone/go-jobform/pkg/widgets"
)

type componentRenderer struct {
	templates template.TemplateRenderer
	registry  *components.Registry
	widgets   *widgets.Registry
	partials  map[string]string
	classes   classSet
	options   render.RenderOptions

	usedComponents map[string]struct{}
}

func newComponentRenderer(templates template.TemplateRenderer, registry *components.Registry, widgetRegistry *widgets.Registry, classes classSet, options render.RenderOptions) *componentRenderer {
	if registry == nil {
		registry = components.NewDefaultRegistry()
	}
	if widgetRegistry == nil {
		widgetRegistry = widgets.NewRegistry()
	}
	var partials map[string]string
	if options.Theme != nil {
		partials = options.Theme.Partials
	}
	return &componentRenderer{
		templates:      templates,
		registry:       registry,
		widgets:        widgetRegistry,
		partials:       partials,
		classes:        classes,
		options:        options,
		usedComponents: make(map[string]struct{}),
	}
}

// render produces the template view of one field, control markup included.
func (r *componentRenderer) render(field model.Field) (map[string]any, error) {
	componentName, ok := r.widgets.Resolve(field)
	if !ok || componentName == "" {
		componentName = components.NameInput
	}
	descriptor, ok := r.registry.Descriptor(componentName)
	if !ok {
		return nil, fmt.Errorf("component %q not registered for field %q", componentName, field.Name)
	}

	message := r.options.FirstError(field.Name)
	invalid := message != ""

	control := components.Control{
		Field:     field,
		ID:        controlID(field.Name),
		InputType: inputType(field),
		Value:     r.options.Values[field.Name].Display(),
		Invalid:   invalid,
		Class:     r.classes.input,
		Disabled:  r.options.Busy,
	}
	if invalid {
		control.DescribedBy = errorID(field.Name)
		control.Class = joinClasses(r.classes.input, r.classes.inputError)
	}

	var markup bytes.Buffer
	if err := descriptor.Renderer(&markup, control, components.ComponentData{
		Template: r.templates,
		Partials: r.partials,
	}); err != nil {
		return nil, fmt.Errorf("render component %q for field %q: %w", componentName, field.Name, err)
	}
	r.usedComponents[componentName] = struct{}{}

	fieldClass := r.classes.field
	if invalid {
		fieldClass = joinClasses(fieldClass, "has-error")
	}
	label := field.Label
	if label == "" {
		label = model.DefaultLabeler(field.Name)
	}

	return map[string]any{
		"name":      field.Name,
		"id":        control.ID,
		"label":     label,
		"class":     fieldClass,
		"component": componentName,
		"control":   markup.String(),
		"help":      formdef.SanitizeHelp(field.HelpHTML),
		"error":     message,
		"errorId":   errorID(field.Name),
	}, nil
}

func (r *componentRenderer) stylesheets() []string {
	if len(r.usedComponents) == 0 {
		return nil
	}
	names := make([]string, 0, len(r.usedComponents))
	for name := range r.usedComponents {
		names = append(names, name)
	}
	slices.Sort(names)
	return r.registry.Stylesheets(names)
}

// classSet holds the CSS classes resolved from theme tokens.
type classSet struct {
	form       string
	section    string
	field      string
	label      string
	input      string
	inputError string
	err        string
	help       string
	button     string
	buttonBusy string
	formErrors string
	notice     string
}

func resolveClasses(options render.RenderOptions) classSet {
	defaults := themes.Default().Tokens
	token := func(key string) string {
		return themes.Token(options.Theme, key, defaults[key])
	}
	return classSet{
		form:       token(themes.TokenFormClass),
		section:    token(themes.TokenSectionClass),
		field:      token(themes.TokenFieldClass),
		label:      token(themes.TokenLabelClass),
		input:      token(themes.TokenInputClass),
		inputError: token(themes.TokenInputErrorClass),
		err:        token(themes.TokenErrorClass),
		help:       token(themes.TokenHelpClass),
		button:     token(themes.TokenButtonClass),
		buttonBusy: token(themes.TokenButtonBusyClass),
		formErrors: token(themes.TokenFormErrorsClass),
		notice:     token(themes.TokenNoticeClass),
	}
}

func (c classSet) view(busy bool) map[string]any {
	button := c.button
	if busy {
		button = joinClasses(c.button, c.buttonBusy)
	}
	return map[string]any{
		"form":       c.form,
		"section":    c.section,
		"label":      c.label,
		"error":      c.err,
		"help":       c.help,
		"button":     button,
		"formErrors": c.formErrors,
		"notice":     c.notice,
	}
}
