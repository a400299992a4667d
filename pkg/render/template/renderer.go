package template

// TemplateRenderer is the seam HTML renderers use to execute templates by
// path.
type TemplateRenderer interface {
	RenderTemplate(name string, data map[string]any) (string, error)
}
