package components

// Canonical component names used by the vanilla renderer and default registry.
const (
	NameInput  = "input"
	NameSelect = "select"
	NameFile   = "file"
)

// Theme partial keys that can override each built-in component template.
const (
	PartialInput  = "forms.input"
	PartialSelect = "forms.select"
	PartialFile   = "forms.file"
)
