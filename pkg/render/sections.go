package render

import (
	"strings"

	"github.com/goliatone/go-jobform/pkg/model"
)

// Section is a run of fields sharing a heading. Fields without a section
// form an untitled group.
type Section struct {
	Title  string
	Fields []model.Field
}

// GroupSections splits the form's fields into consecutive sections,
// preserving declaration order. A section name that reappears later starts
// a new group rather than pulling fields out of order.
func GroupSections(form model.FormModel) []Section {
	var sections []Section
	for _, field := range form.Fields {
		title := strings.TrimSpace(field.Section)
		if n := len(sections); n > 0 && sections[n-1].Title == title {
			sections[n-1].Fields = append(sections[n-1].Fields, field)
			continue
		}
		sections = append(sections, Section{Title: title, Fields: []model.Field{field}})
	}
	return sections
}
