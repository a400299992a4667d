package formdef

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-jobform/pkg/model"
	"github.com/goliatone/go-jobform/pkg/rules"
)

// Store holds parsed form definitions keyed by id.
type Store struct {
	forms map[string]model.FormModel
}

// LoadFS walks fsys and parses every JSON/YAML definition. Decorators run on
// each form after it has been validated.
func LoadFS(fsys fs.FS, decorators ...model.Decorator) (*Store, error) {
	store := &Store{forms: make(map[string]model.FormModel)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("formdef: read %s: %w", path, err)
		}

		form, err := Parse(data, path, decorators...)
		if err != nil {
			return err
		}
		if _, exists := store.forms[form.ID]; exists {
			return fmt.Errorf("formdef: duplicate form %q (file %s)", form.ID, path)
		}
		store.forms[form.ID] = form
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Form returns the definition registered under id.
func (s *Store) Form(id string) (model.FormModel, bool) {
	if s == nil {
		return model.FormModel{}, false
	}
	form, ok := s.forms[strings.TrimSpace(id)]
	return form, ok
}

// IDs lists the loaded form ids in sorted order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Parse decodes one definition (JSON first, then YAML), validates it and
// sanitizes help markup.
func Parse(data []byte, source string, decorators ...model.Decorator) (model.FormModel, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return model.FormModel{}, fmt.Errorf("formdef: file %s is empty", source)
	}

	var form model.FormModel
	if err := json.Unmarshal(data, &form); err != nil {
		form = model.FormModel{}
		if yamlErr := yaml.Unmarshal(data, &form); yamlErr != nil {
			return model.FormModel{}, fmt.Errorf("formdef: parse %s: invalid JSON or YAML: %w", source, yamlErr)
		}
	}

	normalise(&form)
	if err := validate(form, source); err != nil {
		return model.FormModel{}, err
	}

	for i := range form.Fields {
		form.Fields[i].HelpHTML = SanitizeHelp(form.Fields[i].HelpHTML)
	}

	for _, decorator := range decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(&form); err != nil {
			return model.FormModel{}, fmt.Errorf("formdef: decorate %s: %w", source, err)
		}
	}
	return form, nil
}

func normalise(form *model.FormModel) {
	form.ID = strings.TrimSpace(form.ID)
	form.Method = strings.ToUpper(strings.TrimSpace(form.Method))
	if form.Method == "" {
		form.Method = "POST"
	}
	if strings.TrimSpace(form.SubmitLabel) == "" {
		form.SubmitLabel = "Submit"
	}
	if strings.TrimSpace(form.BusyLabel) == "" {
		form.BusyLabel = "Submitting..."
	}
	for i := range form.Fields {
		field := &form.Fields[i]
		field.Name = strings.TrimSpace(field.Name)
		if field.Type == "" {
			field.Type = model.FieldTypeText
		}
	}
}

func validate(form model.FormModel, source string) error {
	if form.ID == "" {
		return fmt.Errorf("formdef: file %s: form id is required", source)
	}
	if len(form.Fields) == 0 {
		return fmt.Errorf("formdef: form %q (file %s) defines no fields", form.ID, source)
	}

	seen := make(map[string]struct{}, len(form.Fields))
	for idx, field := range form.Fields {
		if field.Name == "" {
			return fmt.Errorf("formdef: form %q (file %s) field %d has no name", form.ID, source, idx)
		}
		if _, exists := seen[field.Name]; exists {
			return fmt.Errorf("formdef: form %q (file %s) defines duplicate field %q", form.ID, source, field.Name)
		}
		seen[field.Name] = struct{}{}

		if !field.Type.Valid() {
			return fmt.Errorf("formdef: form %q (file %s) field %q has unknown type %q", form.ID, source, field.Name, field.Type)
		}
		if field.Type == model.FieldTypeSelect && len(field.Options) == 0 {
			return fmt.Errorf("formdef: form %q (file %s) select field %q has no options", form.ID, source, field.Name)
		}
		if _, err := rules.Compile(field); err != nil {
			return fmt.Errorf("formdef: form %q (file %s): %w", form.ID, source, err)
		}
	}
	return nil
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
