package formdef

import (
	"embed"
	"errors"
	"io/fs"

	"github.com/goliatone/go-jobform/pkg/model"
)

//go:embed definitions/*.yaml
var embeddedDefinitions embed.FS

// JobApplicationID identifies the built-in job application definition.
const JobApplicationID = "job-application"

var errMissingJobApplication = errors.New("formdef: built-in job application definition missing")

// DefinitionsFS exposes the embedded definition bundle.
func DefinitionsFS() fs.FS {
	sub, err := fs.Sub(embeddedDefinitions, "definitions")
	if err != nil {
		return embeddedDefinitions
	}
	return sub
}

// JobApplication returns the built-in job application form with labels
// derived for any field that omits one.
func JobApplication() (model.FormModel, error) {
	store, err := LoadFS(DefinitionsFS(), model.LabelDecorator(nil))
	if err != nil {
		return model.FormModel{}, err
	}
	form, ok := store.Form(JobApplicationID)
	if !ok {
		return model.FormModel{}, errMissingJobApplication
	}
	return form, nil
}
