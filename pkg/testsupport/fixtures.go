// Package testsupport holds fixtures shared by the package tests: the job
// application definition, a pinned clock and a complete set of valid values.
package testsupport

import (
	"testing"
	"time"

	"github.com/goliatone/go-jobform/pkg/formdef"
	"github.com/goliatone/go-jobform/pkg/model"
)

// Now is the instant age rules are evaluated against in tests.
var Now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// Clock returns Now.
func Clock() time.Time {
	return Now
}

// MustJobApplication loads the embedded job-application definition.
func MustJobApplication(t testing.TB) model.FormModel {
	t.Helper()
	form, err := formdef.JobApplication()
	if err != nil {
		t.Fatalf("load job application: %v", err)
	}
	return form
}

// Photo returns a file reference for an upload of the given type and size.
func Photo(name, mimeType string, size int64) model.FileRef {
	return model.FileRef{Name: name, Type: mimeType, Size: size}
}

// ValidTextValues returns text values that pass every rule of the job
// application at Now. The photo is not included.
func ValidTextValues() map[string]string {
	return map[string]string{
		"firstName":     "Janet",
		"lastName":      "Doe",
		"dob":           "2000-01-15",
		"email":         "janet@example.com",
		"phone":         "5551234567",
		"country":       "India",
		"state":         "Kerala",
		"district":      "Ernakulam",
		"landmark":      "Near the old mill",
		"qualification": "bachelor",
	}
}

// ValidValues returns a complete valid submission including a small PNG.
func ValidValues() map[string]model.Value {
	values := make(map[string]model.Value)
	for name, text := range ValidTextValues() {
		values[name] = model.Text(text)
	}
	values["photo"] = model.Files(Photo("me.png", "image/png", 1024))
	return values
}
