package testsupport_test

import (
	"testing"

	"github.com/goliatone/go-jobform/pkg/form"
	"github.com/goliatone/go-jobform/pkg/rules"
	"github.com/goliatone/go-jobform/pkg/testsupport"
)

func TestValidValuesPassEveryRule(t *testing.T) {
	registry, err := form.New(testsupport.MustJobApplication(t), rules.WithClock(testsupport.Clock))
	if err != nil {
		t.Fatalf("form.New: %v", err)
	}
	for name, value := range testsupport.ValidValues() {
		if _, err := registry.Set(name, value); err != nil {
			t.Fatalf("set %s: %v", name, err)
		}
	}
	if failures := registry.ValidateAll(); failures != nil {
		t.Fatalf("fixture values fail validation: %v", failures)
	}
}
