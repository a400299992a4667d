package vanilla_test

import (
	"io/fs"

	"github.com/goliatone/go-jobform/pkg/renderers/vanilla"
)

func readEmbedded(name string) ([]byte, error) {
	return fs.ReadFile(vanilla.TemplatesFS(), name)
}

func readAsset(name string) ([]byte, error) {
	return fs.ReadFile(vanilla.AssetsFS(), name)
}
