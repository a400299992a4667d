package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/goliatone/go-jobform/pkg/model"
)

// FileInspector turns a path typed at the prompt into a file handle.
type FileInspector interface {
	Inspect(path string) (model.FileRef, error)
}

// FileInspectorFunc adapts a function into a FileInspector.
type FileInspectorFunc func(path string) (model.FileRef, error)

// Inspect calls the underlying function.
func (fn FileInspectorFunc) Inspect(path string) (model.FileRef, error) {
	return fn(path)
}

// LocalFiles inspects files on the local disk, sniffing the MIME type from
// the content rather than trusting the extension.
type LocalFiles struct{}

// Inspect implements FileInspector.
func (LocalFiles) Inspect(path string) (model.FileRef, error) {
	path = strings.TrimSpace(path)
	info, err := os.Stat(path)
	if err != nil {
		return model.FileRef{}, fmt.Errorf("tui: inspect %s: %w", path, err)
	}
	if info.IsDir() {
		return model.FileRef{}, fmt.Errorf("tui: %s is a directory", path)
	}

	mime, err := mimetype.DetectFile(path)
	if err != nil {
		return model.FileRef{}, fmt.Errorf("tui: detect type of %s: %w", path, err)
	}
	mediaType, _, _ := strings.Cut(mime.String(), ";")

	return model.FileRef{
		Name: filepath.Base(path),
		Type: strings.TrimSpace(mediaType),
		Size: info.Size(),
	}, nil
}
