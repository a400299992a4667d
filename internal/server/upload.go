package server

import (
	"fmt"
	"mime"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/goliatone/go-jobform/pkg/model"
)

// fileRefs converts uploaded parts into file references. The declared part
// type wins; parts without a usable type are sniffed.
func fileRefs(headers []*multipart.FileHeader) ([]model.FileRef, error) {
	refs := make([]model.FileRef, 0, len(headers))
	for _, header := range headers {
		if header == nil || header.Filename == "" {
			continue
		}
		contentType, err := partType(header)
		if err != nil {
			return nil, err
		}
		refs = append(refs, model.FileRef{
			Name: header.Filename,
			Type: contentType,
			Size: header.Size,
		})
	}
	return refs, nil
}

func partType(header *multipart.FileHeader) (string, error) {
	declared := header.Header.Get("Content-Type")
	if declared != "" {
		if mediaType, _, err := mime.ParseMediaType(declared); err == nil && mediaType != "application/octet-stream" {
			return mediaType, nil
		}
	}

	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("server: open upload %q: %w", header.Filename, err)
	}
	defer file.Close()

	detected, err := mimetype.DetectReader(file)
	if err != nil {
		return "", fmt.Errorf("server: detect type of %q: %w", header.Filename, err)
	}
	mediaType, _, _ := strings.Cut(detected.String(), ";")
	return strings.TrimSpace(mediaType), nil
}
