package client

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// StagedFile is a file selected for upload together with its detected
// content type.
type StagedFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// LoadFile reads a file from disk into a StagedFile, deriving the content
// type from the extension. Detection is deliberately extension-based to
// mirror how browsers populate multipart file types.
func LoadFile(path string) (StagedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return StagedFile{}, fmt.Errorf("failed to read file: %w", err)
	}
	return StagedFile{
		Name:        filepath.Base(path),
		ContentType: contentTypeFor(path),
		Data:        data,
	}, nil
}

func contentTypeFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return "application/pdf"
	}
	return "application/octet-stream"
}
