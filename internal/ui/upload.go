package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AllowedExtension is the only file type the backend indexes
const AllowedExtension = ".pdf"

// ValidateUploadPath enforces the drop-zone constraints before a file is
// handed to the document registry: PDF extension and the size limit.
// Rejected files never reach the registry.
func ValidateUploadPath(path string, maxBytes int64) error {
	if strings.ToLower(filepath.Ext(path)) != AllowedExtension {
		return fmt.Errorf("only PDF files are supported")
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot read file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", filepath.Base(path))
	}
	if info.Size() > maxBytes {
		return fmt.Errorf("file exceeds the %d MB limit", maxBytes/(1024*1024))
	}

	return nil
}
