package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	// MaxArtifactSize is 50MB in bytes
	MaxArtifactSize = 50 * 1024 * 1024
)

// contentTypes maps every allowed artifact extension to its MIME type
var contentTypes = map[string]string{
	".csv":  "text/csv; charset=utf-8",
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".png":  "image/png",
}

// ArtifactError represents an artifact validation error
type ArtifactError struct {
	Code    string
	Message string
}

func (e *ArtifactError) Error() string {
	return e.Message
}

// AllowedExtensions returns the artifact extensions in sorted order
func AllowedExtensions() []string {
	exts := make([]string, 0, len(contentTypes))
	for ext := range contentTypes {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// ContentType returns the MIME type for an artifact name, or
// application/octet-stream for an unknown extension
func ContentType(name string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// SafeFilename checks that name is a bare file name that cannot escape
// the directory it is joined to
func SafeFilename(name string) (string, error) {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") ||
		strings.HasPrefix(name, ".") || strings.ContainsRune(name, 0) {
		return "", &ArtifactError{
			Code:    "INVALID_FILENAME",
			Message: fmt.Sprintf("Invalid file name %q", name),
		}
	}
	return name, nil
}

// ValidateArtifact validates an artifact's name, format and size
func ValidateArtifact(name string, size int64) error {
	if _, err := SafeFilename(name); err != nil {
		return err
	}

	if size > MaxArtifactSize {
		return &ArtifactError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("File size exceeds maximum allowed size of %d MB", MaxArtifactSize/(1024*1024)),
		}
	}

	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := contentTypes[ext]; !ok {
		return &ArtifactError{
			Code:    "INVALID_FILE_FORMAT",
			Message: fmt.Sprintf("Only %s files are allowed", strings.Join(AllowedExtensions(), ", ")),
		}
	}

	return nil
}

// EnsureDir creates dir and any missing parents
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// WriteFile creates path and fills it through write.
// A failure to close the file is returned when write itself succeeded.
func WriteFile(path string, write func(io.Writer) error) (err error) {
	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if closeErr := dst.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", closeErr)
		}
	}()

	if err := write(dst); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// ArtifactURL returns the URL path for downloading a generated artifact
func ArtifactURL(filename string) string {
	if filename == "" {
		return ""
	}
	return fmt.Sprintf("/api/v1/reports/%s", filename)
}
