package listing

import (
	"fmt"
	"os"
)

// TemplateSource provides the HTML description template
type TemplateSource interface {
	// Load returns the current template text
	Load() (string, error)
}

// FileTemplate reads the template from disk on every Load so edits apply without a restart
type FileTemplate struct {
	path string
}

// NewFileTemplate creates a FileTemplate after checking the file exists
func NewFileTemplate(path string) (*FileTemplate, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening template: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("opening template: %s is a directory", path)
	}

	return &FileTemplate{
		path: path,
	}, nil
}

// Load reads the template file
func (f *FileTemplate) Load() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", fmt.Errorf("reading template: %w", err)
	}
	return string(data), nil
}

// EmbeddedTemplate serves the template compiled into the binary
type EmbeddedTemplate struct{}

// Load returns the built-in description template
func (EmbeddedTemplate) Load() (string, error) {
	return string(descriptionTemplate), nil
}
