package dataset

import (
	"context"
	"os"

	"huddle/internal/models"
)

// FileSource reads the dataset from a JSON file on local disk
type FileSource struct {
	Path string
}

// NewFileSource creates a file-backed source
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Load reads and decodes the file. The file is opened fresh on every call.
func (s *FileSource) Load(ctx context.Context) ([]models.Diner, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f)
}

// WriteFile writes diners to path as a JSON dataset
func WriteFile(path string, diners []models.Diner) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Encode(f, diners); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
