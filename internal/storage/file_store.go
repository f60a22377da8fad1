package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"idea-portal/internal/models"

	"github.com/spf13/afero"
)

type FileStore struct {
	fs   afero.Fs
	path string
}

func NewFileStore(fs afero.Fs, path string) *FileStore {
	return &FileStore{
		fs:   fs,
		path: path,
	}
}

func (s *FileStore) Load(ctx context.Context) ([]models.Idea, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []models.Idea{}, nil
		}
		return nil, &Error{Op: "load", Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []models.Idea{}, nil
	}

	var ideas []models.Idea
	if err := json.Unmarshal(data, &ideas); err != nil {
		return nil, &Error{Op: "load", Err: err}
	}
	if ideas == nil {
		ideas = []models.Idea{}
	}
	return ideas, nil
}

// Save overwrites the whole document. The new content is written to a
// sibling temp file first and renamed over the old one.
func (s *FileStore) Save(ctx context.Context, ideas []models.Idea) error {
	if ideas == nil {
		ideas = []models.Idea{}
	}
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return &Error{Op: "save", Err: err}
	}

	data, err := json.MarshalIndent(ideas, "", "  ")
	if err != nil {
		return &Error{Op: "save", Err: err}
	}

	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return &Error{Op: "save", Err: err}
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		return &Error{Op: "save", Err: err}
	}
	return nil
}
