package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	"idea-portal/internal/models"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// EmployeeFile reads the externally supplied employee list. The file is
// re-read on every call; this service never writes it.
type EmployeeFile struct {
	fs     afero.Fs
	path   string
	logger *zap.Logger
}

func NewEmployeeFile(fs afero.Fs, path string, logger *zap.Logger) *EmployeeFile {
	return &EmployeeFile{
		fs:     fs,
		path:   path,
		logger: logger,
	}
}

func (f *EmployeeFile) Load(ctx context.Context) ([]models.Employee, error) {
	data, err := afero.ReadFile(f.fs, f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			f.logger.Warn("employee file not found, treating as empty", zap.String("path", f.path))
			return []models.Employee{}, nil
		}
		return nil, &Error{Op: "load employees", Err: err}
	}

	var employees []models.Employee
	if err := json.Unmarshal(data, &employees); err != nil {
		return nil, &Error{Op: "load employees", Err: err}
	}
	if employees == nil {
		employees = []models.Employee{}
	}
	return employees, nil
}
