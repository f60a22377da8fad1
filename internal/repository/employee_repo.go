package repository

import (
	"context"

	"idea-portal/internal/models"
)

type EmployeeLoader interface {
	Load(ctx context.Context) ([]models.Employee, error)
}

type EmployeeRepo struct {
	source EmployeeLoader
}

func NewEmployeeRepo(source EmployeeLoader) *EmployeeRepo {
	return &EmployeeRepo{
		source: source,
	}
}

func (r *EmployeeRepo) List(ctx context.Context) ([]models.Employee, error) {
	return r.source.Load(ctx)
}

// FindByID returns nil, nil when no employee has the given id.
func (r *EmployeeRepo) FindByID(ctx context.Context, id string) (*models.Employee, error) {
	employees, err := r.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range employees {
		if employees[i].ID == id {
			return &employees[i], nil
		}
	}
	return nil, nil
}
