package storage

import (
	"context"
	"fmt"

	"idea-portal/internal/models"
)

// IdeaStore persists the whole idea collection as a single ordered document.
// Load returns an empty, non-nil slice when nothing has been saved yet.
type IdeaStore interface {
	Load(ctx context.Context) ([]models.Idea, error)
	Save(ctx context.Context, ideas []models.Idea) error
}

// Error wraps a failure of the underlying storage medium.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
