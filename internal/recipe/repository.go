package recipe

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("recipe not found")

type Repository interface {
	Create(ctx context.Context, r *Recipe) error
	GetByID(ctx context.Context, id string) (*Recipe, error)
	ListByUser(ctx context.Context, userID string) ([]*Recipe, error)
	Update(ctx context.Context, r *Recipe) error
	Delete(ctx context.Context, id string) error
}
