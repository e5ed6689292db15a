package supermarket

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("supermarket not found")

type Repository interface {
	Create(ctx context.Context, s *Supermarket) error
	GetByID(ctx context.Context, id string) (*Supermarket, error)
	FindByName(ctx context.Context, name string) (*Supermarket, error)
	List(ctx context.Context) ([]*Supermarket, error)
	Update(ctx context.Context, s *Supermarket) error
	Delete(ctx context.Context, id string) error
}
