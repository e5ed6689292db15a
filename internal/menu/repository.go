package menu

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("menu not found")
	ErrItemNotFound = errors.New("menu item not found")
)

type Repository interface {
	Create(ctx context.Context, m *Menu) error
	GetByID(ctx context.Context, id string) (*Menu, error)
	ListByUser(ctx context.Context, userID string) ([]*Menu, error)
	Update(ctx context.Context, m *Menu) error
	Delete(ctx context.Context, id string) error
}
