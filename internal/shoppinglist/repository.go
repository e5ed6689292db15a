package shoppinglist

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("shopping list not found")
	ErrItemNotFound = errors.New("shopping list item not found")
)

type Repository interface {
	Create(ctx context.Context, l *ShoppingList) error
	GetByID(ctx context.Context, id string) (*ShoppingList, error)
	ListByUser(ctx context.Context, userID string) ([]*ShoppingList, error)
	FindActive(ctx context.Context, userID string) (*ShoppingList, error)
	Update(ctx context.Context, l *ShoppingList) error
	Delete(ctx context.Context, id string) error
}
