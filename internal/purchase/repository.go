package purchase

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("purchase not found")
	ErrItemNotFound = errors.New("purchase item not found")
)

type Repository interface {
	Create(ctx context.Context, p *Purchase) error
	GetByID(ctx context.Context, id string) (*Purchase, error)
	ListByUser(ctx context.Context, userID string) ([]*Purchase, error)
	ListByDateRange(ctx context.Context, userID string, from, to time.Time) ([]*Purchase, error)
	Update(ctx context.Context, p *Purchase) error
	Delete(ctx context.Context, id string) error
}
