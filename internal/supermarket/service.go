package supermarket

import (
	"context"
	"errors"
)

var ErrDuplicateName = errors.New("supermarket already exists")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, in *Supermarket) (*Supermarket, error) {
	if in.Name == "" {
		return nil, errors.New("name is required")
	}

	if _, err := s.repo.FindByName(ctx, in.Name); err == nil {
		return nil, ErrDuplicateName
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	in.Active = true
	if err := s.repo.Create(ctx, in); err != nil {
		return nil, err
	}
	return in, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Supermarket, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Supermarket, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id string, in *Supermarket) (*Supermarket, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name == "" {
		in.Name = existing.Name
	}
	if in.Name != existing.Name {
		if _, err := s.repo.FindByName(ctx, in.Name); err == nil {
			return nil, ErrDuplicateName
		} else if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}

	in.ID = existing.ID
	in.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, in); err != nil {
		return nil, err
	}
	return in, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
