package supermarket

import (
	"context"
	"strconv"
	"testing"
)

type MockRepository struct {
	byID   map[string]*Supermarket
	nextID int
}

func NewMockRepository() *MockRepository {
	return &MockRepository{byID: make(map[string]*Supermarket), nextID: 1}
}

func (m *MockRepository) Create(ctx context.Context, s *Supermarket) error {
	if s.ID == "" {
		s.ID = "sm-" + strconv.Itoa(m.nextID)
		m.nextID++
	}
	m.byID[s.ID] = s
	return nil
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Supermarket, error) {
	s, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (m *MockRepository) FindByName(ctx context.Context, name string) (*Supermarket, error) {
	for _, s := range m.byID {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MockRepository) List(ctx context.Context) ([]*Supermarket, error) {
	var out []*Supermarket
	for _, s := range m.byID {
		out = append(out, s)
	}
	return out, nil
}

func (m *MockRepository) Update(ctx context.Context, s *Supermarket) error {
	if _, ok := m.byID[s.ID]; !ok {
		return ErrNotFound
	}
	m.byID[s.ID] = s
	return nil
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func TestCreateSupermarket_Success(t *testing.T) {
	service := NewService(NewMockRepository())

	s, err := service.Create(context.Background(), &Supermarket{Name: "Coles"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !s.Active {
		t.Errorf("expected new supermarket to be active")
	}
}

func TestCreateSupermarket_DuplicateName(t *testing.T) {
	service := NewService(NewMockRepository())

	if _, err := service.Create(context.Background(), &Supermarket{Name: "Coles"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := service.Create(context.Background(), &Supermarket{Name: "Coles"}); err != ErrDuplicateName {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

func TestUpdateSupermarket_RenameCollision(t *testing.T) {
	service := NewService(NewMockRepository())

	a, _ := service.Create(context.Background(), &Supermarket{Name: "Coles"})
	service.Create(context.Background(), &Supermarket{Name: "Woolworths"})

	if _, err := service.Update(context.Background(), a.ID, &Supermarket{Name: "Woolworths"}); err != ErrDuplicateName {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}

	updated, err := service.Update(context.Background(), a.ID, &Supermarket{Name: "Coles Express"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != "Coles Express" {
		t.Errorf("expected rename to apply, got %q", updated.Name)
	}
}

func TestDeleteSupermarket_Missing(t *testing.T) {
	service := NewService(NewMockRepository())

	if err := service.Delete(context.Background(), "gone"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
