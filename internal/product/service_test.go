package product

import (
	"context"
	"strconv"
	"strings"
	"testing"
)

type MockRepository struct {
	byID   map[string]*Product
	nextID int
}

func NewMockRepository() *MockRepository {
	return &MockRepository{byID: make(map[string]*Product), nextID: 1}
}

func (m *MockRepository) Create(ctx context.Context, p *Product) error {
	if p.ID == "" {
		p.ID = "prod-" + strconv.Itoa(m.nextID)
		m.nextID++
	}
	m.byID[p.ID] = p
	return nil
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Product, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (m *MockRepository) List(ctx context.Context, f Filter) ([]*Product, int, error) {
	var out []*Product
	for _, p := range m.byID {
		if f.SupermarketID != "" && p.SupermarketID != f.SupermarketID {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search)) {
			continue
		}
		if f.OnSale && !p.IsOnSale {
			continue
		}
		out = append(out, p)
	}
	return out, len(out), nil
}

func (m *MockRepository) Update(ctx context.Context, p *Product) error {
	if _, ok := m.byID[p.ID]; !ok {
		return ErrNotFound
	}
	m.byID[p.ID] = p
	return nil
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func milk() *Product {
	return &Product{
		Name:          "Full Cream Milk",
		SupermarketID: "sm-1",
		Price:         d("3.10"),
		Unit:          "L",
		PackageSize:   "2L",
	}
}

func TestCreateProduct_SeedsHistoryAndDefaults(t *testing.T) {
	service := NewService(NewMockRepository())

	p, err := service.Create(context.Background(), milk())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Category != "other" || p.Currency != "AUD" {
		t.Errorf("expected defaults, got category=%q currency=%q", p.Category, p.Currency)
	}
	if !p.IsAvailable {
		t.Errorf("expected new product to be available")
	}
	if len(p.PriceHistory) != 1 || !p.PriceHistory[0].Price.Equal(d("3.10")) {
		t.Errorf("expected history seeded with listing price, got %+v", p.PriceHistory)
	}
}

func TestCreateProduct_RejectsSaleWithoutPrice(t *testing.T) {
	service := NewService(NewMockRepository())

	p := milk()
	p.IsOnSale = true
	if _, err := service.Create(context.Background(), p); err == nil {
		t.Fatal("expected error for sale without salePrice")
	}
}

func TestUpdateProduct_PriceChangeAppendsHistory(t *testing.T) {
	repo := NewMockRepository()
	service := NewService(repo)

	created, _ := service.Create(context.Background(), milk())

	in := milk()
	in.Price = d("2.90")
	updated, err := service.Update(context.Background(), created.ID, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(updated.PriceHistory) != 2 {
		t.Fatalf("expected two history rows, got %d", len(updated.PriceHistory))
	}
	if !updated.PriceHistory[1].Price.Equal(d("2.90")) {
		t.Errorf("expected new price appended")
	}
	if !updated.Price.Equal(d("2.90")) {
		t.Errorf("expected stored price 2.90, got %s", updated.Price)
	}
	if !updated.LastUpdated.After(created.LastUpdated) {
		t.Errorf("expected lastUpdated to move on price change")
	}

	// same price again, nothing appended
	again := milk()
	again.Price = d("2.90")
	updated, err = service.Update(context.Background(), created.ID, again)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(updated.PriceHistory) != 2 {
		t.Errorf("expected unchanged price to add nothing, got %d rows", len(updated.PriceHistory))
	}
}

func TestPickProduct_UsesEffectivePrice(t *testing.T) {
	repo := NewMockRepository()
	service := NewService(repo)

	p := milk()
	p.IsOnSale = true
	p.SalePrice = d("2.50")
	created, _ := service.Create(context.Background(), p)

	pick, err := service.PickProduct(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !pick.Price.Equal(d("2.50")) {
		t.Errorf("expected sale price in pick, got %s", pick.Price)
	}
	if pick.SupermarketID != "sm-1" || pick.Unit != "L" {
		t.Errorf("unexpected pick %+v", pick)
	}
}
