package ingredient

import (
	"context"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
)

// --------------------------------------------------
// Mock Repository
// --------------------------------------------------

type MockRepository struct {
	byID   map[string]*Ingredient
	nextID int
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		byID:   make(map[string]*Ingredient),
		nextID: 1,
	}
}

func (m *MockRepository) Create(ctx context.Context, ing *Ingredient) error {
	if ing.ID == "" {
		ing.ID = "ing-" + strconv.Itoa(m.nextID)
		m.nextID++
	}
	m.byID[ing.ID] = ing
	return nil
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Ingredient, error) {
	ing, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *ing
	return &copied, nil
}

func (m *MockRepository) ListByUser(ctx context.Context, userID string) ([]*Ingredient, error) {
	var out []*Ingredient
	for _, ing := range m.byID {
		if ing.UserID == userID {
			out = append(out, ing)
		}
	}
	return out, nil
}

func (m *MockRepository) Update(ctx context.Context, ing *Ingredient) error {
	if _, ok := m.byID[ing.ID]; !ok {
		return ErrNotFound
	}
	m.byID[ing.ID] = ing
	return nil
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *MockRepository) FindByBarcode(ctx context.Context, userID, barcode string) (*Ingredient, error) {
	for _, ing := range m.byID {
		if ing.UserID == userID && ing.Barcode == barcode {
			return ing, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MockRepository) ListLowStock(ctx context.Context, userID string, threshold decimal.Decimal) ([]*Ingredient, error) {
	var out []*Ingredient
	for _, ing := range m.byID {
		if ing.UserID == userID && ing.InStock && ing.StockQuantity.LessThan(threshold) {
			out = append(out, ing)
		}
	}
	return out, nil
}

// --------------------------------------------------
// TESTS
// --------------------------------------------------

func validFlour() *Ingredient {
	return &Ingredient{
		Name:            "Flour",
		PurchasePrice:   d("10"),
		PurchaseUnit:    "kg",
		RecipeUnit:      "g",
		ConversionRatio: d("1000"),
	}
}

func TestCreateIngredient_Success(t *testing.T) {
	service := NewService(NewMockRepository())

	ing, err := service.Create(context.Background(), "user-1", validFlour())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if ing.ID == "" {
		t.Errorf("expected ID to be set")
	}
	if ing.Category != "other" {
		t.Errorf("expected default category 'other', got %q", ing.Category)
	}
	if ing.InStock {
		t.Errorf("expected zero stock to mean not in stock")
	}
}

func TestCreateIngredient_RejectsBadConversionRatio(t *testing.T) {
	service := NewService(NewMockRepository())

	ing := validFlour()
	ing.ConversionRatio = decimal.Zero
	if _, err := service.Create(context.Background(), "user-1", ing); err == nil {
		t.Fatal("expected error for zero conversion ratio")
	}

	ing = validFlour()
	ing.ConversionRatio = d("-5")
	if _, err := service.Create(context.Background(), "user-1", ing); err == nil {
		t.Fatal("expected error for negative conversion ratio")
	}
}

func TestCreateIngredient_RejectsBadWastage(t *testing.T) {
	service := NewService(NewMockRepository())

	ing := validFlour()
	ing.WastagePercentage = d("120")
	if _, err := service.Create(context.Background(), "user-1", ing); err == nil {
		t.Fatal("expected error for wastage over 100")
	}
}

func TestCreateIngredient_RejectsNegativeStock(t *testing.T) {
	service := NewService(NewMockRepository())

	ing := validFlour()
	ing.StockQuantity = d("-3")
	if _, err := service.Create(context.Background(), "user-1", ing); err == nil {
		t.Fatal("expected error for negative stockQuantity")
	}
}

func TestCreateIngredient_IgnoresClientHistory(t *testing.T) {
	service := NewService(NewMockRepository())

	ing := validFlour()
	ing.PriceHistory = []PriceHistoryEntry{{Supermarket: "fake", Price: d("1")}}
	ing.Prices = []PriceQuote{{Supermarket: "coles", Price: d("9"), PriceDate: day(1)}}

	created, err := service.Create(context.Background(), "user-1", ing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(created.PriceHistory) != 1 || created.PriceHistory[0].Supermarket != "coles" {
		t.Errorf("expected history rebuilt from quotes, got %+v", created.PriceHistory)
	}
}

func TestGetIngredient_OwnershipEnforced(t *testing.T) {
	repo := NewMockRepository()
	service := NewService(repo)

	created, _ := service.Create(context.Background(), "user-1", validFlour())

	if _, err := service.Get(context.Background(), created.ID, "user-2"); err != ErrNotOwner {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

func TestRecordPrice_UpsertsAndSaves(t *testing.T) {
	repo := NewMockRepository()
	service := NewService(repo)

	created, _ := service.Create(context.Background(), "user-1", validFlour())

	updated, err := service.RecordPrice(context.Background(), created.ID, "user-1", "coles", d("9.20"), day(1), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(updated.Prices) != 1 || len(updated.PriceHistory) != 1 {
		t.Fatalf("expected one quote and one history row, got %d/%d", len(updated.Prices), len(updated.PriceHistory))
	}

	stored, _ := repo.GetByID(context.Background(), created.ID)
	if len(stored.PriceHistory) != 1 {
		t.Errorf("expected history persisted")
	}
}

func TestApplyPurchase_MissingIngredientSkipped(t *testing.T) {
	service := NewService(NewMockRepository())

	err := service.ApplyPurchase(context.Background(), "gone", "user-1", d("2"), "kg", d("10"))
	if err != nil {
		t.Fatalf("expected missing ingredient to be skipped, got %v", err)
	}
}

func TestApplyAndReversePurchase_Persisted(t *testing.T) {
	repo := NewMockRepository()
	service := NewService(repo)

	created, _ := service.Create(context.Background(), "user-1", validFlour())

	if err := service.ApplyPurchase(context.Background(), created.ID, "user-1", d("2"), "kg", d("9")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, _ := repo.GetByID(context.Background(), created.ID)
	if !stored.StockQuantity.Equal(d("2")) || !stored.InStock {
		t.Fatalf("expected stock 2/in stock, got %s/%v", stored.StockQuantity, stored.InStock)
	}

	if err := service.ReversePurchase(context.Background(), created.ID, "user-1", d("2"), "kg"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, _ = repo.GetByID(context.Background(), created.ID)
	if !stored.StockQuantity.Equal(decimal.Zero) || stored.InStock {
		t.Fatalf("expected stock back to zero/out of stock, got %s/%v", stored.StockQuantity, stored.InStock)
	}
}

func TestBarcodeLookup(t *testing.T) {
	repo := NewMockRepository()
	service := NewService(repo)

	ing := validFlour()
	ing.Barcode = "9310072001234"
	created, _ := service.Create(context.Background(), "user-1", ing)

	found, existing, err := service.BarcodeLookup(context.Background(), "user-1", "9310072001234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !existing || found.ID != created.ID {
		t.Errorf("expected existing ingredient match")
	}

	stub, existing, err := service.BarcodeLookup(context.Background(), "user-1", "0001112223334")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if existing {
		t.Errorf("expected prefill stub for unknown barcode")
	}
	if stub.Name != "Product 0001" {
		t.Errorf("unexpected stub name %q", stub.Name)
	}
}
