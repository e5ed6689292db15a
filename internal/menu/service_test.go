package menu

import (
	"context"
	"strconv"
	"testing"

	"github.com/r3d3y3s79/chels-catering-financial-tracker/internal/core"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type MockRepository struct {
	byID   map[string]*Menu
	nextID int
}

func NewMockRepository() *MockRepository {
	return &MockRepository{byID: make(map[string]*Menu), nextID: 1}
}

func (m *MockRepository) Create(ctx context.Context, menu *Menu) error {
	if menu.ID == "" {
		menu.ID = "menu-" + strconv.Itoa(m.nextID)
		m.nextID++
	}
	m.byID[menu.ID] = menu
	return nil
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Menu, error) {
	menu, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *menu
	copied.Items = append([]Item(nil), menu.Items...)
	return &copied, nil
}

func (m *MockRepository) ListByUser(ctx context.Context, userID string) ([]*Menu, error) {
	var out []*Menu
	for _, menu := range m.byID {
		if menu.UserID == userID {
			out = append(out, menu)
		}
	}
	return out, nil
}

func (m *MockRepository) Update(ctx context.Context, menu *Menu) error {
	if _, ok := m.byID[menu.ID]; !ok {
		return ErrNotFound
	}
	m.byID[menu.ID] = menu
	return nil
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

type stubRecipeCosting struct {
	costs map[string]decimal.Decimal
}

func (s *stubRecipeCosting) TotalCost(ctx context.Context, recipeID, userID string) (decimal.Decimal, error) {
	cost, ok := s.costs[recipeID]
	if !ok {
		return decimal.Zero, core.ErrNotFound
	}
	return cost, nil
}

func newService(costs map[string]decimal.Decimal) (*Service, *MockRepository) {
	repo := NewMockRepository()
	return NewService(repo, &stubRecipeCosting{costs: costs}), repo
}

func TestCreateMenu_SnapshotsRecipeCosts(t *testing.T) {
	service, _ := newService(map[string]decimal.Decimal{"pancakes": d("6.50")})

	m, err := service.Create(context.Background(), "user-1", &Menu{
		Name: "Breakfast",
		Items: []Item{
			{RecipeID: "pancakes", Name: "Pancake stack", Price: d("15.00")},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	item := m.Items[0]
	if !item.Cost.Equal(d("6.50")) {
		t.Errorf("expected snapshot cost 6.50, got %s", item.Cost)
	}
	// (15 - 6.50) / 15 * 100
	expected := d("8.50").Div(d("15")).Mul(d("100"))
	if !item.ProfitMargin.Equal(expected) {
		t.Errorf("expected margin %s, got %s", expected, item.ProfitMargin)
	}
	if !m.TotalRevenue.Equal(d("15")) || !m.TotalCost.Equal(d("6.50")) {
		t.Errorf("unexpected totals revenue=%s cost=%s", m.TotalRevenue, m.TotalCost)
	}
}

func TestCreateMenu_MissingRecipeLeavesCostZero(t *testing.T) {
	service, _ := newService(nil)

	m, err := service.Create(context.Background(), "user-1", &Menu{
		Name:  "Specials",
		Items: []Item{{RecipeID: "gone", Name: "Mystery dish", Price: d("12")}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !m.Items[0].Cost.Equal(decimal.Zero) {
		t.Errorf("expected cost zero for vanished recipe, got %s", m.Items[0].Cost)
	}
}

func TestMenuSnapshot_StaleAfterRecipeReprice(t *testing.T) {
	costs := map[string]decimal.Decimal{"pancakes": d("6.50")}
	service, _ := newService(costs)

	created, _ := service.Create(context.Background(), "user-1", &Menu{
		Name:  "Breakfast",
		Items: []Item{{RecipeID: "pancakes", Name: "Pancake stack", Price: d("15")}},
	})

	costs["pancakes"] = d("9.00")

	fetched, err := service.Get(context.Background(), created.ID, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !fetched.Items[0].Cost.Equal(d("6.50")) {
		t.Errorf("expected stale snapshot 6.50, got %s", fetched.Items[0].Cost)
	}

	// touching the item refreshes its snapshot
	newPrice := d("16")
	updated, err := service.UpdateItem(context.Background(), created.ID, created.Items[0].ID, "user-1", ItemPatch{Price: &newPrice})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.Items[0].Cost.Equal(d("9.00")) {
		t.Errorf("expected refreshed cost 9.00, got %s", updated.Items[0].Cost)
	}
}

func TestAddAndRemoveItem_RecomputesTotals(t *testing.T) {
	service, _ := newService(map[string]decimal.Decimal{"soup": d("2")})

	created, _ := service.Create(context.Background(), "user-1", &Menu{Name: "Lunch"})

	m, err := service.AddItem(context.Background(), created.ID, "user-1", Item{
		RecipeID: "soup",
		Name:     "Soup of the day",
		Price:    d("8"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.TotalRevenue.Equal(d("8")) || !m.TotalCost.Equal(d("2")) {
		t.Errorf("unexpected totals after add: revenue=%s cost=%s", m.TotalRevenue, m.TotalCost)
	}
	if !m.AverageProfitMargin.Equal(d("75")) {
		t.Errorf("expected average margin 75, got %s", m.AverageProfitMargin)
	}

	m, err = service.RemoveItem(context.Background(), created.ID, m.Items[0].ID, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Items) != 0 || !m.TotalRevenue.Equal(decimal.Zero) {
		t.Errorf("expected empty menu with zero totals, got %d items revenue=%s", len(m.Items), m.TotalRevenue)
	}
}

func TestUpdateItem_MissingItem(t *testing.T) {
	service, _ := newService(nil)

	created, _ := service.Create(context.Background(), "user-1", &Menu{Name: "Lunch"})

	if _, err := service.UpdateItem(context.Background(), created.ID, "nope", "user-1", ItemPatch{}); err != ErrItemNotFound {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestAnalyze_Scenarios(t *testing.T) {
	service, _ := newService(nil)

	created, _ := service.Create(context.Background(), "user-1", &Menu{
		Name: "Dinner",
		Items: []Item{
			{Name: "Steak", Price: d("60"), Cost: d("30")},
			{Name: "Salad", Price: d("40"), Cost: d("20")},
		},
	})

	analysis, err := service.Analyze(context.Background(), created.ID, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !analysis.TotalRevenue.Equal(d("100")) || !analysis.TotalCost.Equal(d("50")) {
		t.Fatalf("unexpected totals revenue=%s cost=%s", analysis.TotalRevenue, analysis.TotalCost)
	}
	if !analysis.ProfitMargin.Equal(d("50")) {
		t.Errorf("expected margin 50, got %s", analysis.ProfitMargin)
	}

	up := analysis.Scenarios["increasePrice"]
	if !up.NewRevenue.Equal(d("110")) || !up.NewProfit.Equal(d("60")) {
		t.Errorf("unexpected increasePrice scenario %+v", up)
	}
	expectedUpMargin := d("60").Div(d("110")).Mul(d("100"))
	if !up.NewProfitMargin.Equal(expectedUpMargin) {
		t.Errorf("expected increasePrice margin %s, got %s", expectedUpMargin, up.NewProfitMargin)
	}

	down := analysis.Scenarios["decreasePrice"]
	if !down.NewRevenue.Equal(d("90")) || !down.NewProfit.Equal(d("40")) {
		t.Errorf("unexpected decreasePrice scenario %+v", down)
	}

	costDown := analysis.Scenarios["decreaseCost"]
	if !costDown.NewCost.Equal(d("45")) || !costDown.NewProfit.Equal(d("55")) {
		t.Errorf("unexpected decreaseCost scenario %+v", costDown)
	}
	if !costDown.NewProfitMargin.Equal(d("55")) {
		t.Errorf("expected decreaseCost margin 55, got %s", costDown.NewProfitMargin)
	}
}

func TestProfitability_RanksMenusAndItems(t *testing.T) {
	service, _ := newService(nil)

	service.Create(context.Background(), "user-1", &Menu{
		Name: "Lean",
		Items: []Item{
			{Name: "Water", Price: d("4"), Cost: d("0.20")},
			{Name: "Bread", Price: d("5"), Cost: d("4")},
		},
	})
	service.Create(context.Background(), "user-1", &Menu{
		Name:  "Heavy",
		Items: []Item{{Name: "Roast", Price: d("30"), Cost: d("27")}},
	})

	report, err := service.Profitability(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report) != 2 {
		t.Fatalf("expected 2 menus, got %d", len(report))
	}

	if report[0].Name != "Lean" {
		t.Errorf("expected best margin menu first, got %s", report[0].Name)
	}
	if report[0].MostProfitableItem.Name != "Water" {
		t.Errorf("expected Water as most profitable, got %s", report[0].MostProfitableItem.Name)
	}
	if report[0].LeastProfitableItem.Name != "Bread" {
		t.Errorf("expected Bread as least profitable, got %s", report[0].LeastProfitableItem.Name)
	}
}
