package purchase

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type MockRepository struct {
	byID   map[string]*Purchase
	nextID int
}

func NewMockRepository() *MockRepository {
	return &MockRepository{byID: make(map[string]*Purchase), nextID: 1}
}

func (m *MockRepository) Create(ctx context.Context, p *Purchase) error {
	if p.ID == "" {
		p.ID = "pur-" + strconv.Itoa(m.nextID)
		m.nextID++
	}
	m.byID[p.ID] = p
	return nil
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Purchase, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *p
	copied.Items = append([]Item(nil), p.Items...)
	return &copied, nil
}

func (m *MockRepository) ListByUser(ctx context.Context, userID string) ([]*Purchase, error) {
	var out []*Purchase
	for _, p := range m.byID {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MockRepository) ListByDateRange(ctx context.Context, userID string, from, to time.Time) ([]*Purchase, error) {
	var out []*Purchase
	for _, p := range m.byID {
		if p.UserID == userID && !p.Date.Before(from) && p.Date.Before(to) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MockRepository) Update(ctx context.Context, p *Purchase) error {
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

// ledgerCall records one stock adjustment.
type ledgerCall struct {
	ingredientID string
	quantity     decimal.Decimal
	unit         string
	price        decimal.Decimal
	reverse      bool
}

type spyLedger struct {
	calls []ledgerCall
}

func (s *spyLedger) ApplyPurchase(ctx context.Context, ingredientID, userID string, quantity decimal.Decimal, unit string, price decimal.Decimal) error {
	s.calls = append(s.calls, ledgerCall{ingredientID: ingredientID, quantity: quantity, unit: unit, price: price})
	return nil
}

func (s *spyLedger) ReversePurchase(ctx context.Context, ingredientID, userID string, quantity decimal.Decimal, unit string) error {
	s.calls = append(s.calls, ledgerCall{ingredientID: ingredientID, quantity: quantity, unit: unit, reverse: true})
	return nil
}

type stubUsers struct{}

func (stubUsers) Company(userID string) (string, error) {
	return "Chels Catering", nil
}

func newService() (*Service, *MockRepository, *spyLedger) {
	repo := NewMockRepository()
	ledger := &spyLedger{}
	return NewService(repo, ledger, stubUsers{}), repo, ledger
}

func groceryRun() *Purchase {
	return &Purchase{
		Supplier: "Coles",
		Category: "grocery",
		Items: []Item{
			{IngredientID: "flour", Name: "Flour 5kg", Quantity: d("5"), Unit: "kg", Price: d("12.50")},
			{Name: "Cleaning spray", Quantity: d("1"), Unit: "each", Price: d("4.00")},
		},
	}
}

func TestCreatePurchase_TotalsAndStockSideEffects(t *testing.T) {
	service, _, ledger := newService()

	p, err := service.Create(context.Background(), "user-1", groceryRun())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !p.TotalAmount.Equal(d("16.50")) {
		t.Errorf("expected total 16.50, got %s", p.TotalAmount)
	}

	// only the linked line reaches the ledger
	if len(ledger.calls) != 1 {
		t.Fatalf("expected one ledger call, got %d", len(ledger.calls))
	}
	call := ledger.calls[0]
	if call.ingredientID != "flour" || call.reverse || !call.quantity.Equal(d("5")) || !call.price.Equal(d("12.50")) {
		t.Errorf("unexpected ledger call %+v", call)
	}
}

func TestCreatePurchase_ExplicitTotalWins(t *testing.T) {
	service, _, _ := newService()

	p := groceryRun()
	p.TotalAmount = d("20.00")

	created, err := service.Create(context.Background(), "user-1", p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created.TotalAmount.Equal(d("20.00")) {
		t.Errorf("expected caller total kept, got %s", created.TotalAmount)
	}
}

func TestDeletePurchase_ReversesLinkedLines(t *testing.T) {
	service, _, ledger := newService()

	created, _ := service.Create(context.Background(), "user-1", groceryRun())
	ledger.calls = nil

	if err := service.Delete(context.Background(), created.ID, "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ledger.calls) != 1 {
		t.Fatalf("expected one reversal, got %d", len(ledger.calls))
	}
	if !ledger.calls[0].reverse || ledger.calls[0].ingredientID != "flour" {
		t.Errorf("unexpected ledger call %+v", ledger.calls[0])
	}
}

func TestAddUpdateRemoveItem_MaintainsTotal(t *testing.T) {
	service, _, ledger := newService()

	created, _ := service.Create(context.Background(), "user-1", groceryRun())
	ledger.calls = nil

	p, err := service.AddItem(context.Background(), created.ID, "user-1", Item{
		IngredientID: "butter",
		Name:         "Butter",
		Quantity:     d("2"),
		Unit:         "kg",
		Price:        d("9.00"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.TotalAmount.Equal(d("25.50")) {
		t.Errorf("expected total 25.50 after add, got %s", p.TotalAmount)
	}
	if len(ledger.calls) != 1 || ledger.calls[0].ingredientID != "butter" {
		t.Errorf("expected stock apply for added line, got %+v", ledger.calls)
	}

	newPrice := d("10.00")
	item := p.Items[len(p.Items)-1]
	p, err = service.UpdateItem(context.Background(), created.ID, item.ID, "user-1", ItemPatch{Price: &newPrice})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.TotalAmount.Equal(d("26.50")) {
		t.Errorf("expected total 26.50 after reprice, got %s", p.TotalAmount)
	}

	p, err = service.RemoveItem(context.Background(), created.ID, item.ID, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.TotalAmount.Equal(d("16.50")) {
		t.Errorf("expected total back to 16.50 after remove, got %s", p.TotalAmount)
	}
}

func TestUpdatePurchase_NoStockReplay(t *testing.T) {
	service, _, ledger := newService()

	created, _ := service.Create(context.Background(), "user-1", groceryRun())
	ledger.calls = nil

	in := groceryRun()
	in.Supplier = "Woolworths"
	updated, err := service.Update(context.Background(), created.ID, "user-1", in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Supplier != "Woolworths" {
		t.Errorf("expected supplier updated")
	}
	if len(ledger.calls) != 0 {
		t.Errorf("expected no ledger traffic on purchase update, got %d calls", len(ledger.calls))
	}
}

func TestMonthlyReport_Aggregates(t *testing.T) {
	service, _, _ := newService()

	march := func(day int) time.Time {
		return time.Date(2026, 3, day, 10, 0, 0, 0, time.Local)
	}

	service.Create(context.Background(), "user-1", &Purchase{
		Date: march(3), Supplier: "Coles", Category: "grocery", PaymentMethod: "cash",
		Items: []Item{{Name: "A", Quantity: d("1"), Unit: "each", Price: d("10")}},
	})
	service.Create(context.Background(), "user-1", &Purchase{
		Date: march(3), Supplier: "Butcher", Category: "specialty", PaymentMethod: "credit_card",
		Items: []Item{{Name: "B", Quantity: d("1"), Unit: "each", Price: d("40")}},
	})
	service.Create(context.Background(), "user-1", &Purchase{
		Date: march(20), Supplier: "Coles", Category: "grocery", PaymentMethod: "cash",
		Items: []Item{{Name: "C", Quantity: d("1"), Unit: "each", Price: d("15")}},
	})
	// outside the month, must not count
	service.Create(context.Background(), "user-1", &Purchase{
		Date: time.Date(2026, 4, 1, 0, 0, 0, 0, time.Local), Category: "grocery",
		Items: []Item{{Name: "D", Quantity: d("1"), Unit: "each", Price: d("99")}},
	})

	report, err := service.Monthly(context.Background(), "user-1", 2026, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.TotalPurchases != 3 || !report.TotalSpent.Equal(d("65")) {
		t.Fatalf("expected 3 purchases totalling 65, got %d / %s", report.TotalPurchases, report.TotalSpent)
	}
	if !report.CategoryTotals["grocery"].Equal(d("25")) {
		t.Errorf("expected grocery total 25, got %s", report.CategoryTotals["grocery"])
	}
	if !report.SupplierTotals["Coles"].Equal(d("25")) {
		t.Errorf("expected Coles total 25, got %s", report.SupplierTotals["Coles"])
	}
	if !report.PaymentMethodTotals["credit_card"].Equal(d("40")) {
		t.Errorf("expected credit_card total 40, got %s", report.PaymentMethodTotals["credit_card"])
	}

	if len(report.DailySpending) != 2 {
		t.Fatalf("expected 2 daily buckets, got %d", len(report.DailySpending))
	}
	if report.DailySpending[0].Day != 3 || !report.DailySpending[0].Amount.Equal(d("50")) {
		t.Errorf("unexpected first bucket %+v", report.DailySpending[0])
	}
}

func TestItemizedReceipt(t *testing.T) {
	service, _, _ := newService()

	created, _ := service.Create(context.Background(), "user-1", groceryRun())

	receipt, err := service.ItemizedReceipt(context.Background(), created.ID, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if receipt.Company != "Chels Catering" {
		t.Errorf("expected company on receipt, got %q", receipt.Company)
	}
	if len(receipt.Items) != 2 || !receipt.TotalAmount.Equal(d("16.50")) {
		t.Errorf("unexpected receipt %+v", receipt)
	}
}
