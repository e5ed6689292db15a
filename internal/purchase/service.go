package purchase

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/r3d3y3s79/chels-catering-financial-tracker/internal/core"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotOwner = errors.New("purchase does not belong to user")

type Service struct {
	repo  Repository
	stock core.IngredientStock
	users core.UserProfile
}

func NewService(repo Repository, stock core.IngredientStock, users core.UserProfile) *Service {
	return &Service{repo: repo, stock: stock, users: users}
}

func validateItem(item *Item) error {
	if item.Name == "" {
		return errors.New("item name is required")
	}
	if item.Unit == "" {
		return errors.New("item unit is required")
	}
	if item.Quantity.IsNegative() {
		return errors.New("item quantity cannot be negative")
	}
	if item.Price.IsNegative() {
		return errors.New("item price cannot be negative")
	}
	return nil
}

// Create records the purchase and pushes each linked line into the
// ingredient stock ledger. A line whose ingredient has been deleted
// still lands in the purchase; only the ledger write is skipped.
func (s *Service) Create(ctx context.Context, userID string, p *Purchase) (*Purchase, error) {
	p.UserID = userID
	if p.Date.IsZero() {
		p.Date = time.Now()
	}
	if p.Category == "" {
		p.Category = "other"
	}
	if p.PaymentMethod == "" {
		p.PaymentMethod = "other"
	}

	for i := range p.Items {
		if err := validateItem(&p.Items[i]); err != nil {
			return nil, err
		}
		if p.Items[i].ID == "" {
			p.Items[i].ID = uuid.New().String()
		}
	}

	if p.TotalAmount.LessThanOrEqual(decimal.Zero) {
		p.TotalAmount = p.SumItems()
	}

	for _, item := range p.Items {
		if item.IngredientID == "" {
			continue
		}
		if err := s.stock.ApplyPurchase(ctx, item.IngredientID, userID, item.Quantity, item.Unit, item.Price); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id, userID string) (*Purchase, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, ErrNotOwner
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]*Purchase, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Update replaces the purchase fields without replaying stock deltas:
// the ledger keeps the quantities from the original recording.
func (s *Service) Update(ctx context.Context, id, userID string, in *Purchase) (*Purchase, error) {
	existing, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	in.ID = existing.ID
	in.UserID = existing.UserID
	in.CreatedAt = existing.CreatedAt
	if in.Date.IsZero() {
		in.Date = existing.Date
	}
	if in.Category == "" {
		in.Category = existing.Category
	}
	if in.PaymentMethod == "" {
		in.PaymentMethod = existing.PaymentMethod
	}

	if in.Items == nil {
		in.Items = existing.Items
		if in.TotalAmount.LessThanOrEqual(decimal.Zero) {
			in.TotalAmount = existing.TotalAmount
		}
	} else {
		for i := range in.Items {
			if err := validateItem(&in.Items[i]); err != nil {
				return nil, err
			}
			if in.Items[i].ID == "" {
				in.Items[i].ID = uuid.New().String()
			}
		}
		if in.TotalAmount.LessThanOrEqual(decimal.Zero) {
			in.TotalAmount = in.SumItems()
		}
	}

	if err := s.repo.Update(ctx, in); err != nil {
		return nil, err
	}
	return in, nil
}

// Delete reverses every linked line in the stock ledger, then removes
// the purchase.
func (s *Service) Delete(ctx context.Context, id, userID string) error {
	p, err := s.Get(ctx, id, userID)
	if err != nil {
		return err
	}

	for _, item := range p.Items {
		if item.IngredientID == "" {
			continue
		}
		if err := s.stock.ReversePurchase(ctx, item.IngredientID, userID, item.Quantity, item.Unit); err != nil {
			return err
		}
	}

	return s.repo.Delete(ctx, id)
}

func (s *Service) AddItem(ctx context.Context, purchaseID, userID string, item Item) (*Purchase, error) {
	p, err := s.Get(ctx, purchaseID, userID)
	if err != nil {
		return nil, err
	}

	if err := validateItem(&item); err != nil {
		return nil, err
	}
	item.ID = uuid.New().String()

	if item.IngredientID != "" {
		if err := s.stock.ApplyPurchase(ctx, item.IngredientID, userID, item.Quantity, item.Unit, item.Price); err != nil {
			return nil, err
		}
	}

	p.Items = append(p.Items, item)
	p.TotalAmount = p.TotalAmount.Add(item.Price)

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ItemPatch carries partial item updates; nil fields are left alone.
type ItemPatch struct {
	IngredientID *string          `json:"ingredient"`
	Name         *string          `json:"name"`
	Quantity     *decimal.Decimal `json:"quantity"`
	Unit         *string          `json:"unit"`
	Price        *decimal.Decimal `json:"price"`
	Notes        *string          `json:"notes"`
}

func (s *Service) UpdateItem(ctx context.Context, purchaseID, itemID, userID string, patch ItemPatch) (*Purchase, error) {
	p, err := s.Get(ctx, purchaseID, userID)
	if err != nil {
		return nil, err
	}

	idx := p.ItemByID(itemID)
	if idx == -1 {
		return nil, ErrItemNotFound
	}
	item := &p.Items[idx]
	oldPrice := item.Price

	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Quantity != nil {
		item.Quantity = *patch.Quantity
	}
	if patch.Unit != nil {
		item.Unit = *patch.Unit
	}
	if patch.Price != nil {
		item.Price = *patch.Price
	}
	if patch.Notes != nil {
		item.Notes = *patch.Notes
	}
	if patch.IngredientID != nil {
		item.IngredientID = *patch.IngredientID
	}

	if err := validateItem(item); err != nil {
		return nil, err
	}

	p.TotalAmount = p.TotalAmount.Sub(oldPrice).Add(item.Price)

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) RemoveItem(ctx context.Context, purchaseID, itemID, userID string) (*Purchase, error) {
	p, err := s.Get(ctx, purchaseID, userID)
	if err != nil {
		return nil, err
	}

	idx := p.ItemByID(itemID)
	if idx == -1 {
		return nil, ErrItemNotFound
	}

	p.TotalAmount = p.TotalAmount.Sub(p.Items[idx].Price)
	p.Items = append(p.Items[:idx], p.Items[idx+1:]...)

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// --------------------------------------------------
// Reports
// --------------------------------------------------

type DailySpend struct {
	Day    int             `json:"day"`
	Amount decimal.Decimal `json:"amount"`
}

type MonthlyReport struct {
	Year                int                        `json:"year"`
	Month               int                        `json:"month"`
	TotalPurchases      int                        `json:"totalPurchases"`
	TotalSpent          decimal.Decimal            `json:"totalSpent"`
	CategoryTotals      map[string]decimal.Decimal `json:"categoryTotals"`
	SupplierTotals      map[string]decimal.Decimal `json:"supplierTotals"`
	PaymentMethodTotals map[string]decimal.Decimal `json:"paymentMethodTotals"`
	DailySpending       []DailySpend               `json:"dailySpending"`
}

// Monthly aggregates a calendar month of purchases: totals by category,
// supplier and payment method plus a per-day series for charting.
func (s *Service) Monthly(ctx context.Context, userID string, year, month int) (*MonthlyReport, error) {
	now := time.Now()
	if year == 0 {
		year = now.Year()
	}
	if month < 1 || month > 12 {
		month = int(now.Month())
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 1, 0)

	purchases, err := s.repo.ListByDateRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	report := &MonthlyReport{
		Year:                year,
		Month:               month,
		TotalPurchases:      len(purchases),
		TotalSpent:          decimal.Zero,
		CategoryTotals:      make(map[string]decimal.Decimal),
		SupplierTotals:      make(map[string]decimal.Decimal),
		PaymentMethodTotals: make(map[string]decimal.Decimal),
	}

	daily := make(map[int]decimal.Decimal)
	for _, p := range purchases {
		report.TotalSpent = report.TotalSpent.Add(p.TotalAmount)

		category := p.Category
		if category == "" {
			category = "other"
		}
		report.CategoryTotals[category] = report.CategoryTotals[category].Add(p.TotalAmount)

		supplier := p.Supplier
		if supplier == "" {
			supplier = "unknown"
		}
		report.SupplierTotals[supplier] = report.SupplierTotals[supplier].Add(p.TotalAmount)

		method := p.PaymentMethod
		if method == "" {
			method = "other"
		}
		report.PaymentMethodTotals[method] = report.PaymentMethodTotals[method].Add(p.TotalAmount)

		day := p.Date.Day()
		daily[day] = daily[day].Add(p.TotalAmount)
	}

	for day, amount := range daily {
		report.DailySpending = append(report.DailySpending, DailySpend{Day: day, Amount: amount})
	}
	sort.Slice(report.DailySpending, func(i, j int) bool {
		return report.DailySpending[i].Day < report.DailySpending[j].Day
	})

	return report, nil
}

type ReceiptItem struct {
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
	Price    decimal.Decimal `json:"price"`
}

type Receipt struct {
	PurchaseID    string          `json:"purchaseId"`
	Date          time.Time       `json:"date"`
	Supplier      string          `json:"supplier,omitempty"`
	Company       string          `json:"company,omitempty"`
	Items         []ReceiptItem   `json:"items"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	PaymentMethod string          `json:"paymentMethod"`
	Notes         string          `json:"notes,omitempty"`
}

// ItemizedReceipt renders a purchase as a printable receipt headed with
// the user's company name.
func (s *Service) ItemizedReceipt(ctx context.Context, id, userID string) (*Receipt, error) {
	p, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	company, err := s.users.Company(userID)
	if err != nil {
		company = ""
	}

	receipt := &Receipt{
		PurchaseID:    p.ID,
		Date:          p.Date,
		Supplier:      p.Supplier,
		Company:       company,
		TotalAmount:   p.TotalAmount,
		PaymentMethod: p.PaymentMethod,
		Notes:         p.Notes,
	}
	for _, item := range p.Items {
		receipt.Items = append(receipt.Items, ReceiptItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Unit:     item.Unit,
			Price:    item.Price,
		})
	}
	return receipt, nil
}
