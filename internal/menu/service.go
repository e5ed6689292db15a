package menu

import (
	"context"
	"errors"
	"sort"

	"github.com/r3d3y3s79/chels-catering-financial-tracker/internal/core"
	"github.com/r3d3y3s79/chels-catering-financial-tracker/internal/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotOwner = errors.New("menu does not belong to user")

type Service struct {
	repo    Repository
	costing core.RecipeCosting
}

func NewService(repo Repository, costing core.RecipeCosting) *Service {
	return &Service{repo: repo, costing: costing}
}

// snapshotItem fills the cost side of an item. When a recipe is linked
// its current total cost is copied in; a vanished recipe leaves the cost
// at zero rather than failing the menu write.
func (s *Service) snapshotItem(ctx context.Context, userID string, item *Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}

	if item.RecipeID != "" {
		cost, err := s.costing.TotalCost(ctx, item.RecipeID, userID)
		if err != nil {
			if !errors.Is(err, core.ErrNotFound) {
				return err
			}
		} else {
			item.Cost = cost
		}
	}

	item.ProfitMargin = pricing.ProfitMargin(item.Price, item.Cost)
	return nil
}

func validateItem(item *Item) error {
	if item.Name == "" {
		return errors.New("item name is required")
	}
	if item.Price.IsNegative() {
		return errors.New("item price cannot be negative")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, userID string, m *Menu) (*Menu, error) {
	m.UserID = userID
	if m.Name == "" {
		return nil, errors.New("name is required")
	}
	if m.Category == "" {
		m.Category = "other"
	}

	for i := range m.Items {
		if err := validateItem(&m.Items[i]); err != nil {
			return nil, err
		}
		m.Items[i].IsAvailable = true
		if err := s.snapshotItem(ctx, userID, &m.Items[i]); err != nil {
			return nil, err
		}
	}

	m.RecomputeTotals()

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Get(ctx context.Context, id, userID string) (*Menu, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.UserID != userID {
		return nil, ErrNotOwner
	}
	return m, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]*Menu, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Update(ctx context.Context, id, userID string, in *Menu) (*Menu, error) {
	existing, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	in.ID = existing.ID
	in.UserID = existing.UserID
	in.CreatedAt = existing.CreatedAt
	if in.Name == "" {
		in.Name = existing.Name
	}
	if in.Category == "" {
		in.Category = existing.Category
	}
	if in.Items == nil {
		in.Items = existing.Items
	} else {
		for i := range in.Items {
			if err := validateItem(&in.Items[i]); err != nil {
				return nil, err
			}
			if err := s.snapshotItem(ctx, userID, &in.Items[i]); err != nil {
				return nil, err
			}
		}
	}

	in.RecomputeTotals()

	if err := s.repo.Update(ctx, in); err != nil {
		return nil, err
	}
	return in, nil
}

func (s *Service) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.Get(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) AddItem(ctx context.Context, menuID, userID string, item Item) (*Menu, error) {
	m, err := s.Get(ctx, menuID, userID)
	if err != nil {
		return nil, err
	}

	if err := validateItem(&item); err != nil {
		return nil, err
	}
	item.IsAvailable = true
	if err := s.snapshotItem(ctx, userID, &item); err != nil {
		return nil, err
	}

	m.Items = append(m.Items, item)
	m.RecomputeTotals()

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// ItemPatch carries partial item updates; nil fields are left alone.
type ItemPatch struct {
	RecipeID    *string          `json:"recipe"`
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	IsAvailable *bool            `json:"isAvailable"`
	ImageURL    *string          `json:"imageUrl"`
	Tags        []string         `json:"tags"`
}

func (s *Service) UpdateItem(ctx context.Context, menuID, itemID, userID string, patch ItemPatch) (*Menu, error) {
	m, err := s.Get(ctx, menuID, userID)
	if err != nil {
		return nil, err
	}

	idx := m.ItemByID(itemID)
	if idx == -1 {
		return nil, ErrItemNotFound
	}
	item := &m.Items[idx]

	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.Price != nil {
		item.Price = *patch.Price
	}
	if patch.IsAvailable != nil {
		item.IsAvailable = *patch.IsAvailable
	}
	if patch.ImageURL != nil {
		item.ImageURL = *patch.ImageURL
	}
	if patch.Tags != nil {
		item.Tags = patch.Tags
	}
	if patch.RecipeID != nil {
		item.RecipeID = *patch.RecipeID
	}

	if err := validateItem(item); err != nil {
		return nil, err
	}
	if err := s.snapshotItem(ctx, userID, item); err != nil {
		return nil, err
	}

	m.RecomputeTotals()

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) RemoveItem(ctx context.Context, menuID, itemID, userID string) (*Menu, error) {
	m, err := s.Get(ctx, menuID, userID)
	if err != nil {
		return nil, err
	}

	idx := m.ItemByID(itemID)
	if idx == -1 {
		return nil, ErrItemNotFound
	}

	m.Items = append(m.Items[:idx], m.Items[idx+1:]...)
	m.RecomputeTotals()

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// --------------------------------------------------
// Analysis
// --------------------------------------------------

type ItemAnalysis struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Cost         decimal.Decimal `json:"cost"`
	Profit       decimal.Decimal `json:"profit"`
	ProfitMargin decimal.Decimal `json:"profitMargin"`
	IsAvailable  bool            `json:"isAvailable"`
	RecipeID     string          `json:"recipe,omitempty"`
}

type Scenario struct {
	Percentage      int64           `json:"percentage"`
	NewRevenue      decimal.Decimal `json:"newRevenue,omitempty"`
	NewCost         decimal.Decimal `json:"newCost,omitempty"`
	NewProfit       decimal.Decimal `json:"newProfit"`
	NewProfitMargin decimal.Decimal `json:"newProfitMargin"`
}

type Analysis struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	ItemCount    int             `json:"itemCount"`
	TotalCost    decimal.Decimal `json:"totalCost"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	Profit       decimal.Decimal `json:"profit"`
	ProfitMargin decimal.Decimal `json:"profitMargin"`
	Items        []ItemAnalysis  `json:"items,omitempty"`

	Scenarios map[string]Scenario `json:"scenarios,omitempty"`

	MostProfitableItem  *ItemAnalysis `json:"mostProfitableItem"`
	LeastProfitableItem *ItemAnalysis `json:"leastProfitableItem"`
}

func analyzeItems(m *Menu) []ItemAnalysis {
	out := make([]ItemAnalysis, 0, len(m.Items))
	for _, item := range m.Items {
		out = append(out, ItemAnalysis{
			ID:           item.ID,
			Name:         item.Name,
			Price:        item.Price,
			Cost:         item.Cost,
			Profit:       item.Price.Sub(item.Cost),
			ProfitMargin: pricing.ProfitMargin(item.Price, item.Cost),
			IsAvailable:  item.IsAvailable,
			RecipeID:     item.RecipeID,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ProfitMargin.GreaterThan(out[j].ProfitMargin)
	})
	return out
}

// Analyze builds the per-menu breakdown: sorted item margins plus the
// three what-if scenarios (price up 10%, price down 10%, cost down 10%).
func (s *Service) Analyze(ctx context.Context, id, userID string) (*Analysis, error) {
	m, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	revenue := m.TotalRevenue
	cost := m.TotalCost

	priceUp := pricing.Scale(revenue, 10)
	priceDown := pricing.Scale(revenue, -10)
	costDown := pricing.Scale(cost, -10)

	return &Analysis{
		ID:           m.ID,
		Name:         m.Name,
		Category:     m.Category,
		ItemCount:    len(m.Items),
		TotalCost:    cost,
		TotalRevenue: revenue,
		Profit:       revenue.Sub(cost),
		ProfitMargin: pricing.RevenueMargin(revenue, cost),
		Items:        analyzeItems(m),
		Scenarios: map[string]Scenario{
			"increasePrice": {
				Percentage:      10,
				NewRevenue:      priceUp,
				NewProfit:       priceUp.Sub(cost),
				NewProfitMargin: pricing.RevenueMargin(priceUp, cost),
			},
			"decreasePrice": {
				Percentage:      10,
				NewRevenue:      priceDown,
				NewProfit:       priceDown.Sub(cost),
				NewProfitMargin: pricing.RevenueMargin(priceDown, cost),
			},
			"decreaseCost": {
				Percentage:      10,
				NewCost:         costDown,
				NewProfit:       revenue.Sub(costDown),
				NewProfitMargin: pricing.RevenueMargin(revenue, costDown),
			},
		},
	}, nil
}

// Profitability summarizes every menu the user has, best margin first,
// naming the strongest and weakest item on each.
func (s *Service) Profitability(ctx context.Context, userID string) ([]*Analysis, error) {
	menus, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]*Analysis, 0, len(menus))
	for _, m := range menus {
		a := &Analysis{
			ID:           m.ID,
			Name:         m.Name,
			Category:     m.Category,
			ItemCount:    len(m.Items),
			TotalCost:    m.TotalCost,
			TotalRevenue: m.TotalRevenue,
			Profit:       m.TotalRevenue.Sub(m.TotalCost),
			ProfitMargin: pricing.RevenueMargin(m.TotalRevenue, m.TotalCost),
		}

		if items := analyzeItems(m); len(items) > 0 {
			a.MostProfitableItem = &items[0]
			a.LeastProfitableItem = &items[len(items)-1]
		}

		out = append(out, a)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ProfitMargin.GreaterThan(out[j].ProfitMargin)
	})
	return out, nil
}
