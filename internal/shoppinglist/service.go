package shoppinglist

import (
	"context"
	"errors"
	"time"

	"github.com/r3d3y3s79/chels-catering-financial-tracker/internal/core"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotOwner  = errors.New("shopping list does not belong to user")
	ErrCompleted = errors.New("shopping list has been completed")
)

type Service struct {
	repo        Repository
	ingredients core.IngredientPicker
	products    core.ProductPicker
}

func NewService(repo Repository, ingredients core.IngredientPicker, products core.ProductPicker) *Service {
	return &Service{repo: repo, ingredients: ingredients, products: products}
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

func (s *Service) Create(ctx context.Context, userID string, l *ShoppingList) (*ShoppingList, error) {
	l.UserID = userID
	if l.Name == "" {
		return nil, errors.New("name is required")
	}

	l.Items = nil
	l.TotalCost = decimal.Zero
	l.IsActive = true
	l.CompletedDate = nil

	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) Get(ctx context.Context, id, userID string) (*ShoppingList, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.UserID != userID {
		return nil, ErrNotOwner
	}
	return l, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]*ShoppingList, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Active returns the user's current list, or nil when every list has
// been completed.
func (s *Service) Active(ctx context.Context, userID string) (*ShoppingList, error) {
	l, err := s.repo.FindActive(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return l, nil
}

// mutableList loads a list the user may still edit. Completed lists are
// frozen.
func (s *Service) mutableList(ctx context.Context, id, userID string) (*ShoppingList, error) {
	l, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if !l.IsActive {
		return nil, ErrCompleted
	}
	return l, nil
}

// ListPatch updates the list header; items are managed through the item
// operations only.
type ListPatch struct {
	Name                *string    `json:"name"`
	Description         *string    `json:"description"`
	PrimarySupermarket  *string    `json:"primarySupermarket"`
	PlannedPurchaseDate *time.Time `json:"plannedPurchaseDate"`
}

func (s *Service) Update(ctx context.Context, id, userID string, patch ListPatch) (*ShoppingList, error) {
	l, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil && *patch.Name != "" {
		l.Name = *patch.Name
	}
	if patch.Description != nil {
		l.Description = *patch.Description
	}
	if patch.PrimarySupermarket != nil {
		l.PrimarySupermarket = *patch.PrimarySupermarket
	}
	if patch.PlannedPurchaseDate != nil {
		l.PlannedPurchaseDate = patch.PlannedPurchaseDate
	}

	if err := s.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.Get(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) AddItem(ctx context.Context, listID, userID string, item Item) (*ShoppingList, error) {
	l, err := s.mutableList(ctx, listID, userID)
	if err != nil {
		return nil, err
	}

	if item.Quantity.IsZero() {
		item.Quantity = decimal.NewFromInt(1)
	}
	if err := validateItem(&item); err != nil {
		return nil, err
	}
	item.ID = uuid.New().String()
	item.IsChecked = false

	l.Items = append(l.Items, item)
	l.RecomputeTotal()

	if err := s.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// ItemPatch carries partial item updates; nil fields are left alone.
type ItemPatch struct {
	Quantity  *decimal.Decimal `json:"quantity"`
	Notes     *string          `json:"notes"`
	IsChecked *bool            `json:"isChecked"`
}

func (s *Service) UpdateItem(ctx context.Context, listID, itemID, userID string, patch ItemPatch) (*ShoppingList, error) {
	l, err := s.mutableList(ctx, listID, userID)
	if err != nil {
		return nil, err
	}

	idx := l.ItemByID(itemID)
	if idx == -1 {
		return nil, ErrItemNotFound
	}
	item := &l.Items[idx]

	if patch.Quantity != nil {
		if patch.Quantity.IsNegative() {
			return nil, errors.New("item quantity cannot be negative")
		}
		item.Quantity = *patch.Quantity
	}
	if patch.Notes != nil {
		item.Notes = *patch.Notes
	}
	if patch.IsChecked != nil {
		item.IsChecked = *patch.IsChecked
	}

	l.RecomputeTotal()

	if err := s.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) RemoveItem(ctx context.Context, listID, itemID, userID string) (*ShoppingList, error) {
	l, err := s.mutableList(ctx, listID, userID)
	if err != nil {
		return nil, err
	}

	idx := l.ItemByID(itemID)
	if idx == -1 {
		return nil, ErrItemNotFound
	}

	l.Items = append(l.Items[:idx], l.Items[idx+1:]...)
	l.RecomputeTotal()

	if err := s.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// AddProduct puts a catalog product on the list at its sale-aware price.
// A line already referencing the product has its quantity bumped instead
// of a duplicate row appearing.
func (s *Service) AddProduct(ctx context.Context, listID, productID, userID string, quantity decimal.Decimal, notes string) (*ShoppingList, error) {
	l, err := s.mutableList(ctx, listID, userID)
	if err != nil {
		return nil, err
	}

	if quantity.LessThanOrEqual(decimal.Zero) {
		quantity = decimal.NewFromInt(1)
	}

	if idx := l.itemByProduct(productID); idx != -1 {
		l.Items[idx].Quantity = l.Items[idx].Quantity.Add(quantity)
	} else {
		pick, err := s.products.PickProduct(ctx, productID)
		if err != nil {
			return nil, err
		}

		l.Items = append(l.Items, Item{
			ID:            uuid.New().String(),
			ProductID:     productID,
			Name:          pick.Name,
			Quantity:      quantity,
			Unit:          pick.Unit,
			Price:         pick.Price,
			SupermarketID: pick.SupermarketID,
			Notes:         notes,
		})
	}

	l.RecomputeTotal()

	if err := s.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// AddIngredient mirrors AddProduct for tracked ingredients, pricing the
// line from the preferred supermarket quote. A line without its own
// supermarket inherits the list's primary one.
func (s *Service) AddIngredient(ctx context.Context, listID, ingredientID, userID string, quantity decimal.Decimal, notes string) (*ShoppingList, error) {
	l, err := s.mutableList(ctx, listID, userID)
	if err != nil {
		return nil, err
	}

	if quantity.LessThanOrEqual(decimal.Zero) {
		quantity = decimal.NewFromInt(1)
	}

	if idx := l.itemByIngredient(ingredientID); idx != -1 {
		l.Items[idx].Quantity = l.Items[idx].Quantity.Add(quantity)
	} else {
		pick, err := s.ingredients.PickIngredient(ctx, ingredientID, userID)
		if err != nil {
			return nil, err
		}

		supermarketID := pick.SupermarketID
		if supermarketID == "" {
			supermarketID = l.PrimarySupermarket
		}

		l.Items = append(l.Items, Item{
			ID:            uuid.New().String(),
			IngredientID:  ingredientID,
			Name:          pick.Name,
			Quantity:      quantity,
			Unit:          pick.Unit,
			Price:         pick.Price,
			SupermarketID: supermarketID,
			Notes:         notes,
		})
	}

	l.RecomputeTotal()

	if err := s.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Complete freezes the list: it drops out of the active lookup and item
// mutations are refused from here on.
func (s *Service) Complete(ctx context.Context, id, userID string) (*ShoppingList, error) {
	l, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	l.IsActive = false
	l.CompletedDate = &now

	if err := s.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}
