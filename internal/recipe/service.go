package recipe

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/r3d3y3s79/chels-catering-financial-tracker/internal/core"
	"github.com/r3d3y3s79/chels-catering-financial-tracker/internal/pricing"

	"github.com/shopspring/decimal"
)

var ErrNotOwner = errors.New("recipe does not belong to user")

type Service struct {
	repo      Repository
	costing   core.IngredientCosting
	inventory core.IngredientInventory
}

func NewService(repo Repository, costing core.IngredientCosting, inventory core.IngredientInventory) *Service {
	return &Service{repo: repo, costing: costing, inventory: inventory}
}

func validate(rec *Recipe) error {
	if rec.Name == "" {
		return errors.New("name is required")
	}
	if rec.Servings < 1 {
		return errors.New("servings must be at least 1")
	}
	for _, item := range rec.Ingredients {
		if item.IngredientID == "" {
			return errors.New("every recipe line needs an ingredient")
		}
		if item.Quantity.IsNegative() {
			return errors.New("quantity cannot be negative")
		}
	}
	return nil
}

// recompute prices the recipe from live ingredient costs and stores the
// result. The snapshot goes stale as soon as an ingredient price moves;
// it refreshes on the next write of the recipe.
func (s *Service) recompute(ctx context.Context, rec *Recipe) error {
	total := decimal.Zero
	for _, item := range rec.Ingredients {
		unitCost, err := s.costing.CostPerRecipeUnit(ctx, item.IngredientID, rec.UserID)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				return fmt.Errorf("ingredient %s not found", item.IngredientID)
			}
			return err
		}
		total = total.Add(unitCost.Mul(item.Quantity))
	}

	rec.TotalCost = total
	rec.CostPerServing = total.Div(decimal.NewFromInt(int64(rec.Servings)))
	rec.ProfitMargin = pricing.ProfitMargin(rec.SuggestedPrice, rec.CostPerServing)
	return nil
}

func (s *Service) Create(ctx context.Context, userID string, rec *Recipe) (*Recipe, error) {
	rec.UserID = userID

	if err := validate(rec); err != nil {
		return nil, err
	}
	if err := s.recompute(ctx, rec); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) Get(ctx context.Context, id, userID string) (*Recipe, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.UserID != userID {
		return nil, ErrNotOwner
	}
	return rec, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]*Recipe, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Update(ctx context.Context, id, userID string, in *Recipe) (*Recipe, error) {
	existing, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	in.ID = existing.ID
	in.UserID = existing.UserID
	in.CreatedAt = existing.CreatedAt

	if err := validate(in); err != nil {
		return nil, err
	}
	if err := s.recompute(ctx, in); err != nil {
		return nil, err
	}

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

// Suggestion decorates a recipe with how much of it the user can make
// from tracked ingredients.
type Suggestion struct {
	*Recipe
	MatchScore       decimal.Decimal `json:"matchScore"`
	MatchCount       int             `json:"matchCount"`
	TotalIngredients int             `json:"totalIngredients"`
}

// SuggestAvailable scores each recipe by the share of its ingredients
// the user tracks, best match first.
func (s *Service) SuggestAvailable(ctx context.Context, userID string) ([]*Suggestion, error) {
	owned, err := s.inventory.OwnedIngredientIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	recipes, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]*Suggestion, 0, len(recipes))
	for _, rec := range recipes {
		matches := 0
		for _, item := range rec.Ingredients {
			if owned[item.IngredientID] {
				matches++
			}
		}

		score := decimal.Zero
		if len(rec.Ingredients) > 0 {
			score = decimal.NewFromInt(int64(matches)).
				Mul(decimal.NewFromInt(100)).
				Div(decimal.NewFromInt(int64(len(rec.Ingredients))))
		}

		out = append(out, &Suggestion{
			Recipe:           rec,
			MatchScore:       score,
			MatchCount:       matches,
			TotalIngredients: len(rec.Ingredients),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchScore.GreaterThan(out[j].MatchScore)
	})
	return out, nil
}

// SuggestProfitable lists the user's recipes cheapest per serving first.
func (s *Service) SuggestProfitable(ctx context.Context, userID string) ([]*Recipe, error) {
	recipes, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(recipes, func(i, j int) bool {
		return recipes[i].CostPerServing.LessThan(recipes[j].CostPerServing)
	})
	return recipes, nil
}

// TotalCost implements core.RecipeCosting for menu snapshots.
func (s *Service) TotalCost(ctx context.Context, recipeID, userID string) (decimal.Decimal, error) {
	rec, err := s.Get(ctx, recipeID, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return decimal.Zero, core.ErrNotFound
		}
		return decimal.Zero, err
	}
	return rec.TotalCost, nil
}
