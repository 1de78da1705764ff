package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/foxxcyber/recipe-box/internal/database"
	"github.com/foxxcyber/recipe-box/internal/ingredient"
	"github.com/foxxcyber/recipe-box/internal/logger"
	"github.com/foxxcyber/recipe-box/internal/metrics"
	"github.com/foxxcyber/recipe-box/internal/models"
)

var ErrEmptyItemName = errors.New("item name is required")

// ShoppingStore is the shopping list persistence the service depends on
type ShoppingStore interface {
	WeekExists(ctx context.Context, weekID uuid.UUID) (bool, error)
	ListPlannedRecipes(ctx context.Context, weekID uuid.UUID) ([]models.PlannedRecipe, error)
	ListShoppingItems(ctx context.Context, weekID *uuid.UUID) ([]models.ShoppingListItem, error)
	CheckedShoppingKeys(ctx context.Context, weekID uuid.UUID) (map[string]bool, error)
	ReplaceAutoShoppingItems(ctx context.Context, weekID uuid.UUID, items []models.NewShoppingItem) error
	AddManualShoppingItem(ctx context.Context, weekID uuid.UUID, item models.NewShoppingItem) (*models.ShoppingListItem, error)
	SetShoppingItemChecked(ctx context.Context, itemID uuid.UUID, checked bool) (*models.ShoppingListItem, error)
}

// ShoppingListService builds a week's shopping list from its meal plan
type ShoppingListService struct {
	store ShoppingStore
}

func NewShoppingListService(store ShoppingStore) *ShoppingListService {
	return &ShoppingListService{store: store}
}

// ScaleFactor is the multiplier that takes a recipe from its own servings to
// the servings planned for a slot.
func ScaleFactor(target *int, base int) float64 {
	if base <= 0 {
		return 1
	}
	if target == nil {
		return 1
	}
	return float64(*target) / float64(base)
}

// BuildEntries flattens planned recipes into scaled consolidator entries.
// Unknown quantities stay unknown.
func BuildEntries(planned []models.PlannedRecipe) []ingredient.Entry {
	var entries []ingredient.Entry
	for _, p := range planned {
		scale := ScaleFactor(p.SlotServings, p.RecipeServings)
		for _, ing := range p.Ingredients {
			entry := ingredient.Entry{Name: ing.Name, Unit: ing.Unit}
			if ing.Quantity != nil {
				q := *ing.Quantity * scale
				entry.Quantity = &q
			}
			entries = append(entries, entry)
		}
	}
	return entries
}

// Regenerate rebuilds the auto-generated items of a week. Items that were
// checked before keep their checked state when an item with the same merge
// key comes back; manual items are never touched.
func (s *ShoppingListService) Regenerate(ctx context.Context, weekID uuid.UUID) ([]models.ShoppingListItem, error) {
	exists, err := s.store.WeekExists(ctx, weekID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, database.ErrWeekNotFound
	}

	planned, err := s.store.ListPlannedRecipes(ctx, weekID)
	if err != nil {
		return nil, err
	}
	consolidated := ingredient.Consolidate(BuildEntries(planned))

	checked, err := s.store.CheckedShoppingKeys(ctx, weekID)
	if err != nil {
		return nil, err
	}

	items := make([]models.NewShoppingItem, 0, len(consolidated))
	for _, e := range consolidated {
		items = append(items, models.NewShoppingItem{
			IngredientName: e.Name,
			Quantity:       e.Quantity,
			Unit:           e.Unit,
			Checked:        checked[ingredient.EntryKey(e.Name, e.Unit)],
		})
	}

	if err := s.store.ReplaceAutoShoppingItems(ctx, weekID, items); err != nil {
		return nil, err
	}
	metrics.ShoppingRegenerations.Inc()
	logger.Info("Regenerated shopping list",
		zap.String("week_id", weekID.String()),
		zap.Int("slots", len(planned)),
		zap.Int("items", len(items)),
	)

	return s.List(ctx, &weekID)
}

// List returns the items of one week, or of every week when weekID is nil
func (s *ShoppingListService) List(ctx context.Context, weekID *uuid.UUID) ([]models.ShoppingListItem, error) {
	items, err := s.store.ListShoppingItems(ctx, weekID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Display = ingredient.FormatQuantity(items[i].Quantity, items[i].Unit)
	}
	return items, nil
}

func (s *ShoppingListService) SetChecked(ctx context.Context, itemID uuid.UUID, checked bool) (*models.ShoppingListItem, error) {
	item, err := s.store.SetShoppingItemChecked(ctx, itemID, checked)
	if err != nil {
		return nil, err
	}
	item.Display = ingredient.FormatQuantity(item.Quantity, item.Unit)
	return item, nil
}

// AddManual adds a hand-written item to a week's list
func (s *ShoppingListService) AddManual(ctx context.Context, weekID uuid.UUID, name string, quantity *float64, unit *string) (*models.ShoppingListItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyItemName
	}

	exists, err := s.store.WeekExists(ctx, weekID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, database.ErrWeekNotFound
	}

	item, err := s.store.AddManualShoppingItem(ctx, weekID, models.NewShoppingItem{
		IngredientName: name,
		Quantity:       quantity,
		Unit:           ingredient.NormalizeUnit(unit),
	})
	if err != nil {
		return nil, err
	}
	item.Display = ingredient.FormatQuantity(item.Quantity, item.Unit)
	return item, nil
}
