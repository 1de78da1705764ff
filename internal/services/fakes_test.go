package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/foxxcyber/recipe-box/internal/database"
	"github.com/foxxcyber/recipe-box/internal/ingredient"
	"github.com/foxxcyber/recipe-box/internal/models"
)

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string    { return &v }
func intPtr(v int) *int          { return &v }

type fakeRecipeStore struct {
	recipes map[uuid.UUID]*models.RecipeWithIngredients
	saved   map[uuid.UUID]*models.NutritionEstimate
}

func newFakeRecipeStore(recipes ...*models.RecipeWithIngredients) *fakeRecipeStore {
	s := &fakeRecipeStore{
		recipes: make(map[uuid.UUID]*models.RecipeWithIngredients),
		saved:   make(map[uuid.UUID]*models.NutritionEstimate),
	}
	for _, r := range recipes {
		s.recipes[r.ID] = r
	}
	return s
}

func (s *fakeRecipeStore) GetRecipeWithIngredients(_ context.Context, id uuid.UUID) (*models.RecipeWithIngredients, error) {
	r, ok := s.recipes[id]
	if !ok {
		return nil, database.ErrRecipeNotFound
	}
	return r, nil
}

func (s *fakeRecipeStore) ReplaceRecipeIngredients(_ context.Context, recipeID uuid.UUID, items []models.ScrapedIngredient) ([]models.RecipeIngredient, error) {
	r, ok := s.recipes[recipeID]
	if !ok {
		return nil, database.ErrRecipeNotFound
	}
	r.Ingredients = make([]models.RecipeIngredient, 0, len(items))
	for _, item := range items {
		r.Ingredients = append(r.Ingredients, models.RecipeIngredient{
			ID:        uuid.New(),
			RecipeID:  recipeID,
			Quantity:  item.Quantity,
			Unit:      item.Unit,
			Name:      item.Name,
			Notes:     item.Notes,
			SortOrder: item.SortOrder,
		})
	}
	return r.Ingredients, nil
}

func (s *fakeRecipeStore) UpdateRecipeNutrition(_ context.Context, recipeID uuid.UUID, estimate *models.NutritionEstimate) error {
	if _, ok := s.recipes[recipeID]; !ok {
		return database.ErrRecipeNotFound
	}
	s.saved[recipeID] = estimate
	return nil
}

// fakeLookup serves nutrients from a fixed table and tracks how many lookups
// run at once.
type fakeLookup struct {
	foods map[string]models.Nutrients
	delay time.Duration

	mu          sync.Mutex
	inFlight    int
	maxInFlight int
	calls       int
}

func (l *fakeLookup) Lookup(ctx context.Context, name string) (*models.Nutrients, error) {
	l.mu.Lock()
	l.calls++
	l.inFlight++
	if l.inFlight > l.maxInFlight {
		l.maxInFlight = l.inFlight
	}
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.inFlight--
		l.mu.Unlock()
	}()

	if l.delay > 0 {
		time.Sleep(l.delay)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n, ok := l.foods[name]
	if !ok {
		return nil, ErrNoNutrientMatch
	}
	return &n, nil
}

type fakeShoppingStore struct {
	weeks   map[uuid.UUID]bool
	planned map[uuid.UUID][]models.PlannedRecipe
	items   []models.ShoppingListItem
}

func newFakeShoppingStore(weeks ...uuid.UUID) *fakeShoppingStore {
	s := &fakeShoppingStore{
		weeks:   make(map[uuid.UUID]bool),
		planned: make(map[uuid.UUID][]models.PlannedRecipe),
	}
	for _, w := range weeks {
		s.weeks[w] = true
	}
	return s
}

func (s *fakeShoppingStore) WeekExists(_ context.Context, weekID uuid.UUID) (bool, error) {
	return s.weeks[weekID], nil
}

func (s *fakeShoppingStore) ListPlannedRecipes(_ context.Context, weekID uuid.UUID) ([]models.PlannedRecipe, error) {
	return s.planned[weekID], nil
}

func (s *fakeShoppingStore) ListShoppingItems(_ context.Context, weekID *uuid.UUID) ([]models.ShoppingListItem, error) {
	items := []models.ShoppingListItem{}
	for _, item := range s.items {
		if weekID == nil || item.WeekID == *weekID {
			items = append(items, item)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].IsManual != items[j].IsManual {
			return !items[i].IsManual
		}
		return items[i].IngredientName < items[j].IngredientName
	})
	return items, nil
}

func (s *fakeShoppingStore) CheckedShoppingKeys(_ context.Context, weekID uuid.UUID) (map[string]bool, error) {
	keys := make(map[string]bool)
	for _, item := range s.items {
		if item.WeekID == weekID && item.Checked && !item.IsManual {
			keys[ingredient.EntryKey(item.IngredientName, item.Unit)] = true
		}
	}
	return keys, nil
}

func (s *fakeShoppingStore) ReplaceAutoShoppingItems(_ context.Context, weekID uuid.UUID, items []models.NewShoppingItem) error {
	kept := s.items[:0]
	for _, item := range s.items {
		if item.WeekID != weekID || item.IsManual {
			kept = append(kept, item)
		}
	}
	s.items = kept
	for _, item := range items {
		s.items = append(s.items, s.row(weekID, item, false))
	}
	return nil
}

func (s *fakeShoppingStore) AddManualShoppingItem(_ context.Context, weekID uuid.UUID, item models.NewShoppingItem) (*models.ShoppingListItem, error) {
	row := s.row(weekID, item, true)
	s.items = append(s.items, row)
	return &row, nil
}

func (s *fakeShoppingStore) SetShoppingItemChecked(_ context.Context, itemID uuid.UUID, checked bool) (*models.ShoppingListItem, error) {
	for i := range s.items {
		if s.items[i].ID == itemID {
			s.items[i].Checked = checked
			item := s.items[i]
			return &item, nil
		}
	}
	return nil, database.ErrShoppingItemNotFound
}

func (s *fakeShoppingStore) row(weekID uuid.UUID, item models.NewShoppingItem, manual bool) models.ShoppingListItem {
	return models.ShoppingListItem{
		ID:             uuid.New(),
		WeekID:         weekID,
		IngredientName: item.IngredientName,
		Quantity:       item.Quantity,
		Unit:           item.Unit,
		Checked:        item.Checked,
		IsManual:       manual,
	}
}
