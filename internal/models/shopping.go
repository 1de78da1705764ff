package models

import (
	"time"

	"github.com/google/uuid"
)

// ShoppingListItem is one row of a week's shopping list. Auto-generated rows
// are rebuilt on every regeneration; manual rows are left alone.
type ShoppingListItem struct {
	ID             uuid.UUID `json:"id"`
	WeekID         uuid.UUID `json:"week_id"`
	IngredientName string    `json:"ingredient_name"`
	Quantity       *float64  `json:"quantity"`
	Unit           *string   `json:"unit"`
	Display        string    `json:"display"`
	Checked        bool      `json:"checked"`
	IsManual       bool      `json:"is_manual"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewShoppingItem is an item about to be inserted
type NewShoppingItem struct {
	IngredientName string
	Quantity       *float64
	Unit           *string
	Checked        bool
}

// PlannedRecipe is a meal-plan slot joined with its recipe. SlotServings is
// nil when the slot uses the recipe's own servings.
type PlannedRecipe struct {
	SlotID         uuid.UUID          `json:"slot_id"`
	RecipeID       uuid.UUID          `json:"recipe_id"`
	RecipeServings int                `json:"recipe_servings"`
	SlotServings   *int               `json:"slot_servings"`
	Ingredients    []RecipeIngredient `json:"ingredients"`
}

// RegenerateShoppingListRequest is the request body for regenerating a week's list
type RegenerateShoppingListRequest struct {
	WeekID string `json:"week_id"`
}

// AddManualItemRequest is the request body for adding a hand-written item
type AddManualItemRequest struct {
	WeekID   string   `json:"week_id"`
	Name     string   `json:"name"`
	Quantity *float64 `json:"quantity"`
	Unit     *string  `json:"unit"`
}

// UpdateShoppingItemRequest is the request body for ticking an item off
type UpdateShoppingItemRequest struct {
	Checked *bool `json:"checked"`
}
