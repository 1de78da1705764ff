package models

import (
	"time"

	"github.com/google/uuid"
)

// Recipe is a stored recipe. Nutrition fields stay nil until an estimate has
// been run.
type Recipe struct {
	ID                 uuid.UUID `json:"id"`
	Title              string    `json:"title"`
	Description        *string   `json:"description,omitempty"`
	Servings           int       `json:"servings"`
	SourceURL          *string   `json:"source_url,omitempty"`
	CaloriesPerServing *int      `json:"calories_per_serving"`
	ProteinPerServing  *int      `json:"protein_per_serving"`
	CarbsPerServing    *int      `json:"carbs_per_serving"`
	FatPerServing      *int      `json:"fat_per_serving"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// RecipeIngredient is one stored ingredient row of a recipe
type RecipeIngredient struct {
	ID        uuid.UUID `json:"id"`
	RecipeID  uuid.UUID `json:"recipe_id"`
	Quantity  *float64  `json:"quantity"`
	Unit      *string   `json:"unit"`
	Name      string    `json:"name"`
	Notes     *string   `json:"notes"`
	SortOrder int       `json:"sort_order"`
}

// RecipeWithIngredients includes the recipe and its ingredient rows in sort order
type RecipeWithIngredients struct {
	Recipe
	Ingredients []RecipeIngredient `json:"ingredients"`
}

// ScrapedIngredient is a parsed ingredient line before it is saved
type ScrapedIngredient struct {
	RawText   string   `json:"raw_text"`
	Quantity  *float64 `json:"quantity"`
	Unit      *string  `json:"unit"`
	Name      string   `json:"name"`
	Notes     *string  `json:"notes"`
	SortOrder int      `json:"sort_order"`
}

// IngredientTextRequest carries raw ingredient text either as one block of
// content or as individual lines.
type IngredientTextRequest struct {
	Content string   `json:"content"`
	Lines   []string `json:"lines"`
}

// GramsRequest is the request body for a single mass conversion
type GramsRequest struct {
	Quantity float64 `json:"quantity"`
	Unit     *string `json:"unit"`
	Name     string  `json:"name"`
}

// GramsResponse carries a null mass when the amount could not be converted
type GramsResponse struct {
	Grams *float64 `json:"grams"`
}
