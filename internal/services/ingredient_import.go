package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/foxxcyber/recipe-box/internal/ingredient"
	"github.com/foxxcyber/recipe-box/internal/metrics"
	"github.com/foxxcyber/recipe-box/internal/models"
)

// RecipeStore is the recipe persistence the services depend on
type RecipeStore interface {
	GetRecipeWithIngredients(ctx context.Context, id uuid.UUID) (*models.RecipeWithIngredients, error)
	ReplaceRecipeIngredients(ctx context.Context, recipeID uuid.UUID, items []models.ScrapedIngredient) ([]models.RecipeIngredient, error)
	UpdateRecipeNutrition(ctx context.Context, recipeID uuid.UUID, estimate *models.NutritionEstimate) error
}

// IngredientImporter turns pasted ingredient text into structured rows
type IngredientImporter struct {
	store        RecipeStore
	bulletPrefix *regexp.Regexp
}

// NewIngredientImporter creates an importer. store may be nil when only
// parsing is needed.
func NewIngredientImporter(store RecipeStore) *IngredientImporter {
	return &IngredientImporter{
		store: store,
		// Markdown bullets and checkboxes: "- ", "* ", "• ", "- [ ] ", "[x] "
		bulletPrefix: regexp.MustCompile(`^(?:[-*•+](?:\s+|$))?(?:\[[ xX]?\]\s*)?`),
	}
}

// ParseContent splits a block of text into lines and parses each one
func (imp *IngredientImporter) ParseContent(content string) []models.ScrapedIngredient {
	return imp.ParseLines(strings.Split(content, "\n"))
}

// ParseLines parses raw ingredient lines. Blank lines are dropped and the
// survivors are numbered from zero in input order.
func (imp *IngredientImporter) ParseLines(lines []string) []models.ScrapedIngredient {
	items := []models.ScrapedIngredient{}
	for _, line := range lines {
		raw := strings.TrimSpace(strings.TrimRight(line, "\r"))
		raw = strings.TrimSpace(imp.bulletPrefix.ReplaceAllString(raw, ""))
		if raw == "" {
			continue
		}

		parsed, ok := ingredient.TryParse(raw)
		if ok {
			metrics.ParsedLines.WithLabelValues(metrics.OutcomeStructured).Inc()
		} else {
			metrics.ParsedLines.WithLabelValues(metrics.OutcomeFallback).Inc()
		}

		items = append(items, models.ScrapedIngredient{
			RawText:   raw,
			Quantity:  parsed.Quantity,
			Unit:      parsed.Unit,
			Name:      parsed.Name,
			Notes:     parsed.Notes,
			SortOrder: len(items),
		})
	}
	return items
}

// ReplaceRecipeIngredients parses content and stores it as the full
// ingredient list of a recipe.
func (imp *IngredientImporter) ReplaceRecipeIngredients(ctx context.Context, recipeID uuid.UUID, content string) ([]models.RecipeIngredient, error) {
	return imp.store.ReplaceRecipeIngredients(ctx, recipeID, imp.ParseContent(content))
}
