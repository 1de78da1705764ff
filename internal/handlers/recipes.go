package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/foxxcyber/recipe-box/internal/database"
	"github.com/foxxcyber/recipe-box/internal/models"
	"github.com/foxxcyber/recipe-box/internal/services"
)

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}

// ReplaceRecipeIngredients parses pasted ingredient text and stores it as the
// recipe's ingredient list
// PUT /api/recipes/:id/ingredients
func (h *Handler) ReplaceRecipeIngredients(c *fiber.Ctx) error {
	recipeID, err := parseUUIDParam(c, "id")
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid recipe id")
	}

	var req models.IngredientTextRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	content := req.Content
	if len(req.Lines) > 0 {
		content = strings.Join(req.Lines, "\n")
	}

	saved, err := h.importer.ReplaceRecipeIngredients(c.Context(), recipeID, content)
	if err != nil {
		if errors.Is(err, database.ErrRecipeNotFound) {
			return Error(c, fiber.StatusNotFound, "recipe not found")
		}
		return internalError(c, "failed to save ingredients", err)
	}

	return Success(c, saved)
}

// EstimateNutrition estimates per-serving nutrition for a recipe and saves it
// POST /api/recipes/:id/nutrition
func (h *Handler) EstimateNutrition(c *fiber.Ctx) error {
	recipeID, err := parseUUIDParam(c, "id")
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid recipe id")
	}

	estimate, err := h.nutrition.EstimateRecipe(c.Context(), recipeID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNutritionNotConfigured):
			return Error(c, fiber.StatusServiceUnavailable, "nutrition lookup is not configured")
		case errors.Is(err, database.ErrRecipeNotFound):
			return Error(c, fiber.StatusNotFound, "recipe not found")
		}
		return internalError(c, "failed to estimate nutrition", err)
	}

	return Success(c, estimate)
}
