package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/foxxcyber/recipe-box/internal/ingredient"
	"github.com/foxxcyber/recipe-box/internal/models"
)

// ParseIngredients parses raw ingredient text without saving it
// POST /api/ingredients/parse
func (h *Handler) ParseIngredients(c *fiber.Ctx) error {
	var req models.IngredientTextRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	var items []models.ScrapedIngredient
	switch {
	case len(req.Lines) > 0:
		items = h.importer.ParseLines(req.Lines)
	case req.Content != "":
		items = h.importer.ParseContent(req.Content)
	default:
		return Error(c, fiber.StatusBadRequest, "content or lines is required")
	}

	return Success(c, items)
}

// ConvertToGrams estimates the mass of one amount of an ingredient
// POST /api/ingredients/grams
func (h *Handler) ConvertToGrams(c *fiber.Ctx) error {
	var req models.GramsRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if req.Name == "" {
		return Error(c, fiber.StatusBadRequest, "name is required")
	}

	return Success(c, models.GramsResponse{
		Grams: ingredient.ToGrams(req.Quantity, req.Unit, req.Name),
	})
}

type consolidateRequest struct {
	Entries []ingredient.Entry `json:"entries"`
}

type consolidatedEntry struct {
	ingredient.Entry
	Key     string `json:"key"`
	Display string `json:"display"`
}

// ConsolidateIngredients merges a list of ingredient amounts
// POST /api/ingredients/consolidate
func (h *Handler) ConsolidateIngredients(c *fiber.Ctx) error {
	var req consolidateRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	merged := ingredient.Consolidate(req.Entries)
	out := make([]consolidatedEntry, 0, len(merged))
	for _, e := range merged {
		out = append(out, consolidatedEntry{
			Entry:   e,
			Key:     ingredient.EntryKey(e.Name, e.Unit),
			Display: ingredient.FormatQuantity(e.Quantity, e.Unit),
		})
	}

	return Success(c, out)
}
