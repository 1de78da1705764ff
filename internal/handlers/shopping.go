package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/foxxcyber/recipe-box/internal/database"
	"github.com/foxxcyber/recipe-box/internal/models"
	"github.com/foxxcyber/recipe-box/internal/services"
)

// GetShoppingList returns the shopping list, optionally for one week
// GET /api/shopping-list?week_id=
func (h *Handler) GetShoppingList(c *fiber.Ctx) error {
	var weekID *uuid.UUID
	if raw := c.Query("week_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return Error(c, fiber.StatusBadRequest, "invalid week_id")
		}
		weekID = &id
	}

	items, err := h.shopping.List(c.Context(), weekID)
	if err != nil {
		return internalError(c, "failed to load shopping list", err)
	}

	return Success(c, items)
}

// RegenerateShoppingList rebuilds a week's list from its meal plan
// POST /api/shopping-list
func (h *Handler) RegenerateShoppingList(c *fiber.Ctx) error {
	var req models.RegenerateShoppingListRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if req.WeekID == "" {
		return Error(c, fiber.StatusBadRequest, "week_id is required")
	}
	weekID, err := uuid.Parse(req.WeekID)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid week_id")
	}

	items, err := h.shopping.Regenerate(c.Context(), weekID)
	if err != nil {
		if errors.Is(err, database.ErrWeekNotFound) {
			return Error(c, fiber.StatusNotFound, "week not found")
		}
		return internalError(c, "failed to regenerate shopping list", err)
	}

	return Success(c, items)
}

// AddManualShoppingItem adds a hand-written item to a week's list
// POST /api/shopping-list/manual
func (h *Handler) AddManualShoppingItem(c *fiber.Ctx) error {
	var req models.AddManualItemRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	weekID, err := uuid.Parse(req.WeekID)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid week_id")
	}

	item, err := h.shopping.AddManual(c.Context(), weekID, req.Name, req.Quantity, req.Unit)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyItemName):
			return Error(c, fiber.StatusBadRequest, "name is required")
		case errors.Is(err, database.ErrWeekNotFound):
			return Error(c, fiber.StatusNotFound, "week not found")
		}
		return internalError(c, "failed to add shopping item", err)
	}

	return Created(c, item)
}

// UpdateShoppingItem ticks or unticks an item
// PATCH /api/shopping-list/:itemId
func (h *Handler) UpdateShoppingItem(c *fiber.Ctx) error {
	itemID, err := parseUUIDParam(c, "itemId")
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid item id")
	}

	var req models.UpdateShoppingItemRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Checked == nil {
		return Error(c, fiber.StatusBadRequest, "checked is required")
	}

	item, err := h.shopping.SetChecked(c.Context(), itemID, *req.Checked)
	if err != nil {
		if errors.Is(err, database.ErrShoppingItemNotFound) {
			return Error(c, fiber.StatusNotFound, "shopping list item not found")
		}
		return internalError(c, "failed to update shopping item", err)
	}

	return Success(c, item)
}
