package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes mounts the health, metrics and API routes on app
func (h *Handler) RegisterRoutes(app *fiber.App) {
	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// Ingredient text tools
	ingredients := api.Group("/ingredients")
	ingredients.Post("/parse", h.ParseIngredients)
	ingredients.Post("/grams", h.ConvertToGrams)
	ingredients.Post("/consolidate", h.ConsolidateIngredients)

	// Recipe routes
	recipes := api.Group("/recipes")
	recipes.Put("/:id/ingredients", h.ReplaceRecipeIngredients)
	recipes.Post("/:id/nutrition", h.EstimateNutrition)

	// Shopping list routes
	shopping := api.Group("/shopping-list")
	shopping.Get("/", h.GetShoppingList)
	shopping.Post("/", h.RegenerateShoppingList)
	shopping.Post("/manual", h.AddManualShoppingItem)
	shopping.Patch("/:itemId", h.UpdateShoppingItem)
}
