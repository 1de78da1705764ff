package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/foxxcyber/recipe-box/internal/logger"
	"github.com/foxxcyber/recipe-box/internal/services"
)

// Handler holds all handler dependencies
type Handler struct {
	importer  *services.IngredientImporter
	nutrition *services.NutritionService
	shopping  *services.ShoppingListService
}

// New creates a new Handler instance
func New(importer *services.IngredientImporter, nutrition *services.NutritionService, shopping *services.ShoppingListService) *Handler {
	return &Handler{
		importer:  importer,
		nutrition: nutrition,
		shopping:  shopping,
	}
}

// ErrorHandler is a custom error handler for Fiber
func ErrorHandler(c *fiber.Ctx, err error) error {
	// Default to 500
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	// Check if it's a Fiber error
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	} else {
		logger.Error("Unhandled request error", zap.String("path", c.Path()), zap.Error(err))
	}

	return c.Status(code).JSON(APIResponse{
		Success: false,
		Error:   message,
	})
}

// APIResponse is a standard API response structure
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success returns a successful response
func Success(c *fiber.Ctx, data interface{}) error {
	return c.JSON(APIResponse{
		Success: true,
		Data:    data,
	})
}

// Created returns a 201 with the created resource
func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(APIResponse{
		Success: true,
		Data:    data,
	})
}

// Error returns an error response
func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(APIResponse{
		Success: false,
		Error:   message,
	})
}

// internalError logs the cause and returns a generic 500
func internalError(c *fiber.Ctx, message string, err error) error {
	logger.Error(message, zap.String("path", c.Path()), zap.Error(err))
	return Error(c, fiber.StatusInternalServerError, message)
}
