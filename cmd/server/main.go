package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/foxxcyber/recipe-box/internal/config"
	"github.com/foxxcyber/recipe-box/internal/database"
	"github.com/foxxcyber/recipe-box/internal/handlers"
	"github.com/foxxcyber/recipe-box/internal/logger"
	"github.com/foxxcyber/recipe-box/internal/middleware"
	"github.com/foxxcyber/recipe-box/internal/services"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.Environment)
	defer logger.Sync()

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := database.RunMigrations(context.Background(), db); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Nutrition lookups are optional; without an API key the endpoint answers 503
	var lookup services.NutrientLookup
	if cfg.NutritionEnabled() {
		lookup = services.NewUSDAClient(cfg.USDABaseURL, cfg.USDAAPIKey, cfg.NutritionTimeout)

		if cfg.RedisAddr != "" {
			rdb := redis.NewClient(&redis.Options{
				Addr:     cfg.RedisAddr,
				Password: cfg.RedisPassword,
				DB:       cfg.RedisDB,
			})
			defer rdb.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			if err := rdb.Ping(ctx).Err(); err != nil {
				logger.Warn("Redis unavailable, nutrient cache disabled", zap.String("addr", cfg.RedisAddr), zap.Error(err))
			} else {
				lookup = services.NewCachedLookup(rdb, lookup, cfg.NutritionCacheTTL)
				logger.Info("Nutrient cache enabled", zap.String("addr", cfg.RedisAddr))
			}
			cancel()
		}
	} else {
		logger.Warn("USDA_API_KEY not set, nutrition estimates disabled")
	}

	h := handlers.New(
		services.NewIngredientImporter(db),
		services.NewNutritionService(db, lookup, cfg.NutritionConcurrency),
		services.NewShoppingListService(db),
	)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.AccessLog())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, X-Request-ID",
		AllowMethods: "GET, POST, PUT, PATCH, OPTIONS",
	}))

	h.RegisterRoutes(app)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("Server starting", zap.String("port", cfg.Port), zap.String("environment", cfg.Environment))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}
