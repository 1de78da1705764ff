package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/foxxcyber/recipe-box/internal/config"
	"github.com/foxxcyber/recipe-box/internal/database"
	"github.com/foxxcyber/recipe-box/internal/ingredient"
	"github.com/foxxcyber/recipe-box/internal/logger"
	"github.com/foxxcyber/recipe-box/internal/models"
	"github.com/foxxcyber/recipe-box/internal/services"
)

func main() {
	// Command line flags
	dryRun := flag.Bool("dry-run", false, "Print the parsed ingredients without writing to the database")
	localFile := flag.String("file", "", "Read ingredient lines from this file instead of stdin")
	recipe := flag.String("recipe", "", "Replace the ingredients of this recipe (UUID)")
	flag.Parse()

	// Load .env
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.Environment)
	defer logger.Sync()

	var reader io.Reader = os.Stdin
	if *localFile != "" {
		file, err := os.Open(*localFile)
		if err != nil {
			logger.Fatal("Failed to open ingredient file", zap.String("file", *localFile), zap.Error(err))
		}
		defer file.Close()
		reader = file
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		logger.Fatal("Failed to read ingredients", zap.Error(err))
	}

	importer := services.NewIngredientImporter(nil)
	items := importer.ParseContent(string(content))

	if *dryRun || *recipe == "" {
		printTable(os.Stdout, items)
		return
	}

	recipeID, err := uuid.Parse(*recipe)
	if err != nil {
		logger.Fatal("Invalid recipe id", zap.String("recipe", *recipe), zap.Error(err))
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	saved, err := db.ReplaceRecipeIngredients(ctx, recipeID, items)
	if err != nil {
		logger.Fatal("Failed to replace ingredients", zap.String("recipe", recipeID.String()), zap.Error(err))
	}

	logger.Info("Imported ingredients",
		zap.String("recipe", recipeID.String()),
		zap.Int("count", len(saved)),
	)
}

func printTable(w io.Writer, items []models.ScrapedIngredient) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tAMOUNT\tNAME\tNOTES\tGRAMS")
	for _, item := range items {
		amount := ingredient.FormatQuantity(item.Quantity, item.Unit)
		if amount == "" && item.Unit != nil {
			amount = *item.Unit
		}

		grams := "-"
		if item.Quantity != nil {
			if g := ingredient.ToGrams(*item.Quantity, item.Unit, item.Name); g != nil {
				grams = fmt.Sprintf("%.0f", *g)
			}
		}

		notes := ""
		if item.Notes != nil {
			notes = *item.Notes
		}

		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", item.SortOrder, amount, item.Name, notes, grams)
	}
	tw.Flush()
}
