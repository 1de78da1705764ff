package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/foxxcyber/recipe-box/internal/models"
)

var ErrRecipeNotFound = errors.New("recipe not found")

// GetRecipeWithIngredients retrieves a recipe with its ingredient rows in sort order
func (db *DB) GetRecipeWithIngredients(ctx context.Context, id uuid.UUID) (*models.RecipeWithIngredients, error) {
	recipe := &models.RecipeWithIngredients{}
	err := db.Pool.QueryRow(ctx, `
		SELECT id, title, description, servings, source_url,
		       calories_per_serving, protein_per_serving, carbs_per_serving, fat_per_serving,
		       created_at, updated_at
		FROM recipes
		WHERE id = $1
	`, id).Scan(
		&recipe.ID, &recipe.Title, &recipe.Description, &recipe.Servings, &recipe.SourceURL,
		&recipe.CaloriesPerServing, &recipe.ProteinPerServing, &recipe.CarbsPerServing, &recipe.FatPerServing,
		&recipe.CreatedAt, &recipe.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to load recipe: %w", err)
	}

	ingredients, err := db.listRecipeIngredients(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	recipe.Ingredients = ingredients[id]
	if recipe.Ingredients == nil {
		recipe.Ingredients = []models.RecipeIngredient{}
	}

	return recipe, nil
}

// listRecipeIngredients loads the ingredient rows of several recipes, keyed by recipe
func (db *DB) listRecipeIngredients(ctx context.Context, recipeIDs []uuid.UUID) (map[uuid.UUID][]models.RecipeIngredient, error) {
	ids := make([]string, len(recipeIDs))
	for i, id := range recipeIDs {
		ids[i] = id.String()
	}

	rows, err := db.Pool.Query(ctx, `
		SELECT id, recipe_id, quantity, unit, name, notes, sort_order
		FROM recipe_ingredients
		WHERE recipe_id = ANY($1::uuid[])
		ORDER BY recipe_id, sort_order ASC
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load ingredients: %w", err)
	}
	defer rows.Close()

	byRecipe := make(map[uuid.UUID][]models.RecipeIngredient, len(recipeIDs))
	for rows.Next() {
		var ing models.RecipeIngredient
		if err := rows.Scan(&ing.ID, &ing.RecipeID, &ing.Quantity, &ing.Unit, &ing.Name, &ing.Notes, &ing.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		byRecipe[ing.RecipeID] = append(byRecipe[ing.RecipeID], ing)
	}

	return byRecipe, rows.Err()
}

// ReplaceRecipeIngredients swaps all ingredient rows of a recipe for the given
// parsed lines in a single transaction.
func (db *DB) ReplaceRecipeIngredients(ctx context.Context, recipeID uuid.UUID, items []models.ScrapedIngredient) ([]models.RecipeIngredient, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var exists bool
	err = tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM recipes WHERE id = $1)`, recipeID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check recipe: %w", err)
	}
	if !exists {
		return nil, ErrRecipeNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, recipeID); err != nil {
		return nil, fmt.Errorf("failed to clear ingredients: %w", err)
	}

	saved := make([]models.RecipeIngredient, 0, len(items))
	for _, item := range items {
		ing := models.RecipeIngredient{
			RecipeID:  recipeID,
			Quantity:  item.Quantity,
			Unit:      item.Unit,
			Name:      item.Name,
			Notes:     item.Notes,
			SortOrder: item.SortOrder,
		}
		err := tx.QueryRow(ctx, `
			INSERT INTO recipe_ingredients (recipe_id, quantity, unit, name, notes, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`, recipeID, item.Quantity, item.Unit, item.Name, item.Notes, item.SortOrder).Scan(&ing.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to insert ingredient %q: %w", item.Name, err)
		}
		saved = append(saved, ing)
	}

	if _, err := tx.Exec(ctx, `UPDATE recipes SET updated_at = NOW() WHERE id = $1`, recipeID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return saved, nil
}

// UpdateRecipeNutrition stores per-serving nutrition values on the recipe row
func (db *DB) UpdateRecipeNutrition(ctx context.Context, recipeID uuid.UUID, estimate *models.NutritionEstimate) error {
	result, err := db.Pool.Exec(ctx, `
		UPDATE recipes
		SET calories_per_serving = $2,
		    protein_per_serving = $3,
		    carbs_per_serving = $4,
		    fat_per_serving = $5,
		    updated_at = NOW()
		WHERE id = $1
	`, recipeID, estimate.CaloriesPerServing, estimate.ProteinPerServing, estimate.CarbsPerServing, estimate.FatPerServing)
	if err != nil {
		return fmt.Errorf("failed to save nutrition: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrRecipeNotFound
	}

	return nil
}
