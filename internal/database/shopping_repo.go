package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/foxxcyber/recipe-box/internal/ingredient"
	"github.com/foxxcyber/recipe-box/internal/models"
)

var (
	ErrWeekNotFound         = errors.New("meal plan week not found")
	ErrShoppingItemNotFound = errors.New("shopping list item not found")
)

const shoppingItemColumns = `id, week_id, ingredient_name, quantity, unit, checked, is_manual, created_at`

func scanShoppingItem(row pgx.Row, item *models.ShoppingListItem) error {
	return row.Scan(
		&item.ID, &item.WeekID, &item.IngredientName, &item.Quantity, &item.Unit,
		&item.Checked, &item.IsManual, &item.CreatedAt,
	)
}

// WeekExists reports whether a meal plan week exists
func (db *DB) WeekExists(ctx context.Context, weekID uuid.UUID) (bool, error) {
	var exists bool
	err := db.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM meal_plan_weeks WHERE id = $1)`, weekID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check week: %w", err)
	}
	return exists, nil
}

// ListPlannedRecipes returns every slot of a week that links a recipe, with
// the recipe's ingredients attached.
func (db *DB) ListPlannedRecipes(ctx context.Context, weekID uuid.UUID) ([]models.PlannedRecipe, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT s.id, s.recipe_id, r.servings, s.servings
		FROM meal_plan_slots s
		JOIN recipes r ON r.id = s.recipe_id
		WHERE s.week_id = $1 AND s.recipe_id IS NOT NULL
		ORDER BY s.day_of_week, s.meal_type
	`, weekID)
	if err != nil {
		return nil, fmt.Errorf("failed to load meal plan slots: %w", err)
	}
	defer rows.Close()

	var planned []models.PlannedRecipe
	var recipeIDs []uuid.UUID
	seen := make(map[uuid.UUID]bool)
	for rows.Next() {
		var p models.PlannedRecipe
		if err := rows.Scan(&p.SlotID, &p.RecipeID, &p.RecipeServings, &p.SlotServings); err != nil {
			return nil, fmt.Errorf("failed to scan meal plan slot: %w", err)
		}
		planned = append(planned, p)
		if !seen[p.RecipeID] {
			seen[p.RecipeID] = true
			recipeIDs = append(recipeIDs, p.RecipeID)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(planned) == 0 {
		return planned, nil
	}

	ingredients, err := db.listRecipeIngredients(ctx, recipeIDs)
	if err != nil {
		return nil, err
	}
	for i := range planned {
		planned[i].Ingredients = ingredients[planned[i].RecipeID]
	}

	return planned, nil
}

// ListShoppingItems returns shopping list items, auto-generated first and then
// manual, each group ordered by name. A nil week lists every week.
func (db *DB) ListShoppingItems(ctx context.Context, weekID *uuid.UUID) ([]models.ShoppingListItem, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT `+shoppingItemColumns+`
		FROM shopping_list_items
		WHERE $1::uuid IS NULL OR week_id = $1
		ORDER BY is_manual ASC, ingredient_name ASC
	`, weekID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shopping items: %w", err)
	}
	defer rows.Close()

	items := []models.ShoppingListItem{}
	for rows.Next() {
		var item models.ShoppingListItem
		if err := scanShoppingItem(rows, &item); err != nil {
			return nil, fmt.Errorf("failed to scan shopping item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// CheckedShoppingKeys returns the merge keys of the auto-generated items of a
// week that are currently checked.
func (db *DB) CheckedShoppingKeys(ctx context.Context, weekID uuid.UUID) (map[string]bool, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT ingredient_name, unit
		FROM shopping_list_items
		WHERE week_id = $1 AND checked = TRUE AND is_manual = FALSE
	`, weekID)
	if err != nil {
		return nil, fmt.Errorf("failed to load checked items: %w", err)
	}
	defer rows.Close()

	keys := make(map[string]bool)
	for rows.Next() {
		var name string
		var unit *string
		if err := rows.Scan(&name, &unit); err != nil {
			return nil, err
		}
		keys[ingredient.EntryKey(name, unit)] = true
	}

	return keys, rows.Err()
}

// ReplaceAutoShoppingItems deletes the auto-generated items of a week and
// inserts the given ones. Manual items are untouched.
func (db *DB) ReplaceAutoShoppingItems(ctx context.Context, weekID uuid.UUID, items []models.NewShoppingItem) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `DELETE FROM shopping_list_items WHERE week_id = $1 AND is_manual = FALSE`, weekID)
	if err != nil {
		return fmt.Errorf("failed to clear shopping list: %w", err)
	}

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(`
			INSERT INTO shopping_list_items (week_id, ingredient_name, quantity, unit, checked, is_manual)
			VALUES ($1, $2, $3, $4, $5, FALSE)
		`, weekID, item.IngredientName, item.Quantity, item.Unit, item.Checked)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert shopping items: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// AddManualShoppingItem inserts a hand-written item
func (db *DB) AddManualShoppingItem(ctx context.Context, weekID uuid.UUID, item models.NewShoppingItem) (*models.ShoppingListItem, error) {
	saved := &models.ShoppingListItem{}
	err := scanShoppingItem(db.Pool.QueryRow(ctx, `
		INSERT INTO shopping_list_items (week_id, ingredient_name, quantity, unit, checked, is_manual)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		RETURNING `+shoppingItemColumns,
		weekID, item.IngredientName, item.Quantity, item.Unit, item.Checked,
	), saved)
	if err != nil {
		return nil, fmt.Errorf("failed to add shopping item: %w", err)
	}

	return saved, nil
}

// SetShoppingItemChecked ticks or unticks an item
func (db *DB) SetShoppingItemChecked(ctx context.Context, itemID uuid.UUID, checked bool) (*models.ShoppingListItem, error) {
	item := &models.ShoppingListItem{}
	err := scanShoppingItem(db.Pool.QueryRow(ctx, `
		UPDATE shopping_list_items
		SET checked = $2
		WHERE id = $1
		RETURNING `+shoppingItemColumns,
		itemID, checked,
	), item)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrShoppingItemNotFound
		}
		return nil, fmt.Errorf("failed to update shopping item: %w", err)
	}

	return item, nil
}
