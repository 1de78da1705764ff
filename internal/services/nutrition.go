package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/foxxcyber/recipe-box/internal/ingredient"
	"github.com/foxxcyber/recipe-box/internal/logger"
	"github.com/foxxcyber/recipe-box/internal/metrics"
	"github.com/foxxcyber/recipe-box/internal/models"
)

var (
	ErrNutritionNotConfigured = errors.New("nutrition lookup is not configured")
	ErrNoNutrientMatch        = errors.New("no nutrient data found")
)

// FoodData Central nutrient IDs
const (
	nutrientEnergyKcal = 1008
	nutrientProtein    = 1003
	nutrientCarbs      = 1005
	nutrientFat        = 1004
)

// NutrientLookup resolves an ingredient name to nutrients per 100 g
type NutrientLookup interface {
	Lookup(ctx context.Context, name string) (*models.Nutrients, error)
}

// USDAClient searches USDA FoodData Central
type USDAClient struct {
	client *resty.Client
	apiKey string
}

func NewUSDAClient(baseURL, apiKey string, timeout time.Duration) *USDAClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &USDAClient{client: client, apiKey: apiKey}
}

type usdaSearchResponse struct {
	Foods []usdaFood `json:"foods"`
}

type usdaFood struct {
	FdcID         int    `json:"fdcId"`
	Description   string `json:"description"`
	FoodNutrients []struct {
		NutrientID int     `json:"nutrientId"`
		Value      float64 `json:"value"`
	} `json:"foodNutrients"`
}

func (f usdaFood) value(nutrientID int) float64 {
	for _, n := range f.FoodNutrients {
		if n.NutrientID == nutrientID {
			return n.Value
		}
	}
	return 0
}

// Lookup takes the first search hit as the best match
func (c *USDAClient) Lookup(ctx context.Context, name string) (*models.Nutrients, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"api_key":   c.apiKey,
			"query":     name,
			"dataType":  "Survey (FNDDS),Foundation,SR Legacy",
			"pageSize":  "5",
			"nutrients": "208,203,205,204",
		}).
		SetResult(&usdaSearchResponse{}).
		Get("/foods/search")
	if err != nil {
		return nil, fmt.Errorf("usda search failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("usda search failed: %s", resp.Status())
	}

	result, ok := resp.Result().(*usdaSearchResponse)
	if !ok || len(result.Foods) == 0 {
		return nil, ErrNoNutrientMatch
	}

	food := result.Foods[0]
	return &models.Nutrients{
		Calories: food.value(nutrientEnergyKcal),
		Protein:  food.value(nutrientProtein),
		Carbs:    food.value(nutrientCarbs),
		Fat:      food.value(nutrientFat),
	}, nil
}

// CachedLookup stores lookup results in redis. Cache failures are logged and
// fall through to the wrapped lookup.
type CachedLookup struct {
	client *redis.Client
	next   NutrientLookup
	ttl    time.Duration
}

func NewCachedLookup(client *redis.Client, next NutrientLookup, ttl time.Duration) *CachedLookup {
	return &CachedLookup{client: client, next: next, ttl: ttl}
}

func nutrientCacheKey(name string) string {
	return "nutrients:" + ingredient.NormalizeName(name)
}

func (c *CachedLookup) Lookup(ctx context.Context, name string) (*models.Nutrients, error) {
	key := nutrientCacheKey(name)

	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached models.Nutrients
		if err := json.Unmarshal(data, &cached); err == nil {
			metrics.NutrientCache.WithLabelValues(metrics.CacheHit).Inc()
			return &cached, nil
		}
		logger.Warn("Discarding unreadable nutrient cache entry", zap.String("key", key))
	case errors.Is(err, redis.Nil):
	default:
		logger.Warn("Nutrient cache read failed", zap.String("key", key), zap.Error(err))
	}
	metrics.NutrientCache.WithLabelValues(metrics.CacheMiss).Inc()

	nutrients, err := c.next.Lookup(ctx, name)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(nutrients); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			logger.Warn("Nutrient cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return nutrients, nil
}

// NutritionService estimates per-serving nutrition for recipes
type NutritionService struct {
	recipes     RecipeStore
	lookup      NutrientLookup
	concurrency int
}

// NewNutritionService creates the service. A nil lookup means nutrition is
// not configured.
func NewNutritionService(recipes RecipeStore, lookup NutrientLookup, concurrency int) *NutritionService {
	if concurrency <= 0 {
		concurrency = 10
	}
	return &NutritionService{recipes: recipes, lookup: lookup, concurrency: concurrency}
}

func (s *NutritionService) Enabled() bool {
	return s.lookup != nil
}

// Estimate totals the nutrients of every ingredient that has a quantity, a
// known mass and a lookup hit. Everything else is counted as skipped and
// contributes nothing. Per-serving values are rounded to whole numbers.
func (s *NutritionService) Estimate(ctx context.Context, ingredients []models.RecipeIngredient, servings int) (*models.NutritionEstimate, error) {
	if s.lookup == nil {
		return nil, ErrNutritionNotConfigured
	}

	contributions := make([]*models.Nutrients, len(ingredients))
	eligible := make([]bool, len(ingredients))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, ing := range ingredients {
		if ing.Quantity == nil || *ing.Quantity == 0 {
			continue
		}
		grams := ingredient.ToGrams(*ing.Quantity, ing.Unit, ing.Name)
		if grams == nil {
			continue
		}
		eligible[i] = true

		g.Go(func() error {
			nutrients, err := s.lookup.Lookup(ctx, ing.Name)
			if err != nil {
				if errors.Is(err, ErrNoNutrientMatch) {
					metrics.NutritionLookups.WithLabelValues(metrics.ResultSkipped).Inc()
				} else {
					metrics.NutritionLookups.WithLabelValues(metrics.ResultFailed).Inc()
				}
				logger.Debug("Nutrient lookup missed", zap.String("ingredient", ing.Name), zap.Error(err))
				return nil
			}
			factor := *grams / 100
			contributions[i] = &models.Nutrients{
				Calories: nutrients.Calories * factor,
				Protein:  nutrients.Protein * factor,
				Carbs:    nutrients.Carbs * factor,
				Fat:      nutrients.Fat * factor,
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var total models.Nutrients
	estimate := &models.NutritionEstimate{SkippedIngredients: []string{}}
	for i, c := range contributions {
		if c == nil {
			estimate.Skipped++
			estimate.SkippedIngredients = append(estimate.SkippedIngredients, ingredients[i].Name)
			if !eligible[i] {
				metrics.NutritionLookups.WithLabelValues(metrics.ResultSkipped).Inc()
			}
			continue
		}
		estimate.Matched++
		metrics.NutritionLookups.WithLabelValues(metrics.ResultMatched).Inc()
		total.Calories += c.Calories
		total.Protein += c.Protein
		total.Carbs += c.Carbs
		total.Fat += c.Fat
	}

	if servings <= 0 {
		servings = 1
	}
	perServing := func(v float64) int {
		return int(math.Round(v / float64(servings)))
	}
	estimate.CaloriesPerServing = perServing(total.Calories)
	estimate.ProteinPerServing = perServing(total.Protein)
	estimate.CarbsPerServing = perServing(total.Carbs)
	estimate.FatPerServing = perServing(total.Fat)

	return estimate, nil
}

// EstimateRecipe estimates a stored recipe and saves the result on it
func (s *NutritionService) EstimateRecipe(ctx context.Context, recipeID uuid.UUID) (*models.NutritionEstimate, error) {
	if s.lookup == nil {
		return nil, ErrNutritionNotConfigured
	}

	recipe, err := s.recipes.GetRecipeWithIngredients(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	estimate, err := s.Estimate(ctx, recipe.Ingredients, recipe.Servings)
	if err != nil {
		return nil, err
	}

	if err := s.recipes.UpdateRecipeNutrition(ctx, recipeID, estimate); err != nil {
		return nil, err
	}

	logger.Info("Estimated recipe nutrition",
		zap.String("recipe_id", recipeID.String()),
		zap.Int("matched", estimate.Matched),
		zap.Int("skipped", estimate.Skipped),
	)
	return estimate, nil
}
