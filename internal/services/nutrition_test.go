package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foxxcyber/recipe-box/internal/database"
	"github.com/foxxcyber/recipe-box/internal/metrics"
	"github.com/foxxcyber/recipe-box/internal/models"
)

var testFoods = map[string]models.Nutrients{
	"flour": {Calories: 364, Protein: 10, Carbs: 76, Fat: 1},
	"eggs":  {Calories: 143, Protein: 12.6, Carbs: 0.7, Fat: 9.5},
}

func testIngredients() []models.RecipeIngredient {
	return []models.RecipeIngredient{
		{Name: "flour", Quantity: floatPtr(200), Unit: strPtr("g")},
		{Name: "eggs", Quantity: floatPtr(3)},
		{Name: "salt"},
		{Name: "sugar", Quantity: floatPtr(0), Unit: strPtr("g")},
		{Name: "pepper", Quantity: floatPtr(1), Unit: strPtr("pinch")},
		{Name: "mystery", Quantity: floatPtr(1), Unit: strPtr("cup")},
	}
}

func TestEstimate(t *testing.T) {
	lookup := &fakeLookup{foods: testFoods}
	svc := NewNutritionService(nil, lookup, 10)

	got, err := svc.Estimate(context.Background(), testIngredients(), 4)
	require.NoError(t, err)

	expected := &models.NutritionEstimate{
		CaloriesPerServing: 241,
		ProteinPerServing:  10,
		CarbsPerServing:    38,
		FatPerServing:      4,
		Matched:            2,
		Skipped:            4,
		SkippedIngredients: []string{"salt", "sugar", "pepper", "mystery"},
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Fatal(diff)
	}

	// Only ingredients with a quantity and a known mass reach the lookup.
	assert.Equal(t, 3, lookup.calls)
}

func TestEstimateNonPositiveServings(t *testing.T) {
	svc := NewNutritionService(nil, &fakeLookup{foods: testFoods}, 10)
	ingredients := []models.RecipeIngredient{{Name: "flour", Quantity: floatPtr(100), Unit: strPtr("g")}}

	for _, servings := range []int{0, -3} {
		got, err := svc.Estimate(context.Background(), ingredients, servings)
		require.NoError(t, err)
		assert.Equal(t, 364, got.CaloriesPerServing)
	}
}

func TestEstimateEmpty(t *testing.T) {
	svc := NewNutritionService(nil, &fakeLookup{}, 10)
	got, err := svc.Estimate(context.Background(), nil, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Matched)
	assert.Equal(t, 0, got.Skipped)
	assert.Equal(t, 0, got.CaloriesPerServing)
}

func TestEstimateBoundsConcurrency(t *testing.T) {
	var ingredients []models.RecipeIngredient
	for i := 0; i < 8; i++ {
		ingredients = append(ingredients, models.RecipeIngredient{Name: "flour", Quantity: floatPtr(100), Unit: strPtr("g")})
	}
	lookup := &fakeLookup{foods: testFoods, delay: 10 * time.Millisecond}
	svc := NewNutritionService(nil, lookup, 2)

	got, err := svc.Estimate(context.Background(), ingredients, 1)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Matched)
	assert.Equal(t, 8*364, got.CaloriesPerServing)
	assert.LessOrEqual(t, lookup.maxInFlight, 2)
}

func TestEstimateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewNutritionService(nil, &fakeLookup{foods: testFoods}, 10)
	_, err := svc.Estimate(ctx, testIngredients(), 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEstimateNotConfigured(t *testing.T) {
	svc := NewNutritionService(newFakeRecipeStore(), nil, 10)
	assert.False(t, svc.Enabled())

	_, err := svc.Estimate(context.Background(), testIngredients(), 2)
	assert.ErrorIs(t, err, ErrNutritionNotConfigured)

	_, err = svc.EstimateRecipe(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNutritionNotConfigured)
}

func TestEstimateRecipe(t *testing.T) {
	recipe := &models.RecipeWithIngredients{
		Recipe:      models.Recipe{ID: uuid.New(), Title: "Pancakes", Servings: 4},
		Ingredients: testIngredients(),
	}
	store := newFakeRecipeStore(recipe)
	svc := NewNutritionService(store, &fakeLookup{foods: testFoods}, 10)

	got, err := svc.EstimateRecipe(context.Background(), recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, 241, got.CaloriesPerServing)
	assert.Same(t, got, store.saved[recipe.ID])

	_, err = svc.EstimateRecipe(context.Background(), uuid.New())
	assert.ErrorIs(t, err, database.ErrRecipeNotFound)
}

func TestUSDAClientLookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/foods/search", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("api_key"))
		assert.Equal(t, "5", r.URL.Query().Get("pageSize"))

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("query") {
		case "flour":
			_, _ = w.Write([]byte(`{"foods":[
				{"fdcId":1,"description":"Flour, wheat","foodNutrients":[
					{"nutrientId":1008,"value":364},
					{"nutrientId":1003,"value":10.3},
					{"nutrientId":1005,"value":76.3},
					{"nutrientId":1004,"value":0.98}
				]},
				{"fdcId":2,"description":"Flour, rye","foodNutrients":[{"nutrientId":1008,"value":1}]}
			]}`))
		case "water":
			_, _ = w.Write([]byte(`{"foods":[{"fdcId":3,"description":"Water","foodNutrients":[]}]}`))
		case "broken":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			_, _ = w.Write([]byte(`{"foods":[]}`))
		}
	}))
	defer server.Close()

	client := NewUSDAClient(server.URL, "secret", time.Second)
	ctx := context.Background()

	got, err := client.Lookup(ctx, "flour")
	require.NoError(t, err)
	assert.Equal(t, &models.Nutrients{Calories: 364, Protein: 10.3, Carbs: 76.3, Fat: 0.98}, got)

	got, err = client.Lookup(ctx, "water")
	require.NoError(t, err)
	assert.Equal(t, &models.Nutrients{}, got)

	_, err = client.Lookup(ctx, "unobtainium")
	assert.ErrorIs(t, err, ErrNoNutrientMatch)

	_, err = client.Lookup(ctx, "broken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoNutrientMatch)
}

func TestNutrientCacheKey(t *testing.T) {
	assert.Equal(t, "nutrients:onion", nutrientCacheKey("The Onions"))
	assert.Equal(t, nutrientCacheKey("carrots"), nutrientCacheKey(" Carrot "))
}

func TestCachedLookupFallsThroughWhenCacheIsDown(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	next := &fakeLookup{foods: testFoods}
	cached := NewCachedLookup(client, next, time.Hour)

	got, err := cached.Lookup(context.Background(), "flour")
	require.NoError(t, err)
	assert.Equal(t, 364.0, got.Calories)
	assert.Equal(t, 1, next.calls)

	_, err = cached.Lookup(context.Background(), "mystery")
	assert.ErrorIs(t, err, ErrNoNutrientMatch)
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestCachedLookupServesHitsFromRedis(t *testing.T) {
	mr, client := newTestRedis(t)
	next := &fakeLookup{foods: testFoods}
	cached := NewCachedLookup(client, next, 6*time.Hour)
	ctx := context.Background()
	key := nutrientCacheKey("flour")

	got, err := cached.Lookup(ctx, "flour")
	require.NoError(t, err)
	assert.Equal(t, testFoods["flour"], *got)
	assert.Equal(t, 1, next.calls)

	require.True(t, mr.Exists(key))
	assert.Equal(t, 6*time.Hour, mr.TTL(key))
	raw, err := mr.Get(key)
	require.NoError(t, err)
	var stored models.Nutrients
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.Equal(t, testFoods["flour"], stored)

	hits := metrics.NutrientCache.WithLabelValues(metrics.CacheHit)
	hitsBefore := testutil.ToFloat64(hits)

	got, err = cached.Lookup(ctx, " Flour ")
	require.NoError(t, err)
	assert.Equal(t, testFoods["flour"], *got)
	assert.Equal(t, 1, next.calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(hits)-hitsBefore)
}

func TestCachedLookupReplacesUnreadableEntry(t *testing.T) {
	mr, client := newTestRedis(t)
	next := &fakeLookup{foods: testFoods}
	cached := NewCachedLookup(client, next, time.Hour)
	key := nutrientCacheKey("eggs")
	require.NoError(t, mr.Set(key, "{not json"))

	got, err := cached.Lookup(context.Background(), "eggs")
	require.NoError(t, err)
	assert.Equal(t, testFoods["eggs"], *got)
	assert.Equal(t, 1, next.calls)

	raw, err := mr.Get(key)
	require.NoError(t, err)
	var stored models.Nutrients
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.Equal(t, testFoods["eggs"], stored)
	assert.Equal(t, time.Hour, mr.TTL(key))
}

func TestCachedLookupDoesNotCacheMisses(t *testing.T) {
	mr, client := newTestRedis(t)
	next := &fakeLookup{foods: testFoods}
	cached := NewCachedLookup(client, next, time.Hour)

	_, err := cached.Lookup(context.Background(), "mystery")
	assert.ErrorIs(t, err, ErrNoNutrientMatch)
	assert.False(t, mr.Exists(nutrientCacheKey("mystery")))

	_, err = cached.Lookup(context.Background(), "mystery")
	assert.ErrorIs(t, err, ErrNoNutrientMatch)
	assert.Equal(t, 2, next.calls)
}
