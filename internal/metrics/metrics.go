package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "recipe_box"

var (
	// ParsedLines counts ingredient lines by outcome: structured or fallback.
	ParsedLines = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ingredient_lines_parsed_total",
		Help:      "Ingredient lines parsed, by outcome.",
	}, []string{"outcome"})

	// NutritionLookups counts per-ingredient nutrition results: matched, skipped or failed.
	NutritionLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "nutrition_lookups_total",
		Help:      "Per-ingredient nutrition lookups, by result.",
	}, []string{"result"})

	NutrientCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "nutrient_cache_requests_total",
		Help:      "Nutrient cache requests, by hit or miss.",
	}, []string{"result"})

	ShoppingRegenerations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shopping_list_regenerations_total",
		Help:      "Shopping list regenerations.",
	})
)

const (
	OutcomeStructured = "structured"
	OutcomeFallback   = "fallback"

	ResultMatched = "matched"
	ResultSkipped = "skipped"
	ResultFailed  = "failed"

	CacheHit  = "hit"
	CacheMiss = "miss"
)
