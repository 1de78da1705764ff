package models

// Nutrients holds macronutrient values per 100 g of a food
type Nutrients struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// NutritionEstimate is the per-serving result of estimating a recipe.
// Matched and Skipped count the ingredients that did and did not contribute.
type NutritionEstimate struct {
	CaloriesPerServing int      `json:"calories_per_serving"`
	ProteinPerServing  int      `json:"protein_per_serving"`
	CarbsPerServing    int      `json:"carbs_per_serving"`
	FatPerServing      int      `json:"fat_per_serving"`
	Matched            int      `json:"matched"`
	Skipped            int      `json:"skipped"`
	SkippedIngredients []string `json:"skipped_ingredients"`
}
