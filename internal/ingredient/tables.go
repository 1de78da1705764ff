package ingredient

import "regexp"

// UnitVocabulary lists every unit spelling the parser recognises. The parser
// tries them longest-first, so declaration order only breaks ties between
// spellings of equal length.
var UnitVocabulary = []string{
	// weight
	"kg", "g", "oz", "lb", "lbs",
	// volume
	"litre", "litres", "liter", "liters", "l",
	"ml", "millilitre", "millilitres",
	"pint", "pints", "fl oz",
	// spoons
	"tbsp", "tablespoon", "tablespoons",
	"tsp", "teaspoon", "teaspoons",
	"dessertspoon", "dessertspoons",
	// cups
	"cup", "cups",
	// loose
	"bunch", "bunches",
	"handful", "handfuls",
	"can", "cans",
	"tin", "tins",
	"jar", "jars",
	"pack", "packs", "packet", "packets",
	"sheet", "sheets",
	"slice", "slices",
	"sprig", "sprigs",
	"clove", "cloves",
	"pinch", "pinches",
	"dash", "dashes",
	"drop", "drops",
	"stick", "sticks",
	"rasher", "rashers",
}

// vulgarFraction maps a fraction glyph to the decimal token it is rewritten to.
type vulgarFraction struct {
	glyph string
	value float64
}

var vulgarFractions = []vulgarFraction{
	{"½", 0.5},
	{"¼", 0.25},
	{"¾", 0.75},
	{"⅓", 1.0 / 3},
	{"⅔", 2.0 / 3},
	{"⅛", 0.125},
	{"⅜", 0.375},
	{"⅝", 0.625},
	{"⅞", 0.875},
}

// sizeQualifiers are bare count descriptors that sit between a quantity and the
// ingredient name ("2 large carrots"). They carry no unit.
var sizeQualifiers = []string{"large", "medium", "small", "whole"}

// qualitativeAmounts are article-led amount phrases with no numeral. They are
// consumed without producing a quantity or unit.
var qualitativeAmounts = []string{
	"pinch", "handful", "dash", "splash", "drizzle", "knob", "sprig",
}

// UnitAliases collapses plural and synonym spellings to the canonical short
// form used as part of the consolidation key.
var UnitAliases = map[string]string{
	"gram":          "g",
	"grams":         "g",
	"kilogram":      "kg",
	"kilograms":     "kg",
	"millilitre":    "ml",
	"millilitres":   "ml",
	"milliliter":    "ml",
	"milliliters":   "ml",
	"litre":         "l",
	"litres":        "l",
	"liter":         "l",
	"liters":        "l",
	"teaspoon":      "tsp",
	"teaspoons":     "tsp",
	"tablespoon":    "tbsp",
	"tablespoons":   "tbsp",
	"dessertspoon":  "dsp",
	"dessertspoons": "dsp",
	"pints":         "pint",
	"cans":          "can",
	"tins":          "tin",
	"packs":         "pack",
	"packets":       "pack",
	"packet":        "pack",
	"bunches":       "bunch",
	"handfuls":      "handful",
	"sprigs":        "sprig",
	"cloves":        "clove",
	"rashers":       "rasher",
	"slices":        "slice",
	"sheets":        "sheet",
	"sticks":        "stick",
}

// UnitGrams is grams per one unit. Volume entries assume water (1 ml = 1 g)
// until a density rule refines them.
var UnitGrams = map[string]float64{
	"g":         1,
	"gram":      1,
	"grams":     1,
	"kg":        1000,
	"kilogram":  1000,
	"kilograms": 1000,
	"oz":        28.35,
	"ounce":     28.35,
	"ounces":    28.35,
	"lb":        453.59,
	"pound":     453.59,
	"pounds":    453.59,

	"ml":          1,
	"millilitre":  1,
	"millilitres": 1,
	"milliliter":  1,
	"milliliters": 1,
	"l":           1000,
	"litre":       1000,
	"litres":      1000,
	"liter":       1000,
	"liters":      1000,

	"tbsp":        15,
	"tablespoon":  15,
	"tablespoons": 15,
	"tsp":         5,
	"teaspoon":    5,
	"teaspoons":   5,

	"cup":  240,
	"cups": 240,

	"fl oz":        28.41,
	"fluid ounce":  28.41,
	"fluid ounces": 28.41,
}

// VolumeUnits are the UnitGrams keys that measure volume and therefore take a
// density factor.
var VolumeUnits = map[string]bool{
	"ml": true, "millilitre": true, "millilitres": true, "milliliter": true, "milliliters": true,
	"l": true, "litre": true, "litres": true, "liter": true, "liters": true,
	"tbsp": true, "tablespoon": true, "tablespoons": true,
	"tsp": true, "teaspoon": true, "teaspoons": true,
	"cup": true, "cups": true,
	"fl oz": true, "fluid ounce": true, "fluid ounces": true,
}

// CountQualifiers are unit values treated the same as "no unit" by the
// converter.
var CountQualifiers = map[string]bool{
	"whole": true, "large": true, "medium": true, "small": true,
	"piece": true, "pieces": true, "slice": true, "slices": true,
}

// DensityRule gives grams per millilitre for ingredient names matching Pattern.
type DensityRule struct {
	Pattern    *regexp.Regexp
	GramsPerML float64
}

// CountWeightRule gives grams per whole item for ingredient names matching
// Pattern.
type CountWeightRule struct {
	Pattern      *regexp.Regexp
	GramsPerUnit float64
}

// DensityRules are evaluated in order; the first match wins.
var DensityRules = []DensityRule{
	{regexp.MustCompile(`\boil\b`), 0.91},
	{regexp.MustCompile(`\bbutter\b`), 0.91},
	{regexp.MustCompile(`\bhoney\b`), 1.42},
	{regexp.MustCompile(`\bsugar\b`), 0.85},
	{regexp.MustCompile(`\bflour\b`), 0.53},
	{regexp.MustCompile(`\bsalt\b`), 1.2},
	{regexp.MustCompile(`\bmilk\b`), 1.03},
	{regexp.MustCompile(`\bcream\b`), 1.0},
	{regexp.MustCompile(`\bstock\b|\bbroth\b`), 1.0},
	{regexp.MustCompile(`\bwine\b`), 0.99},
	{regexp.MustCompile(`\bvinegar\b`), 1.01},
	{regexp.MustCompile(`\bcocoa\b`), 0.5},
}

// CountWeightRules are evaluated in order; the first match wins. More specific
// patterns must stay ahead of broader ones.
var CountWeightRules = []CountWeightRule{
	{regexp.MustCompile(`\begg(s)?\b`), 55},
	{regexp.MustCompile(`\bonion(s)?\b`), 150},
	{regexp.MustCompile(`\bclove(s)? of garlic\b|\bgarlic clove(s)?\b`), 5},
	{regexp.MustCompile(`\bcarrot(s)?\b`), 80},
	{regexp.MustCompile(`\btomato(es)?\b`), 120},
	{regexp.MustCompile(`\bpotato(es)?\b`), 170},
	{regexp.MustCompile(`\bchicken breast(s)?\b`), 175},
	{regexp.MustCompile(`\bchicken thigh(s)?\b`), 120},
	{regexp.MustCompile(`\blemon(s)?\b`), 100},
	{regexp.MustCompile(`\blime(s)?\b`), 70},
	{regexp.MustCompile(`\bcourgette(s)?\b|\bzucchini(s)?\b`), 200},
	{regexp.MustCompile(`\bpepper(s)?\b|\bcapsicum(s)?\b`), 160},
	{regexp.MustCompile(`\bstick(s)? of celery\b|\bcelery stick(s)?\b`), 40},
	{regexp.MustCompile(`\bshallot(s)?\b`), 30},
	{regexp.MustCompile(`\bbayleaf\b|\bbay leaf\b|\bbay leaves\b`), 1},
}

const (
	defaultGramsPerML   = 1.0
	defaultGramsPerItem = 100.0
)
