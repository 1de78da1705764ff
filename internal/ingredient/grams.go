package ingredient

import "strings"

// Converter estimates ingredient mass from a quantity, unit and name. The
// tables are read-only after construction.
type Converter struct {
	unitGrams       map[string]float64
	volumeUnits     map[string]bool
	countQualifiers map[string]bool
	densities       []DensityRule
	countWeights    []CountWeightRule
}

var defaultConverter = NewConverter(UnitGrams, VolumeUnits, CountQualifiers, DensityRules, CountWeightRules)

// ToGrams estimates grams with the default tables. See Converter.ToGrams.
func ToGrams(quantity float64, unit *string, name string) *float64 {
	return defaultConverter.ToGrams(quantity, unit, name)
}

// NewConverter creates a converter over the given tables. Rule slices keep
// their order: the first matching rule wins.
func NewConverter(
	unitGrams map[string]float64,
	volumeUnits map[string]bool,
	countQualifiers map[string]bool,
	densities []DensityRule,
	countWeights []CountWeightRule,
) *Converter {
	return &Converter{
		unitGrams:       unitGrams,
		volumeUnits:     volumeUnits,
		countQualifiers: countQualifiers,
		densities:       densities,
		countWeights:    countWeights,
	}
}

// ToGrams returns nil when no sensible estimate exists (pinch, handful,
// unrecognised units). Callers must leave such ingredients out of any total
// rather than count them as zero.
func (c *Converter) ToGrams(quantity float64, unit *string, name string) *float64 {
	name = strings.ToLower(name)
	u := ""
	if unit != nil {
		u = strings.TrimSpace(strings.ToLower(*unit))
	}

	if perUnit, ok := c.unitGrams[u]; ok && u != "" {
		factor := 1.0
		if c.volumeUnits[u] {
			factor = c.density(name)
		}
		grams := quantity * perUnit * factor
		return &grams
	}

	if u == "" || c.countQualifiers[u] {
		grams := quantity * c.itemWeight(name)
		return &grams
	}

	return nil
}

func (c *Converter) density(name string) float64 {
	for _, rule := range c.densities {
		if rule.Pattern.MatchString(name) {
			return rule.GramsPerML
		}
	}
	return defaultGramsPerML
}

// itemWeight falls back to a rough 100 g per item for unknown count items.
func (c *Converter) itemWeight(name string) float64 {
	for _, rule := range c.countWeights {
		if rule.Pattern.MatchString(name) {
			return rule.GramsPerUnit
		}
	}
	return defaultGramsPerItem
}
