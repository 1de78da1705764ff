package ingredient

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Entry is one quantity/unit/name line to merge. Consolidate returns the same
// shape with the name and unit normalised.
type Entry struct {
	Name     string   `json:"name"`
	Quantity *float64 `json:"quantity"`
	Unit     *string  `json:"unit"`
}

var leadingArticles = []string{"a ", "an ", "some ", "the "}

// NormalizeName lowercases, trims, drops one leading article and one trailing
// "s", so "tomatoes" becomes "tomatoe" and "asparagus" becomes "asparagu".
func NormalizeName(name string) string {
	n := strings.TrimSpace(strings.ToLower(name))
	for _, article := range leadingArticles {
		if strings.HasPrefix(n, article) {
			n = n[len(article):]
			break
		}
	}
	return strings.TrimSuffix(n, "s")
}

// NormalizeUnit lowercases, trims and maps the unit through UnitAliases. A nil
// or blank unit stays nil.
func NormalizeUnit(unit *string) *string {
	if unit == nil {
		return nil
	}
	u := strings.TrimSpace(strings.ToLower(*unit))
	if u == "" {
		return nil
	}
	if alias, ok := UnitAliases[u]; ok {
		u = alias
	}
	return &u
}

// Key is the consolidation key "name::unit" of a raw entry (empty unit for
// nil). Entries with equal keys merge.
func Key(name string, unit *string) string {
	return EntryKey(NormalizeName(name), NormalizeUnit(unit))
}

// EntryKey is the key of an entry whose name and unit are already normalized,
// such as one returned by Consolidate or a stored shopping list row. It does
// not normalize again, so Key(raw) == EntryKey(consolidated) and distinct
// consolidated entries never share a key. Shopping list regeneration uses it
// to carry checked state across rebuilds, so its format must stay stable.
func EntryKey(name string, unit *string) string {
	u := ""
	if unit != nil {
		u = *unit
	}
	return name + "::" + u
}

// Consolidate merges entries sharing a key and returns them sorted by name.
// Quantities are summed and rounded to 3 decimal places; once any entry in a
// group has a nil quantity the merged quantity is nil.
func Consolidate(entries []Entry) []Entry {
	merged := make(map[string]*Entry, len(entries))
	order := make([]*Entry, 0, len(entries))

	for _, e := range entries {
		name := NormalizeName(e.Name)
		unit := NormalizeUnit(e.Unit)
		key := EntryKey(name, unit)

		existing, ok := merged[key]
		if !ok {
			entry := &Entry{Name: name, Unit: unit, Quantity: copyFloat(e.Quantity)}
			merged[key] = entry
			order = append(order, entry)
			continue
		}

		if existing.Quantity != nil && e.Quantity != nil {
			sum := round3(*existing.Quantity + *e.Quantity)
			existing.Quantity = &sum
		} else {
			existing.Quantity = nil
		}
	}

	result := make([]Entry, len(order))
	for i, e := range order {
		result[i] = *e
	}

	// Collators keep internal buffers, so each call gets its own.
	col := collate.New(language.English)
	sort.SliceStable(result, func(i, j int) bool {
		return col.CompareString(result[i].Name, result[j].Name) < 0
	})

	return result
}

// FormatQuantity renders a quantity for display: "2 g", "1.5 tbsp", "3".
// A nil quantity renders as "".
func FormatQuantity(quantity *float64, unit *string) string {
	if quantity == nil {
		return ""
	}

	q := *quantity
	var s string
	if q == math.Trunc(q) {
		s = strconv.FormatFloat(q, 'f', -1, 64)
	} else {
		s = strings.TrimSuffix(strconv.FormatFloat(q, 'f', 1, 64), ".0")
	}

	if unit != nil && *unit != "" {
		return s + " " + *unit
	}
	return s
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
