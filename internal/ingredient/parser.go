package ingredient

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Parsed is the structured form of one raw ingredient line. A nil field means
// the value could not be determined; it is never the same as zero or "".
type Parsed struct {
	Quantity *float64 `json:"quantity"`
	Unit     *string  `json:"unit"`
	Name     string   `json:"name"`
	Notes    *string  `json:"notes"`
}

// Parser turns free-text ingredient lines into Parsed values. A Parser is
// immutable after construction and safe for concurrent use.
type Parser struct {
	rangePattern       *regexp.Regexp
	numberPattern      *regexp.Regexp
	fractionPattern    *regexp.Regexp
	decimalPattern     *regexp.Regexp
	sizePattern        *regexp.Regexp
	qualitativePattern *regexp.Regexp
	ofPattern          *regexp.Regexp
	units              []unitMatcher
}

type unitMatcher struct {
	unit    string
	pattern *regexp.Regexp
}

var defaultParser = NewParser(UnitVocabulary)

// Parse parses raw with the default unit vocabulary.
func Parse(raw string) Parsed {
	return defaultParser.Parse(raw)
}

// TryParse parses raw with the default unit vocabulary. See Parser.TryParse.
func TryParse(raw string) (Parsed, bool) {
	return defaultParser.TryParse(raw)
}

// NewParser creates a parser that recognises the given unit spellings.
func NewParser(vocabulary []string) *Parser {
	sorted := make([]string, len(vocabulary))
	copy(sorted, vocabulary)
	// Longest first so "tbsp" is tried before "tsp" and "litres" before "l".
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})

	units := make([]unitMatcher, 0, len(sorted))
	for _, u := range sorted {
		units = append(units, unitMatcher{
			unit:    strings.ToLower(u),
			pattern: regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(u) + `s?\b`),
		})
	}

	return &Parser{
		// Match a leading range: 2-3, 2 – 3, 1/2-1
		rangePattern: regexp.MustCompile(`^(\d[\d\s./]*)\s*[-–]\s*\d[\d\s./]*`),

		// Match the leading numeric run: digits, spaces, dots and slashes
		numberPattern: regexp.MustCompile(`^[\d\s./]+`),

		fractionPattern: regexp.MustCompile(`^(\d+)/(\d+)$`),
		decimalPattern:  regexp.MustCompile(`^(?:\d+(?:\.\d*)?|\.\d+)`),

		sizePattern: regexp.MustCompile(`(?i)^(?:` + strings.Join(sizeQualifiers, "|") + `)\b\s*`),
		qualitativePattern: regexp.MustCompile(
			`(?i)^an?\s+(?:` + strings.Join(qualitativeAmounts, "|") + `)(?:es|s)?\b\s*(?:of\s+)?`),
		ofPattern: regexp.MustCompile(`(?i)^of\s+`),
		units:     units,
	}
}

// Parse never fails. When nothing structured can be extracted the whole
// trimmed line becomes the name.
func (p *Parser) Parse(raw string) Parsed {
	parsed, _ := p.TryParse(raw)
	return parsed
}

// TryParse is Parse that also reports whether a name was extracted. The
// bool is false only when the result is the raw-text fallback.
func (p *Parser) TryParse(raw string) (Parsed, bool) {
	s := strings.TrimSpace(normalizeFractions(raw))

	// Ranges are not modelled; only the lower bound survives
	s = p.rangePattern.ReplaceAllString(s, "${1}")

	var quantity *float64
	rest := s
	if m := p.numberPattern.FindString(s); m != "" {
		if q, ok := p.parseNumber(m); ok {
			quantity = &q
			rest = strings.TrimSpace(s[len(m):])
		}
	}

	qualitative := false
	if quantity != nil {
		rest = trimMatch(p.sizePattern, rest)
	} else if loc := p.qualitativePattern.FindStringIndex(rest); loc != nil {
		rest = strings.TrimSpace(rest[loc[1]:])
		qualitative = true
	}

	var unit *string
	if !qualitative {
		for _, m := range p.units {
			if loc := m.pattern.FindStringIndex(rest); loc != nil {
				u := m.unit
				unit = &u
				rest = strings.TrimSpace(rest[loc[1]:])
				break
			}
		}
	}

	// "100ml of milk"
	rest = p.ofPattern.ReplaceAllString(rest, "")

	name, notes := splitNotes(rest)
	if name == "" {
		return Parsed{Name: strings.TrimSpace(raw)}, false
	}

	return Parsed{
		Quantity: quantity,
		Unit:     unit,
		Name:     name,
		Notes:    notes,
	}, true
}

// normalizeFractions rewrites vulgar fraction glyphs as a space-separated
// decimal token so "1½" reads as the mixed number "1 0.5".
func normalizeFractions(s string) string {
	for _, f := range vulgarFractions {
		if strings.Contains(s, f.glyph) {
			s = strings.ReplaceAll(s, f.glyph, " "+strconv.FormatFloat(f.value, 'f', -1, 64))
		}
	}
	return s
}

// parseNumber reads a mixed number ("1 0.5", "1 1/2"), a fraction ("3/4") or
// a leading decimal. A zero denominator is unparsable.
func (p *Parser) parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if parts := strings.Fields(s); len(parts) == 2 {
		a, okA := p.parseSimple(parts[0])
		b, okB := p.parseSimple(parts[1])
		if okA && okB {
			return a + b, true
		}
	}

	if m := p.fractionPattern.FindStringSubmatch(s); m != nil {
		return fraction(m[1], m[2])
	}

	if m := p.decimalPattern.FindString(s); m != "" {
		n, err := strconv.ParseFloat(m, 64)
		if err == nil {
			return n, true
		}
	}

	return 0, false
}

func (p *Parser) parseSimple(s string) (float64, bool) {
	if m := p.fractionPattern.FindStringSubmatch(s); m != nil {
		return fraction(m[1], m[2])
	}
	if m := p.decimalPattern.FindString(s); m != "" && m == s {
		n, err := strconv.ParseFloat(m, 64)
		return n, err == nil
	}
	return 0, false
}

func fraction(num, denom string) (float64, bool) {
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	d, err := strconv.ParseFloat(denom, 64)
	if err != nil || d == 0 {
		return 0, false
	}
	return n / d, true
}

func trimMatch(pattern *regexp.Regexp, s string) string {
	if loc := pattern.FindStringIndex(s); loc != nil {
		return strings.TrimSpace(s[loc[1]:])
	}
	return s
}

// splitNotes splits at the first comma: name before, notes after.
func splitNotes(s string) (string, *string) {
	idx := strings.Index(s, ",")
	if idx < 0 {
		return strings.TrimSpace(s), nil
	}

	name := strings.TrimSpace(s[:idx])
	notes := strings.TrimSpace(s[idx+1:])
	if notes == "" {
		return name, nil
	}
	return name, &notes
}
