package recipe

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/wudi/recipekit/observability"
)

// reQuantity matches the first quantity token in a line: a mixed number
// ("1 1/2"), a simple fraction ("3/4"), a decimal ("2.5", "2,5"), or an
// integer. Longest alternatives come first.
var reQuantity = regexp.MustCompile(`(?:^|\s)(\d+\s+\d+/\d+|\d+/\d+|\d+[.,]\d+|\d+)`)

// wordQuantities maps spelled-out quantities accepted in place of a
// numeric token.
var wordQuantities = map[string]float64{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6,
	"half": 0.5, "quarter": 0.25, "dozen": 12,
}

// quantityPhrases are trailing free-text quantities preserved as a note.
var quantityPhrases = []string{"to taste", "as needed"}

// NormalizeIngredient splits one ingredient line into a name, an
// optional quantity, and an optional unit. A quantity that cannot be
// parsed leaves Quantity nil and keeps the unparsed remainder in Note
// instead of discarding it.
func (p *Parser) NormalizeIngredient(line string) Ingredient {
	ing := Ingredient{Original: line}
	s := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-•*"))
	if s == "" {
		return ing
	}

	loc := reQuantity.FindStringSubmatchIndex(s)
	if loc == nil {
		return p.normalizeWordQuantity(s, ing)
	}

	name := trimSeparators(s[:loc[2]])
	qty, err := parseQuantity(s[loc[2]:loc[3]])
	if err != nil {
		p.logger.Debug("quantity parse failed",
			observability.String("line", line),
			observability.Error("reason", err))
		ing.Name = name
		ing.Note = strings.TrimSpace(s[loc[2]:])
		return ing
	}
	ing.Quantity = &qty

	rest := strings.TrimSpace(s[loc[3]:])
	if rest != "" {
		tok, remainder := splitFirstToken(rest)
		if canon := canonicalUnit(tok); canon != "" && p.isUnit(canon) {
			ing.Unit = canon
			rest = strings.TrimSpace(remainder)
		}
	}
	// Quantity-first lines ("2 cups flour") leave the name after the
	// unit rather than before the quantity.
	if name == "" && rest != "" {
		name, rest = rest, ""
	}
	ing.Name = name
	ing.Note = rest
	return ing
}

// normalizeWordQuantity handles lines without a numeric token: trailing
// quantity phrases ("to taste") and spelled-out quantities ("two eggs").
func (p *Parser) normalizeWordQuantity(s string, ing Ingredient) Ingredient {
	lower := strings.ToLower(s)
	for _, phrase := range quantityPhrases {
		if strings.HasSuffix(lower, phrase) {
			ing.Name = trimSeparators(s[:len(s)-len(phrase)])
			ing.Note = phrase
			return ing
		}
	}

	tok, remainder := splitFirstToken(s)
	if q, ok := wordQuantities[strings.ToLower(tok)]; ok && remainder != "" {
		ing.Quantity = &q
		rest := strings.TrimSpace(remainder)
		if t, r := splitFirstToken(rest); p.isUnit(canonicalUnit(t)) {
			ing.Unit = canonicalUnit(t)
			rest = strings.TrimSpace(r)
		}
		ing.Name = rest
		return ing
	}

	ing.Name = s
	return ing
}

func (p *Parser) isUnit(tok string) bool {
	_, ok := p.units[tok]
	return ok
}

func parseQuantity(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, ' '); i >= 0 {
		whole, err := strconv.ParseFloat(s[:i], 64)
		if err != nil {
			return 0, err
		}
		frac, err := parseFraction(strings.TrimSpace(s[i+1:]))
		if err != nil {
			return 0, err
		}
		return whole + frac, nil
	}
	if strings.Contains(s, "/") {
		return parseFraction(s)
	}
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}

func parseFraction(s string) (float64, error) {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		return 0, fmt.Errorf("not a fraction: %q", s)
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, err
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil {
		return 0, err
	}
	if d == 0 {
		return 0, fmt.Errorf("zero denominator in %q", s)
	}
	return n / d, nil
}

func canonicalUnit(tok string) string {
	return strings.ToLower(strings.Trim(tok, ".,;:()"))
}

func trimSeparators(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), " :-–—·")
}

func splitFirstToken(s string) (string, string) {
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		return s[:i], s[i+1:]
	}
	return s, ""
}
