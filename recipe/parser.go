package recipe

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/wudi/recipekit/observability"
)

// titleScanLimit caps how many leading lines are considered for a title.
const titleScanLimit = 10

var (
	defaultIngredientKeywords = []string{"ingredient", "you will need"}
	defaultStepKeywords       = []string{"instruction", "direction", "preparation", "method", "step"}
)

var defaultUnits = []string{
	// mass
	"g", "gram", "grams", "kg", "kilogram", "kilograms", "mg",
	"oz", "ounce", "ounces", "lb", "lbs", "pound", "pounds",
	// volume
	"ml", "milliliter", "milliliters", "l", "liter", "liters", "litre", "litres",
	"cup", "cups", "tsp", "teaspoon", "teaspoons", "tbsp", "tablespoon", "tablespoons",
	// count and kitchen measures
	"pcs", "piece", "pieces", "clove", "cloves", "slice", "slices",
	"can", "cans", "pinch", "pinches", "bunch", "stick", "sticks", "pack", "package",
}

// Parser converts raw OCR text into a Draft via layout heuristics. The
// keyword vocabularies and unit set are fixed at construction; Parse is
// a pure function of its input.
//
// Where the two vocabularies would both claim a region, whichever
// section marker appears earlier in the text wins. This is a known
// limitation of keyword-driven segmentation on free-form OCR output.
type Parser struct {
	ingredientKeywords []string
	stepKeywords       []string
	units              map[string]struct{}
	logger             observability.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithIngredientKeywords replaces the vocabulary used to locate the
// ingredients section. Keywords are matched case-insensitively.
func WithIngredientKeywords(keywords ...string) Option {
	return func(p *Parser) {
		if len(keywords) > 0 {
			p.ingredientKeywords = lowered(keywords)
		}
	}
}

// WithStepKeywords replaces the vocabulary used to locate the steps
// section.
func WithStepKeywords(keywords ...string) Option {
	return func(p *Parser) {
		if len(keywords) > 0 {
			p.stepKeywords = lowered(keywords)
		}
	}
}

// WithUnits replaces the measurement-unit tokens used by the ingredient
// heuristics.
func WithUnits(units ...string) Option {
	return func(p *Parser) {
		if len(units) > 0 {
			p.units = unitSet(units)
		}
	}
}

// WithLogger sets the logger used to report parse degradations.
func WithLogger(l observability.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewParser constructs a Parser with the given options.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		ingredientKeywords: lowered(defaultIngredientKeywords),
		stepKeywords:       lowered(defaultStepKeywords),
		units:              unitSet(defaultUnits),
		logger:             observability.NopLogger{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse converts text into a Draft. It never fails: when no structure is
// found the draft degrades to empty sections with RawText preserved.
func (p *Parser) Parse(text string) Draft {
	draft := Draft{Ingredients: []string{}, Steps: []string{}, RawText: text}
	lines := splitLines(text)
	if !hasContent(lines) {
		return draft
	}

	draft.Title = p.findTitle(lines)
	ingIdx := p.findKeywordLine(lines, p.ingredientKeywords)
	stepIdx := p.findKeywordLine(lines, p.stepKeywords)
	if ingIdx < 0 && stepIdx < 0 {
		p.logger.Debug("no section markers found, using positional fallback",
			observability.Int("lines", len(lines)))
	}
	draft.Ingredients = p.collectIngredients(lines, ingIdx, stepIdx)
	draft.Steps = p.collectSteps(lines, stepIdx)
	return draft
}

// findTitle scans the leading lines for the first one that looks like a
// heading: long enough, not a section marker, and not all digits and
// punctuation. Falls back to the first non-empty line.
func (p *Parser) findTitle(lines []string) string {
	limit := titleScanLimit
	if len(lines) < limit {
		limit = len(lines)
	}
	for _, line := range lines[:limit] {
		if utf8.RuneCountInString(line) < 3 {
			continue
		}
		if p.containsKeyword(line) {
			continue
		}
		if !hasLetter(line) {
			continue
		}
		return line
	}
	for _, line := range lines {
		if line != "" {
			return line
		}
	}
	return ""
}

// findKeywordLine returns the index of the first line containing any of
// the keywords as a case-insensitive substring, or -1.
func (p *Parser) findKeywordLine(lines []string, keywords []string) int {
	for i, line := range lines {
		if containsAny(strings.ToLower(line), keywords) {
			return i
		}
	}
	return -1
}

// sectionEnd finds where a section body ends: the next line that starts
// with a keyword from either vocabulary. Requiring a prefix match avoids
// closing a section on keywords that appear mid-sentence.
func (p *Parser) sectionEnd(lines []string, start int) int {
	for i := start; i < len(lines); i++ {
		l := strings.ToLower(lines[i])
		if hasAnyPrefix(l, p.ingredientKeywords) || hasAnyPrefix(l, p.stepKeywords) {
			return i
		}
	}
	return len(lines)
}

func (p *Parser) collectIngredients(lines []string, ingIdx, stepIdx int) []string {
	out := []string{}
	if ingIdx >= 0 {
		start := ingIdx + 1
		end := p.sectionEnd(lines, start)
		if stepIdx >= start && stepIdx < end {
			end = stepIdx
		}
		for _, line := range lines[start:end] {
			if containsAny(strings.ToLower(line), p.stepKeywords) {
				break
			}
			if utf8.RuneCountInString(line) >= 2 {
				out = append(out, line)
			}
		}
		return out
	}

	// No explicit section: scan the first half of the text, or up to the
	// steps marker when one was found, keeping lines that look like
	// ingredients.
	limit := len(lines) / 2
	if stepIdx >= 0 {
		limit = stepIdx
	}
	for _, line := range lines[:limit] {
		if p.looksLikeIngredient(line) {
			out = append(out, line)
		}
	}
	return out
}

var (
	reLeadingQty  = regexp.MustCompile(`^\d+([.,/]\d+)?`)
	reTrailingQty = regexp.MustCompile(`\d+([.,/]\d+)?\s*$`)
)

// looksLikeIngredient reports whether a line carries a known
// measurement-unit token or a leading/trailing numeric quantity.
func (p *Parser) looksLikeIngredient(line string) bool {
	if line == "" {
		return false
	}
	for _, tok := range tokenize(line) {
		if _, ok := p.units[tok]; ok {
			return true
		}
	}
	return reLeadingQty.MatchString(line) || reTrailingQty.MatchString(line)
}

var reStepMarker = regexp.MustCompile(`(^|\s)\d{1,3}[.)]\s+`)

func (p *Parser) collectSteps(lines []string, stepIdx int) []string {
	var body []string
	if stepIdx >= 0 {
		start := stepIdx + 1
		body = lines[start:p.sectionEnd(lines, start)]
	} else {
		body = lines[len(lines)/2:]
	}
	return splitSteps(body)
}

// splitSteps merges continuation lines into the current step until a
// numbered marker ("N. " or "N) ") opens a new one or a blank line
// closes the current one. Markers may also occur mid-line.
func splitSteps(body []string) []string {
	steps := []string{}
	var cur strings.Builder
	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			steps = append(steps, s)
		}
		cur.Reset()
	}
	for _, line := range body {
		if line == "" {
			flush()
			continue
		}
		marks := reStepMarker.FindAllStringIndex(line, -1)
		if len(marks) == 0 {
			if cur.Len() > 0 {
				cur.WriteByte(' ')
			}
			cur.WriteString(line)
			continue
		}
		if lead := strings.TrimSpace(line[:marks[0][0]]); lead != "" {
			if cur.Len() > 0 {
				cur.WriteByte(' ')
			}
			cur.WriteString(lead)
		}
		for i, m := range marks {
			flush()
			end := len(line)
			if i+1 < len(marks) {
				end = marks[i+1][0]
			}
			cur.WriteString(strings.TrimSpace(line[m[1]:end]))
		}
	}
	flush()
	return steps
}

func (p *Parser) containsKeyword(line string) bool {
	l := strings.ToLower(line)
	return containsAny(l, p.ingredientKeywords) || containsAny(l, p.stepKeywords)
}

// splitLines trims every line but keeps empties: blank lines still act
// as step separators downstream.
func splitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = strings.TrimSpace(l)
	}
	return lines
}

func hasContent(lines []string) bool {
	for _, l := range lines {
		if l != "" {
			return true
		}
	}
	return false
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func tokenize(line string) []string {
	return strings.FieldsFunc(strings.ToLower(line), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func lowered(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

func unitSet(units []string) map[string]struct{} {
	m := make(map[string]struct{}, len(units))
	for _, u := range units {
		m[strings.ToLower(u)] = struct{}{}
	}
	return m
}
