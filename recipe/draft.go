package recipe

// Draft is the structured output of parsing OCR text. RawText always
// preserves the full original input, even when structural parsing finds
// nothing, so the source remains auditable. Ingredients and Steps keep
// source line order.
type Draft struct {
	Title       string   `json:"title"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	RawText     string   `json:"raw_text"`
}

// Ingredient is the normalized form of a single ingredient line. When
// the quantity could not be parsed, Quantity is nil and the unparsed
// remainder is preserved in Note rather than discarded.
type Ingredient struct {
	Name     string   `json:"name"`
	Quantity *float64 `json:"quantity,omitempty"`
	Unit     string   `json:"unit,omitempty"`
	Note     string   `json:"note,omitempty"`
	Original string   `json:"original_text"`
}
