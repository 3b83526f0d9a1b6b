package recipe

// Package recipe converts raw multi-line OCR text into a structured
// draft (title, ingredients, steps) using layout heuristics, and
// normalizes individual ingredient lines into name/quantity/unit.
// Parsing is a pure function of the input text and the configuration
// fixed at construction: identical input always yields identical
// output, and malformed input degrades to a best-effort draft instead
// of an error.
