package extraction

// Package extraction composes the preprocessing, OCR, and parsing layers
// into caller-facing operations. Every operation returns a uniform
// serializable envelope; callers branch on its status, never on error
// types, and batch operations isolate per-item failures so one bad image
// cannot fail the whole batch.
