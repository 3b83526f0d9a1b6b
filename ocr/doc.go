package ocr

// Package ocr defines the abstraction layer for plugging third-party OCR
// engines (for example, Tesseract) into the recipe extraction pipeline,
// plus the Extractor that drives an engine: optional preprocessing, text
// cleanup, and confidence aggregation. The Engine interface is
// intentionally small and transport-agnostic so engines can be backed by
// native libraries, local binaries, or remote APIs without leaking
// provider-specific concerns into callers.
