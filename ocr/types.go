package ocr

import "context"

// Page segmentation modes understood by Tesseract-compatible engines.
const (
	// PSMSingleBlock treats the image as a single uniform block of text,
	// the assumption used for recipe photographs.
	PSMSingleBlock = 6
)

// ConfidenceUnknown is the sentinel confidence for tokens the engine
// reported no score for. It is excluded from aggregation.
const ConfidenceUnknown = -1

// Input encapsulates a single image submitted for recognition.
type Input struct {
	// Image is the encoded image payload (PNG or JPEG).
	Image []byte
	// Languages lists trained-data hints (e.g., "eng", "deu").
	Languages []string
	// PSM selects the page segmentation mode; zero keeps the engine
	// default.
	PSM int
	// Metadata passes engine-specific knobs (e.g., Tesseract variables)
	// without hard-coding them into the API surface.
	Metadata map[string]string
}

// Word is a single recognized token with its engine-reported certainty
// on a 0-100 scale. A negative confidence means no score was reported.
type Word struct {
	Text       string
	Confidence float64
}

// Result captures engine output for one input image.
type Result struct {
	// Text is the linearized text as reported by the engine, before any
	// cleanup.
	Text string
	// Words carries per-token confidence when the engine provides it.
	Words []Word
}

// Engine is the OCR provider contract: one image in, one result out.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, in Input) (Result, error)
}
