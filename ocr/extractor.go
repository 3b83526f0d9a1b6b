package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/wudi/recipekit/observability"
	"github.com/wudi/recipekit/preprocess"
)

var (
	// ErrInvalidImage reports a source that cannot be recognized as an
	// image (nil, zero-size, or undecodable).
	ErrInvalidImage = errors.New("ocr: invalid image")
	// ErrExtraction wraps any engine failure. Unlike preprocessing, this
	// layer never degrades silently.
	ErrExtraction = errors.New("ocr: extraction failed")
)

// Config carries the immutable construction-time configuration of an
// Extractor. Zero values select sensible defaults.
type Config struct {
	// Languages is the configured language set passed to the engine.
	Languages []string
	// PSM is the page segmentation mode; defaults to PSMSingleBlock.
	PSM int
	// Preprocessor normalizes images before recognition; a default one
	// is constructed when nil.
	Preprocessor *preprocess.Preprocessor
	Logger       observability.Logger
}

// Extractor invokes an OCR engine and normalizes its output. It is
// stateless per call; the only shared state is the configuration fixed
// at construction, so it is safe for concurrent use.
type Extractor struct {
	engine Engine
	pre    *preprocess.Preprocessor
	langs  []string
	psm    int
	logger observability.Logger
}

// NewExtractor builds an Extractor around the given engine.
func NewExtractor(engine Engine, cfg Config) *Extractor {
	e := &Extractor{
		engine: engine,
		pre:    cfg.Preprocessor,
		langs:  append([]string(nil), cfg.Languages...),
		psm:    cfg.PSM,
		logger: cfg.Logger,
	}
	if e.pre == nil {
		e.pre = preprocess.New()
	}
	if e.psm == 0 {
		e.psm = PSMSingleBlock
	}
	if len(e.langs) == 0 {
		e.langs = []string{"eng"}
	}
	if e.logger == nil {
		e.logger = observability.NopLogger{}
	}
	return e
}

// ExtractText recognizes text in img, optionally preprocessing it first,
// and returns the cleaned result.
func (e *Extractor) ExtractText(ctx context.Context, img image.Image, preprocessImage bool) (string, error) {
	res, err := e.run(ctx, img, preprocessImage)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// ExtractWithConfidence additionally reports the mean confidence over all
// tokens carrying a valid score. When no token has one, confidence is 0.
func (e *Extractor) ExtractWithConfidence(ctx context.Context, img image.Image, preprocessImage bool) (string, float64, error) {
	res, err := e.run(ctx, img, preprocessImage)
	if err != nil {
		return "", 0, err
	}
	return res.Text, MeanConfidence(res.Words), nil
}

func (e *Extractor) run(ctx context.Context, img image.Image, preprocessImage bool) (Result, error) {
	if img == nil {
		return Result{}, fmt.Errorf("%w: nil image", ErrInvalidImage)
	}
	src := img
	if preprocessImage {
		p, err := e.pre.Preprocess(img)
		if err != nil {
			return Result{}, fmt.Errorf("%w: %v", ErrInvalidImage, err)
		}
		src = p
	} else {
		// Dimensions are still clamped to bound engine cost.
		src = e.pre.Resize(img)
	}

	data, err := encodePNG(src)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrExtraction, err)
	}
	in := NewInput(data, WithLanguages(e.langs...), WithPSM(e.psm))
	res, err := e.engine.Recognize(ctx, in)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s: %w", ErrExtraction, e.engine.Name(), err)
	}
	e.logger.Debug("text extracted",
		observability.String("engine", e.engine.Name()),
		observability.Int("words", len(res.Words)))
	res.Text = CleanText(res.Text)
	return res, nil
}

// MeanConfidence averages word confidences, excluding sentinel values.
// It returns 0 when no word carries a valid score.
func MeanConfidence(words []Word) float64 {
	var sum float64
	n := 0
	for _, w := range words {
		if w.Confidence < 0 {
			continue
		}
		sum += w.Confidence
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
