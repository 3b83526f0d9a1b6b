package preprocess

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"

	"github.com/wudi/recipekit/observability"
)

// ErrEmptyImage reports a nil or zero-size input. It is the only error
// Preprocess returns; everything past the resize stage degrades silently.
var ErrEmptyImage = errors.New("preprocess: empty image")

const (
	DefaultMaxWidth  = 2048
	DefaultMaxHeight = 2048

	defaultDenoiseSigma = 0.8
	defaultTiles        = 8
	defaultClipLimit    = 3.0
)

// Preprocessor transforms an input image into a form that maximizes OCR
// accuracy while bounding compute cost. All configuration is fixed at
// construction; a Preprocessor is stateless per call and safe for
// concurrent use.
type Preprocessor struct {
	maxWidth     int
	maxHeight    int
	denoiseSigma float64
	tiles        int
	clipLimit    float64
	logger       observability.Logger
}

// Option configures a Preprocessor.
type Option func(*Preprocessor)

// WithMaxSize bounds the dimensions an image is downscaled to before any
// further processing. Non-positive values keep the defaults.
func WithMaxSize(width, height int) Option {
	return func(p *Preprocessor) {
		if width > 0 {
			p.maxWidth = width
		}
		if height > 0 {
			p.maxHeight = height
		}
	}
}

// WithDenoiseSigma sets the Gaussian denoise strength. Zero disables the
// denoise stage.
func WithDenoiseSigma(sigma float64) Option {
	return func(p *Preprocessor) {
		if sigma >= 0 {
			p.denoiseSigma = sigma
		}
	}
}

// WithContrastTiles sets the tile grid and clip limit for local contrast
// enhancement.
func WithContrastTiles(tiles int, clipLimit float64) Option {
	return func(p *Preprocessor) {
		if tiles > 0 {
			p.tiles = tiles
		}
		if clipLimit > 0 {
			p.clipLimit = clipLimit
		}
	}
}

// WithLogger sets the logger used to report degraded enhancement stages.
func WithLogger(l observability.Logger) Option {
	return func(p *Preprocessor) {
		if l != nil {
			p.logger = l
		}
	}
}

// New constructs a Preprocessor with the given options.
func New(opts ...Option) *Preprocessor {
	p := &Preprocessor{
		maxWidth:     DefaultMaxWidth,
		maxHeight:    DefaultMaxHeight,
		denoiseSigma: defaultDenoiseSigma,
		tiles:        defaultTiles,
		clipLimit:    defaultClipLimit,
		logger:       observability.NopLogger{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Resize downscales img so both dimensions fit the configured bounds,
// preserving aspect ratio. Images already within bounds are returned
// unchanged.
func (p *Preprocessor) Resize(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= p.maxWidth && h <= p.maxHeight {
		return img
	}
	scale := math.Min(float64(p.maxWidth)/float64(w), float64(p.maxHeight)/float64(h))
	tw := int(math.Round(float64(w) * scale))
	th := int(math.Round(float64(h) * scale))
	if tw < 1 {
		tw = 1
	}
	if th < 1 {
		th = 1
	}
	dst := image.NewNRGBA(image.Rect(0, 0, tw, th))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// Preprocess runs the full normalization pipeline: resize, grayscale,
// denoise, local contrast enhancement, Otsu binarization. If any stage
// past the resize fails, the resized original is returned instead; a nil
// or zero-size image fails with ErrEmptyImage.
func (p *Preprocessor) Preprocess(img image.Image) (image.Image, error) {
	if img == nil {
		return nil, ErrEmptyImage
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyImage, b.Dx(), b.Dy())
	}
	resized := p.Resize(img)
	enhanced, err := p.enhance(resized)
	if err != nil {
		p.logger.Warn("enhancement degraded, using resized image",
			observability.Error("reason", err),
			observability.Int("width", resized.Bounds().Dx()),
			observability.Int("height", resized.Bounds().Dy()))
		return resized, nil
	}
	return enhanced, nil
}

func (p *Preprocessor) enhance(img image.Image) (image.Image, error) {
	src := img
	if _, ok := src.(*image.Gray); !ok {
		src = imaging.Grayscale(src)
	}
	if p.denoiseSigma > 0 {
		src = imaging.Blur(src, p.denoiseSigma)
	}
	return enhanceGray(toGray(src), p.tiles, p.clipLimit)
}
