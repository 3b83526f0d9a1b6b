package extraction

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/wudi/recipekit/observability"
	"github.com/wudi/recipekit/ocr"
	"github.com/wudi/recipekit/recipe"
)

// Service orchestrates the extraction pipeline. It is stateless per
// call and safe for concurrent use; batch items are independent, so
// callers may fan out over a worker pool without extra synchronization.
type Service struct {
	extractor *ocr.Extractor
	parser    *recipe.Parser
	logger    observability.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the service logger.
func WithLogger(l observability.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService builds a Service from an extractor and a parser.
func NewService(extractor *ocr.Extractor, parser *recipe.Parser, opts ...ServiceOption) *Service {
	s := &Service{
		extractor: extractor,
		parser:    parser,
		logger:    observability.NopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProcessImage runs the full pipeline on an image file. A missing file
// produces a distinct message from a decode or extraction failure.
func (s *Service) ProcessImage(ctx context.Context, path string, preprocess, includeConfidence bool) Envelope {
	id := uuid.NewString()
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s.errorEnvelope(id, fmt.Sprintf("file not found: %s", path))
		}
		return s.errorEnvelope(id, fmt.Sprintf("cannot access %s: %v", path, err))
	}
	img, err := imaging.Open(path)
	if err != nil {
		return s.errorEnvelope(id, fmt.Sprintf("cannot decode image %s: %v", path, err))
	}
	return s.process(ctx, id, img, preprocess, includeConfidence)
}

// ProcessImageObject runs the pipeline on an already-decoded image.
func (s *Service) ProcessImageObject(ctx context.Context, img image.Image, preprocess, includeConfidence bool) Envelope {
	return s.process(ctx, uuid.NewString(), img, preprocess, includeConfidence)
}

func (s *Service) process(ctx context.Context, id string, img image.Image, preprocess, includeConfidence bool) Envelope {
	var (
		text string
		conf float64
		err  error
	)
	if includeConfidence {
		text, conf, err = s.extractor.ExtractWithConfidence(ctx, img, preprocess)
	} else {
		text, err = s.extractor.ExtractText(ctx, img, preprocess)
	}
	if err != nil {
		return s.errorEnvelope(id, fmt.Sprintf("processing failed: %v", err))
	}

	draft := s.parser.Parse(text)
	env := Envelope{RequestID: id, Status: StatusOK, Data: &draft}
	if includeConfidence {
		env.Confidence = &conf
	}
	s.logger.Info("image processed",
		observability.String("request_id", id),
		observability.Int("ingredients", len(draft.Ingredients)),
		observability.Int("steps", len(draft.Steps)))
	return env
}

// BatchProcess runs ProcessImage independently per path. One failure
// never aborts the batch.
func (s *Service) BatchProcess(ctx context.Context, paths []string, preprocess bool) BatchResult {
	res := BatchResult{Results: make([]BatchItem, 0, len(paths))}
	for _, path := range paths {
		env := s.ProcessImage(ctx, path, preprocess, false)
		res.Results = append(res.Results, BatchItem{Envelope: env, Path: path})
		if env.Status == StatusOK {
			res.Summary.Success++
		} else {
			res.Summary.Errors++
		}
	}
	res.Summary.Total = len(paths)
	switch {
	case res.Summary.Errors == 0:
		res.Status = StatusOK
	case res.Summary.Success == 0 && res.Summary.Total > 0:
		res.Status = StatusError
	default:
		res.Status = StatusPartial
	}
	return res
}

// ValidateImage is a pre-flight check: it reads the image header
// only, without decoding pixels or running the pipeline.
func (s *Service) ValidateImage(path string) Validation {
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Validation{Error: fmt.Sprintf("file not found: %s", path)}
		}
		return Validation{Error: fmt.Sprintf("cannot access %s: %v", path, err)}
	}
	f, err := os.Open(path)
	if err != nil {
		return Validation{Error: fmt.Sprintf("cannot open %s: %v", path, err)}
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return Validation{Error: fmt.Sprintf("not a decodable image: %v", err)}
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Validation{Error: "zero-size image"}
	}
	return Validation{
		Valid: true,
		Info: &ImageInfo{
			Width:     cfg.Width,
			Height:    cfg.Height,
			Format:    format,
			SizeBytes: fi.Size(),
		},
	}
}

// NormalizeIngredients normalizes ingredient lines independently of any
// image pipeline.
func (s *Service) NormalizeIngredients(lines []string) []recipe.Ingredient {
	out := make([]recipe.Ingredient, 0, len(lines))
	for _, line := range lines {
		out = append(out, s.parser.NormalizeIngredient(line))
	}
	return out
}

func (s *Service) errorEnvelope(id, msg string) Envelope {
	s.logger.Warn("extraction failed",
		observability.String("request_id", id),
		observability.String("reason", msg))
	return Envelope{RequestID: id, Status: StatusError, Error: msg}
}
