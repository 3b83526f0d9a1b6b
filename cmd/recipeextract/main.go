package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/wudi/recipekit/extraction"
	"github.com/wudi/recipekit/observability"
	"github.com/wudi/recipekit/ocr"
	"github.com/wudi/recipekit/ocr/tesseract"
	"github.com/wudi/recipekit/preprocess"
	"github.com/wudi/recipekit/recipe"
)

type options struct {
	paths        []string
	languages    []string
	maxWidth     int
	maxHeight    int
	noPreprocess bool
	confidence   bool
	validate     bool
	pretty       bool
}

func main() {
	// Optional .env for RECIPEKIT_* defaults; absence is fine.
	_ = godotenv.Load()

	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "recipeextract: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "recipeextract: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: recipeextract [flags] <image> [image...]\n")
		flag.PrintDefaults()
	}
	lang := flag.String("lang", envOrDefault("RECIPEKIT_LANGUAGES", "eng"), "OCR languages, separated by \"+\"")
	maxWidth := flag.Int("max-width", preprocess.DefaultMaxWidth, "Maximum image width before OCR")
	maxHeight := flag.Int("max-height", preprocess.DefaultMaxHeight, "Maximum image height before OCR")
	noPreprocess := flag.Bool("no-preprocess", false, "Skip image enhancement before OCR")
	confidence := flag.Bool("confidence", false, "Report mean OCR confidence")
	validate := flag.Bool("validate", false, "Only run the pre-flight image check")
	pretty := flag.Bool("pretty", true, "Indent JSON output")
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		return opts, fmt.Errorf("at least one image path is required")
	}
	opts.paths = flag.Args()
	opts.languages = strings.Split(*lang, "+")
	opts.maxWidth = *maxWidth
	opts.maxHeight = *maxHeight
	opts.noPreprocess = *noPreprocess
	opts.confidence = *confidence
	opts.validate = *validate
	opts.pretty = *pretty
	return opts, nil
}

func run(opts options) error {
	base := logrus.New()
	base.SetOutput(os.Stderr)
	if lvl, err := logrus.ParseLevel(envOrDefault("RECIPEKIT_LOG_LEVEL", "warn")); err == nil {
		base.SetLevel(lvl)
	}
	logger := observability.NewLogrusLogger(base)

	pre := preprocess.New(
		preprocess.WithMaxSize(opts.maxWidth, opts.maxHeight),
		preprocess.WithLogger(logger),
	)
	extractor := ocr.NewExtractor(tesseract.New(), ocr.Config{
		Languages:    opts.languages,
		Preprocessor: pre,
		Logger:       logger,
	})
	parser := recipe.NewParser(recipe.WithLogger(logger))
	svc := extraction.NewService(extractor, parser, extraction.WithLogger(logger))

	ctx := context.Background()
	var out interface{}
	switch {
	case opts.validate:
		results := make([]extraction.Validation, 0, len(opts.paths))
		for _, p := range opts.paths {
			results = append(results, svc.ValidateImage(p))
		}
		out = results
	case len(opts.paths) == 1:
		out = svc.ProcessImage(ctx, opts.paths[0], !opts.noPreprocess, opts.confidence)
	default:
		out = svc.BatchProcess(ctx, opts.paths, !opts.noPreprocess)
	}
	return writeJSON(os.Stdout, out, opts.pretty)
}

func writeJSON(w *os.File, v interface{}, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
