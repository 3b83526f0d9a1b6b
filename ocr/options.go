package ocr

import "strconv"

// InputOption mutates an Input before it is handed to an engine.
type InputOption func(*Input)

// WithLanguages sets language hints on the input.
func WithLanguages(langs ...string) InputOption {
	return func(in *Input) { in.Languages = append([]string(nil), langs...) }
}

// WithPSM sets the page segmentation mode.
func WithPSM(mode int) InputOption {
	return func(in *Input) { in.PSM = mode }
}

// WithMetadata sets provider-specific metadata for the input.
func WithMetadata(metadata map[string]string) InputOption {
	return func(in *Input) {
		if len(metadata) == 0 {
			in.Metadata = nil
			return
		}
		in.Metadata = make(map[string]string, len(metadata))
		for k, v := range metadata {
			in.Metadata[k] = v
		}
	}
}

// WithWhitelist restricts recognition to the provided characters on
// Tesseract-compatible engines.
func WithWhitelist(chars string) InputOption {
	return func(in *Input) {
		if in.Metadata == nil {
			in.Metadata = make(map[string]string)
		}
		in.Metadata["tessedit_char_whitelist"] = chars
	}
}

// WithDPI declares the effective dots-per-inch of the image for engines
// that use it for scaling heuristics.
func WithDPI(dpi int) InputOption {
	return func(in *Input) {
		if in.Metadata == nil {
			in.Metadata = make(map[string]string)
		}
		in.Metadata["user_defined_dpi"] = strconv.Itoa(dpi)
	}
}

// NewInput builds an Input for the encoded image with the given options.
func NewInput(img []byte, opts ...InputOption) Input {
	in := Input{Image: img}
	for _, opt := range opts {
		opt(&in)
	}
	return in
}
