package preprocess

// Package preprocess normalizes photographs of recipes before they are
// handed to an OCR engine: aspect-preserving downscale, grayscale
// conversion, denoising, tiled adaptive contrast enhancement, and Otsu
// binarization. Enhancement failures degrade to the resized original
// instead of aborting, because OCR can often still succeed on an
// unprocessed image.
