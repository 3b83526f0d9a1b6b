package preprocess

import (
	"fmt"
	"image"
	"image/draw"

	"gocv.io/x/gocv"
)

// toGray converts an arbitrary image into a zero-based *image.Gray.
// Already-gray images with a zero origin are returned as is.
func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok && g.Bounds().Min == (image.Point{}) {
		return g
	}
	b := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// enhanceGray applies contrast-limited adaptive histogram equalization
// over a tiles x tiles grid and then binarizes with Otsu's threshold.
func enhanceGray(src *image.Gray, tiles int, clipLimit float64) (*image.Gray, error) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if tiles < 1 {
		return nil, fmt.Errorf("invalid tile count %d", tiles)
	}
	if w < tiles || h < tiles {
		return nil, fmt.Errorf("image %dx%d too small for %d tiles", w, h, tiles)
	}

	mat, err := gocv.ImageGrayToMatGray(src)
	if err != nil {
		return nil, fmt.Errorf("convert to mat: %w", err)
	}
	defer mat.Close()

	enhanced := gocv.NewMat()
	defer enhanced.Close()
	clahe := gocv.NewCLAHEWithParams(clipLimit, image.Point{X: tiles, Y: tiles})
	clahe.Apply(mat, &enhanced)
	clahe.Close()

	binary := gocv.NewMat()
	defer binary.Close()
	gocv.Threshold(enhanced, &binary, 0, 255, gocv.ThresholdBinary|gocv.ThresholdOtsu)

	out, err := binary.ToImage()
	if err != nil {
		return nil, fmt.Errorf("convert from mat: %w", err)
	}
	return toGray(out), nil
}
