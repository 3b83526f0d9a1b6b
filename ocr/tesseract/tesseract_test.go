package tesseract

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os/exec"
	"strings"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/wudi/recipekit/ocr"
)

// ensureTesseractAvailable checks that the tesseract binary is reachable.
func ensureTesseractAvailable(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("tesseract"); err != nil {
		t.Skip("tesseract not installed in PATH")
	}
}

func renderText(t *testing.T, text string) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 320, 80))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	d := &font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(10, 40),
	}
	d.DrawString(text)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestEngineRecognize(t *testing.T) {
	ensureTesseractAvailable(t)

	data := renderText(t, "Tomato Soup")
	e := New()
	res, err := e.Recognize(context.Background(), ocr.NewInput(data,
		ocr.WithLanguages("eng"),
		ocr.WithPSM(ocr.PSMSingleBlock),
		ocr.WithDPI(300),
	))
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	got := strings.ToLower(res.Text)
	if !strings.Contains(got, "tomato") || !strings.Contains(got, "soup") {
		t.Fatalf("unexpected OCR output: %q", res.Text)
	}
	for _, w := range res.Words {
		if w.Confidence > 100 {
			t.Fatalf("word %q confidence %f out of range", w.Text, w.Confidence)
		}
	}
}

func TestEngineRecognizeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := New()
	if _, err := e.Recognize(ctx, ocr.Input{}); err == nil {
		t.Fatal("expected context error")
	}
}

func TestEngineRejectsEmptyImage(t *testing.T) {
	ensureTesseractAvailable(t)
	e := New()
	if _, err := e.Recognize(context.Background(), ocr.NewInput(nil)); err == nil {
		t.Fatal("expected error for empty image bytes")
	}
}
