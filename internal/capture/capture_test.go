package capture

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/image/webp"
)

func checker(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{0x95, 0x95, 0x95, 255}
			if (x+y)%2 == 0 {
				c = color.NRGBA{0xC1, 0xC1, 0xC1, 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestSave_PNGAndWebP(t *testing.T) {
	dir := t.TempDir()
	src := checker(8, 4)

	pngPath := filepath.Join(dir, "a", "shot.png")
	if err := Save(src, pngPath); err != nil {
		t.Fatalf("Save png: %v", err)
	}
	f, err := os.Open(pngPath)
	if err != nil {
		t.Fatal(err)
	}
	got, err := png.Decode(f)
	f.Close()
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if got.Bounds() != src.Bounds() {
		t.Fatalf("png bounds=%v", got.Bounds())
	}

	webpPath := filepath.Join(dir, "shot.webp")
	if err := Save(src, webpPath); err != nil {
		t.Fatalf("Save webp: %v", err)
	}
	f, err = os.Open(webpPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err = webp.Decode(f)
	if err != nil {
		t.Fatalf("decode webp: %v", err)
	}
	r, g, b, _ := got.At(0, 0).RGBA()
	if r>>8 != 0xC1 || g>>8 != 0xC1 || b>>8 != 0xC1 {
		t.Fatalf("lossless pixel (0,0)=%d,%d,%d", r>>8, g>>8, b>>8)
	}
}

func TestSave_RejectsUnknownExtension(t *testing.T) {
	if err := Save(checker(2, 2), filepath.Join(t.TempDir(), "shot.bmp")); err == nil {
		t.Fatalf("expected error for .bmp")
	}
}

func TestFit(t *testing.T) {
	src := checker(400, 300)
	if Fit(src, 0) != image.Image(src) || Fit(src, 800) != image.Image(src) {
		t.Fatalf("Fit changed an image that already fits")
	}
	got := Fit(src, 200).Bounds()
	if got.Dx() != 200 || got.Dy() != 150 {
		t.Fatalf("Fit bounds=%v", got)
	}
}

func TestDefaultPath(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 5, 7, 0, time.Local)
	if got := DefaultPath(now); got != filepath.Join("screenshots", "20261015-090507.webp") {
		t.Fatalf("DefaultPath=%s", got)
	}
}
