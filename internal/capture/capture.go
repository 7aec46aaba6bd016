package capture

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
)

// Dir receives screenshots saved without an explicit path.
const Dir = "screenshots"

// DefaultPath names a screenshot after the local time it was taken.
func DefaultPath(now time.Time) string {
	return filepath.Join(Dir, now.Format("20060102-150405")+".webp")
}

// Fit scales img down so it is at most maxWidth wide, keeping the aspect ratio.
// Images already narrow enough, or maxWidth <= 0, are returned unchanged.
func Fit(img image.Image, maxWidth int) image.Image {
	b := img.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		return img
	}
	h := max(b.Dy()*maxWidth/b.Dx(), 1)
	dst := image.NewNRGBA(image.Rect(0, 0, maxWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Save writes img to path as WebP (lossless) or PNG, chosen by extension.
// The directory is created if needed.
func Save(img image.Image, path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".webp" && ext != ".png" {
		return fmt.Errorf("capture: %s: unsupported format %q (use .webp or .png)", path, ext)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("capture: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("capture: %w", err)
	}
	defer f.Close()

	if ext == ".png" {
		err = png.Encode(f, img)
	} else {
		err = nativewebp.Encode(f, img, nil)
	}
	if err != nil {
		return fmt.Errorf("capture: encode %s: %w", path, err)
	}
	return nil
}
