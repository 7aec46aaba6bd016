package assets

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/channel"
	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	"github.com/chewxy/math32"
	"github.com/ftrvxmtrx/tga"
	"github.com/go-gl/mathgl/mgl32"
	_ "golang.org/x/image/webp"
)

// LoadCarpet decodes the carpet base color from local paths in c. When c.Normal is set
// the map's relief is shaded in for a light toward light (world space, Y up); when
// c.ORM is set the packed ambient occlusion darkens it. The result is resized to
// power-of-two sides so it can repeat with mipmaps.
func LoadCarpet(c Carpet, light mgl32.Vec3) (image.Image, error) {
	albedo, err := openPOT(c.BaseColor)
	if err != nil {
		return nil, err
	}
	if c.Normal != "" {
		normal, err := openPOT(c.Normal)
		if err != nil {
			return nil, err
		}
		albedo = Relief(albedo, normal, light)
	}
	if c.ORM == "" {
		return albedo, nil
	}
	packed, err := openPOT(c.ORM)
	if err != nil {
		return nil, err
	}
	occlusion, _, _ := SplitORM(packed)
	return Occlude(albedo, occlusion), nil
}

func openPOT(path string) (image.Image, error) {
	img, err := Decode(path)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", path, err)
	}
	return PowerOfTwo(img), nil
}

// Decode reads a texture file. TGA has no magic bytes, so it is picked by extension
// and kept out of image.Decode's format sniffing; everything else goes through imgio.
func Decode(path string) (image.Image, error) {
	if strings.ToLower(filepath.Ext(path)) != ".tga" {
		return imgio.Open(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return tga.Decode(f)
}

// PowerOfTwo returns img unchanged when both sides are powers of two, otherwise a copy
// resized up to the next power of two on each side.
func PowerOfTwo(img image.Image) image.Image {
	b := img.Bounds()
	w, h := nextPOT(b.Dx()), nextPOT(b.Dy())
	if w == b.Dx() && h == b.Dy() {
		return img
	}
	return transform.Resize(img, w, h, transform.Linear)
}

// SplitORM separates a packed occlusion/roughness/metalness map into its R, G and B channels.
func SplitORM(img image.Image) (occlusion, roughness, metalness *image.Gray) {
	return channel.Extract(img, channel.Red),
		channel.Extract(img, channel.Green),
		channel.Extract(img, channel.Blue)
}

// Occlude multiplies albedo by an occlusion map. The map is sampled by normalized
// position, so the two images need not share a size.
func Occlude(albedo image.Image, occlusion *image.Gray) *image.RGBA {
	b := albedo.Bounds()
	ob := occlusion.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		oy := ob.Min.Y + y*ob.Dy()/b.Dy()
		for x := 0; x < b.Dx(); x++ {
			ox := ob.Min.X + x*ob.Dx()/b.Dx()
			ao := uint32(occlusion.GrayAt(ox, oy).Y)
			r, g, bl, a := albedo.At(b.Min.X+x, b.Min.Y+y).RGBA()
			out.SetRGBA(x, y, color.RGBA{
				R: uint8((r >> 8) * ao / 255),
				G: uint8((g >> 8) * ao / 255),
				B: uint8((bl >> 8) * ao / 255),
				A: uint8(a >> 8),
			})
		}
	}
	return out
}

// Relief shades albedo by a tangent-space normal map lit from light, relative to a flat
// surface under the same light, so a flat map leaves albedo unchanged. The carpet lies
// in the XZ plane: tangent +X, bitangent -Z, normal +Y. The map is sampled by
// normalized position like Occlude.
func Relief(albedo, normal image.Image, light mgl32.Vec3) *image.RGBA {
	l := mgl32.Vec3{0, 0, 1}
	if light.Len() > 0 {
		l = mgl32.Vec3{light[0], -light[2], light[1]}.Normalize()
	}
	flat := math32.Max(l[2], 0.1)

	b := albedo.Bounds()
	nb := normal.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		ny := nb.Min.Y + y*nb.Dy()/b.Dy()
		for x := 0; x < b.Dx(); x++ {
			nx := nb.Min.X + x*nb.Dx()/b.Dx()
			nr, ng, nbl, _ := normal.At(nx, ny).RGBA()
			n := mgl32.Vec3{unit(nr), unit(ng), unit(nbl)}
			f := float32(0)
			if n.Len() > 0 {
				f = math32.Min(math32.Max(n.Normalize().Dot(l), 0)/flat, 2)
			}
			r, g, bl, a := albedo.At(b.Min.X+x, b.Min.Y+y).RGBA()
			out.SetRGBA(x, y, color.RGBA{
				R: shade(r, f),
				G: shade(g, f),
				B: shade(bl, f),
				A: uint8(a >> 8),
			})
		}
	}
	return out
}

// unit maps a 16-bit channel to [-1, 1].
func unit(v uint32) float32 { return float32(v)/0xffff*2 - 1 }

func shade(v uint32, f float32) uint8 {
	return uint8(math32.Min(math32.Round(float32(v>>8)*f), 255))
}

func nextPOT(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
