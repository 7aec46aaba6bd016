package assets

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"github.com/go-gl/mathgl/mgl32"
)

func writePNG(t *testing.T, path string, w, h int, c color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestLoadCarpet_ResizesAndOccludes(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "B.png")
	orm := filepath.Join(dir, "ORM.png")
	writePNG(t, base, 64, 64, color.RGBA{200, 100, 50, 255})
	writePNG(t, orm, 16, 16, color.RGBA{128, 255, 0, 255})

	img, err := LoadCarpet(Carpet{BaseColor: base, ORM: orm}, mgl32.Vec3{})
	if err != nil {
		t.Fatalf("LoadCarpet: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Fatalf("size=%v", b)
	}
	r, g, b, a := img.At(10, 10).RGBA()
	if r>>8 != 100 || g>>8 != 50 || b>>8 != 25 || a>>8 != 255 {
		t.Fatalf("occluded pixel=(%d,%d,%d,%d), want (100,50,25,255)", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestLoadCarpet_NoORM(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "B.png")
	writePNG(t, base, 100, 64, color.RGBA{1, 2, 3, 255})
	img, err := LoadCarpet(Carpet{BaseColor: base}, mgl32.Vec3{})
	if err != nil {
		t.Fatalf("LoadCarpet: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 128 || b.Dy() != 64 {
		t.Fatalf("size=%v, want 128x64", b)
	}
}

func TestLoadCarpet_MissingFile(t *testing.T) {
	if _, err := LoadCarpet(Carpet{BaseColor: filepath.Join(t.TempDir(), "nope.jpg")}, mgl32.Vec3{}); err == nil {
		t.Fatalf("expected error for missing texture")
	}
}

func TestSplitORM(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := 0; i < 4; i++ {
		img.SetRGBA(i%2, i/2, color.RGBA{255, 128, 7, 255})
	}
	ao, rough, metal := SplitORM(img)
	if ao.GrayAt(1, 1).Y != 255 || rough.GrayAt(1, 1).Y != 128 || metal.GrayAt(1, 1).Y != 7 {
		t.Fatalf("split=%v %v %v", ao.GrayAt(1, 1), rough.GrayAt(1, 1), metal.GrayAt(1, 1))
	}
}

func TestNextPOT(t *testing.T) {
	for in, want := range map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 1000: 1024, 1024: 1024} {
		if got := nextPOT(in); got != want {
			t.Errorf("nextPOT(%d)=%d, want %d", in, got, want)
		}
	}
}

func fill(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestLoadCarpet_JPEG(t *testing.T) {
	p := filepath.Join(t.TempDir(), "T_vddldbw_1K_B.jpg")
	f, err := os.Create(p)
	if err != nil {
		t.Fatal(err)
	}
	if err := jpeg.Encode(f, fill(64, 64, color.NRGBA{120, 120, 120, 255}), &jpeg.Options{Quality: 95}); err != nil {
		t.Fatal(err)
	}
	f.Close()

	img, err := LoadCarpet(Carpet{BaseColor: p}, mgl32.Vec3{})
	if err != nil {
		t.Fatalf("LoadCarpet: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Fatalf("size=%v", b)
	}
	r, _, _, _ := img.At(32, 32).RGBA()
	if d := int(r>>8) - 120; d < -4 || d > 4 {
		t.Fatalf("red=%d, want about 120", r>>8)
	}
}

func TestDecode_TGAByExtension(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "rug.tga")
	f, err := os.Create(p)
	if err != nil {
		t.Fatal(err)
	}
	if err := tga.Encode(f, fill(8, 4, color.NRGBA{10, 20, 30, 255})); err != nil {
		t.Fatal(err)
	}
	f.Close()

	img, err := Decode(p)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Fatalf("size=%v", b)
	}
	r, g, b, _ := img.At(3, 2).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Fatalf("pixel=(%d,%d,%d)", r>>8, g>>8, b>>8)
	}

	pngPath := filepath.Join(dir, "rug.png")
	writePNG(t, pngPath, 4, 4, color.RGBA{1, 2, 3, 255})
	if _, err := Decode(pngPath); err != nil {
		t.Fatalf("png alongside tga decoder: %v", err)
	}
}

func TestRelief(t *testing.T) {
	albedo := fill(4, 4, color.NRGBA{100, 100, 100, 255})
	overhead := mgl32.Vec3{0, 1, 0}
	tests := []struct {
		name   string
		normal color.NRGBA
		light  mgl32.Vec3
		want   uint8
	}{
		{"flat under overhead light", color.NRGBA{128, 128, 255, 255}, overhead, 100},
		{"flat under angled light", color.NRGBA{128, 128, 255, 255}, mgl32.Vec3{0.67, 1.3, -0.25}, 100},
		{"no light given", color.NRGBA{128, 128, 255, 255}, mgl32.Vec3{}, 100},
		{"facing sideways", color.NRGBA{255, 128, 128, 255}, overhead, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Relief(albedo, fill(2, 2, tt.normal), tt.light)
			if b := got.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
				t.Fatalf("size=%v", b)
			}
			c := got.RGBAAt(1, 2)
			if d := int(c.R) - int(tt.want); d < -1 || d > 1 || c.A != 255 {
				t.Fatalf("pixel=%v, want red about %d", c, tt.want)
			}
		})
	}
}

func TestRelief_TiltTowardLightBrightens(t *testing.T) {
	albedo := fill(2, 2, color.NRGBA{100, 100, 100, 255})
	light := mgl32.Vec3{1, 1, 0}
	toward := Relief(albedo, fill(2, 2, color.NRGBA{200, 128, 220, 255}), light).RGBAAt(0, 0)
	away := Relief(albedo, fill(2, 2, color.NRGBA{56, 128, 220, 255}), light).RGBAAt(0, 0)
	if toward.R <= 100 || away.R >= 100 {
		t.Fatalf("toward=%d away=%d, want above and below 100", toward.R, away.R)
	}
}

func TestLoadCarpet_NormalAndORM(t *testing.T) {
	dir := t.TempDir()
	c := Carpet{
		BaseColor: filepath.Join(dir, "B.png"),
		Normal:    filepath.Join(dir, "N.png"),
		ORM:       filepath.Join(dir, "ORM.png"),
	}
	writePNG(t, c.BaseColor, 32, 32, color.RGBA{200, 200, 200, 255})
	writePNG(t, c.Normal, 32, 32, color.RGBA{128, 128, 255, 255})
	writePNG(t, c.ORM, 32, 32, color.RGBA{128, 255, 0, 255})

	img, err := LoadCarpet(c, mgl32.Vec3{0, 1, 0})
	if err != nil {
		t.Fatalf("LoadCarpet: %v", err)
	}
	r, _, _, _ := img.At(5, 5).RGBA()
	if r>>8 < 99 || r>>8 > 101 {
		t.Fatalf("red=%d, want about 100", r>>8)
	}

	c.Normal = filepath.Join(dir, "missing_N.png")
	if _, err := LoadCarpet(c, mgl32.Vec3{0, 1, 0}); err == nil {
		t.Fatalf("missing normal map accepted")
	}
}
