package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	lens = Lens{FovY: 75, Near: 0.1, Far: 1000}
	home = Pose{Position: mgl32.Vec3{1.4, 1.1, 1.8}, Look: mgl32.Vec3{0, 0.6, 0}}
)

func TestProjectNDC_LookTargetIsCentered(t *testing.T) {
	ndc := ProjectNDC(home.Look, home, lens, 4.0/3)
	if math32.Abs(ndc[0]) > 1e-5 || math32.Abs(ndc[1]) > 1e-5 {
		t.Fatalf("look target projected to %v, want screen center", ndc)
	}
	if ndc[2] <= -1 || ndc[2] >= 1 {
		t.Fatalf("look target depth %v outside clip range", ndc[2])
	}
}

func TestRayFromNDC_RoundTrip(t *testing.T) {
	points := []mgl32.Vec3{
		{0, 0.7, -0.1},
		{0.5, 1.2, 0.2},
		{-0.9, 0.7, 0.1},
	}
	for _, p := range points {
		ndc := ProjectNDC(p, home, lens, 16.0/9)
		ray := RayFromNDC(mgl32.Vec2{ndc[0], ndc[1]}, home, lens, 16.0/9)
		if ray.Origin != home.Position {
			t.Fatalf("ray origin %v, want camera position", ray.Origin)
		}
		want := p.Sub(home.Position).Normalize()
		if !ray.Direction.ApproxEqualThreshold(want, 1e-4) {
			t.Errorf("ray through %v: dir=%v, want %v", p, ray.Direction, want)
		}
	}
}

func TestLerp_ExactEndpoints(t *testing.T) {
	a := mgl32.Vec3{1.4, 1.1, 1.8}
	b := mgl32.Vec3{0.0118, 1.14, 0.6}
	if got := Lerp(a, b, 0); got != a {
		t.Fatalf("Lerp(0) = %v, want %v", got, a)
	}
	if got := Lerp(a, b, 1); got != b {
		t.Fatalf("Lerp(1) = %v, want %v", got, b)
	}
	mid := Lerp(a, b, 0.5)
	if !mid.ApproxEqualThreshold(a.Add(b).Mul(0.5), 1e-6) {
		t.Fatalf("Lerp(0.5) = %v", mid)
	}
}

func TestAspect(t *testing.T) {
	tests := []struct {
		w, h int
		want float32
	}{
		{800, 600, 4.0 / 3},
		{0, 600, 1},
		{800, 0, 1},
	}
	for _, c := range tests {
		if got := Aspect(c.w, c.h); got != c.want {
			t.Errorf("Aspect(%d, %d) = %v, want %v", c.w, c.h, got, c.want)
		}
	}
}
