package camera

import (
	"desk-portfolio/internal/hittest"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Up is the world up axis (Y-up, same as raylib and the scene assets).
var Up = mgl32.Vec3{0, 1, 0}

// Pose is where the camera is and what it looks at. It is mutated every frame by the
// pan state machine, orbit controls, or idle drift and is never persisted.
type Pose struct {
	Position mgl32.Vec3
	Look     mgl32.Vec3
}

// Lens holds the perspective projection parameters. FovY is the vertical field of view in degrees.
type Lens struct {
	FovY float32
	Near float32
	Far  float32
}

// View returns the world-to-camera matrix.
func View(p Pose) mgl32.Mat4 {
	return mgl32.LookAtV(p.Position, p.Look, Up)
}

// Projection returns the perspective matrix for the given aspect (width/height).
func Projection(l Lens, aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(l.FovY), aspect, l.Near, l.Far)
}

// ViewProjection returns Projection * View.
func ViewProjection(p Pose, l Lens, aspect float32) mgl32.Mat4 {
	return Projection(l, aspect).Mul4(View(p))
}

// ProjectNDC transforms a world point into normalized device coordinates (perspective divide applied).
func ProjectNDC(world mgl32.Vec3, p Pose, l Lens, aspect float32) mgl32.Vec3 {
	return mgl32.TransformCoordinate(world, ViewProjection(p, l, aspect))
}

// RayFromNDC returns the ray from the eye through the pointer at ndc (x right, y up, both in [-1,1]).
// The direction is built from the camera basis rather than by inverting the
// view-projection, which loses precision with a 0.1..1000 depth range in float32.
func RayFromNDC(ndc mgl32.Vec2, p Pose, l Lens, aspect float32) hittest.Ray {
	if aspect <= 0 {
		aspect = 1
	}
	forward := p.Look.Sub(p.Position).Normalize()
	right := forward.Cross(Up).Normalize()
	up := right.Cross(forward)
	tanHalf := math32.Tan(mgl32.DegToRad(l.FovY) / 2)
	dir := forward.
		Add(right.Mul(ndc[0] * tanHalf * aspect)).
		Add(up.Mul(ndc[1] * tanHalf))
	return hittest.Ray{
		Origin:    p.Position,
		Direction: dir.Normalize(),
	}
}

// Lerp interpolates between a and b. Endpoints are exact: t=0 yields a and t=1 yields b.
func Lerp(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}

// Aspect returns width/height, or 1 for a degenerate viewport.
func Aspect(width, height int) float32 {
	if width <= 0 || height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}
