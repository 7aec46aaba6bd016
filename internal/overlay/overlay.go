package overlay

import (
	"desk-portfolio/internal/camera"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Anchor is a world-space rectangle whose screen bounds drive the navigation overlay.
// Rotation is Euler XYZ in radians, applied before translation.
type Anchor struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Width    float32
	Height   float32
}

// Rect is a CSS-style box in window pixels.
type Rect struct {
	Left   float32
	Top    float32
	Width  float32
	Height float32
}

// Transform returns the anchor's local-to-world matrix.
func (a Anchor) Transform() mgl32.Mat4 {
	return mgl32.Translate3D(a.Position[0], a.Position[1], a.Position[2]).
		Mul4(mgl32.HomogRotate3DX(a.Rotation[0])).
		Mul4(mgl32.HomogRotate3DY(a.Rotation[1])).
		Mul4(mgl32.HomogRotate3DZ(a.Rotation[2]))
}

// Corners returns the four corners of the rectangle in world space.
func (a Anchor) Corners() [4]mgl32.Vec3 {
	hw, hh := a.Width/2, a.Height/2
	local := [4]mgl32.Vec3{
		{-hw, -hh, 0},
		{hw, -hh, 0},
		{-hw, hh, 0},
		{hw, hh, 0},
	}
	m := a.Transform()
	var out [4]mgl32.Vec3
	for i, c := range local {
		out[i] = mgl32.TransformCoordinate(c, m)
	}
	return out
}

// Project returns the pixel bounding box of anchor as seen from pose through lens
// in a width x height viewport.
func Project(a Anchor, pose camera.Pose, lens camera.Lens, width, height int) Rect {
	vp := camera.ViewProjection(pose, lens, camera.Aspect(width, height))
	w, h := float32(width), float32(height)
	minX, minY := math32.Inf(1), math32.Inf(1)
	maxX, maxY := math32.Inf(-1), math32.Inf(-1)
	for _, c := range a.Corners() {
		ndc := mgl32.TransformCoordinate(c, vp)
		x := (ndc[0]*0.5 + 0.5) * w
		y := (1 - (ndc[1]*0.5 + 0.5)) * h
		minX, maxX = math32.Min(minX, x), math32.Max(maxX, x)
		minY, maxY = math32.Min(minY, y), math32.Max(maxY, y)
	}
	return Rect{Left: minX, Top: minY, Width: maxX - minX, Height: maxY - minY}
}

// Positioner owns the anchor's attached state and the last computed rectangle.
// Projection is only meaningful while the anchor is attached to the scene.
type Positioner struct {
	Anchor   Anchor
	attached bool
	rect     Rect
}

// NewPositioner returns a detached positioner for anchor.
func NewPositioner(a Anchor) *Positioner {
	return &Positioner{Anchor: a}
}

// Attach marks the anchor as part of the scene.
func (p *Positioner) Attach() { p.attached = true }

// Detach removes the anchor from the scene. Detaching twice is harmless.
func (p *Positioner) Detach() { p.attached = false }

// Attached reports whether the anchor is currently in the scene.
func (p *Positioner) Attached() bool { return p.attached }

// Update recomputes the overlay rectangle. It returns false and leaves the last
// rectangle untouched when the anchor is detached or the viewport is empty.
func (p *Positioner) Update(pose camera.Pose, lens camera.Lens, width, height int) (Rect, bool) {
	if !p.attached || width <= 0 || height <= 0 {
		return p.rect, false
	}
	p.rect = Project(p.Anchor, pose, lens, width, height)
	return p.rect, true
}

// Rect returns the last computed rectangle.
func (p *Positioner) Rect() Rect { return p.rect }
