package orbit

import (
	"testing"

	"desk-portfolio/internal/camera"

	"github.com/go-gl/mathgl/mgl32"
)

func newControls() *Controls {
	return New(Options{
		Target:           mgl32.Vec3{0, 0.8, 0},
		RotateSpeed:      0.005,
		ZoomSpeed:        0.05,
		MinDistance:      0.5,
		MaxDistance:      6,
		DampingFrequency: 3,
		FPS:              60,
	})
}

func TestUpdate_AimsAtTargetWithoutInput(t *testing.T) {
	c := newControls()
	pose := camera.Pose{Position: mgl32.Vec3{1.4, 1.1, 1.8}, Look: mgl32.Vec3{0, 0.6, 0}}
	c.Update(&pose)
	if pose.Look != c.Target() {
		t.Fatalf("look=%v, want target %v", pose.Look, c.Target())
	}
	if pose.Position != (mgl32.Vec3{1.4, 1.1, 1.8}) {
		t.Fatalf("position moved without input: %v", pose.Position)
	}
}

func TestRotate_KeepsDistanceAndSettles(t *testing.T) {
	c := newControls()
	start := mgl32.Vec3{1.4, 1.1, 1.8}
	pose := camera.Pose{Position: start}
	dist := start.Sub(c.Target()).Len()

	c.Rotate(40, 0)
	c.Update(&pose)
	if pose.Position == start {
		t.Fatalf("rotate did not move the camera")
	}
	for i := 0; i < 600 && c.Moving(); i++ {
		c.Update(&pose)
		if d := pose.Position.Sub(c.Target()).Len(); !mgl32.FloatEqualThreshold(d, dist, 1e-3) {
			t.Fatalf("orbit distance drifted to %v, want %v", d, dist)
		}
	}
	if c.Moving() {
		t.Fatalf("damped velocity never settled")
	}
}

func TestDisabled_IgnoresRotateButZooms(t *testing.T) {
	c := newControls()
	c.Enabled = false
	c.Rotate(100, 100)
	if c.Moving() {
		t.Fatalf("rotate accepted while disabled")
	}
	c.Zoom(1)
	if !c.Moving() {
		t.Fatalf("zoom rejected while only rotate is disabled")
	}
	pose := camera.Pose{Position: mgl32.Vec3{0, 0.8, 3}}
	c.Update(&pose)
	if d := pose.Position.Sub(c.Target()).Len(); d >= 3 {
		t.Fatalf("zoom in did not move closer: %v", d)
	}
}

func TestZoom_ClampedToRange(t *testing.T) {
	c := newControls()
	pose := camera.Pose{Position: mgl32.Vec3{0, 0.8, 1}}
	for i := 0; i < 50; i++ {
		c.Zoom(5)
		c.Update(&pose)
	}
	if d := pose.Position.Sub(c.Target()).Len(); d < 0.5-1e-4 {
		t.Fatalf("zoomed past minimum distance: %v", d)
	}
}
