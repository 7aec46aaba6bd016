package pointer

import "github.com/go-gl/mathgl/mgl32"

// Tracker keeps the normalized device coordinates of the last pointer position.
// X grows to the right and Y grows upward, both in [-1,1] across the viewport.
type Tracker struct {
	ndc mgl32.Vec2
}

// Move records a pointer position in window pixels. A zero-sized viewport keeps the previous value.
func (t *Tracker) Move(px, py float32, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	t.ndc[0] = px/float32(width)*2 - 1
	t.ndc[1] = -(py/float32(height))*2 + 1
}

// NDC returns the last recorded pointer position.
func (t *Tracker) NDC() mgl32.Vec2 {
	return t.ndc
}
