package hittest

import (
	"sort"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Ray is a half-line from Origin along Direction. Direction is expected to be normalized
// so intersection distances are in world units.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// Box is an axis-aligned bounding box in world space.
type Box struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Target is the single interactive object. Boxes returns world-space bounds of its parts
// (one per mesh), so a hit on any part is a hit on the object.
type Target interface {
	Boxes() []Box
}

// Result holds the hit flag and intersection distances, nearest first.
type Result struct {
	Hit       bool
	Distances []float32
}

// Test casts ray against target. A nil target never hits and is not an error;
// the interactive object only exists once asset loading has completed.
func Test(ray Ray, target Target) Result {
	if target == nil {
		return Result{}
	}
	var res Result
	for _, b := range target.Boxes() {
		if d, ok := Intersect(ray, b); ok {
			res.Distances = append(res.Distances, d)
		}
	}
	if len(res.Distances) == 0 {
		return Result{}
	}
	sort.Slice(res.Distances, func(i, j int) bool { return res.Distances[i] < res.Distances[j] })
	res.Hit = true
	return res
}

// Intersect returns the distance along ray to the first point on b (slab method).
// A ray starting inside the box hits at distance 0.
func Intersect(ray Ray, b Box) (float32, bool) {
	tmin := float32(0)
	tmax := math32.Inf(1)
	for axis := 0; axis < 3; axis++ {
		o := ray.Origin[axis]
		d := ray.Direction[axis]
		if math32.Abs(d) < 1e-8 {
			// Parallel to this slab: must already be inside it.
			if o < b.Min[axis] || o > b.Max[axis] {
				return 0, false
			}
			continue
		}
		inv := 1 / d
		t1 := (b.Min[axis] - o) * inv
		t2 := (b.Max[axis] - o) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math32.Max(tmin, t1)
		tmax = math32.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}

// Boxes is a fixed set of world-space boxes; it satisfies Target.
type Boxes []Box

// Boxes implements Target.
func (b Boxes) Boxes() []Box { return b }

// TransformBox returns the world-space AABB enclosing local box b under transform m.
func TransformBox(b Box, m mgl32.Mat4) Box {
	out := Box{
		Min: mgl32.Vec3{math32.Inf(1), math32.Inf(1), math32.Inf(1)},
		Max: mgl32.Vec3{math32.Inf(-1), math32.Inf(-1), math32.Inf(-1)},
	}
	for i := 0; i < 8; i++ {
		c := mgl32.Vec3{b.Min[0], b.Min[1], b.Min[2]}
		if i&1 != 0 {
			c[0] = b.Max[0]
		}
		if i&2 != 0 {
			c[1] = b.Max[1]
		}
		if i&4 != 0 {
			c[2] = b.Max[2]
		}
		w := mgl32.TransformCoordinate(c, m)
		for a := 0; a < 3; a++ {
			out.Min[a] = math32.Min(out.Min[a], w[a])
			out.Max[a] = math32.Max(out.Max[a], w[a])
		}
	}
	return out
}
