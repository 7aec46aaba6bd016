package orbit

import (
	"desk-portfolio/internal/camera"

	"github.com/charmbracelet/harmonica"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// minPolar keeps the camera off the poles so the up vector stays well defined.
const minPolar = 0.01

// Options configures orbit controls.
type Options struct {
	Target mgl32.Vec3
	// RotateSpeed is radians of orbit per pixel of drag.
	RotateSpeed float32
	// ZoomSpeed is the fraction of distance covered per wheel notch.
	ZoomSpeed   float32
	MinDistance float32
	MaxDistance float32
	// DampingFrequency is the spring's angular frequency; higher settles faster.
	DampingFrequency float64
	FPS              int
}

// Controls orbits the camera around a target with damped rotation and zoom.
// Drag and wheel input add velocity; Update spends it and lets a critically damped
// spring bring it back to rest.
type Controls struct {
	opts        Options
	Enabled     bool
	ZoomEnabled bool

	spring harmonica.Spring
	theta  axis
	phi    axis
	zoom   axis
}

// axis is one damped velocity: vel is consumed each update, accel is the spring's own state.
type axis struct {
	vel   float64
	accel float64
}

func (a *axis) settle(s harmonica.Spring) {
	a.vel, a.accel = s.Update(a.vel, a.accel, 0)
	if abs(a.vel) < 1e-7 && abs(a.accel) < 1e-7 {
		a.vel, a.accel = 0, 0
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// New returns enabled controls.
func New(opts Options) *Controls {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.DampingFrequency <= 0 {
		opts.DampingFrequency = 3
	}
	if opts.MaxDistance <= 0 {
		opts.MaxDistance = 10
	}
	return &Controls{
		opts:        opts,
		Enabled:     true,
		ZoomEnabled: true,
		spring:      harmonica.NewSpring(harmonica.FPS(opts.FPS), opts.DampingFrequency, 1.0),
	}
}

// Target returns the point the camera orbits.
func (c *Controls) Target() mgl32.Vec3 { return c.opts.Target }

// Rotate adds orbit velocity from a pointer drag of dx, dy pixels.
func (c *Controls) Rotate(dx, dy float32) {
	if !c.Enabled {
		return
	}
	c.theta.vel += float64(dx * c.opts.RotateSpeed)
	c.phi.vel += float64(dy * c.opts.RotateSpeed)
}

// Zoom adds dolly velocity from wheel movement; positive moves closer.
func (c *Controls) Zoom(wheel float32) {
	if !c.ZoomEnabled {
		return
	}
	c.zoom.vel += float64(wheel * c.opts.ZoomSpeed)
}

// Moving reports whether any velocity is left to spend.
func (c *Controls) Moving() bool {
	return c.theta.vel != 0 || c.phi.vel != 0 || c.zoom.vel != 0
}

// Update moves pose one frame around the target and aims it at the target. The current
// position is read back each frame, so offsets applied elsewhere (idle drift) are kept.
func (c *Controls) Update(pose *camera.Pose) {
	offset := pose.Position.Sub(c.opts.Target)
	radius := offset.Len()
	if radius == 0 {
		pose.Look = c.opts.Target
		return
	}
	if c.Moving() {
		theta := math32.Atan2(offset[0], offset[2])
		phi := math32.Acos(mgl32.Clamp(offset[1]/radius, -1, 1))

		if c.Enabled {
			theta -= float32(c.theta.vel)
			phi -= float32(c.phi.vel)
		}
		if c.ZoomEnabled {
			radius *= 1 - float32(c.zoom.vel)
		}
		phi = mgl32.Clamp(phi, minPolar, math32.Pi-minPolar)
		radius = mgl32.Clamp(radius, c.opts.MinDistance, c.opts.MaxDistance)

		sinPhi := math32.Sin(phi)
		offset = mgl32.Vec3{
			radius * sinPhi * math32.Sin(theta),
			radius * math32.Cos(phi),
			radius * sinPhi * math32.Cos(theta),
		}
		pose.Position = c.opts.Target.Add(offset)

		c.theta.settle(c.spring)
		c.phi.settle(c.spring)
		c.zoom.settle(c.spring)
	}
	pose.Look = c.opts.Target
}
