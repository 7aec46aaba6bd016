package app

import (
	"time"

	"desk-portfolio/internal/camera"
	"desk-portfolio/internal/config"
	"desk-portfolio/internal/hittest"
	"desk-portfolio/internal/logger"
	"desk-portfolio/internal/orbit"
	"desk-portfolio/internal/overlay"
	"desk-portfolio/internal/pan"
	"desk-portfolio/internal/pointer"
	"desk-portfolio/internal/schedule"
)

// Cursor is the pointer style the page should show.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorPointer
)

// View is the page layer the scene drives: the overlay nav, titles, back button and cursor.
type View interface {
	SetNavOpacity(alpha float32)
	SetTitleOpacity(alpha float32)
	SetBackVisible(visible bool)
	SetCursor(c Cursor)
	// PlaceNav positions the nav box over the projected anchor rectangle, in window pixels.
	PlaceNav(r overlay.Rect)
	// SetAnchorVisible adds or removes the anchor panel from the rendered scene.
	SetAnchorVisible(visible bool)
	SetLoading(loaded, expected int)
	Ready()
}

// Context owns all mutable scene state. Every method must be called from the render-loop
// goroutine; asset workers reach it only through the loader's Drain.
type Context struct {
	Pose  camera.Pose
	Lens  camera.Lens
	Orbit *orbit.Controls
	Pan   *pan.Machine

	width, height int
	pointer       pointer.Tracker
	nav           *overlay.Positioner
	target        hittest.Target
	timers        *schedule.Queue
	view          View
	log           *logger.Logger

	cursor Cursor
	hover  bool
	ready  bool
}

// New builds a context at the home pose. now seeds the timer clock.
func New(cfg config.Config, view View, log *logger.Logger, now time.Time) *Context {
	home := camera.Pose{Position: cfg.Camera.HomePosition, Look: cfg.Camera.HomeLook}
	c := &Context{
		Pose: home,
		Lens: camera.Lens{FovY: cfg.Camera.FovY, Near: cfg.Camera.Near, Far: cfg.Camera.Far},
		Orbit: orbit.New(orbit.Options{
			Target:           cfg.Orbit.Target,
			RotateSpeed:      cfg.Orbit.RotateSpeed,
			ZoomSpeed:        cfg.Orbit.ZoomSpeed,
			MinDistance:      cfg.Orbit.MinDistance,
			MaxDistance:      cfg.Orbit.MaxDistance,
			DampingFrequency: cfg.Orbit.DampingFrequency,
			FPS:              cfg.Window.TargetFPS,
		}),
		width:  cfg.Window.Width,
		height: cfg.Window.Height,
		nav: overlay.NewPositioner(overlay.Anchor{
			Position: cfg.Anchor.Position,
			Rotation: cfg.Anchor.Rotation,
			Width:    cfg.Anchor.Width,
			Height:   cfg.Anchor.Height,
		}),
		timers: schedule.NewQueue(now),
		view:   view,
		log:    log,
	}
	c.Pan = pan.New(pan.Options{
		Home:           home,
		Zoomed:         camera.Pose{Position: cfg.Camera.ZoomedPosition, Look: cfg.Camera.ZoomedLook},
		Step:           cfg.Pan.Step,
		RevealDelay:    cfg.Pan.RevealDelay,
		DriftAmplitude: cfg.Pan.DriftAmplitude,
		DriftRate:      cfg.Pan.DriftRate,
	}, hooks{c}, c.timers)
	return c
}

// Viewport returns the window size in pixels.
func (c *Context) Viewport() (width, height int) { return c.width, c.height }

// NavAttached reports whether the overlay anchor is in the scene.
func (c *Context) NavAttached() bool { return c.nav.Attached() }

// NavRect returns the last projected nav rectangle.
func (c *Context) NavRect() overlay.Rect { return c.nav.Rect() }

// Cursor returns the cursor style last pushed to the view.
func (c *Context) Cursor() Cursor { return c.cursor }

// IsReady reports whether AssetsReady has been called.
func (c *Context) IsReady() bool { return c.ready }

// PointerMoved records the pointer position in window pixels.
func (c *Context) PointerMoved(px, py float32) {
	c.pointer.Move(px, py, c.width, c.height)
}

// Drag forwards a pointer drag to the orbit controls.
func (c *Context) Drag(dx, dy float32) { c.Orbit.Rotate(dx, dy) }

// Wheel forwards wheel movement to the orbit controls.
func (c *Context) Wheel(delta float32) { c.Orbit.Zoom(delta) }

// Click hit-tests the pointer against the interactive object and starts the pan on a hit.
// It reports whether a pan started.
func (c *Context) Click() bool {
	if !c.Pan.Click(c.hit(), c.Pose) {
		return false
	}
	c.log.Log("pan: zooming in")
	return true
}

// PanIn starts the pan as if the interactive object had been clicked.
func (c *Context) PanIn() bool {
	if c.target == nil || !c.Pan.Click(true, c.Pose) {
		return false
	}
	c.log.Log("pan: zooming in")
	return true
}

// Hover reports whether the pointer was over the interactive object at the last tick.
func (c *Context) Hover() bool { return c.hover }

// Back starts the return to the home pose. It reports whether the request was accepted.
func (c *Context) Back() bool {
	if !c.Pan.Back(c.Pose) {
		return false
	}
	c.log.Log("pan: returning home")
	return true
}

// Resize updates the viewport and re-places the nav if it is showing.
func (c *Context) Resize(width, height int) {
	c.width, c.height = width, height
	c.placeNav()
}

// SetTarget installs the interactive object once its model has loaded. nil clears it.
func (c *Context) SetTarget(t hittest.Target) { c.target = t }

// Progress forwards load progress to the view.
func (c *Context) Progress(loaded, expected int) { c.view.SetLoading(loaded, expected) }

// AssetsReady marks the scene as loaded. Later calls are ignored.
func (c *Context) AssetsReady() {
	if c.ready {
		return
	}
	c.ready = true
	c.log.Log("scene ready")
	c.view.Ready()
}

// Tick runs one frame of scene logic: due timers, orbit and hover feedback while the
// camera is free, then one state machine step. Drawing happens after Tick returns.
func (c *Context) Tick(now time.Time) {
	c.timers.Advance(now)
	if !c.Pan.Panned() {
		c.Orbit.Update(&c.Pose)
		c.hover = c.hit()
		if c.hover {
			c.setCursor(CursorPointer)
		} else {
			c.setCursor(CursorDefault)
		}
	}
	c.Pan.Step(&c.Pose, now)
	c.placeNav()
}

func (c *Context) hit() bool {
	ray := camera.RayFromNDC(c.pointer.NDC(), c.Pose, c.Lens, camera.Aspect(c.width, c.height))
	return hittest.Test(ray, c.target).Hit
}

func (c *Context) setCursor(cur Cursor) {
	if c.cursor == cur {
		return
	}
	c.cursor = cur
	c.view.SetCursor(cur)
}

func (c *Context) placeNav() {
	if r, ok := c.nav.Update(c.Pose, c.Lens, c.width, c.height); ok {
		c.view.PlaceNav(r)
	}
}

// hooks applies pan side effects to the orbit controls, the overlay anchor and the view.
type hooks struct{ c *Context }

func (h hooks) SetOrbitEnabled(enabled bool) { h.c.Orbit.Enabled = enabled }

func (h hooks) AttachOverlay() {
	h.c.nav.Attach()
	h.c.view.SetAnchorVisible(true)
	h.c.placeNav()
}

func (h hooks) DetachOverlay() {
	h.c.nav.Detach()
	h.c.view.SetAnchorVisible(false)
}

func (h hooks) SetNavOpacity(alpha float32)   { h.c.view.SetNavOpacity(alpha) }
func (h hooks) SetTitleOpacity(alpha float32) { h.c.view.SetTitleOpacity(alpha) }
func (h hooks) SetBackVisible(visible bool)   { h.c.view.SetBackVisible(visible) }

func (h hooks) ResetCursor() {
	h.c.cursor = CursorDefault
	h.c.view.SetCursor(CursorDefault)
}
