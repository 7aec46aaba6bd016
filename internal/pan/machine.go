package pan

import (
	"time"

	"desk-portfolio/internal/camera"
	"desk-portfolio/internal/schedule"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// State is the camera transition state. Exactly one is active at a time.
type State int

const (
	Idle State = iota
	PanningIn
	Panned
	PanningOut
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case PanningIn:
		return "panning-in"
	case Panned:
		return "panned"
	case PanningOut:
		return "panning-out"
	}
	return "unknown"
}

// Job is an in-flight pan. It is created when a transition begins and dropped when Progress reaches 1.
type Job struct {
	StartPosition  mgl32.Vec3
	TargetPosition mgl32.Vec3
	StartLook      mgl32.Vec3
	TargetLook     mgl32.Vec3
	Progress       float32
}

// Hooks are the side effects the machine drives on orbit controls, the scene and the page.
// The machine never reads them back.
type Hooks interface {
	SetOrbitEnabled(enabled bool)
	AttachOverlay()
	DetachOverlay()
	SetNavOpacity(alpha float32)
	SetTitleOpacity(alpha float32)
	SetBackVisible(visible bool)
	ResetCursor()
}

// Scheduler runs a callback later on the render-loop thread.
type Scheduler interface {
	After(d time.Duration, fn func()) *schedule.Timer
}

// Options configures a Machine.
type Options struct {
	Home   camera.Pose
	Zoomed camera.Pose
	// Step is the fixed progress increment per tick, independent of frame time.
	Step float32
	// RevealDelay is how long after arriving at the zoomed pose the overlay and nav appear.
	RevealDelay time.Duration
	// DriftAmplitude scales the idle sway added each tick; zero disables it.
	DriftAmplitude float32
	// DriftRate is the angular rate of the sway in radians per second.
	DriftRate float32
}

// Machine is the camera transition state machine. It is driven from a single thread:
// Click and Back from input handlers, Step once per frame.
type Machine struct {
	opts   Options
	hooks  Hooks
	timers Scheduler

	state  State
	job    *Job
	gen    uint64
	reveal *schedule.Timer
}

// New returns a machine in Idle.
func New(opts Options, hooks Hooks, timers Scheduler) *Machine {
	if opts.Step <= 0 {
		opts.Step = 0.015
	}
	return &Machine{opts: opts, hooks: hooks, timers: timers}
}

// State returns the active state.
func (m *Machine) State() State { return m.state }

// Job returns a copy of the active job, or false when no pan is in flight.
func (m *Machine) Job() (Job, bool) {
	if m.job == nil {
		return Job{}, false
	}
	return *m.job, true
}

// Panned reports whether the camera is locked at the zoomed pose.
func (m *Machine) Panned() bool { return m.state == Panned }

// Click handles a click whose ray did or did not hit the interactive object.
// It starts a pan toward the zoomed pose only from Idle; otherwise it is a no-op.
func (m *Machine) Click(hit bool, current camera.Pose) bool {
	if !hit || m.state != Idle || m.job != nil {
		return false
	}
	m.begin(PanningIn, current, m.opts.Zoomed)
	return true
}

// Back starts the return to the home pose. Only valid while Panned.
func (m *Machine) Back(current camera.Pose) bool {
	if m.state != Panned || m.job != nil {
		return false
	}
	m.cancelReveal()
	m.begin(PanningOut, current, m.opts.Home)
	m.hooks.SetNavOpacity(0)
	m.hooks.DetachOverlay()
	m.hooks.SetTitleOpacity(1)
	m.hooks.ResetCursor()
	return true
}

func (m *Machine) begin(s State, from, to camera.Pose) {
	m.gen++
	m.state = s
	m.job = &Job{
		StartPosition:  from.Position,
		TargetPosition: to.Position,
		StartLook:      from.Look,
		TargetLook:     to.Look,
	}
}

// Step advances the machine by one frame. While a pan is in flight it moves pose one fixed
// step along the job; while Idle it applies the ambient drift for wall time now.
func (m *Machine) Step(pose *camera.Pose, now time.Time) {
	if m.job == nil {
		if m.state == Idle {
			m.drift(pose, now)
		}
		return
	}
	j := m.job
	j.Progress = math32.Min(j.Progress+m.opts.Step, 1)
	pose.Position = camera.Lerp(j.StartPosition, j.TargetPosition, j.Progress)
	if m.state == PanningOut {
		pose.Look = camera.Lerp(j.StartLook, j.TargetLook, j.Progress)
	} else {
		// Entering snaps straight to the zoomed look target; only the return eases the look.
		pose.Look = j.TargetLook
	}
	if j.Progress >= 1 {
		m.finish()
	}
}

func (m *Machine) finish() {
	m.job = nil
	switch m.state {
	case PanningIn:
		m.state = Panned
		m.hooks.SetOrbitEnabled(false)
		m.hooks.SetTitleOpacity(0)
		m.scheduleReveal()
	case PanningOut:
		m.state = Idle
		m.hooks.SetOrbitEnabled(true)
		m.hooks.DetachOverlay()
		m.hooks.SetBackVisible(false)
		m.hooks.ResetCursor()
	}
}

func (m *Machine) scheduleReveal() {
	gen := m.gen
	reveal := func() {
		if m.state != Panned || m.gen != gen {
			return
		}
		m.reveal = nil
		m.hooks.AttachOverlay()
		m.hooks.SetNavOpacity(1)
		m.hooks.SetBackVisible(true)
	}
	if m.timers == nil || m.opts.RevealDelay <= 0 {
		reveal()
		return
	}
	m.reveal = m.timers.After(m.opts.RevealDelay, reveal)
}

func (m *Machine) cancelReveal() {
	if m.reveal != nil {
		m.reveal.Stop()
		m.reveal = nil
	}
}

// RevealPending reports whether the delayed overlay reveal has been scheduled but not run.
func (m *Machine) RevealPending() bool { return m.reveal != nil }

// Snapshot is a read-only view of the machine for the console and debug overlay.
type Snapshot struct {
	State         State
	Progress      float32
	RevealPending bool
}

// Snapshot returns the current state and job progress. Progress is 1 while Panned and 0 while Idle.
func (m *Machine) Snapshot() Snapshot {
	s := Snapshot{State: m.state, RevealPending: m.reveal != nil}
	switch {
	case m.job != nil:
		s.Progress = m.job.Progress
	case m.state == Panned:
		s.Progress = 1
	}
	return s
}
