package pan

import (
	"time"

	"desk-portfolio/internal/camera"

	"github.com/chewxy/math32"
)

// drift sways the camera a little while it rests at home: x follows sin and y follows cos
// of wall-clock time. Offsets accumulate per tick, so each tick moves at most
// DriftAmplitude on each axis.
func (m *Machine) drift(pose *camera.Pose, now time.Time) {
	k := m.opts.DriftAmplitude
	if k == 0 {
		return
	}
	t := DriftPhase(now, m.opts.DriftRate)
	pose.Position[0] += math32.Sin(t) * k
	pose.Position[1] += math32.Cos(t) * k
}

// DriftPhase maps wall time to the drift angle. The seconds are reduced modulo one day
// before the float32 conversion so the phase keeps sub-frame precision.
func DriftPhase(now time.Time, rate float32) float32 {
	if rate == 0 {
		rate = 1
	}
	const day = 24 * time.Hour
	secs := float32(time.Duration(now.UnixNano()%int64(day)).Seconds())
	return secs * rate
}

// SetDrift changes the idle sway amplitude; zero turns it off.
func (m *Machine) SetDrift(amplitude float32) {
	m.opts.DriftAmplitude = amplitude
}
