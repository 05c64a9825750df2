// Package sim generates deterministic motion telemetry for emulated
// sensors. Samples are pure functions of time, so a run can be replayed by
// replaying the clock.
package sim

import (
	"math"
	"time"

	"github.com/JovannMC/tracker-emulation-go/internal/pkg/firmware"
)

// Motion produces smooth orientation and acceleration waveforms.
//
// The orientation sweeps a cone around the vertical axis; acceleration is
// the near-gravity vector with a small horizontal sway. Phase decouples
// multiple sensors so they do not move in lockstep.
type Motion struct {
	Period time.Duration
	Phase  float64 // radians
}

func (m Motion) omega(now time.Time) float64 {
	period := m.Period
	if period <= 0 {
		period = 7 * time.Second
	}
	frac := float64(now.UnixNano()%period.Nanoseconds()) / float64(period.Nanoseconds())
	return 2*math.Pi*frac + m.Phase
}

// Rotation returns a unit quaternion for the given instant.
func (m Motion) Rotation(now time.Time) firmware.Quaternion {
	w := m.omega(now)

	// Tilt by a fixed cone angle, spun around the vertical axis.
	const cone = math.Pi / 8
	half := cone / 2
	return firmware.Quaternion{
		X: float32(math.Sin(half) * math.Cos(w)),
		Y: float32(math.Sin(half) * math.Sin(w)),
		Z: 0,
		W: float32(math.Cos(half)),
	}
}

// Acceleration returns the accelerometer reading in m/s² for the instant.
func (m Motion) Acceleration(now time.Time) firmware.Vector3 {
	w := m.omega(now)
	const sway = 0.6 // m/s² horizontal amplitude
	return firmware.Vector3{
		X: float32(sway * math.Cos(w)),
		Y: float32(sway * math.Sin(w)),
		Z: 9.81,
	}
}

// Battery models a slow linear discharge from full to empty over Life,
// reporting percentage and pack voltage.
type Battery struct {
	Start time.Time
	Life  time.Duration
}

// Level returns (percentage, voltage) at the given instant. Voltage ramps
// from 4.2 V to 3.3 V as the pack drains.
func (b Battery) Level(now time.Time) (float32, float32) {
	life := b.Life
	if life <= 0 {
		life = 8 * time.Hour
	}
	frac := now.Sub(b.Start).Seconds() / life.Seconds()
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	percentage := float32(100 * (1 - frac))
	voltage := float32(4.2 - 0.9*frac)
	return percentage, voltage
}

// Temperature returns a die temperature that wobbles gently around base.
func Temperature(now time.Time, base float32) float32 {
	const period = 5 * time.Minute
	frac := float64(now.UnixNano()%int64(period)) / float64(period)
	return base + float32(1.5*math.Sin(2*math.Pi*frac))
}
