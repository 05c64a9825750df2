package sim

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRotationIsUnitQuaternion(t *testing.T) {
	m := Motion{Period: 7 * time.Second}
	now := time.Unix(1700000000, 0)
	for i := 0; i < 100; i++ {
		q := m.Rotation(now.Add(time.Duration(i) * 100 * time.Millisecond))
		norm := math.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W))
		require.InDelta(t, 1.0, norm, 1e-5)
	}
}

func TestMotionIsDeterministic(t *testing.T) {
	m := Motion{Period: 3 * time.Second, Phase: 1.2}
	now := time.Unix(1700000123, 456789)
	require.Equal(t, m.Rotation(now), m.Rotation(now))
	require.Equal(t, m.Acceleration(now), m.Acceleration(now))
}

func TestPhaseDecouplesSensors(t *testing.T) {
	now := time.Unix(1700000000, 0)
	a := Motion{Period: 7 * time.Second, Phase: 0}
	b := Motion{Period: 7 * time.Second, Phase: math.Pi / 2}
	require.NotEqual(t, a.Rotation(now), b.Rotation(now))
}

func TestBatteryDischarges(t *testing.T) {
	start := time.Unix(1700000000, 0)
	b := Battery{Start: start, Life: 10 * time.Hour}

	pctFull, vFull := b.Level(start)
	require.InDelta(t, 100, pctFull, 1e-3)
	require.InDelta(t, 4.2, vFull, 1e-3)

	pctHalf, vHalf := b.Level(start.Add(5 * time.Hour))
	require.InDelta(t, 50, pctHalf, 1e-3)
	require.Less(t, vHalf, vFull)

	pctEnd, vEnd := b.Level(start.Add(20 * time.Hour))
	require.InDelta(t, 0, pctEnd, 1e-3)
	require.InDelta(t, 3.3, vEnd, 1e-3)
}

func TestTemperatureStaysNearBase(t *testing.T) {
	now := time.Unix(1700000000, 0)
	for i := 0; i < 60; i++ {
		c := Temperature(now.Add(time.Duration(i)*10*time.Second), 38)
		require.InDelta(t, 38, c, 1.6)
	}
}
