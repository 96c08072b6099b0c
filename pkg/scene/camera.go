// Package scene is a small headless host for the focus estimator.
//
// It stands in for an engine: a scripted camera, a handful of surfaces for
// gaze ray casts, and an orbiting override target. Everything is advanced in
// the frame loop's update phase so the estimator sees settled values.
package scene

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/teslashibe/go-focusplane/pkg/focus"
)

// Camera is a viewer with a position and a yaw/pitch heading.
// Yaw 0, pitch 0 looks down +Z with +Y up.
type Camera struct {
	Position r3.Vec
	Yaw      float64 // Radians about +Y
	Pitch    float64 // Radians, positive looks up

	// Scripted motion
	SwayAmplitude float64 // Peak yaw offset in radians
	SwayHz        float64 // Sway cycles per second

	baseYaw float64
	elapsed float64
}

// NewCamera creates a camera at position looking along yaw.
func NewCamera(position r3.Vec, yaw float64) *Camera {
	return &Camera{Position: position, Yaw: yaw, baseYaw: yaw}
}

// Forward returns the unit viewing direction.
func (c *Camera) Forward() r3.Vec {
	cp := math.Cos(c.Pitch)
	return r3.Vec{
		X: math.Sin(c.Yaw) * cp,
		Y: math.Sin(c.Pitch),
		Z: math.Cos(c.Yaw) * cp,
	}
}

// CameraPose implements focus.CameraPoseProvider.
func (c *Camera) CameraPose() (focus.Pose, bool) {
	return focus.Pose{Position: c.Position, Forward: c.Forward()}, true
}

// Tick advances the scripted sway.
func (c *Camera) Tick(dt float64) {
	c.elapsed += dt
	if c.SwayAmplitude == 0 || c.SwayHz == 0 {
		return
	}
	c.Yaw = c.baseYaw + c.SwayAmplitude*math.Sin(2*math.Pi*c.SwayHz*c.elapsed)
}
