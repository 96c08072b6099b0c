package scene

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/teslashibe/go-focusplane/pkg/focus"
)

// DefaultGazeDistance is how far gaze rays are cast.
const DefaultGazeDistance = 20.0

// ErrUnknownScenario is returned by NewScenario for an unrecognized name.
var ErrUnknownScenario = errors.New("unknown scenario")

// Gaze casts the camera's forward ray into the world each frame.
type Gaze struct {
	Camera      *Camera
	World       *World
	MaxDistance float64
	Enabled     bool
}

// GazeHit implements focus.GazeProvider.
func (g *Gaze) GazeHit() (focus.GazeHit, bool) {
	if !g.Enabled || g.Camera == nil || g.World == nil {
		return focus.GazeHit{}, false
	}
	return g.World.Raycast(g.Camera.Position, g.Camera.Forward(), g.MaxDistance)
}

// Orbiter moves an override target around a horizontal circle.
type Orbiter struct {
	Center r3.Vec
	Radius float64
	Hz     float64 // Revolutions per second
	Active bool

	angle float64
}

// Position returns the current target position.
func (o *Orbiter) Position() r3.Vec {
	return r3.Vec{
		X: o.Center.X + o.Radius*math.Cos(o.angle),
		Y: o.Center.Y,
		Z: o.Center.Z + o.Radius*math.Sin(o.angle),
	}
}

// OverrideTarget implements focus.OverrideProvider.
func (o *Orbiter) OverrideTarget() (r3.Vec, bool) {
	if !o.Active {
		return r3.Vec{}, false
	}
	return o.Position(), true
}

// Tick advances the target around the circle.
func (o *Orbiter) Tick(dt float64) {
	o.angle = math.Mod(o.angle+2*math.Pi*o.Hz*dt, 2*math.Pi)
}

// Rig bundles the pieces of a scenario.
type Rig struct {
	Name    string
	Camera  *Camera
	World   *World
	Gaze    *Gaze
	Orbiter *Orbiter
}

// Tick advances the camera and the orbiter. Register it in the update phase.
func (r *Rig) Tick(dt float64) {
	r.Camera.Tick(dt)
	r.Orbiter.Tick(dt)
}

// Options returns estimator options wiring the rig's providers.
func (r *Rig) Options() []focus.Option {
	return []focus.Option{
		focus.WithCamera(r.Camera),
		focus.WithGaze(r.Gaze),
		focus.WithOverride(r.Orbiter),
	}
}

// Scenarios lists the names accepted by NewScenario.
var Scenarios = []string{"gaze", "override", "fixed"}

// NewScenario builds a named rig:
//
//   - gaze: the camera sways across a sphere in front of a wall
//   - override: as gaze, plus an orbiting override target
//   - fixed: an empty world, so gaze never hits
func NewScenario(name string) (*Rig, error) {
	cam := NewCamera(r3.Vec{Y: 1.6}, 0)
	cam.SwayAmplitude = 0.5
	cam.SwayHz = 0.1

	world := &World{}
	rig := &Rig{
		Name:   name,
		Camera: cam,
		World:  world,
		Gaze: &Gaze{
			Camera:      cam,
			World:       world,
			MaxDistance: DefaultGazeDistance,
			Enabled:     true,
		},
		Orbiter: &Orbiter{
			Center: r3.Vec{Y: 1.6, Z: 3},
			Radius: 1,
			Hz:     0.25,
		},
	}

	switch name {
	case "gaze":
		world.Add(
			NewPlane(r3.Vec{Z: 6}, r3.Vec{Z: -1}),
			Sphere{Center: r3.Vec{X: 1, Y: 1.6, Z: 2.5}, Radius: 0.5},
		)
	case "override":
		world.Add(NewPlane(r3.Vec{Z: 6}, r3.Vec{Z: -1}))
		rig.Orbiter.Active = true
	case "fixed":
		rig.Gaze.Enabled = false
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScenario, name)
	}
	return rig, nil
}
