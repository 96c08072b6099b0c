package scene

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/teslashibe/go-focusplane/internal/log"
	"github.com/teslashibe/go-focusplane/pkg/focus"
	"github.com/teslashibe/go-focusplane/pkg/frameloop"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestCamera_Forward(t *testing.T) {
	c := NewCamera(r3.Vec{}, 0)
	if f := c.Forward(); !near(f.Z, 1) || !near(f.X, 0) || !near(f.Y, 0) {
		t.Errorf("Forward at yaw 0 = %v, want +Z", f)
	}

	c.Yaw = math.Pi / 2
	if f := c.Forward(); !near(f.X, 1) || !near(f.Z, 0) {
		t.Errorf("Forward at yaw 90° = %v, want +X", f)
	}

	c.Yaw, c.Pitch = 0, math.Pi/2
	if f := c.Forward(); !near(f.Y, 1) {
		t.Errorf("Forward at pitch 90° = %v, want +Y", f)
	}
}

func TestCamera_SwayStaysWithinAmplitude(t *testing.T) {
	c := NewCamera(r3.Vec{}, 0.2)
	c.SwayAmplitude = 0.3
	c.SwayHz = 1

	for i := 0; i < 240; i++ {
		c.Tick(1.0 / 60)
		if math.Abs(c.Yaw-0.2) > 0.3+1e-9 {
			t.Fatalf("Yaw %v left sway range at frame %d", c.Yaw, i)
		}
	}
}

func TestPlane_Intersect(t *testing.T) {
	p := NewPlane(r3.Vec{Z: 5}, r3.Vec{Z: -2})

	d, ok := p.Intersect(r3.Vec{}, r3.Vec{Z: 1})
	if !ok || !near(d, 5) {
		t.Errorf("Intersect = %v, %v; want 5, true", d, ok)
	}

	if _, ok := p.Intersect(r3.Vec{}, r3.Vec{X: 1}); ok {
		t.Error("Parallel ray should miss")
	}
	if _, ok := p.Intersect(r3.Vec{}, r3.Vec{Z: -1}); ok {
		t.Error("Plane behind the ray should miss")
	}
}

func TestSphere_Intersect(t *testing.T) {
	s := Sphere{Center: r3.Vec{Z: 4}, Radius: 1}

	d, ok := s.Intersect(r3.Vec{}, r3.Vec{Z: 1})
	if !ok || !near(d, 3) {
		t.Errorf("Outside hit = %v, %v; want 3, true", d, ok)
	}

	d, ok = s.Intersect(r3.Vec{Z: 4}, r3.Vec{Z: 1})
	if !ok || !near(d, 1) {
		t.Errorf("Inside hit = %v, %v; want 1, true", d, ok)
	}

	if _, ok := s.Intersect(r3.Vec{X: 2}, r3.Vec{Z: 1}); ok {
		t.Error("Ray beside the sphere should miss")
	}
}

func TestWorld_RaycastNearest(t *testing.T) {
	w := &World{}
	w.Add(
		NewPlane(r3.Vec{Z: 6}, r3.Vec{Z: -1}),
		Sphere{Center: r3.Vec{Z: 3}, Radius: 0.5},
	)

	hit, ok := w.Raycast(r3.Vec{}, r3.Vec{Z: 2}, 20)
	if !ok {
		t.Fatal("Expected a hit")
	}
	if !near(hit.Distance, 2.5) || !near(hit.Point.Z, 2.5) {
		t.Errorf("Hit = %+v, want sphere front at 2.5", hit)
	}

	if _, ok := w.Raycast(r3.Vec{}, r3.Vec{Z: 1}, 2); ok {
		t.Error("Hit beyond max distance should be dropped")
	}
	if _, ok := (&World{}).Raycast(r3.Vec{}, r3.Vec{Z: 1}, 20); ok {
		t.Error("Empty world should never hit")
	}
}

func TestOrbiter(t *testing.T) {
	o := &Orbiter{Center: r3.Vec{Z: 3}, Radius: 2, Hz: 0.25}

	if _, ok := o.OverrideTarget(); ok {
		t.Error("Inactive orbiter should not provide a target")
	}

	o.Active = true
	o.Tick(1) // quarter turn
	p, ok := o.OverrideTarget()
	if !ok {
		t.Fatal("Active orbiter should provide a target")
	}
	if !near(p.X, 0) || !near(p.Z, 5) {
		t.Errorf("Position after quarter turn = %v, want (0, 0, 5)", p)
	}
}

func TestNewScenario_Unknown(t *testing.T) {
	_, err := NewScenario("nope")
	if !errors.Is(err, ErrUnknownScenario) {
		t.Errorf("Expected ErrUnknownScenario, got %v", err)
	}
}

// Runs each scenario through a frame loop with the estimator in the late phase.
func TestScenarios_DriveEstimator(t *testing.T) {
	want := map[string]focus.Mode{
		"gaze":     focus.ModeGazeTarget,
		"override": focus.ModeOverrideTarget,
		"fixed":    focus.ModeFixedDistance,
	}

	for _, name := range Scenarios {
		t.Run(name, func(t *testing.T) {
			rig, err := NewScenario(name)
			if err != nil {
				t.Fatalf("NewScenario: %v", err)
			}

			var last focus.PlaneResult
			var hints int
			sink := focus.FrameHinterFunc(func(_, _, _ r3.Vec) { hints++ })

			opts := append(rig.Options(), focus.WithLogger(log.Discard()))
			est := focus.New(sink, opts...)

			loop := frameloop.New(0)
			loop.OnUpdate(rig)
			loop.OnLate(frameloop.UpdaterFunc(func(dt float64) {
				res, ok := est.Step(dt, focus.DefaultConfig())
				if ok {
					last = res
				}
			}))

			for i := 0; i < 120; i++ {
				loop.Step(1.0 / 60)
			}

			if hints != 120 {
				t.Errorf("hints = %d, want 120", hints)
			}
			if last.Mode != want[name] {
				t.Errorf("mode = %v, want %v", last.Mode, want[name])
			}
			if name == "override" {
				if p := rig.Orbiter.Position(); last.Position != p {
					t.Errorf("override plane %v, want orbiter %v", last.Position, p)
				}
			}
		})
	}
}
