package scene

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/teslashibe/go-focusplane/pkg/focus"
)

// Surface is anything a gaze ray can hit.
type Surface interface {
	// Intersect returns the distance along dir (assumed unit length) to the
	// nearest hit in front of origin.
	Intersect(origin, dir r3.Vec) (float64, bool)
}

// Plane is an infinite plane defined by a point and normal
type Plane struct {
	Point  r3.Vec
	Normal r3.Vec
}

// NewPlane creates a plane, normalizing its normal.
func NewPlane(point, normal r3.Vec) Plane {
	return Plane{Point: point, Normal: r3.Unit(normal)}
}

// Intersect implements Surface.
func (p Plane) Intersect(origin, dir r3.Vec) (float64, bool) {
	denom := r3.Dot(dir, p.Normal)

	// Parallel to the plane
	if math.Abs(denom) < 1e-8 {
		return 0, false
	}

	t := r3.Dot(r3.Sub(p.Point, origin), p.Normal) / denom
	if t <= 0 {
		return 0, false
	}
	return t, true
}

// Sphere is a ball with a center and radius.
type Sphere struct {
	Center r3.Vec
	Radius float64
}

// Intersect implements Surface. A ray starting inside hits the far side.
func (s Sphere) Intersect(origin, dir r3.Vec) (float64, bool) {
	oc := r3.Sub(origin, s.Center)
	b := r3.Dot(oc, dir)
	c := r3.Dot(oc, oc) - s.Radius*s.Radius

	disc := b*b - c
	if disc < 0 {
		return 0, false
	}

	sq := math.Sqrt(disc)
	if t := -b - sq; t > 0 {
		return t, true
	}
	if t := -b + sq; t > 0 {
		return t, true
	}
	return 0, false
}

// World is the set of surfaces gaze rays are cast against.
type World struct {
	Surfaces []Surface
}

// Add appends surfaces to the world.
func (w *World) Add(s ...Surface) {
	w.Surfaces = append(w.Surfaces, s...)
}

// Raycast returns the nearest hit within maxDistance along dir.
func (w *World) Raycast(origin, dir r3.Vec, maxDistance float64) (focus.GazeHit, bool) {
	dir = r3.Unit(dir)

	best := math.Inf(1)
	for _, s := range w.Surfaces {
		if t, ok := s.Intersect(origin, dir); ok && t < best {
			best = t
		}
	}

	if math.IsInf(best, 1) || best > maxDistance {
		return focus.GazeHit{}, false
	}
	return focus.GazeHit{
		Point:    r3.Add(origin, r3.Scale(best, dir)),
		Distance: best,
	}, true
}
