package focus

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultQuadHalfExtent is the half side length of the diagnostics quad.
const DefaultQuadHalfExtent = 0.5

// Quad returns the corners of a square lying in the plane, centered on its
// position, in order around its edge. The dashboard draws it as the plane gizmo.
func Quad(res PlaneResult, halfExtent float64) [4]r3.Vec {
	n := r3.Unit(res.Normal)

	up := r3.Vec{Y: 1}
	if math.Abs(r3.Dot(n, up)) > 0.999 {
		// Looking straight up or down
		up = r3.Vec{X: 1}
	}

	right := r3.Unit(r3.Cross(up, n))
	top := r3.Cross(n, right)

	r := r3.Scale(halfExtent, right)
	u := r3.Scale(halfExtent, top)
	p := res.Position

	return [4]r3.Vec{
		r3.Sub(r3.Sub(p, r), u),
		r3.Sub(r3.Add(p, r), u),
		r3.Add(r3.Add(p, r), u),
		r3.Add(r3.Sub(p, r), u),
	}
}
