// Package gjk implements the Gilbert-Johnson-Keerthi (GJK) algorithm for
// boolean collision detection between convex shapes.
//
// GJK detects whether two convex shapes overlap by testing if their Minkowski
// difference contains the origin. The algorithm builds a simplex incrementally,
// converging toward the origin in typically 3-6 iterations.
//
// References:
//   - Gilbert, Johnson, Keerthi: "A Fast Procedure for Computing the Distance
//     Between Complex Objects in Three-Dimensional Space" (1988)
//   - Van den Bergen: "Collision Detection in Interactive 3D Environments" (2003)
package gjk

import (
	"github.com/go-gl/mathgl/mgl32"
)

// maxIterations bounds the simplex refinement loop. A run that fails to
// conclude within the limit is reported as disjoint; the caller re-examines
// the pair on the next substep with fresh geometry.
const maxIterations = 30

// Support is a convex shape queried only through its extreme points. Shapes
// never expose their full geometry to GJK.
type Support interface {
	// SupportPoint returns the shape's farthest point along a world-space
	// direction.
	SupportPoint(direction mgl32.Vec3) mgl32.Vec3
	// Center returns a point inside the shape, used to seed the search.
	Center() mgl32.Vec3
}

// Simplex is a set of 1-4 points in the Minkowski difference space. The most
// recently added point sits at Points[Count-1].
type Simplex struct {
	Points [4]mgl32.Vec3
	Count  int
}

func (s *Simplex) push(p mgl32.Vec3) {
	s.Points[s.Count] = p
	s.Count++
}

// minkowskiSupport computes a support point of the Minkowski difference A - B:
// the farthest point of A along direction minus the farthest point of B
// against it.
func minkowskiSupport(a, b Support, direction mgl32.Vec3) mgl32.Vec3 {
	return a.SupportPoint(direction).Sub(b.SupportPoint(direction.Mul(-1)))
}

// Intersects reports whether two convex shapes overlap.
//
// The search starts toward the other shape's center, seeds the simplex with
// one support point, and then alternates between finding a new support toward
// the origin and reducing the simplex to the feature closest to it. The origin
// is enclosed only by a tetrahedron, so that is the sole accepting case.
func Intersects(a, b Support) bool {
	direction := b.Center().Sub(a.Center())
	if direction.LenSqr() < 1e-8 {
		direction = mgl32.Vec3{1, 0, 0} // coincident centers
	}

	var simplex Simplex
	first := minkowskiSupport(a, b, direction)
	if first.Dot(direction) <= 0 {
		return false
	}
	simplex.push(first)

	direction = first.Mul(-1)

	for i := 0; i < maxIterations; i++ {
		newPoint := minkowskiSupport(a, b, direction)

		// If the new point does not pass the origin in the search direction
		// the origin cannot be reached: the shapes are separated.
		if newPoint.Dot(direction) <= 0 {
			return false
		}

		simplex.push(newPoint)

		if containsOrigin(&simplex, &direction) {
			return true
		}
	}

	return false
}

// containsOrigin tests the simplex against the origin and refines it to the
// closest feature, updating the search direction for the next iteration.
func containsOrigin(simplex *Simplex, direction *mgl32.Vec3) bool {
	switch simplex.Count {
	case 2:
		return line(simplex, direction)
	case 3:
		return triangle(simplex, direction)
	case 4:
		return tetrahedron(simplex, direction)
	}
	return false
}

// line handles the 2-point simplex. A line cannot contain the origin in 3D;
// the next direction is perpendicular to the segment, toward the origin.
func line(simplex *Simplex, direction *mgl32.Vec3) bool {
	a := simplex.Points[1]
	b := simplex.Points[0]

	ab := b.Sub(a)
	ao := a.Mul(-1)

	perp := ab.Cross(ao).Cross(ab)
	if perp.LenSqr() < 1e-12 {
		// Origin lies on the segment's line; any perpendicular will do.
		perp = mgl32.Vec3{-ab.Y(), ab.X(), 0}
	}

	*direction = perp
	return false
}

// triangle handles the 3-point simplex. The origin is either beyond one of
// the edges touching A (reduce to that edge) or above/below the face (keep
// the face, re-winding it when the origin is on the negative side).
func triangle(simplex *Simplex, direction *mgl32.Vec3) bool {
	a := simplex.Points[2] // most recent point
	b := simplex.Points[1]
	c := simplex.Points[0]

	ab := b.Sub(a)
	ac := c.Sub(a)
	ao := a.Mul(-1)

	abc := ab.Cross(ac)

	if abc.Cross(ac).Dot(ao) > 0 {
		// Beyond edge AC.
		simplex.Points[0] = c
		simplex.Points[1] = a
		simplex.Count = 2
		*direction = ac.Cross(ao).Cross(ac)
		return false
	}

	if ab.Cross(abc).Dot(ao) > 0 {
		// Beyond edge AB.
		simplex.Points[0] = b
		simplex.Points[1] = a
		simplex.Count = 2
		*direction = ab.Cross(ao).Cross(ab)
		return false
	}

	if abc.Dot(ao) > 0 {
		*direction = abc
	} else {
		// Below the face: re-wind so the next tetrahedron sees outward
		// face normals.
		simplex.Points[0] = b
		simplex.Points[1] = c
		simplex.Points[2] = a
		*direction = abc.Mul(-1)
	}

	return false
}

// tetrahedron handles the 4-point simplex, the only case that can accept.
// The triangle case wound the base so the three faces touching A have
// outward normals; the first face the origin is outside of becomes the new
// triangle, otherwise the origin is enclosed.
func tetrahedron(simplex *Simplex, direction *mgl32.Vec3) bool {
	a := simplex.Points[3] // most recent point
	b := simplex.Points[2]
	c := simplex.Points[1]
	d := simplex.Points[0]

	ab := b.Sub(a)
	ac := c.Sub(a)
	ad := d.Sub(a)
	ao := a.Mul(-1)

	abc := ab.Cross(ac)
	acd := ac.Cross(ad)
	adb := ad.Cross(ab)

	if abc.Dot(ao) > 0 {
		simplex.Points[0] = c
		simplex.Points[1] = b
		simplex.Points[2] = a
		simplex.Count = 3
		return triangle(simplex, direction)
	}

	if acd.Dot(ao) > 0 {
		simplex.Points[0] = d
		simplex.Points[1] = c
		simplex.Points[2] = a
		simplex.Count = 3
		return triangle(simplex, direction)
	}

	if adb.Dot(ao) > 0 {
		simplex.Points[0] = b
		simplex.Points[1] = d
		simplex.Points[2] = a
		simplex.Count = 3
		return triangle(simplex, direction)
	}

	// The origin is inside the tetrahedron.
	return true
}
