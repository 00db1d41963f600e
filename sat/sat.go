// Package sat implements the separating axis test for two oriented boxes.
//
// Two convex polytopes are disjoint iff some axis exists on which their
// projections do not overlap. For a pair of boxes the candidate axes are the
// three face normals of each box plus the nine pairwise edge cross products.
// When every axis shows overlap, the axis of minimum overlap gives the
// contact normal and penetration depth.
//
// Reference: Gottschalk, Lin, Manocha: "OBBTree: A Hierarchical Structure for
// Rapid Interference Detection" (1996).
package sat

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// absEpsilon inflates the |R| matrix so that near-parallel edge pairs, whose
// cross products are almost null, cannot report a phantom separation that the
// face axes would miss.
const absEpsilon = 1e-6

// parallelEpsilon is the squared cross-product length below which an
// edge-edge axis is degenerate and skipped; the face axes already cover it.
const parallelEpsilon = 1e-8

// Result is the outcome of an overlapping separating axis test.
type Result struct {
	// Normal is the unit minimum-overlap axis, oriented from box A toward
	// box B.
	Normal mgl32.Vec3
	// Penetration is the projected overlap along Normal.
	Penetration float32
}

// TestBoxes runs the 15-axis separating axis test on two oriented boxes.
// It returns false as soon as any axis separates the projections; otherwise
// it returns the minimum-overlap axis and depth.
func TestBoxes(posA mgl32.Vec3, rotA mgl32.Quat, halfA mgl32.Vec3, posB mgl32.Vec3, rotB mgl32.Quat, halfB mgl32.Vec3) (Result, bool) {
	axesA := boxAxes(rotA)
	axesB := boxAxes(rotB)

	// Rotation of B expressed in A's frame, plus its inflated absolute value.
	var r, absR [3][3]float32
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = axesA[i].Dot(axesB[j])
			absR[i][j] = float32(math.Abs(float64(r[i][j]))) + absEpsilon
		}
	}

	// Center delta, world and projected into A's frame.
	t := posB.Sub(posA)
	ta := [3]float32{t.Dot(axesA[0]), t.Dot(axesA[1]), t.Dot(axesA[2])}

	best := Result{Penetration: float32(math.MaxFloat32)}

	track := func(overlap float32, axis mgl32.Vec3, sign float32) {
		if overlap < best.Penetration {
			if sign < 0 {
				axis = axis.Mul(-1)
			}
			best = Result{Normal: axis, Penetration: overlap}
		}
	}

	// A's three face axes.
	for i := 0; i < 3; i++ {
		ra := halfA[i]
		rb := halfB[0]*absR[i][0] + halfB[1]*absR[i][1] + halfB[2]*absR[i][2]
		dist := float32(math.Abs(float64(ta[i])))
		if dist > ra+rb {
			return Result{}, false
		}
		track(ra+rb-dist, axesA[i], ta[i])
	}

	// B's three face axes.
	for j := 0; j < 3; j++ {
		ra := halfA[0]*absR[0][j] + halfA[1]*absR[1][j] + halfA[2]*absR[2][j]
		rb := halfB[j]
		tb := ta[0]*r[0][j] + ta[1]*r[1][j] + ta[2]*r[2][j]
		dist := float32(math.Abs(float64(tb)))
		if dist > ra+rb {
			return Result{}, false
		}
		track(ra+rb-dist, axesB[j], tb)
	}

	// The nine edge-edge cross axes. Radii and distances come out scaled by
	// the cross product's length, so the tracked depth is divided back.
	for i := 0; i < 3; i++ {
		i1, i2 := (i+1)%3, (i+2)%3
		for j := 0; j < 3; j++ {
			j1, j2 := (j+1)%3, (j+2)%3

			axis := axesA[i].Cross(axesB[j])
			lenSqr := axis.LenSqr()
			if lenSqr < parallelEpsilon {
				continue // near-parallel edges, covered by the face axes
			}

			ra := halfA[i1]*absR[i2][j] + halfA[i2]*absR[i1][j]
			rb := halfB[j1]*absR[i][j2] + halfB[j2]*absR[i][j1]
			signed := ta[i2]*r[i1][j] - ta[i1]*r[i2][j]
			dist := float32(math.Abs(float64(signed)))
			if dist > ra+rb {
				return Result{}, false
			}

			length := float32(math.Sqrt(float64(lenSqr)))
			axis = axis.Mul(1 / length)
			track((ra+rb-dist)/length, axis, t.Dot(axis))
		}
	}

	return best, true
}

func boxAxes(rot mgl32.Quat) [3]mgl32.Vec3 {
	return [3]mgl32.Vec3{
		rot.Rotate(mgl32.Vec3{1, 0, 0}),
		rot.Rotate(mgl32.Vec3{0, 1, 0}),
		rot.Rotate(mgl32.Vec3{0, 0, 1}),
	}
}
