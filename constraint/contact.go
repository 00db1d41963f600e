package constraint

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Contact is one pairwise contact emitted by the generator. Contacts are
// transient: they are rebuilt from scratch every substep and every position
// iteration, and carry no identity across frames.
type Contact struct {
	// BodyA and BodyB index the world's body array, with BodyA < BodyB.
	BodyA uint32
	BodyB uint32
	// Normal is a unit vector pointing from body A toward body B.
	Normal mgl32.Vec3
	// Point is the approximate world-space contact point.
	Point mgl32.Vec3
	// Penetration is the positive depth of overlap.
	Penetration float32
	// Friction and Restitution are the combined material coefficients.
	Friction    float32
	Restitution float32
}

// CombineFriction merges two friction coefficients with a geometric mean.
// Negative inputs count as zero.
func CombineFriction(a, b float32) float32 {
	return float32(math.Sqrt(float64(max(a, 0) * max(b, 0))))
}

// CombineRestitution merges two restitution coefficients: the bouncier
// material wins.
func CombineRestitution(a, b float32) float32 {
	return max(a, b)
}
