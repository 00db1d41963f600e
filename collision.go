package ballast

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/akmonengine/ballast/actor"
	"github.com/akmonengine/ballast/constraint"
	"github.com/akmonengine/ballast/gjk"
	"github.com/akmonengine/ballast/sat"
)

// fallbackNormal stands in for the contact normal when the two bodies are so
// close that no direction can be derived from their geometry.
var fallbackNormal = mgl32.Vec3{0, 1, 0}

// degenerateDistance is the distance (between sphere centers, or from a
// sphere center to the closest box point) at or below which a normal is
// considered underivable.
const degenerateDistance = 1e-6

// GenerateContacts tests every unordered body pair (i, j) with i < j and
// appends one contact per overlapping pair to dst. Pairs of two static bodies
// are skipped, as is any pair involving a line shape. The append order is the
// pair order, which fixes the Gauss-Seidel ordering of the solver.
func GenerateContacts(bodies []actor.Body, dst []constraint.Contact) []constraint.Contact {
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			bodyA := &bodies[i]
			bodyB := &bodies[j]

			if bodyA.Static() && bodyB.Static() {
				continue
			}

			dst = collidePair(dst, uint32(i), uint32(j), bodyA, bodyB)
		}
	}

	return dst
}

// collidePair dispatches on the shape tags of an (a, b) pair, a < b.
func collidePair(dst []constraint.Contact, a, b uint32, bodyA, bodyB *actor.Body) []constraint.Contact {
	ta, tb := bodyA.Shape.Type, bodyB.Shape.Type
	if ta == actor.ShapeLine || tb == actor.ShapeLine {
		return dst
	}

	switch {
	case ta == actor.ShapeSphere && tb == actor.ShapeSphere:
		return collideSphereSphere(dst, a, b, bodyA, bodyB)
	case ta == actor.ShapeSphere && tb == actor.ShapeBox:
		return collideSphereBox(dst, a, b, bodyA, bodyB)
	case ta == actor.ShapeBox && tb == actor.ShapeSphere:
		// Detect sphere-first, then rewrite the emitted contact so body A
		// stays the lower-indexed box with the normal still pointing A to B.
		n := len(dst)
		dst = collideSphereBox(dst, b, a, bodyB, bodyA)
		if len(dst) > n {
			c := &dst[len(dst)-1]
			c.BodyA, c.BodyB = a, b
			c.Normal = c.Normal.Mul(-1)
		}
		return dst
	case ta == actor.ShapeBox && tb == actor.ShapeBox:
		return collideBoxBox(dst, a, b, bodyA, bodyB)
	}

	return dst
}

func collideSphereSphere(dst []constraint.Contact, a, b uint32, bodyA, bodyB *actor.Body) []constraint.Contact {
	delta := bodyB.Position.Sub(bodyA.Position)
	radius := bodyA.Shape.Radius + bodyB.Shape.Radius

	if delta.LenSqr() > radius*radius {
		return dst
	}

	distance := delta.Len()
	normal := fallbackNormal
	if distance > degenerateDistance {
		normal = delta.Mul(1 / distance)
	}
	penetration := radius - distance

	return append(dst, constraint.Contact{
		BodyA:       a,
		BodyB:       b,
		Normal:      normal,
		Point:       bodyA.Position.Add(normal.Mul(bodyA.Shape.Radius - penetration/2)),
		Penetration: penetration,
		Friction:    constraint.CombineFriction(bodyA.Friction, bodyB.Friction),
		Restitution: constraint.CombineRestitution(bodyA.Restitution, bodyB.Restitution),
	})
}

// collideSphereBox expects the sphere as body A; the emitted normal points
// from the sphere toward the box.
func collideSphereBox(dst []constraint.Contact, sphere, box uint32, sphereBody, boxBody *actor.Body) []constraint.Contact {
	closest := actor.ClosestPointOnBox(sphereBody.Position, boxBody.Position, boxBody.Orientation, boxBody.Shape.HalfExtents)
	delta := closest.Sub(sphereBody.Position)
	radius := sphereBody.Shape.Radius

	if delta.LenSqr() > radius*radius {
		return dst
	}

	distance := delta.Len()
	normal := fallbackNormal
	if distance > degenerateDistance {
		normal = delta.Mul(1 / distance)
	}

	return append(dst, constraint.Contact{
		BodyA:       sphere,
		BodyB:       box,
		Normal:      normal,
		Point:       closest,
		Penetration: radius - distance,
		Friction:    constraint.CombineFriction(sphereBody.Friction, boxBody.Friction),
		Restitution: constraint.CombineRestitution(sphereBody.Restitution, boxBody.Restitution),
	})
}

// collideBoxBox is the two-stage box pipeline: GJK answers whether the boxes
// overlap at all, SAT recovers the minimum translation axis and depth.
func collideBoxBox(dst []constraint.Contact, a, b uint32, bodyA, bodyB *actor.Body) []constraint.Contact {
	if !gjk.Intersects(bodyA, bodyB) {
		return dst
	}

	result, overlapping := sat.TestBoxes(
		bodyA.Position, bodyA.Orientation, bodyA.Shape.HalfExtents,
		bodyB.Position, bodyB.Orientation, bodyB.Shape.HalfExtents,
	)
	if !overlapping {
		// GJK and SAT disagree inside the epsilon band around touching
		// configurations. The pair is dropped for this substep and
		// re-examined next substep with moved geometry.
		slog.Debug("box pair overlap reported by GJK but separated by SAT", "body_a", a, "body_b", b)
		return dst
	}

	// The contact point is the midpoint of the two box centers, not a point
	// on the overlapping features.
	return append(dst, constraint.Contact{
		BodyA:       a,
		BodyB:       b,
		Normal:      result.Normal,
		Point:       bodyA.Position.Add(bodyB.Position).Mul(0.5),
		Penetration: result.Penetration,
		Friction:    constraint.CombineFriction(bodyA.Friction, bodyB.Friction),
		Restitution: constraint.CombineRestitution(bodyA.Restitution, bodyB.Restitution),
	})
}
