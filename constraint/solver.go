package constraint

import (
	"github.com/akmonengine/ballast/actor"
)

const (
	// VelocityIterations is the Gauss-Seidel sweep count of the velocity pass.
	VelocityIterations = 12
	// PositionIterations is how many regenerate-and-project rounds the world
	// runs after integrating positions.
	PositionIterations = 10

	// baumgarte converts residual penetration into a velocity bias.
	baumgarte = 0.3
	// velocitySlop is the penetration ignored by the velocity pass.
	velocitySlop = 0.003
	// restitutionThreshold is the closing speed below which restitution is
	// dropped, so resting contacts do not vibrate.
	restitutionThreshold = -0.5

	// positionCorrection is the fraction of penetration removed per
	// projection round.
	positionCorrection = 0.2
	// positionSlop is the penetration ignored by the projection pass.
	positionSlop = 0.005
)

// SolveVelocities applies normal and tangential impulses for every contact,
// sweeping the whole contact list VelocityIterations times in generation
// order. Each contact reads velocities already updated by the contacts
// before it in the same sweep.
func SolveVelocities(bodies []actor.Body, contacts []Contact, dt float32) {
	for iter := 0; iter < VelocityIterations; iter++ {
		for i := range contacts {
			solveContactVelocity(bodies, &contacts[i], dt)
		}
	}
}

func solveContactVelocity(bodies []actor.Body, c *Contact, dt float32) {
	bodyA := &bodies[c.BodyA]
	bodyB := &bodies[c.BodyB]

	invMassSum := bodyA.InverseMass + bodyB.InverseMass
	if invMassSum == 0 {
		return
	}

	normal := c.Normal.Normalize()
	relativeVel := bodyB.Velocity.Sub(bodyA.Velocity)
	normalVel := relativeVel.Dot(normal)

	penetration := max(c.Penetration-velocitySlop, 0)
	if normalVel > 0 && penetration <= 0 {
		return // separating and clear of the surface
	}

	// Restitution only kicks in above a small closing speed; anything
	// slower is treated as a resting contact.
	restitution := float32(0)
	if normalVel < restitutionThreshold {
		restitution = c.Restitution
	}

	bias := float32(0)
	if dt > 0 {
		bias = baumgarte * penetration / dt
	}

	jn := (-(1+restitution)*normalVel - bias) / invMassSum
	if jn < 0 {
		jn = 0
	}

	bodyA.Velocity = bodyA.Velocity.Sub(normal.Mul(jn * bodyA.InverseMass))
	bodyB.Velocity = bodyB.Velocity.Add(normal.Mul(jn * bodyB.InverseMass))

	// Friction sees the velocities left after the normal impulse. The
	// Coulomb clamp uses this iteration's clamped jn, restitution included.
	relativeVel = bodyB.Velocity.Sub(bodyA.Velocity)
	tangent := relativeVel.Sub(normal.Mul(relativeVel.Dot(normal)))
	if tangent.LenSqr() <= 1e-12 {
		return
	}
	tangent = tangent.Normalize()

	jt := -relativeVel.Dot(tangent) / invMassSum
	maxFriction := c.Friction * jn
	jt = clampScalar(jt, -maxFriction, maxFriction)

	bodyA.Velocity = bodyA.Velocity.Sub(tangent.Mul(jt * bodyA.InverseMass))
	bodyB.Velocity = bodyB.Velocity.Add(tangent.Mul(jt * bodyB.InverseMass))
}

// SolvePositions runs one projection round: every contact shifts its bodies
// apart along the contact normal by a gentle fraction of the remaining
// penetration, weighted by inverse mass. The caller regenerates contacts
// between rounds so each round sees the moved geometry.
func SolvePositions(bodies []actor.Body, contacts []Contact) {
	for i := range contacts {
		c := &contacts[i]
		bodyA := &bodies[c.BodyA]
		bodyB := &bodies[c.BodyB]

		invMassSum := bodyA.InverseMass + bodyB.InverseMass
		if invMassSum == 0 {
			continue
		}

		magnitude := positionCorrection * max(c.Penetration-positionSlop, 0) / invMassSum
		correction := c.Normal.Mul(magnitude)

		bodyA.Position = bodyA.Position.Sub(correction.Mul(bodyA.InverseMass))
		bodyB.Position = bodyB.Position.Add(correction.Mul(bodyB.InverseMass))
	}
}

func clampScalar(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
