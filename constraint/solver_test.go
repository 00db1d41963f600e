package constraint

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/akmonengine/ballast/actor"
)

func dynamicSphere(position, velocity mgl32.Vec3, restitution, friction float32) actor.Body {
	def := actor.DefaultBodyDef()
	def.Position = position
	def.Velocity = velocity
	def.Mass = 1
	def.Restitution = restitution
	def.Friction = friction
	def.Shape = actor.NewSphere(1)
	return actor.NewBody(def)
}

func staticBox(position mgl32.Vec3, halfExtents mgl32.Vec3) actor.Body {
	def := actor.DefaultBodyDef()
	def.Position = position
	def.Shape = actor.NewBox(halfExtents)
	return actor.NewBody(def)
}

func TestSolveVelocitiesElasticReversal(t *testing.T) {
	bodies := []actor.Body{
		dynamicSphere(mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{1, 0, 0}, 1, 0),
		dynamicSphere(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{-1, 0, 0}, 1, 0),
	}
	contacts := []Contact{{
		BodyA:       0,
		BodyB:       1,
		Normal:      mgl32.Vec3{1, 0, 0},
		Restitution: 1,
	}}

	SolveVelocities(bodies, contacts, 1.0/240)

	if math.Abs(float64(bodies[0].Velocity.X()+1)) > 1e-5 {
		t.Errorf("body A velocity = %v, want -1", bodies[0].Velocity.X())
	}
	if math.Abs(float64(bodies[1].Velocity.X()-1)) > 1e-5 {
		t.Errorf("body B velocity = %v, want +1", bodies[1].Velocity.X())
	}
}

func TestSolveVelocitiesStaticBodyUnmoved(t *testing.T) {
	bodies := []actor.Body{
		staticBox(mgl32.Vec3{0, -0.5, 0}, mgl32.Vec3{5, 0.5, 5}),
		dynamicSphere(mgl32.Vec3{0, 0.45, 0}, mgl32.Vec3{0, -2, 0}, 0, 0),
	}
	contacts := []Contact{{
		BodyA:       0,
		BodyB:       1,
		Normal:      mgl32.Vec3{0, 1, 0},
		Penetration: 0.05,
	}}

	SolveVelocities(bodies, contacts, 1.0/240)

	if bodies[0].Velocity != (mgl32.Vec3{}) {
		t.Errorf("static body velocity = %v, want zero", bodies[0].Velocity)
	}
	if bodies[1].Velocity.Y() < -2 {
		t.Errorf("dynamic body velocity = %v, should not gain downward speed", bodies[1].Velocity.Y())
	}
}

func TestSolveVelocitiesNoEnergyInjection(t *testing.T) {
	// Zero restitution, zero friction, head-on: the impulse may remove
	// kinetic energy but never add it.
	bodies := []actor.Body{
		dynamicSphere(mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0.5, 0, 0}, 0, 0),
		dynamicSphere(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{-0.5, 0, 0}, 0, 0),
	}
	contacts := []Contact{{
		BodyA:  0,
		BodyB:  1,
		Normal: mgl32.Vec3{1, 0, 0},
	}}

	before := bodies[0].Velocity.LenSqr() + bodies[1].Velocity.LenSqr()
	SolveVelocities(bodies, contacts, 0)
	after := bodies[0].Velocity.LenSqr() + bodies[1].Velocity.LenSqr()

	if after > before+1e-6 {
		t.Errorf("kinetic energy grew from %v to %v", before, after)
	}
}

func TestSolveVelocitiesSkipsSeparatingContact(t *testing.T) {
	bodies := []actor.Body{
		dynamicSphere(mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{-1, 0, 0}, 0.5, 0.5),
		dynamicSphere(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{1, 0, 0}, 0.5, 0.5),
	}
	contacts := []Contact{{
		BodyA:  0,
		BodyB:  1,
		Normal: mgl32.Vec3{1, 0, 0},
	}}

	SolveVelocities(bodies, contacts, 1.0/240)

	if bodies[0].Velocity != (mgl32.Vec3{-1, 0, 0}) || bodies[1].Velocity != (mgl32.Vec3{1, 0, 0}) {
		t.Errorf("separating bodies received an impulse: %v %v", bodies[0].Velocity, bodies[1].Velocity)
	}
}

func TestSolveVelocitiesFrictionCone(t *testing.T) {
	// A body sliding across a static floor while pressing into it. The
	// tangential impulse is capped at mu times the normal impulse.
	bodies := []actor.Body{
		staticBox(mgl32.Vec3{0, -0.5, 0}, mgl32.Vec3{5, 0.5, 5}),
		dynamicSphere(mgl32.Vec3{0, 0.5, 0}, mgl32.Vec3{1, -1, 0}, 0, 0.5),
	}
	contacts := []Contact{{
		BodyA:    0,
		BodyB:    1,
		Normal:   mgl32.Vec3{0, 1, 0},
		Friction: 0.5,
	}}

	SolveVelocities(bodies, contacts, 0)

	// Normal impulse of 1 cancels the downward speed; friction removes at
	// most 0.5 of the sliding speed in the first sweep and nothing after.
	if math.Abs(float64(bodies[1].Velocity.Y())) > 1e-5 {
		t.Errorf("downward speed = %v, want 0", bodies[1].Velocity.Y())
	}
	if math.Abs(float64(bodies[1].Velocity.X())-0.5) > 1e-5 {
		t.Errorf("sliding speed = %v, want 0.5", bodies[1].Velocity.X())
	}
}

func TestSolvePositionsProjection(t *testing.T) {
	bodies := []actor.Body{
		staticBox(mgl32.Vec3{0, -0.5, 0}, mgl32.Vec3{5, 0.5, 5}),
		dynamicSphere(mgl32.Vec3{0, 0.395, 0}, mgl32.Vec3{}, 0, 0),
	}
	contacts := []Contact{{
		BodyA:       0,
		BodyB:       1,
		Normal:      mgl32.Vec3{0, 1, 0},
		Penetration: 0.105,
	}}

	before := bodies[1].Position
	SolvePositions(bodies, contacts)

	// 20% of the penetration beyond the 5mm slop: 0.2 * 0.1 = 0.02.
	if math.Abs(float64(bodies[1].Position.Y()-before.Y())-0.02) > 1e-6 {
		t.Errorf("projected by %v, want 0.02", bodies[1].Position.Y()-before.Y())
	}
	if bodies[0].Position != (mgl32.Vec3{0, -0.5, 0}) {
		t.Errorf("static body moved to %v", bodies[0].Position)
	}
}

func TestSolvePositionsBelowSlopIsNoop(t *testing.T) {
	bodies := []actor.Body{
		dynamicSphere(mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{}, 0, 0),
		dynamicSphere(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{}, 0, 0),
	}
	contacts := []Contact{{
		BodyA:       0,
		BodyB:       1,
		Normal:      mgl32.Vec3{1, 0, 0},
		Penetration: 0.004,
	}}

	SolvePositions(bodies, contacts)

	if bodies[0].Position != (mgl32.Vec3{-1, 0, 0}) || bodies[1].Position != (mgl32.Vec3{1, 0, 0}) {
		t.Error("penetration below slop should not move bodies")
	}
}

func TestCombineFriction(t *testing.T) {
	if got := CombineFriction(0.5, 0.5); math.Abs(float64(got)-0.5) > 1e-6 {
		t.Errorf("CombineFriction(0.5, 0.5) = %v, want 0.5", got)
	}
	if got := CombineFriction(-1, 0.5); got != 0 {
		t.Errorf("negative friction should clamp to zero, got %v", got)
	}
}

func TestCombineRestitution(t *testing.T) {
	if got := CombineRestitution(0.2, 0.9); got != 0.9 {
		t.Errorf("CombineRestitution = %v, want 0.9", got)
	}
}
