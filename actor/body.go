package actor

import (
	"github.com/go-gl/mathgl/mgl32"
)

// BodyDef is the user-supplied template for a rigid body. Mass 0 declares a
// static body.
type BodyDef struct {
	Position        mgl32.Vec3
	Orientation     mgl32.Quat
	Velocity        mgl32.Vec3
	AngularVelocity mgl32.Vec3
	Inertia         mgl32.Mat3
	CenterOfMass    mgl32.Vec3
	Mass            float32
	Friction        float32
	Restitution     float32
	Shape           Shape
}

// DefaultBodyDef returns a static unit sphere at the origin with identity
// orientation, no motion, and middle-of-the-road material coefficients.
func DefaultBodyDef() BodyDef {
	return BodyDef{
		Orientation: mgl32.QuatIdent(),
		Inertia:     mgl32.Ident3(),
		Mass:        0,
		Friction:    0.5,
		Restitution: 0.5,
		Shape:       NewSphere(1),
	}
}

// Body is a rigid body in the simulation. The shape is immutable after
// creation; the kinematic fields mutate only inside World.Step.
//
// AngularVelocity and Inertia are carried but not integrated: the solver
// resolves translation only and orientations stay constant across steps.
type Body struct {
	Position        mgl32.Vec3
	Orientation     mgl32.Quat
	Velocity        mgl32.Vec3
	AngularVelocity mgl32.Vec3
	Inertia         mgl32.Mat3
	CenterOfMass    mgl32.Vec3
	Mass            float32
	InverseMass     float32
	Friction        float32
	Restitution     float32
	Shape           Shape
}

// NewBody derives a Body from its definition. A zero mass yields a zero
// inverse mass, which is what keeps static bodies pinned in every solver pass.
func NewBody(def BodyDef) Body {
	inverseMass := float32(0)
	if def.Mass != 0 {
		inverseMass = 1 / def.Mass
	}

	return Body{
		Position:        def.Position,
		Orientation:     def.Orientation,
		Velocity:        def.Velocity,
		AngularVelocity: def.AngularVelocity,
		Inertia:         def.Inertia,
		CenterOfMass:    def.CenterOfMass,
		Mass:            def.Mass,
		InverseMass:     inverseMass,
		Friction:        def.Friction,
		Restitution:     def.Restitution,
		Shape:           def.Shape,
	}
}

// Static reports whether the body is immovable.
func (b *Body) Static() bool {
	return b.Mass == 0
}

// SupportPoint returns the body's farthest point along a world-space
// direction.
func (b *Body) SupportPoint(direction mgl32.Vec3) mgl32.Vec3 {
	switch b.Shape.Type {
	case ShapeBox:
		return SupportBox(b.Position, b.Orientation, b.Shape.HalfExtents, direction)
	case ShapeSphere:
		return b.Position.Add(b.Shape.Support(direction))
	}

	return b.Position
}

// Center returns the body's world position.
func (b *Body) Center() mgl32.Vec3 {
	return b.Position
}
