package actor

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ShapeType represents the type of collision shape
type ShapeType int

const (
	ShapeSphere ShapeType = iota
	ShapeBox
	// ShapeLine is visual only; the contact generator never collides it.
	ShapeLine
)

// Shape is a tagged union of the supported collision shapes. Only the fields
// of the active variant are meaningful: Radius for spheres, HalfExtents for
// boxes, P1/P2 for lines. A box is oriented by the owning body's quaternion.
type Shape struct {
	Type        ShapeType
	Radius      float32
	HalfExtents mgl32.Vec3
	P1, P2      mgl32.Vec3
}

// NewSphere creates a sphere shape with the given radius.
func NewSphere(radius float32) Shape {
	return Shape{Type: ShapeSphere, Radius: radius}
}

// NewBox creates an oriented box shape. The box size is given by the
// half-extents so that the actual size is w=2*hx, h=2*hy, d=2*hz.
func NewBox(halfExtents mgl32.Vec3) Shape {
	return Shape{Type: ShapeBox, HalfExtents: halfExtents}
}

// NewLine creates a line segment between two points. Lines are rendered but
// never participate in collision detection.
func NewLine(p1, p2 mgl32.Vec3) Shape {
	return Shape{Type: ShapeLine, P1: p1, P2: p2}
}

// Support returns the point of the shape farthest along direction, in the
// shape's local frame. The sign of a zero component is treated as positive.
func (s Shape) Support(direction mgl32.Vec3) mgl32.Vec3 {
	switch s.Type {
	case ShapeBox:
		hx, hy, hz := s.HalfExtents.X(), s.HalfExtents.Y(), s.HalfExtents.Z()

		if direction.X() < 0 {
			hx = -hx
		}
		if direction.Y() < 0 {
			hy = -hy
		}
		if direction.Z() < 0 {
			hz = -hz
		}

		return mgl32.Vec3{hx, hy, hz}
	case ShapeSphere:
		return direction.Normalize().Mul(s.Radius)
	}

	return mgl32.Vec3{}
}

// SupportBox returns the vertex of an oriented box farthest along a
// world-space direction. The box is centered at center and oriented by
// orientation.
func SupportBox(center mgl32.Vec3, orientation mgl32.Quat, halfExtents mgl32.Vec3, direction mgl32.Vec3) mgl32.Vec3 {
	localDirection := orientation.Inverse().Rotate(direction)
	localSupport := Shape{Type: ShapeBox, HalfExtents: halfExtents}.Support(localDirection)

	return center.Add(orientation.Rotate(localSupport))
}

// ClosestPointOnBox returns the point of an oriented box closest to a
// world-space point. The query point is carried into the box's local frame,
// clamped to the extents, and carried back.
func ClosestPointOnBox(point, center mgl32.Vec3, orientation mgl32.Quat, halfExtents mgl32.Vec3) mgl32.Vec3 {
	local := orientation.Inverse().Rotate(point.Sub(center))

	clamped := mgl32.Vec3{
		clamp(local.X(), -halfExtents.X(), halfExtents.X()),
		clamp(local.Y(), -halfExtents.Y(), halfExtents.Y()),
		clamp(local.Z(), -halfExtents.Z(), halfExtents.Z()),
	}

	return center.Add(orientation.Rotate(clamped))
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
