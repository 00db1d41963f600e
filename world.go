// Package ballast is a fixed-timestep 3D rigid-body physics engine for
// translating spheres and oriented boxes.
//
// A World owns an append-only array of bodies. Each Step subdivides the
// timestep, and every substep runs the same pipeline: integrate gravity into
// velocities, generate contacts for all overlapping pairs, resolve the
// contacts with iterative impulses, integrate positions, and project the
// remaining penetration out. Orientations are carried for the shapes but
// never changed by the solver; the simulation is translation-only.
package ballast

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/akmonengine/ballast/actor"
	"github.com/akmonengine/ballast/constraint"
)

// World is the simulation container. It is not safe for concurrent use:
// Step runs to completion on the calling goroutine and mutates all bodies.
type World struct {
	// Bodies holds every created body, indexed by the ids CreateBody
	// returned. It stays readable between steps for rendering; do not hold
	// pointers into it across CreateBody calls, the backing array may move.
	Bodies []actor.Body
	// Gravity is the constant acceleration applied to every dynamic body.
	Gravity mgl32.Vec3

	// contacts is reused across substeps and position iterations so the
	// substep loop itself never allocates.
	contacts []constraint.Contact
	events   Events
}

// NewWorld creates an empty world with standard earth gravity.
func NewWorld() *World {
	return NewWorldWithGravity(mgl32.Vec3{0, -9.81, 0})
}

// NewWorldWithGravity creates an empty world with the given gravity vector.
func NewWorldWithGravity(gravity mgl32.Vec3) *World {
	return &World{
		Gravity: gravity,
		events:  NewEvents(),
	}
}

// NewWorldFromConfig creates an empty world from a loaded configuration.
func NewWorldFromConfig(cfg WorldConfig) *World {
	return NewWorldWithGravity(mgl32.Vec3{cfg.Gravity[0], cfg.Gravity[1], cfg.Gravity[2]})
}

// Events exposes the world's contact event registry.
func (w *World) Events() *Events {
	return &w.events
}

// CreateBody appends a body built from def and returns its id. Ids are array
// indices and stay valid for the world's lifetime.
func (w *World) CreateBody(def actor.BodyDef) uint32 {
	w.Bodies = append(w.Bodies, actor.NewBody(def))
	return uint32(len(w.Bodies) - 1)
}

// Step advances the simulation by timestep seconds, split into the given
// number of substeps. substeps must be positive; passing 0 is a programmer
// error and panics.
//
// Given identical inputs the resulting body states are bit-reproducible:
// contacts are always solved in ascending pair order.
func (w *World) Step(timestep float32, substeps uint16) {
	if substeps == 0 {
		panic("ballast: Step needs at least one substep")
	}

	w.reserveContacts()

	h := timestep / float32(substeps)
	for s := uint16(0); s < substeps; s++ {
		w.integrateVelocities(h)

		w.contacts = GenerateContacts(w.Bodies, w.contacts[:0])
		w.events.record(w.contacts)

		constraint.SolveVelocities(w.Bodies, w.contacts, h)

		w.integratePositions(h)
	}

	w.events.flush()
}

// reserveContacts grows the contact buffer to the worst case of one contact
// per unordered pair, so the substep loop never allocates.
func (w *World) reserveContacts() {
	n := len(w.Bodies)
	want := n * (n - 1) / 2
	if cap(w.contacts) < want {
		w.contacts = make([]constraint.Contact, 0, want)
	}
}

func (w *World) integrateVelocities(h float32) {
	for i := range w.Bodies {
		body := &w.Bodies[i]
		if body.Static() {
			continue
		}
		body.Velocity = body.Velocity.Add(w.Gravity.Mul(h))
	}
}

// integratePositions commits velocities to positions, then runs the
// projection rounds. Contacts are regenerated before every round so each
// projection works on the geometry the previous one produced.
func (w *World) integratePositions(h float32) {
	for i := range w.Bodies {
		body := &w.Bodies[i]
		if body.Static() {
			continue
		}
		body.Position = body.Position.Add(body.Velocity.Mul(h))
	}

	for iter := 0; iter < constraint.PositionIterations; iter++ {
		w.contacts = GenerateContacts(w.Bodies, w.contacts[:0])
		constraint.SolvePositions(w.Bodies, w.contacts)
	}
}
