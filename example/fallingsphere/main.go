// Command fallingsphere drops a ball onto a static slab and logs where it
// settles. It exercises the public API without any renderer.
package main

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/akmonengine/ballast"
	"github.com/akmonengine/ballast/actor"
)

func main() {
	world := ballast.NewWorld()

	ground := actor.DefaultBodyDef()
	ground.Position = mgl32.Vec3{0, -0.5, 0}
	ground.Shape = actor.NewBox(mgl32.Vec3{5, 0.5, 5})
	world.CreateBody(ground)

	ball := actor.DefaultBodyDef()
	ball.Position = mgl32.Vec3{0, 3, 0}
	ball.Mass = 1
	ball.Shape = actor.NewSphere(0.5)
	ballID := world.CreateBody(ball)

	world.Events().Subscribe(ballast.ContactEnter, func(event ballast.Event) {
		e := event.(ballast.ContactEnterEvent)
		slog.Info("contact enter", "body_a", e.BodyA, "body_b", e.BodyB)
	})

	for i := 0; i < 180; i++ {
		world.Step(1.0/60.0, 4)
	}

	slog.Info("settled", "height", world.Bodies[ballID].Position.Y())
}
