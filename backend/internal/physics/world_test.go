package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const dt = float32(1.0 / 60.0)

func newTestWorld() *World {
	return NewWorld(mgl32.Vec3{0, -20, 0}, 4)
}

func TestStep_GravityIntegration(t *testing.T) {
	w := newTestWorld()

	b := NewBody("ball", NewSphereShape(0.5), mgl32.Vec3{0, 100, 0}, 1)
	w.AddBody(b)

	w.Step(dt)

	if b.Velocity.Y() >= 0 {
		t.Errorf("Expected negative vertical velocity after one step, got %f", b.Velocity.Y())
	}
	if b.Position.Y() >= 100 {
		t.Errorf("Expected body to fall below start height, got %f", b.Position.Y())
	}
}

func TestStep_StaticBodyUnaffected(t *testing.T) {
	w := newTestWorld()

	b := NewBody("wall", NewBoxShape(4, 10, 4), mgl32.Vec3{0, 5, 0}, 0)
	w.AddBody(b)

	for i := 0; i < 60; i++ {
		w.Step(dt)
	}

	if b.Position != (mgl32.Vec3{0, 5, 0}) {
		t.Errorf("Static body moved to %v", b.Position)
	}
	if b.Velocity != (mgl32.Vec3{}) {
		t.Errorf("Static body gained velocity %v", b.Velocity)
	}
}

func TestStep_SphereRestsOnPlane(t *testing.T) {
	w := newTestWorld()

	ground := NewBody("ground", NewPlaneShape(mgl32.Vec3{0, 1, 0}, 0), mgl32.Vec3{}, 0)
	w.AddBody(ground)

	ball := NewBody("ball", NewSphereShape(1), mgl32.Vec3{0, 5, 0}, 2)
	w.AddBody(ball)

	// Даем сфере упасть и успокоиться
	for i := 0; i < 600; i++ {
		w.Step(dt)
	}

	if diff := ball.Position.Y() - 1; diff < -0.01 || diff > 0.2 {
		t.Errorf("Expected ball to rest at y≈1 (radius), got y=%f", ball.Position.Y())
	}
	if ball.Velocity.Y() < -0.5 {
		t.Errorf("Expected ball to stop falling, vy=%f", ball.Velocity.Y())
	}
}

func TestStep_SpherePushedOutOfBox(t *testing.T) {
	w := newTestWorld()
	w.Gravity = mgl32.Vec3{} // изолируем контакт от гравитации

	box := NewBody("box", NewBoxShape(4, 4, 4), mgl32.Vec3{0, 2, 0}, 0)
	w.AddBody(box)

	// Сфера летит в стенку коробки
	ball := NewBody("ball", NewSphereShape(0.5), mgl32.Vec3{-3.5, 2, 0}, 1)
	ball.Velocity = mgl32.Vec3{10, 0, 0}
	w.AddBody(ball)

	for i := 0; i < 30; i++ {
		w.Step(dt)
	}

	// Стенка коробки на x=-2, сфера радиуса 0.5 не может быть правее x=-2.4
	if ball.Position.X() > -2.4 {
		t.Errorf("Ball penetrated box: x=%f", ball.Position.X())
	}
	if ball.Velocity.X() > 0.01 {
		t.Errorf("Ball still moving into box: vx=%f", ball.Velocity.X())
	}
}

func TestStep_DynamicSpheresSeparate(t *testing.T) {
	w := newTestWorld()
	w.Gravity = mgl32.Vec3{}

	a := NewBody("a", NewSphereShape(1), mgl32.Vec3{-0.5, 0, 0}, 1)
	b := NewBody("b", NewSphereShape(1), mgl32.Vec3{0.5, 0, 0}, 1)
	w.AddBody(a)
	w.AddBody(b)

	w.Step(dt)

	dist := a.Position.Sub(b.Position).Len()
	if dist < 1.9 {
		t.Errorf("Expected spheres to be pushed apart, distance=%f", dist)
	}
}

func TestRemoveBody_Immediate(t *testing.T) {
	w := newTestWorld()
	w.AddBody(NewBody("a", NewSphereShape(1), mgl32.Vec3{}, 1))

	w.RemoveBody("a")

	if _, ok := w.Body("a"); ok {
		t.Error("Expected body to be removed")
	}
	if w.Len() != 0 {
		t.Errorf("Expected empty world, got %d bodies", w.Len())
	}
}

func TestRemoveBody_DeferredDuringStep(t *testing.T) {
	w := newTestWorld()

	a := NewBody("a", NewSphereShape(1), mgl32.Vec3{0, 10, 0}, 1)
	w.AddBody(a)
	w.AddBody(NewBody("b", NewSphereShape(1), mgl32.Vec3{10, 10, 0}, 1))

	// Удаление из середины шага должно откладываться до его конца
	w.inStep = true
	w.RemoveBody("a")

	if _, ok := w.Body("a"); !ok {
		t.Fatal("Body must remain until the step completes")
	}

	w.inStep = false
	w.Step(dt)

	if _, ok := w.Body("a"); ok {
		t.Error("Deferred removal was not applied after step")
	}
	if w.Len() != 1 {
		t.Errorf("Expected 1 body after sweep, got %d", w.Len())
	}
}

func TestStep_LinearDamping(t *testing.T) {
	w := newTestWorld()
	w.Gravity = mgl32.Vec3{}
	w.LinearDamping = 0.5

	b := NewBody("ball", NewSphereShape(1), mgl32.Vec3{0, 50, 0}, 1)
	b.Velocity = mgl32.Vec3{10, 0, 0}
	w.AddBody(b)

	w.Step(dt)

	if b.Velocity.X() >= 10 {
		t.Errorf("Expected damping to slow body, vx=%f", b.Velocity.X())
	}
}
