package physics

import (
	"github.com/go-gl/mathgl/mgl32"
)

// World владеет всеми телами симуляции и продвигает её фиксированным шагом.
// Все мутации происходят из одной горутины игрового цикла; мир сам
// синхронизацию не выполняет.
type World struct {
	Gravity       mgl32.Vec3
	Iterations    int
	LinearDamping float32

	bodies  map[string]*Body
	pending []string // отложенные удаления во время шага
	inStep  bool
}

// NewWorld создает мир с заданной гравитацией и числом итераций солвера
func NewWorld(gravity mgl32.Vec3, iterations int) *World {
	if iterations < 1 {
		iterations = 1
	}
	return &World{
		Gravity:    gravity,
		Iterations: iterations,
		bodies:     make(map[string]*Body),
	}
}

// AddBody регистрирует тело в мире. Повторная регистрация того же ID
// перезаписывает тело.
func (w *World) AddBody(b *Body) {
	w.bodies[b.ID] = b
}

// RemoveBody удаляет тело. Во время шага удаление откладывается и
// применяется после завершения итерации по телам.
func (w *World) RemoveBody(id string) {
	if w.inStep {
		w.pending = append(w.pending, id)
		return
	}
	delete(w.bodies, id)
}

// Body возвращает тело по идентификатору
func (w *World) Body(id string) (*Body, bool) {
	b, ok := w.bodies[id]
	return b, ok
}

// Bodies возвращает снимок списка тел
func (w *World) Bodies() []*Body {
	out := make([]*Body, 0, len(w.bodies))
	for _, b := range w.bodies {
		out = append(out, b)
	}
	return out
}

// Len возвращает количество тел в мире
func (w *World) Len() int {
	return len(w.bodies)
}

// Step продвигает симуляцию на фиксированное время dt: интегрирует
// скорости и позиции динамических тел, затем разрешает контакты.
// Вызывается не чаще одного раза за кадр с постоянным dt; остаток
// реального времени кадра не накапливается и не компенсируется.
func (w *World) Step(dt float32) {
	w.inStep = true

	// Интеграция скоростей
	for _, b := range w.bodies {
		if b.Static() {
			continue
		}
		b.Velocity = b.Velocity.Add(w.Gravity.Mul(dt))
		if w.LinearDamping > 0 {
			b.Velocity = b.Velocity.Mul(1 - w.LinearDamping*dt)
		}
	}

	// Интеграция позиций
	for _, b := range w.bodies {
		if b.Static() {
			continue
		}
		b.Position = b.Position.Add(b.Velocity.Mul(dt))
	}

	// Разрешение контактов
	for i := 0; i < w.Iterations; i++ {
		w.resolveContacts()
	}

	w.inStep = false
	w.sweep()
}

// resolveContacts один проход разрешения всех контактов динамических сфер
func (w *World) resolveContacts() {
	for _, a := range w.bodies {
		if a.Static() || a.Shape.Type != ShapeSphere {
			continue
		}
		for _, b := range w.bodies {
			if a == b {
				continue
			}
			// Динамическую пару обрабатываем один раз
			if !b.Static() && a.ID > b.ID {
				continue
			}
			contact, ok := collide(a, b)
			if !ok {
				continue
			}
			resolveContact(a, b, contact)
		}
	}
}

// resolveContact выталкивает тела из пересечения и гасит сближающую
// составляющую скорости импульсом с учетом отскока
func resolveContact(a, b *Body, c Contact) {
	invSum := a.invMass + b.invMass
	if invSum == 0 {
		return
	}

	// Позиционная коррекция пропорционально обратным массам
	correction := c.Normal.Mul(c.Penetration / invSum)
	a.Position = a.Position.Add(correction.Mul(a.invMass))
	b.Position = b.Position.Sub(correction.Mul(b.invMass))

	// Относительная скорость вдоль нормали: положительная - тела расходятся
	relVel := a.Velocity.Sub(b.Velocity)
	vn := relVel.Dot(c.Normal)
	if vn >= 0 {
		return
	}

	restitution := a.Restitution
	if b.Restitution > restitution {
		restitution = b.Restitution
	}

	j := -(1 + restitution) * vn / invSum
	impulse := c.Normal.Mul(j)
	a.Velocity = a.Velocity.Add(impulse.Mul(a.invMass))
	b.Velocity = b.Velocity.Sub(impulse.Mul(b.invMass))
}

// sweep применяет отложенные удаления
func (w *World) sweep() {
	if len(w.pending) == 0 {
		return
	}
	for _, id := range w.pending {
		delete(w.bodies, id)
	}
	w.pending = w.pending[:0]
}
