package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Contact результат проверки пересечения пары тел.
// Normal направлена к первому телу пары: сдвиг первого тела вдоль
// нормали на Penetration разводит тела.
type Contact struct {
	Normal      mgl32.Vec3
	Penetration float32
}

// collide проверяет пересечение динамической сферы a с произвольным телом b.
// Динамика мира целиком сферическая (игрок, снаряды), поэтому других
// комбинаций первого аргумента не бывает; вырожденная форма - ошибка
// программирования, а не условие времени выполнения.
func collide(a, b *Body) (Contact, bool) {
	sphere := a.Shape.Sphere

	switch b.Shape.Type {
	case ShapePlane:
		return collideSpherePlane(a.Position, sphere.Radius, b.Shape.Plane)
	case ShapeBox:
		return collideSphereBox(a.Position, sphere.Radius, b.Position, b.Shape.Box)
	case ShapeSphere:
		return collideSphereSphere(a.Position, sphere.Radius, b.Position, b.Shape.Sphere.Radius)
	}

	return Contact{}, false
}

// collideSpherePlane сфера против бесконечной плоскости n·p = offset
func collideSpherePlane(center mgl32.Vec3, radius float32, plane *PlaneData) (Contact, bool) {
	dist := center.Dot(plane.Normal) - plane.Offset
	pen := radius - dist
	if pen <= 0 {
		return Contact{}, false
	}
	return Contact{Normal: plane.Normal, Penetration: pen}, true
}

// collideSphereBox сфера против осевого параллелепипеда.
// Здания статичны и не повернуты, поэтому достаточно AABB-варианта.
func collideSphereBox(center mgl32.Vec3, radius float32, boxCenter mgl32.Vec3, box *BoxData) (Contact, bool) {
	rel := center.Sub(boxCenter)

	// Ближайшая точка коробки к центру сферы
	closest := mgl32.Vec3{
		clamp(rel.X(), -box.HalfExtents.X(), box.HalfExtents.X()),
		clamp(rel.Y(), -box.HalfExtents.Y(), box.HalfExtents.Y()),
		clamp(rel.Z(), -box.HalfExtents.Z(), box.HalfExtents.Z()),
	}

	delta := rel.Sub(closest)
	distSq := delta.Dot(delta)

	if distSq > radius*radius {
		return Contact{}, false
	}

	if distSq > 0 {
		dist := sqrt32(distSq)
		return Contact{
			Normal:      delta.Mul(1 / dist),
			Penetration: radius - dist,
		}, true
	}

	// Центр сферы внутри коробки: выталкиваем через ближайшую грань
	return deepestFaceContact(rel, box.HalfExtents, radius), true
}

// deepestFaceContact выбирает грань с минимальной глубиной выхода
// для центра сферы, оказавшегося внутри коробки
func deepestFaceContact(rel, half mgl32.Vec3, radius float32) Contact {
	bestPen := half.X() - abs32(rel.X())
	normal := mgl32.Vec3{sign32(rel.X()), 0, 0}

	if pen := half.Y() - abs32(rel.Y()); pen < bestPen {
		bestPen = pen
		normal = mgl32.Vec3{0, sign32(rel.Y()), 0}
	}
	if pen := half.Z() - abs32(rel.Z()); pen < bestPen {
		bestPen = pen
		normal = mgl32.Vec3{0, 0, sign32(rel.Z())}
	}

	return Contact{Normal: normal, Penetration: bestPen + radius}
}

// collideSphereSphere сфера против сферы
func collideSphereSphere(ca mgl32.Vec3, ra float32, cb mgl32.Vec3, rb float32) (Contact, bool) {
	delta := ca.Sub(cb)
	distSq := delta.Dot(delta)
	sum := ra + rb

	if distSq >= sum*sum {
		return Contact{}, false
	}

	if distSq == 0 {
		// Совпавшие центры: направление разведения произвольное
		return Contact{Normal: mgl32.Vec3{0, 1, 0}, Penetration: sum}, true
	}

	dist := sqrt32(distSq)
	return Contact{
		Normal:      delta.Mul(1 / dist),
		Penetration: sum - dist,
	}, true
}

func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func sign32(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}

func sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}
