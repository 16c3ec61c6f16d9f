package physics

import "github.com/go-gl/mathgl/mgl32"

// ShapeType тип коллизионной формы тела
type ShapeType int

const (
	ShapeSphere ShapeType = iota
	ShapeBox
	ShapePlane
)

// SphereData параметры сферической формы
type SphereData struct {
	Radius float32
}

// BoxData параметры формы-параллелепипеда. Храним полуразмеры:
// все проверки контактов работают с ними напрямую.
type BoxData struct {
	HalfExtents mgl32.Vec3
}

// PlaneData параметры бесконечной плоскости: n·p = Offset
type PlaneData struct {
	Normal mgl32.Vec3
	Offset float32
}

// Shape дескриптор формы тела. Заполнено ровно одно поле,
// соответствующее Type.
type Shape struct {
	Type   ShapeType
	Sphere *SphereData
	Box    *BoxData
	Plane  *PlaneData
}

// NewSphereShape создает сферическую форму
func NewSphereShape(radius float32) Shape {
	return Shape{Type: ShapeSphere, Sphere: &SphereData{Radius: radius}}
}

// NewBoxShape создает форму-параллелепипед по полным размерам
func NewBoxShape(width, height, depth float32) Shape {
	return Shape{Type: ShapeBox, Box: &BoxData{
		HalfExtents: mgl32.Vec3{width / 2, height / 2, depth / 2},
	}}
}

// NewPlaneShape создает бесконечную плоскость n·p = offset
func NewPlaneShape(normal mgl32.Vec3, offset float32) Shape {
	return Shape{Type: ShapePlane, Plane: &PlaneData{
		Normal: normal.Normalize(),
		Offset: offset,
	}}
}

// Body твердое тело симуляции. Телами владеет исключительно World;
// позицию и ориентацию меняет только шаг физики. Скорость игрока и
// начальную скорость снаряда внешний код записывает до шага.
type Body struct {
	ID       string
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Velocity mgl32.Vec3

	// Масса тела: 0 означает статическое неподвижное тело
	Mass    float32
	invMass float32

	Shape Shape

	// Коэффициент отскока при контакте
	Restitution float32

	// Запрет вращения: тело игрока не должно опрокидываться.
	// Солвер не моделирует угловую динамику, поэтому сейчас флаг
	// ни на что не влияет.
	LockRotation bool
}

// NewBody создает тело с единичной ориентацией и нулевой скоростью
func NewBody(id string, shape Shape, position mgl32.Vec3, mass float32) *Body {
	b := &Body{
		ID:       id,
		Position: position,
		Rotation: mgl32.QuatIdent(),
		Mass:     mass,
		Shape:    shape,
	}
	if mass > 0 {
		b.invMass = 1 / mass
	}
	return b
}

// Static сообщает, является ли тело неподвижным
func (b *Body) Static() bool {
	return b.Mass == 0
}
