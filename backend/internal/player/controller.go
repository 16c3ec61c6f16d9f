package player

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"x-city/backend/internal/physics"
	"x-city/backend/internal/scene"
)

// Direction именованное направление движения
type Direction int

const (
	DirForward Direction = iota
	DirBack
	DirLeft
	DirRight

	directionCount
)

// ParseDirection переводит строку протокола в направление
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "forward":
		return DirForward, true
	case "back":
		return DirBack, true
	case "left":
		return DirLeft, true
	case "right":
		return DirRight, true
	}
	return 0, false
}

// Controller переводит состояние клавиш движения в горизонтальную
// скорость тела игрока и зеркалирует позицию тела в камеру.
// Флаги клавиш пишет горутина чтения WebSocket, читает игровой цикл,
// поэтому они под мьютексом; к телу контроллер обращается только из
// игрового цикла.
type Controller struct {
	mu   sync.Mutex
	held [directionCount]bool

	body   *physics.Body
	camera *scene.Camera
	speed  float32
}

// NewController создает контроллер для тела игрока
func NewController(body *physics.Body, camera *scene.Camera, speed float32) *Controller {
	return &Controller{
		body:   body,
		camera: camera,
		speed:  speed,
	}
}

// SetHeld обновляет состояние одной клавиши движения
func (c *Controller) SetHeld(dir Direction, pressed bool) {
	c.mu.Lock()
	c.held[dir] = pressed
	c.mu.Unlock()
}

// Body возвращает тело игрока
func (c *Controller) Body() *physics.Body {
	return c.body
}

// MoveDirection строит единичный горизонтальный вектор движения до
// поворота на угол камеры. Противоположные клавиши взаимно гасятся;
// нормализация гарантирует, что диагональ не быстрее осевого движения.
func (c *Controller) MoveDirection() mgl32.Vec3 {
	c.mu.Lock()
	held := c.held
	c.mu.Unlock()

	var dir mgl32.Vec3
	if held[DirLeft] {
		dir[0] -= 1
	}
	if held[DirRight] {
		dir[0] += 1
	}
	if held[DirForward] {
		dir[2] -= 1
	}
	if held[DirBack] {
		dir[2] += 1
	}

	if dir.Len() == 0 {
		return mgl32.Vec3{}
	}
	return dir.Normalize()
}

// Update записывает горизонтальную скорость тела по текущим клавишам и
// углу рыскания камеры, сохраняя вертикальную составляющую (ей управляет
// гравитация), и копирует позицию тела после шага физики в камеру.
func (c *Controller) Update() {
	dir := c.MoveDirection()
	yaw := c.camera.Yaw()

	// Поворот вокруг +Y на угол рыскания: движение всегда относительно
	// направления взгляда
	cy := float32(math.Cos(float64(yaw)))
	sy := float32(math.Sin(float64(yaw)))
	rx := dir.X()*cy + dir.Z()*sy
	rz := -dir.X()*sy + dir.Z()*cy

	c.body.Velocity = mgl32.Vec3{
		rx * c.speed,
		c.body.Velocity.Y(),
		rz * c.speed,
	}

	c.camera.SetPosition(c.body.Position)
}
