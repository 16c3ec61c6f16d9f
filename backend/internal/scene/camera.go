package scene

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// Ограничение тангажа, чтобы взгляд не переворачивался через зенит
const maxPitch = float32(math.Pi/2) * 0.99

// Camera точка обзора от первого лица. Позицию каждый кадр зеркалирует
// контроллер игрока из тела; ориентацию задают look-события клиента,
// приходящие из горутины чтения WebSocket, поэтому доступ под мьютексом.
type Camera struct {
	mu       sync.RWMutex
	position mgl32.Vec3
	yaw      float32
	pitch    float32
}

// NewCamera создает камеру в заданной позиции, смотрящую вдоль -Z
func NewCamera(position mgl32.Vec3) *Camera {
	return &Camera{position: position}
}

// SetPosition обновляет позицию камеры
func (c *Camera) SetPosition(p mgl32.Vec3) {
	c.mu.Lock()
	c.position = p
	c.mu.Unlock()
}

// Position возвращает текущую позицию камеры
func (c *Camera) Position() mgl32.Vec3 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.position
}

// SetLook задает углы взгляда в радианах; тангаж ограничивается
func (c *Camera) SetLook(yaw, pitch float32) {
	if pitch > maxPitch {
		pitch = maxPitch
	} else if pitch < -maxPitch {
		pitch = -maxPitch
	}

	c.mu.Lock()
	c.yaw = yaw
	c.pitch = pitch
	c.mu.Unlock()
}

// Look возвращает текущие углы взгляда
func (c *Camera) Look() (yaw, pitch float32) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.yaw, c.pitch
}

// Yaw возвращает текущий угол рыскания
func (c *Camera) Yaw() float32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.yaw
}

// Forward возвращает единичный вектор направления взгляда.
// При нулевых углах камера смотрит вдоль -Z; положительный yaw
// поворачивает взгляд влево (против часовой вокруг +Y).
func (c *Camera) Forward() mgl32.Vec3 {
	yaw, pitch := c.Look()

	cy := float32(math.Cos(float64(yaw)))
	sy := float32(math.Sin(float64(yaw)))
	cp := float32(math.Cos(float64(pitch)))
	sp := float32(math.Sin(float64(pitch)))

	return mgl32.Vec3{-sy * cp, sp, -cy * cp}
}
