package game

import (
	"time"

	"x-city/backend/internal/physics"
	"x-city/backend/internal/player"
	"x-city/backend/internal/projectile"
	"x-city/backend/internal/scene"
	"x-city/backend/internal/telemetry"
)

// Приоритеты кадровых систем: шаг физики -> игрок -> синхронизация
// привязок -> снаряды -> трансляция кадра клиенту -> телеметрия
const (
	PriorityPhysics     = 10
	PriorityPlayer      = 20
	PriorityBindingSync = 30
	PriorityProjectiles = 40
	PriorityStream      = 50
	PriorityTelemetry   = 60
)

// PhysicsSystem продвигает мир фиксированным шагом
type PhysicsSystem struct {
	world *physics.World
	dt    float32
}

// NewPhysicsSystem создает систему шага физики с постоянным dt
func NewPhysicsSystem(world *physics.World, dt float32) *PhysicsSystem {
	return &PhysicsSystem{world: world, dt: dt}
}

// Update выполняет шаг симуляции. Реальная длительность кадра
// игнорируется: шаг всегда постоянный, дрейф таймера кадра не
// компенсируется и подшагов нет.
func (s *PhysicsSystem) Update(time.Duration) error {
	s.world.Step(s.dt)
	return nil
}

func (s *PhysicsSystem) GetName() string  { return "PhysicsSystem" }
func (s *PhysicsSystem) GetPriority() int { return PriorityPhysics }

// PlayerSystem применяет ввод игрока и зеркалирует тело в камеру
type PlayerSystem struct {
	controller *player.Controller
}

// NewPlayerSystem создает систему контроллера игрока
func NewPlayerSystem(controller *player.Controller) *PlayerSystem {
	return &PlayerSystem{controller: controller}
}

func (s *PlayerSystem) Update(time.Duration) error {
	s.controller.Update()
	return nil
}

func (s *PlayerSystem) GetName() string  { return "PlayerSystem" }
func (s *PlayerSystem) GetPriority() int { return PriorityPlayer }

// BindingSyncSystem копирует трансформации тел в привязанные прокси
type BindingSyncSystem struct {
	bindings *scene.Bindings
}

// NewBindingSyncSystem создает систему синхронизации привязок
func NewBindingSyncSystem(bindings *scene.Bindings) *BindingSyncSystem {
	return &BindingSyncSystem{bindings: bindings}
}

func (s *BindingSyncSystem) Update(time.Duration) error {
	s.bindings.SyncAll()
	return nil
}

func (s *BindingSyncSystem) GetName() string  { return "BindingSyncSystem" }
func (s *BindingSyncSystem) GetPriority() int { return PriorityBindingSync }

// ProjectileSystem создает снаряды из очереди выстрелов и удаляет улетевшие
type ProjectileSystem struct {
	manager *projectile.Manager
}

// NewProjectileSystem создает систему снарядов
func NewProjectileSystem(manager *projectile.Manager) *ProjectileSystem {
	return &ProjectileSystem{manager: manager}
}

func (s *ProjectileSystem) Update(time.Duration) error {
	s.manager.Update()
	return nil
}

func (s *ProjectileSystem) GetName() string  { return "ProjectileSystem" }
func (s *ProjectileSystem) GetPriority() int { return PriorityProjectiles }

// TelemetrySystem пишет покадровую телеметрию динамических тел.
// Регистрируется только при включенной отладочной телеметрии и
// выполняется последней, по итогам кадра.
type TelemetrySystem struct {
	recorder *telemetry.Recorder
	world    *physics.World
}

// NewTelemetrySystem создает систему записи телеметрии
func NewTelemetrySystem(recorder *telemetry.Recorder, world *physics.World) *TelemetrySystem {
	return &TelemetrySystem{recorder: recorder, world: world}
}

func (s *TelemetrySystem) Update(time.Duration) error {
	s.recorder.RecordFrame(s.world)
	return nil
}

func (s *TelemetrySystem) GetName() string  { return "TelemetrySystem" }
func (s *TelemetrySystem) GetPriority() int { return PriorityTelemetry }
