package game

import (
	"log"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"

	"x-city/backend/internal/assets"
	"x-city/backend/internal/city"
	"x-city/backend/internal/config"
	"x-city/backend/internal/physics"
	"x-city/backend/internal/player"
	"x-city/backend/internal/projectile"
	"x-city/backend/internal/scene"
	"x-city/backend/internal/telemetry"
)

// Идентификаторы постоянных сущностей сеанса
const (
	GroundID = "ground"
	PlayerID = "player"
)

// Session контекст одного игрового сеанса: физический мир, сцена,
// таблица привязок, игрок и менеджер снарядов. Все изменяемое состояние
// ядра живет здесь и мутируется только из кадрового цикла сеанса;
// глобальных синглтонов нет.
type Session struct {
	Config config.Config

	World       *physics.World
	Scene       *scene.Scene
	Bindings    *scene.Bindings
	Camera      *scene.Camera
	Player      *player.Controller
	Projectiles *projectile.Manager
	Ticker      *GameTicker
	Telemetry   *telemetry.Recorder // nil, если телеметрия выключена

	BuildingCount int

	logger *log.Logger
}

// NewSession собирает сеанс: землю, город, игрока, снаряды и кадровый
// цикл с системами в фиксированном порядке. Город генерируется один раз
// здесь и не перестраивается до конца сеанса.
func NewSession(cfg config.Config, res *assets.Assets, rng *rand.Rand, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}

	world := physics.NewWorld(cfg.World.Gravity, cfg.World.SolverIterations)
	world.LinearDamping = cfg.World.LinearDamping

	scn := scene.NewScene()
	bindings := scene.NewBindings(world, scn)

	// Земля: бесконечная плоскость для коллизий и конечный прокси для
	// рендера. Прокси неподвижен, поэтому привязка ему не нужна.
	ground := physics.NewBody(GroundID, physics.NewPlaneShape(mgl32.Vec3{0, 1, 0}, 0), mgl32.Vec3{}, 0)
	world.AddBody(ground)
	scn.Add(&scene.Proxy{
		ID: GroundID,
		Geometry: scene.Geometry{
			Type:  scene.GeometryPlane,
			Width: cfg.GroundSize,
			Depth: cfg.GroundSize,
		},
		Color:    "#3d4b3d",
		Texture:  res.TexturePath("ground"),
		Rotation: mgl32.QuatIdent(),
	})

	buildings := city.Generate(cfg.City, rng, world, scn, bindings, res.TexturePath("building"), logger)

	// Игрок: динамическая сфера с запретом вращения; прокси нет -
	// его роль выполняет камера, зеркалирующая позицию тела
	playerBody := physics.NewBody(PlayerID, physics.NewSphereShape(cfg.Player.Radius), cfg.Player.Spawn, cfg.Player.Mass)
	playerBody.LockRotation = true
	world.AddBody(playerBody)

	camera := scene.NewCamera(cfg.Player.Spawn)
	controller := player.NewController(playerBody, camera, cfg.Player.Speed)

	projectiles := projectile.NewManager(world, scn, bindings, camera,
		cfg.Projectile.MaxDistance, cfg.Projectile.SpawnOffset, logger)

	ticker := NewGameTicker(cfg.TickRate, logger)

	dt := float32(1) / float32(cfg.TickRate)
	ticker.RegisterSystem(NewPhysicsSystem(world, dt))
	ticker.RegisterSystem(NewPlayerSystem(controller))
	ticker.RegisterSystem(NewBindingSyncSystem(bindings))
	ticker.RegisterSystem(NewProjectileSystem(projectiles))

	var recorder *telemetry.Recorder
	if cfg.Telemetry {
		recorder = telemetry.NewRecorder(200, logger)
		ticker.RegisterSystem(NewTelemetrySystem(recorder, world))
	}

	logger.Printf("[Session] Сеанс собран: тел %d, прокси %d, зданий %d",
		world.Len(), scn.Len(), buildings)

	return &Session{
		Config:        cfg,
		World:         world,
		Scene:         scn,
		Bindings:      bindings,
		Camera:        camera,
		Player:        controller,
		Projectiles:   projectiles,
		Ticker:        ticker,
		Telemetry:     recorder,
		BuildingCount: buildings,
		logger:        logger,
	}
}

// AddSystem регистрирует дополнительную кадровую систему
// (например, трансляцию состояния клиенту)
func (s *Session) AddSystem(sys TickSystem) {
	s.Ticker.RegisterSystem(sys)
}

// Start запускает кадровый цикл сеанса
func (s *Session) Start() {
	s.Ticker.Start()
}

// Stop останавливает кадровый цикл. Снаряды в полете не дорабатываются:
// единственный путь завершения - разрыв соединения или останов процесса.
func (s *Session) Stop() {
	s.Ticker.Stop()
}

// RunFrame выполняет ровно один кадр сеанса. Используется для
// детерминированных прогонов без таймера.
func (s *Session) RunFrame() {
	s.Ticker.Tick(s.Ticker.tickDuration)
}
