package projectile

import (
	"log"
	"sync"

	"github.com/google/uuid"

	"x-city/backend/internal/physics"
	"x-city/backend/internal/scene"
)

// Manager управляет жизненным циклом снарядов: появление по событию
// выстрела, сопровождение в активном наборе, удаление при выходе за
// предельную дистанцию. Набор неупорядочен: снаряды независимы друг
// от друга. Емкость не ограничена - пула нет, буйный клиент может
// плодить тела без предела.
type Manager struct {
	world    *physics.World
	scene    *scene.Scene
	bindings *scene.Bindings
	camera   *scene.Camera

	maxDistance float32
	spawnOffset float32

	// Активный набор: id снаряда -> архетип. Мутируется только из
	// игрового цикла.
	active map[string]Kind

	// Очередь выстрелов: обработчики ввода только ставят триггер,
	// тела создает кадровый цикл
	queueMu sync.Mutex
	queued  []Kind

	logger *log.Logger
}

// NewManager создает менеджер снарядов
func NewManager(world *physics.World, scn *scene.Scene, bindings *scene.Bindings, camera *scene.Camera, maxDistance, spawnOffset float32, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		world:       world,
		scene:       scn,
		bindings:    bindings,
		camera:      camera,
		maxDistance: maxDistance,
		spawnOffset: spawnOffset,
		active:      make(map[string]Kind),
		logger:      logger,
	}
}

// Fire ставит выстрел в очередь. Безопасно вызывать из горутины
// чтения соединения: физика не трогается до ближайшего кадра.
func (m *Manager) Fire(kind Kind) {
	m.queueMu.Lock()
	m.queued = append(m.queued, kind)
	m.queueMu.Unlock()
}

// ActiveCount возвращает размер активного набора
func (m *Manager) ActiveCount() int {
	return len(m.active)
}

// Update выполняет кадровую работу менеджера: создает снаряды из очереди
// выстрелов и удаляет улетевшие за предельную дистанцию. Вызывается один
// раз за кадр после синхронизации привязок.
func (m *Manager) Update() {
	m.queueMu.Lock()
	queued := m.queued
	m.queued = nil
	m.queueMu.Unlock()

	for _, kind := range queued {
		m.Spawn(kind)
	}

	m.retireDistant()
}

// Spawn создает снаряд заданного архетипа из текущей позы камеры:
// точка появления смещена вдоль взгляда, чтобы не возникнуть внутри
// коллизионной сферы игрока; скорость - чистый направленный запуск,
// дальше работает гравитация.
func (m *Manager) Spawn(kind Kind) string {
	p := kind.Params()
	forward := m.camera.Forward()
	position := m.camera.Position().Add(forward.Mul(m.spawnOffset))

	id := "proj-" + uuid.NewString()

	body := physics.NewBody(id, physics.NewSphereShape(p.Radius), position, p.Mass)
	body.Velocity = forward.Mul(p.Speed)
	body.Restitution = 0.3
	m.world.AddBody(body)

	proxy := &scene.Proxy{
		ID: id,
		Geometry: scene.Geometry{
			Type:   scene.GeometrySphere,
			Radius: p.Radius,
		},
		Color:    p.Color,
		Position: position,
		Rotation: body.Rotation,
	}
	m.scene.Add(proxy)
	m.bindings.Bind(id, id)

	m.active[id] = kind
	return id
}

// retireDistant удаляет снаряды, улетевшие дальше предельной дистанции
// от начала координат. Итерация идет по снимку набора: удаление не
// должно ломать обход.
func (m *Manager) retireDistant() {
	ids := make([]string, 0, len(m.active))
	for id := range m.active {
		ids = append(ids, id)
	}

	for _, id := range ids {
		body, ok := m.world.Body(id)
		if !ok {
			// Тело исчезло из мира в обход менеджера; подчищаем набор
			m.logger.Printf("[Projectiles] Снаряд %s без тела, удаляем из набора", id)
			delete(m.active, id)
			continue
		}
		if body.Position.Len() > m.maxDistance {
			m.retire(id)
		}
	}
}

// retire удаляет снаряд из мира, таблицы привязок, сцены и активного
// набора. Удаление из набора в тот же момент структурно исключает
// повторное удаление и синхронизацию после удаления.
func (m *Manager) retire(id string) {
	delete(m.active, id)
	m.bindings.Unbind(id)
	m.world.RemoveBody(id)
	m.scene.Remove(id)
}
