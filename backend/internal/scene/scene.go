package scene

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// GeometryType тип геометрии визуального прокси
type GeometryType int

const (
	GeometrySphere GeometryType = iota
	GeometryBox
	GeometryPlane
)

// Geometry описание геометрии прокси для клиента-рендерера
type Geometry struct {
	Type   GeometryType
	Radius float32 // для сферы
	Width  float32 // для коробки и плоскости
	Height float32 // для коробки
	Depth  float32 // для коробки и плоскости
}

// Proxy визуальное представление сущности на стороне рендерера.
// Ядро пишет только трансформацию; геометрией и материалом владеет
// сцена и освобождает их при удалении.
type Proxy struct {
	ID       string
	Geometry Geometry
	Color    string
	Texture  string // имя текстуры из манифеста; пустая строка - только цвет

	Position mgl32.Vec3
	Rotation mgl32.Quat

	released bool
}

// Release помечает ресурсы геометрии/материала освобожденными.
// Повторный вызов не допускается структурой сцены, но защищен флагом.
func (p *Proxy) Release() {
	p.released = true
}

// Released сообщает, освобожден ли прокси
func (p *Proxy) Released() bool {
	return p.released
}

// Scene набор визуальных прокси. Подписчики получают уведомления о
// добавлении и удалении - транспорт транслирует их клиенту как
// create/remove сообщения.
type Scene struct {
	mu      sync.RWMutex
	proxies map[string]*Proxy

	onAdd    []func(*Proxy)
	onRemove []func(string)
}

// NewScene создает пустую сцену
func NewScene() *Scene {
	return &Scene{
		proxies: make(map[string]*Proxy),
	}
}

// OnAdd регистрирует обработчик добавления прокси
func (s *Scene) OnAdd(fn func(*Proxy)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onAdd = append(s.onAdd, fn)
}

// OnRemove регистрирует обработчик удаления прокси
func (s *Scene) OnRemove(fn func(string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRemove = append(s.onRemove, fn)
}

// Add добавляет прокси в сцену и уведомляет подписчиков
func (s *Scene) Add(p *Proxy) {
	s.mu.Lock()
	s.proxies[p.ID] = p
	handlers := s.onAdd
	s.mu.Unlock()

	for _, fn := range handlers {
		fn(p)
	}
}

// Remove удаляет прокси, освобождает его ресурсы и уведомляет подписчиков.
// Удаление отсутствующего ID - no-op.
func (s *Scene) Remove(id string) {
	s.mu.Lock()
	p, ok := s.proxies[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	delete(s.proxies, id)
	p.Release()
	handlers := s.onRemove
	s.mu.Unlock()

	for _, fn := range handlers {
		fn(id)
	}
}

// Proxy возвращает прокси по идентификатору
func (s *Scene) Proxy(id string) (*Proxy, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.proxies[id]
	return p, ok
}

// Proxies возвращает снимок всех прокси сцены
func (s *Scene) Proxies() []*Proxy {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Proxy, 0, len(s.proxies))
	for _, p := range s.proxies {
		out = append(out, p)
	}
	return out
}

// Len возвращает количество прокси в сцене
func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.proxies)
}
