package scene

import (
	"x-city/backend/internal/physics"
)

// Bindings таблица соответствий тело -> визуальный прокси.
// Связь однонаправленная: каждый кадр после шага физики трансформация
// тела копируется в прокси, обратного влияния на физику нет.
type Bindings struct {
	world *physics.World
	scene *Scene

	entries map[string]string // bodyID -> proxyID
}

// NewBindings создает пустую таблицу привязок
func NewBindings(world *physics.World, scene *Scene) *Bindings {
	return &Bindings{
		world:   world,
		scene:   scene,
		entries: make(map[string]string),
	}
}

// Bind записывает привязку тела к прокси. Повторная привязка уже
// привязанного тела игнорируется.
func (b *Bindings) Bind(bodyID, proxyID string) {
	if _, exists := b.entries[bodyID]; exists {
		return
	}
	b.entries[bodyID] = proxyID
}

// Unbind удаляет привязку тела
func (b *Bindings) Unbind(bodyID string) {
	delete(b.entries, bodyID)
}

// Bound сообщает, привязано ли тело
func (b *Bindings) Bound(bodyID string) bool {
	_, ok := b.entries[bodyID]
	return ok
}

// Len возвращает количество привязок
func (b *Bindings) Len() int {
	return len(b.entries)
}

// Pairs возвращает снимок пар (bodyID, proxyID)
func (b *Bindings) Pairs() map[string]string {
	out := make(map[string]string, len(b.entries))
	for k, v := range b.entries {
		out[k] = v
	}
	return out
}

// SyncAll копирует позицию и ориентацию каждого привязанного тела в его
// прокси. Вызывается один раз за кадр строго после шага физики, так что
// трансформация прокси никогда не отстает от тела больше чем на кадр.
// Копирование безусловное: пропуск неподвижных тел - оптимизация
// исходящего потока, а не слоя привязок (см. транспорт).
func (b *Bindings) SyncAll() {
	for bodyID, proxyID := range b.entries {
		body, ok := b.world.Body(bodyID)
		if !ok {
			continue
		}
		proxy, ok := b.scene.Proxy(proxyID)
		if !ok {
			continue
		}
		proxy.Position = body.Position
		proxy.Rotation = body.Rotation
	}
}
