package ws

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"x-city/backend/internal/game"
)

// streamSystem кадровая система трансляции состояния клиенту: позиция
// камеры и трансформации привязанных подвижных тел. Выполняется
// последней, после синхронизации привязок и обновления снарядов.
type streamSystem struct {
	c *client
}

func (c *client) streamSystem() game.TickSystem {
	return &streamSystem{c: c}
}

func (s *streamSystem) Update(time.Duration) error {
	sess := s.c.sess
	now := time.Now().UnixMilli()

	for bodyID, proxyID := range sess.Bindings.Pairs() {
		body, ok := sess.World.Body(bodyID)
		if !ok {
			continue
		}

		// Статические тела клиент получает один раз в create.
		// Неподвижные динамические тела пропускаем тоже - это
		// оптимизация исходящего потока: привязка при этом уже
		// синхронизирована и не устаревает.
		if body.Static() || body.Velocity == (mgl32.Vec3{}) {
			continue
		}

		proxy, ok := sess.Scene.Proxy(proxyID)
		if !ok {
			continue
		}

		msg := UpdateMessage{
			Type: MessageTypeUpdate,
			ID:   proxy.ID,
			X:    proxy.Position.X(),
			Y:    proxy.Position.Y(),
			Z:    proxy.Position.Z(),
			QX:   proxy.Rotation.V.X(),
			QY:   proxy.Rotation.V.Y(),
			QZ:   proxy.Rotation.V.Z(),
			QW:   proxy.Rotation.W,
			VX:   body.Velocity.X(),
			VY:   body.Velocity.Y(),
			VZ:   body.Velocity.Z(),

			ServerTime: now,
		}

		if err := s.c.writer.WriteJSON(msg); err != nil {
			return err
		}
	}

	pos := sess.Camera.Position()
	return s.c.writer.WriteJSON(CameraMessage{
		Type: MessageTypeCamera,
		X:    pos.X(), Y: pos.Y(), Z: pos.Z(),
	})
}

func (s *streamSystem) GetName() string  { return "StreamSystem" }
func (s *streamSystem) GetPriority() int { return game.PriorityStream }
