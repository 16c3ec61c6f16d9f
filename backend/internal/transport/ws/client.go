package ws

import (
	"fmt"
	"log"
	"time"

	"x-city/backend/internal/game"
	"x-city/backend/internal/player"
	"x-city/backend/internal/projectile"
	"x-city/backend/internal/scene"
)

// client связывает одно WebSocket соединение с его игровым сеансом:
// разбирает входящие события ввода и транслирует состояние сцены наружу
type client struct {
	writer   *SafeWriter
	sess     *game.Session
	handlers map[string]func(interface{}) error
	logger   *log.Logger
}

func newClient(writer *SafeWriter, sess *game.Session, logger *log.Logger) *client {
	c := &client{
		writer: writer,
		sess:   sess,
		logger: logger,
	}

	c.handlers = map[string]func(interface{}) error{
		MessageTypeInput: c.handleInput,
		MessageTypeLook:  c.handleLook,
		MessageTypeFire:  c.handleFire,
		MessageTypePing:  c.handlePing,
	}

	// Появление и удаление прокси (снаряды) транслируем клиенту
	// сразу из кадрового цикла
	sess.Scene.OnAdd(func(p *scene.Proxy) {
		if err := c.writer.WriteJSON(makeCreateMessage(p)); err != nil {
			c.logger.Printf("[WS] Ошибка отправки create для %s: %v", p.ID, err)
		}
	})
	sess.Scene.OnRemove(func(id string) {
		if err := c.writer.WriteJSON(RemoveMessage{Type: MessageTypeRemove, ID: id}); err != nil {
			c.logger.Printf("[WS] Ошибка отправки remove для %s: %v", id, err)
		}
	})

	return c
}

// sendScene отправляет клиенту описание всех прокси текущей сцены.
// Вызывается один раз при подключении, до старта кадрового цикла.
func (c *client) sendScene() error {
	for _, p := range c.sess.Scene.Proxies() {
		if err := c.writer.WriteJSON(makeCreateMessage(p)); err != nil {
			return fmt.Errorf("отправка сцены: %w", err)
		}
	}

	pos := c.sess.Camera.Position()
	return c.writer.WriteJSON(CameraMessage{
		Type: MessageTypeCamera,
		X:    pos.X(), Y: pos.Y(), Z: pos.Z(),
	})
}

// readLoop читает входящие сообщения до разрыва соединения
func (c *client) readLoop() {
	for {
		_, data, err := c.writer.ReadMessage()
		if err != nil {
			c.logger.Printf("[WS] Соединение закрыто: %v", err)
			return
		}

		msg, err := ParseMessage(data)
		if err != nil {
			c.logger.Printf("[WS] Неразобранное сообщение: %v", err)
			continue
		}

		if err := c.dispatch(msg); err != nil {
			c.logger.Printf("[WS] Ошибка обработки сообщения: %v", err)
		}
	}
}

// dispatch направляет сообщение в зарегистрированный обработчик
func (c *client) dispatch(msg interface{}) error {
	var msgType string
	switch msg.(type) {
	case *InputMessage:
		msgType = MessageTypeInput
	case *LookMessage:
		msgType = MessageTypeLook
	case *FireMessage:
		msgType = MessageTypeFire
	case *PingMessage:
		msgType = MessageTypePing
	default:
		return ErrInvalidMessage
	}

	handler, ok := c.handlers[msgType]
	if !ok {
		return fmt.Errorf("нет обработчика для %s", msgType)
	}
	return handler(msg)
}

// handleInput обновляет флаг клавиши движения. Обработчик только ставит
// флаг: к физике прикасается исключительно кадровый цикл.
func (c *client) handleInput(msg interface{}) error {
	im, ok := msg.(*InputMessage)
	if !ok {
		return ErrInvalidMessage
	}

	dir, ok := player.ParseDirection(im.Action)
	if !ok {
		return fmt.Errorf("неизвестное направление: %q", im.Action)
	}

	c.sess.Player.SetHeld(dir, im.Pressed)
	return nil
}

// handleLook обновляет углы взгляда камеры
func (c *client) handleLook(msg interface{}) error {
	lm, ok := msg.(*LookMessage)
	if !ok {
		return ErrInvalidMessage
	}

	c.sess.Camera.SetLook(lm.Yaw, lm.Pitch)
	return nil
}

// handleFire ставит выстрел в очередь менеджера снарядов
func (c *client) handleFire(msg interface{}) error {
	fm, ok := msg.(*FireMessage)
	if !ok {
		return ErrInvalidMessage
	}

	kind, ok := projectile.ParseKind(fm.Kind)
	if !ok {
		return fmt.Errorf("неизвестный архетип снаряда: %q", fm.Kind)
	}

	c.sess.Projectiles.Fire(kind)
	return nil
}

// handlePing отвечает эхом с серверным временем
func (c *client) handlePing(msg interface{}) error {
	pm, ok := msg.(*PingMessage)
	if !ok {
		return ErrInvalidMessage
	}

	return c.writer.WriteJSON(PongMessage{
		Type:       MessageTypePong,
		ClientTime: pm.ClientTime,
		ServerTime: time.Now().UnixMilli(),
	})
}

// makeCreateMessage собирает create-сообщение из прокси
func makeCreateMessage(p *scene.Proxy) CreateMessage {
	msg := CreateMessage{
		Type:    MessageTypeCreate,
		ID:      p.ID,
		X:       p.Position.X(),
		Y:       p.Position.Y(),
		Z:       p.Position.Z(),
		Color:   p.Color,
		Texture: p.Texture,
	}

	switch p.Geometry.Type {
	case scene.GeometrySphere:
		msg.ObjectType = "sphere"
		msg.Radius = p.Geometry.Radius
	case scene.GeometryBox:
		msg.ObjectType = "box"
		msg.Width = p.Geometry.Width
		msg.Height = p.Geometry.Height
		msg.Depth = p.Geometry.Depth
	case scene.GeometryPlane:
		msg.ObjectType = "plane"
		msg.Width = p.Geometry.Width
		msg.Depth = p.Geometry.Depth
	}

	return msg
}
