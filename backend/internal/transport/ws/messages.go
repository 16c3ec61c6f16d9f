package ws

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Типы сообщений протокола клиент <-> сервер
const (
	// Входящие
	MessageTypeInput = "input"
	MessageTypeLook  = "look"
	MessageTypeFire  = "fire"
	MessageTypePing  = "ping"

	// Исходящие
	MessageTypeCreate = "create"
	MessageTypeUpdate = "update"
	MessageTypeRemove = "remove"
	MessageTypeCamera = "camera"
	MessageTypePong   = "pong"
)

// ErrInvalidMessage сообщение не соответствует ожидаемому типу
var ErrInvalidMessage = errors.New("invalid message")

// InputMessage изменение состояния клавиши движения
type InputMessage struct {
	Type    string `json:"type"`
	Action  string `json:"action"` // forward | back | left | right
	Pressed bool   `json:"pressed"`
}

// LookMessage ориентация камеры от клиента (радианы)
type LookMessage struct {
	Type  string  `json:"type"`
	Yaw   float32 `json:"yaw"`
	Pitch float32 `json:"pitch"`
}

// FireMessage выстрел снарядом указанного архетипа
type FireMessage struct {
	Type string `json:"type"`
	Kind string `json:"kind"` // bullet | bomb
}

// PingMessage запрос эха для оценки задержки
type PingMessage struct {
	Type       string `json:"type"`
	ClientTime int64  `json:"client_time"`
}

// PongMessage ответ на ping
type PongMessage struct {
	Type       string `json:"type"`
	ClientTime int64  `json:"client_time"`
	ServerTime int64  `json:"server_time"`
}

// CreateMessage описание визуального прокси для создания на клиенте
type CreateMessage struct {
	Type       string  `json:"type"`
	ID         string  `json:"id"`
	ObjectType string  `json:"object_type"` // sphere | box | plane
	X          float32 `json:"x"`
	Y          float32 `json:"y"`
	Z          float32 `json:"z"`
	Radius     float32 `json:"radius,omitempty"`
	Width      float32 `json:"width,omitempty"`
	Height     float32 `json:"height,omitempty"`
	Depth      float32 `json:"depth,omitempty"`
	Color      string  `json:"color,omitempty"`
	Texture    string  `json:"texture,omitempty"`
}

// UpdateMessage трансформация прокси за кадр
type UpdateMessage struct {
	Type       string  `json:"type"`
	ID         string  `json:"id"`
	X          float32 `json:"x"`
	Y          float32 `json:"y"`
	Z          float32 `json:"z"`
	QX         float32 `json:"qx"`
	QY         float32 `json:"qy"`
	QZ         float32 `json:"qz"`
	QW         float32 `json:"qw"`
	VX         float32 `json:"vx"`
	VY         float32 `json:"vy"`
	VZ         float32 `json:"vz"`
	ServerTime int64   `json:"server_time"`
}

// RemoveMessage удаление прокси на клиенте
type RemoveMessage struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// CameraMessage позиция камеры игрока за кадр
type CameraMessage struct {
	Type string  `json:"type"`
	X    float32 `json:"x"`
	Y    float32 `json:"y"`
	Z    float32 `json:"z"`
}

// ParseMessage разбирает входящее сообщение в соответствующий тип
func ParseMessage(data []byte) (interface{}, error) {
	var base struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &base); err != nil {
		return nil, fmt.Errorf("error parsing message: %w", err)
	}

	switch base.Type {
	case MessageTypeInput:
		var msg InputMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("error parsing input message: %w", err)
		}
		return &msg, nil

	case MessageTypeLook:
		var msg LookMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("error parsing look message: %w", err)
		}
		return &msg, nil

	case MessageTypeFire:
		var msg FireMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("error parsing fire message: %w", err)
		}
		return &msg, nil

	case MessageTypePing:
		var msg PingMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("error parsing ping message: %w", err)
		}
		return &msg, nil

	default:
		return nil, fmt.Errorf("unknown message type: %q", base.Type)
	}
}
