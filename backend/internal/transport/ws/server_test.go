package ws

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"x-city/backend/internal/assets"
	"x-city/backend/internal/config"
)

// envelope общая оболочка исходящего сообщения для проверок в тестах
type envelope struct {
	Type       string  `json:"type"`
	ID         string  `json:"id"`
	ObjectType string  `json:"object_type"`
	Y          float32 `json:"y"`
	ClientTime int64   `json:"client_time"`
}

func startTestServer(t *testing.T, mutate func(*config.Config)) (*httptest.Server, *websocket.Conn) {
	t.Helper()

	cfg := config.Default()
	cfg.City.Probability = 0
	if mutate != nil {
		mutate(&cfg)
	}

	srv := NewServer(cfg, assets.Empty(), log.New(io.Discard, "", 0))
	ts := httptest.NewServer(http.HandlerFunc(srv.HandleWS))

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		ts.Close()
		t.Fatalf("Failed to connect: %v", err)
	}
	return ts, conn
}

// readUntil читает сообщения, пока предикат не вернет true или не
// истечет крайний срок
func readUntil(t *testing.T, conn *websocket.Conn, timeout time.Duration, match func(envelope) bool) envelope {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(timeout))

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("Connection failed while waiting for message: %v", err)
		}

		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			t.Fatalf("Broken frame: %v", err)
		}
		if match(env) {
			return env
		}
	}
}

func TestServer_InitialScene(t *testing.T) {
	ts, conn := startTestServer(t, nil)
	defer ts.Close()
	defer conn.Close()

	// Первым приходит описание земли, за ним камера
	env := readUntil(t, conn, 2*time.Second, func(e envelope) bool { return e.Type == MessageTypeCreate })
	if env.ID != "ground" || env.ObjectType != "plane" {
		t.Errorf("Expected ground plane first, got %+v", env)
	}

	cam := readUntil(t, conn, 2*time.Second, func(e envelope) bool { return e.Type == MessageTypeCamera })
	if cam.Y != 5 {
		t.Errorf("Camera must start at the player spawn, y=%f", cam.Y)
	}
}

func TestServer_FireCreatesAndRetiresProjectile(t *testing.T) {
	ts, conn := startTestServer(t, func(cfg *config.Config) {
		cfg.Projectile.MaxDistance = 20
	})
	defer ts.Close()
	defer conn.Close()

	// Смотрим вверх, чтобы пуля улетала от начала координат не задевая землю
	look := LookMessage{Type: MessageTypeLook, Yaw: 0, Pitch: 0.6}
	if err := conn.WriteJSON(look); err != nil {
		t.Fatalf("Failed to send look: %v", err)
	}
	fire := FireMessage{Type: MessageTypeFire, Kind: "bullet"}
	if err := conn.WriteJSON(fire); err != nil {
		t.Fatalf("Failed to send fire: %v", err)
	}

	created := readUntil(t, conn, 2*time.Second, func(e envelope) bool {
		return e.Type == MessageTypeCreate && strings.HasPrefix(e.ID, "proj-")
	})
	if created.ObjectType != "sphere" {
		t.Errorf("Projectile proxy must be a sphere, got %s", created.ObjectType)
	}

	// Пуля летит со скоростью 36 и списывается за 20 единиц: секунды хватает,
	// берем с запасом
	removed := readUntil(t, conn, 5*time.Second, func(e envelope) bool {
		return e.Type == MessageTypeRemove
	})
	if removed.ID != created.ID {
		t.Errorf("Removed %s, expected %s", removed.ID, created.ID)
	}
}

func TestServer_PingPong(t *testing.T) {
	ts, conn := startTestServer(t, nil)
	defer ts.Close()
	defer conn.Close()

	ping := PingMessage{Type: MessageTypePing, ClientTime: 777}
	if err := conn.WriteJSON(ping); err != nil {
		t.Fatalf("Failed to send ping: %v", err)
	}

	pong := readUntil(t, conn, 2*time.Second, func(e envelope) bool { return e.Type == MessageTypePong })
	if pong.ClientTime != 777 {
		t.Errorf("Pong must echo client_time, got %d", pong.ClientTime)
	}
}

func TestServer_InputMovesPlayerCamera(t *testing.T) {
	ts, conn := startTestServer(t, nil)
	defer ts.Close()
	defer conn.Close()

	input := InputMessage{Type: MessageTypeInput, Action: "forward", Pressed: true}
	if err := conn.WriteJSON(input); err != nil {
		t.Fatalf("Failed to send input: %v", err)
	}

	// Камера зеркалирует тело игрока: ждем кадр, в котором она сдвинулась
	// вперед (по -Z) от точки появления
	type cameraMsg struct {
		Type string  `json:"type"`
		Z    float32 `json:"z"`
	}

	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("Connection failed while waiting for camera: %v", err)
		}
		var msg cameraMsg
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("Broken frame: %v", err)
		}
		if msg.Type == MessageTypeCamera && msg.Z < -0.01 {
			return
		}
	}
}
