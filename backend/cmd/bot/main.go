// Бот-клиент для дымовой проверки протокола: подключается к серверу,
// держит клавишу вперед, периодически крутит камеру и стреляет,
// подсчитывая входящие сообщения.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"math"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Структуры сообщений протокола (зеркало backend/internal/transport/ws/messages.go)
type inputMessage struct {
	Type    string `json:"type"`
	Action  string `json:"action"`
	Pressed bool   `json:"pressed"`
}

type lookMessage struct {
	Type  string  `json:"type"`
	Yaw   float32 `json:"yaw"`
	Pitch float32 `json:"pitch"`
}

type fireMessage struct {
	Type string `json:"type"`
	Kind string `json:"kind"`
}

type pingMessage struct {
	Type       string `json:"type"`
	ClientTime int64  `json:"client_time"`
}

type serverMessage struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// botStats счетчики входящих сообщений
type botStats struct {
	mu      sync.Mutex
	creates int
	updates int
	removes int
	pongs   int
}

func (s *botStats) count(msgType string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch msgType {
	case "create":
		s.creates++
	case "update":
		s.updates++
	case "remove":
		s.removes++
	case "pong":
		s.pongs++
	}
}

func main() {
	serverURL := flag.String("url", "ws://localhost:8080/ws", "адрес WebSocket сервера")
	duration := flag.Duration("duration", 30*time.Second, "длительность работы бота")
	fireRate := flag.Duration("fire-rate", 2*time.Second, "интервал выстрелов")
	flag.Parse()

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.Dial(*serverURL, nil)
	if err != nil {
		log.Fatalf("[Bot] Не удалось подключиться к %s: %v", *serverURL, err)
	}
	defer conn.Close()

	log.Printf("[Bot] Подключен к %s", *serverURL)

	stats := &botStats{}
	var writeMu sync.Mutex

	send := func(v interface{}) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.WriteJSON(v); err != nil {
			log.Printf("[Bot] Ошибка записи: %v", err)
		}
	}

	// Горутина чтения: считаем входящие сообщения
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var msg serverMessage
			if err := json.Unmarshal(data, &msg); err != nil {
				continue
			}
			stats.count(msg.Type)
		}
	}()

	// Держим вперед всю сессию
	send(inputMessage{Type: "input", Action: "forward", Pressed: true})

	fireTicker := time.NewTicker(*fireRate)
	defer fireTicker.Stop()
	lookTicker := time.NewTicker(500 * time.Millisecond)
	defer lookTicker.Stop()
	pingTicker := time.NewTicker(2 * time.Second)
	defer pingTicker.Stop()
	deadline := time.After(*duration)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	yaw := float32(0)
	kinds := []string{"bullet", "bomb"}
	shot := 0

loop:
	for {
		select {
		case <-fireTicker.C:
			kind := kinds[shot%len(kinds)]
			shot++
			send(fireMessage{Type: "fire", Kind: kind})
		case <-lookTicker.C:
			yaw += float32(math.Pi / 8)
			send(lookMessage{Type: "look", Yaw: yaw, Pitch: 0})
		case <-pingTicker.C:
			send(pingMessage{Type: "ping", ClientTime: time.Now().UnixMilli()})
		case <-deadline:
			break loop
		case <-interrupt:
			break loop
		case <-done:
			break loop
		}
	}

	stats.mu.Lock()
	log.Printf("[Bot] Готово: create=%d update=%d remove=%d pong=%d выстрелов=%d",
		stats.creates, stats.updates, stats.removes, stats.pongs, shot)
	stats.mu.Unlock()
}
