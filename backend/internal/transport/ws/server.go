package ws

import (
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"x-city/backend/internal/assets"
	"x-city/backend/internal/config"
	"x-city/backend/internal/game"
)

// Server WebSocket сервер x-city. На каждое соединение создается
// собственный изолированный сеанс со своим миром, городом и кадровым
// циклом; между сеансами ничего не разделяется.
type Server struct {
	cfg      config.Config
	assets   *assets.Assets
	upgrader websocket.Upgrader
	logger   *log.Logger
}

// NewServer создает сервер с заданной конфигурацией и ресурсами
func NewServer(cfg config.Config, res *assets.Assets, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		cfg:    cfg,
		assets: res,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// HandleWS обрабатывает подключение: собирает сеанс, отправляет сцену,
// запускает кадровый цикл и читает ввод до разрыва соединения.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("[WS] Ошибка апгрейда соединения: %v", err)
		return
	}

	writer := NewSafeWriter(conn)
	defer writer.Close()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	sess := game.NewSession(s.cfg, s.assets, rng, s.logger)

	client := newClient(writer, sess, s.logger)

	if err := client.sendScene(); err != nil {
		s.logger.Printf("[WS] Ошибка отправки начальной сцены: %v", err)
		return
	}

	sess.AddSystem(client.streamSystem())
	sess.Start()
	defer sess.Stop()

	s.logger.Printf("[WS] Клиент %s подключен, сеанс запущен", r.RemoteAddr)

	client.readLoop()

	s.logger.Printf("[WS] Клиент %s отключен, сеанс остановлен", r.RemoteAddr)
}
