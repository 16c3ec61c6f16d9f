package main

import (
	"flag"
	"log"
	"net/http"

	"x-city/backend/internal/assets"
	"x-city/backend/internal/config"
	"x-city/backend/internal/transport/ws"
)

func main() {
	configPath := flag.String("config", "", "путь к JSON конфигурации (пусто = значения по умолчанию)")
	addr := flag.String("addr", "", "адрес сервера (перекрывает конфигурацию)")
	flag.Parse()

	logger := log.Default()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("[Server] Ошибка конфигурации: %v", err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	// Текстуры загружаются один раз до старта первого сеанса;
	// отказ фатален, повторных попыток нет
	res, err := assets.Load(cfg.ManifestPath, logger)
	if err != nil {
		logger.Fatalf("[Server] Ошибка загрузки ресурсов: %v", err)
	}
	logger.Printf("[Server] Загружено текстур: %d", res.Len())

	server := ws.NewServer(cfg, res, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", server.HandleWS)
	mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))

	logger.Printf("[Server] x-city слушает на %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		logger.Fatalf("[Server] Ошибка сервера: %v", err)
	}
}
