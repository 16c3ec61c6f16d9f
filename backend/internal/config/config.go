package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
)

// WorldConfig содержит глобальные настройки физики мира
type WorldConfig struct {
	// Вектор гравитации
	Gravity mgl32.Vec3 `json:"gravity"`

	// Количество итераций солвера контактов за один шаг
	SolverIterations int `json:"solver_iterations"`

	// Глобальное линейное затухание скорости
	LinearDamping float32 `json:"linear_damping"`
}

// PlayerConfig содержит настройки игрока
type PlayerConfig struct {
	Radius float32    `json:"radius"` // Радиус коллизионной сферы игрока
	Mass   float32    `json:"mass"`   // Масса игрока
	Speed  float32    `json:"speed"`  // Горизонтальная скорость движения
	Spawn  mgl32.Vec3 `json:"spawn"`  // Точка появления
}

// CityConfig содержит параметры процедурной генерации города
type CityConfig struct {
	GridMin     float32 `json:"grid_min"`     // Минимальная координата сетки по обеим осям
	GridMax     float32 `json:"grid_max"`     // Максимальная координата сетки по обеим осям
	Spacing     float32 `json:"spacing"`      // Шаг между ячейками
	Probability float64 `json:"probability"`  // Вероятность появления здания в ячейке
	Footprint   float32 `json:"footprint"`    // Сторона основания здания
	BaseHeight  float32 `json:"base_height"`  // Минимальная высота здания
	HeightRange float32 `json:"height_range"` // Разброс высоты: base + uniform(0, range)
}

// ProjectileConfig содержит общие настройки снарядов
// (параметры архетипов фиксированы на этапе компиляции, см. пакет projectile)
type ProjectileConfig struct {
	MaxDistance float32 `json:"max_distance"` // Дистанция от начала координат, после которой снаряд удаляется
	// Смещение точки появления вдоль взгляда камеры. Должно превышать
	// сумму радиусов игрока и самого крупного архетипа, иначе снаряд
	// рождается внутри коллизионной сферы игрока
	SpawnOffset float32 `json:"spawn_offset"`
}

// Config объединяет все настройки сервера x-city
type Config struct {
	Addr         string `json:"addr"`       // Адрес HTTP/WebSocket сервера
	StaticDir    string `json:"static_dir"` // Каталог статики клиента
	ManifestPath string `json:"manifest"`   // Путь к манифесту текстур

	TickRate int `json:"tick_rate"` // Частота кадров симуляции (Гц)

	World      WorldConfig      `json:"world"`
	Player     PlayerConfig     `json:"player"`
	City       CityConfig       `json:"city"`
	Projectile ProjectileConfig `json:"projectile"`

	GroundSize float32 `json:"ground_size"` // Сторона визуальной плоскости земли

	Telemetry bool `json:"telemetry"` // Покадровая запись телеметрии тел (отладка)
}

// Default возвращает конфигурацию по умолчанию
func Default() Config {
	return Config{
		Addr:         ":8080",
		StaticDir:    "static",
		ManifestPath: "assets/manifest.json",
		TickRate:     60,
		World: WorldConfig{
			Gravity:          mgl32.Vec3{0, -20.0, 0},
			SolverIterations: 4,
			LinearDamping:    0.0,
		},
		Player: PlayerConfig{
			Radius: 1.3,
			Mass:   5.0,
			Speed:  8.0,
			Spawn:  mgl32.Vec3{0, 5, 0},
		},
		City: CityConfig{
			GridMin:     -40,
			GridMax:     40,
			Spacing:     10,
			Probability: 0.5,
			Footprint:   6,
			BaseHeight:  6,
			HeightRange: 10,
		},
		Projectile: ProjectileConfig{
			MaxDistance: 150,
			// Радиус игрока 1.3 + радиус бомбы 0.8 = 2.1 с запасом
			SpawnOffset: 2.5,
		},
		GroundSize: 400,
	}
}

// Load читает конфигурацию из JSON файла поверх значений по умолчанию.
// Пустой путь возвращает значения по умолчанию без ошибки.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("чтение конфигурации %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("разбор конфигурации %s: %w", path, err)
	}

	return cfg, nil
}
