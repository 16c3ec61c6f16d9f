package city

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"

	"x-city/backend/internal/config"
	"x-city/backend/internal/physics"
	"x-city/backend/internal/scene"
)

// Цвет зданий по умолчанию, если у клиента нет текстуры
const buildingColor = "#8a8a96"

// Generate выполняет процедурную раскладку города: обходит квадратную
// сетку и с заданной вероятностью ставит в ячейку здание - статичное
// коробчатое тело и привязанный к нему прокси. Высота - base +
// uniform(0, range), вертикальное смещение height/2, чтобы основание
// лежало на земле. Больше одного здания в ячейке не бывает; раскладка
// выполняется один раз за сеанс и не перестраивается. Пространственный
// индекс не нужен: коллизии разрешает широкая фаза физического мира.
//
// Возвращает количество построенных зданий.
func Generate(cfg config.CityConfig, rng *rand.Rand, world *physics.World, scn *scene.Scene, bindings *scene.Bindings, texture string, logger *log.Logger) int {
	if logger == nil {
		logger = log.Default()
	}

	count := 0
	for x := cfg.GridMin; x <= cfg.GridMax; x += cfg.Spacing {
		for z := cfg.GridMin; z <= cfg.GridMax; z += cfg.Spacing {
			if rng.Float64() >= cfg.Probability {
				continue
			}

			height := cfg.BaseHeight + float32(rng.Float64())*cfg.HeightRange
			id := fmt.Sprintf("building-%d", count)
			position := mgl32.Vec3{x, height / 2, z}

			body := physics.NewBody(id, physics.NewBoxShape(cfg.Footprint, height, cfg.Footprint), position, 0)
			world.AddBody(body)

			proxy := &scene.Proxy{
				ID: id,
				Geometry: scene.Geometry{
					Type:   scene.GeometryBox,
					Width:  cfg.Footprint,
					Height: height,
					Depth:  cfg.Footprint,
				},
				Color:    buildingColor,
				Texture:  texture,
				Position: position,
				Rotation: body.Rotation,
			}
			scn.Add(proxy)
			bindings.Bind(id, id)

			count++
		}
	}

	logger.Printf("[City] Сгенерировано зданий: %d", count)
	return count
}
