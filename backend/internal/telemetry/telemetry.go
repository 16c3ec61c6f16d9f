package telemetry

import (
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"

	"x-city/backend/internal/physics"
)

// Sample состояние одного тела на момент кадра
type Sample struct {
	Timestamp int64      `json:"timestamp"` // Время в миллисекундах
	BodyID    string     `json:"body_id"`
	Kind      string     `json:"kind"` // player | building | projectile | ground
	Position  [3]float32 `json:"position"`
	Velocity  [3]float32 `json:"velocity"`
	Speed     float32    `json:"speed"` // Модуль скорости
	Mass      float32    `json:"mass"`
}

// Recorder собирает покадровую телеметрию тел одного сеанса для отладки.
// Каждый сеанс держит собственный экземпляр; статичные тела не пишутся -
// интересна только динамика.
type Recorder struct {
	mu      sync.RWMutex
	samples []Sample
	maxLen  int

	counters      map[string]int
	lastPrint     time.Time
	printInterval time.Duration

	logger *log.Logger
}

// NewRecorder создает рекордер с буфером на заданное число записей
func NewRecorder(maxLen int, logger *log.Logger) *Recorder {
	if maxLen <= 0 {
		maxLen = 200
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Recorder{
		samples:       make([]Sample, 0, maxLen),
		maxLen:        maxLen,
		counters:      make(map[string]int),
		lastPrint:     time.Now(),
		printInterval: 2 * time.Second,
		logger:        logger,
	}
}

// RecordFrame снимает состояние всех динамических тел мира
func (r *Recorder) RecordFrame(world *physics.World) {
	now := time.Now().UnixMilli()

	r.mu.Lock()
	for _, body := range world.Bodies() {
		if body.Static() {
			continue
		}

		kind := classify(body.ID)
		r.samples = append(r.samples, Sample{
			Timestamp: now,
			BodyID:    body.ID,
			Kind:      kind,
			Position:  [3]float32{body.Position.X(), body.Position.Y(), body.Position.Z()},
			Velocity:  [3]float32{body.Velocity.X(), body.Velocity.Y(), body.Velocity.Z()},
			Speed:     body.Velocity.Len(),
			Mass:      body.Mass,
		})
		if len(r.samples) > r.maxLen {
			r.samples = r.samples[1:]
		}
		r.counters[kind]++
	}
	r.mu.Unlock()

	r.maybePrintSummary()
}

// maybePrintSummary выводит сводку не чаще раза в printInterval
func (r *Recorder) maybePrintSummary() {
	now := time.Now()
	if now.Sub(r.lastPrint) < r.printInterval {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.logger.Printf("[Telemetry] Записей в буфере: %d", len(r.samples))
	for kind, count := range r.counters {
		r.logger.Printf("[Telemetry] %s: %d", kind, count)
	}

	if last, ok := r.latestLocked("player"); ok {
		r.logger.Printf("[Telemetry] Игрок: позиция (%.2f, %.2f, %.2f), скорость |%.2f|",
			last.Position[0], last.Position[1], last.Position[2], last.Speed)
	}

	r.counters = make(map[string]int)
	r.lastPrint = now
}

// Latest возвращает последнюю запись заданного рода
func (r *Recorder) Latest(kind string) (Sample, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.latestLocked(kind)
}

func (r *Recorder) latestLocked(kind string) (Sample, bool) {
	for i := len(r.samples) - 1; i >= 0; i-- {
		if r.samples[i].Kind == kind {
			return r.samples[i], true
		}
	}
	return Sample{}, false
}

// Len возвращает количество записей в буфере
func (r *Recorder) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.samples)
}

// JSON возвращает содержимое буфера в JSON формате
func (r *Recorder) JSON() ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return json.MarshalIndent(r.samples, "", "  ")
}

// Clear очищает буфер и счетчики
func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.samples = r.samples[:0]
	r.counters = make(map[string]int)
}

// classify определяет род тела по соглашению об идентификаторах
func classify(id string) string {
	switch {
	case id == "player":
		return "player"
	case id == "ground":
		return "ground"
	case strings.HasPrefix(id, "building-"):
		return "building"
	case strings.HasPrefix(id, "proj-"):
		return "projectile"
	}
	return "other"
}
