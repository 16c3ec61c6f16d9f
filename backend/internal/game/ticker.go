package game

import (
	"context"
	"log"
	"sync"
	"time"
)

// TickSystem интерфейс подсистем, выполняемых каждый кадр
type TickSystem interface {
	Update(deltaTime time.Duration) error
	GetName() string
	GetPriority() int // Приоритет выполнения (меньше = раньше)
}

// GameTicker кадровый цикл сеанса: единственный источник вызовов всех
// подсистем, выполняемых строго по порядку приоритета без приостановок
// между ними.
type GameTicker struct {
	// Конфигурация
	targetTPS    int
	tickDuration time.Duration

	// Состояние
	isRunning    bool
	tickCount    uint64
	startTime    time.Time
	lastTickTime time.Time

	// Системы
	systems      []TickSystem
	systemsMutex sync.RWMutex

	// Мониторинг производительности
	perfMonitor *PerformanceMonitor

	// Управление
	ctx    context.Context
	cancel context.CancelFunc

	// Метрики
	averageTickTime time.Duration
	maxObservedTick time.Duration

	logger           *log.Logger
	warningThreshold time.Duration
}

// NewGameTicker создает кадровый цикл с заданной частотой
func NewGameTicker(targetTPS int, logger *log.Logger) *GameTicker {
	if targetTPS <= 0 {
		targetTPS = 60
	}
	if logger == nil {
		logger = log.Default()
	}

	tickDuration := time.Second / time.Duration(targetTPS)
	ctx, cancel := context.WithCancel(context.Background())

	return &GameTicker{
		targetTPS:        targetTPS,
		tickDuration:     tickDuration,
		systems:          make([]TickSystem, 0),
		perfMonitor:      NewPerformanceMonitor(50),
		ctx:              ctx,
		cancel:           cancel,
		logger:           logger,
		warningThreshold: tickDuration / 2, // Предупреждение при 50% от времени кадра
	}
}

// Start запускает игровой цикл
func (gt *GameTicker) Start() {
	if gt.isRunning {
		return
	}

	gt.isRunning = true
	gt.startTime = time.Now()
	gt.lastTickTime = gt.startTime

	gt.logger.Printf("[GameTicker] Запуск кадрового цикла: %d TPS (кадр каждые %v)",
		gt.targetTPS, gt.tickDuration)

	go gt.gameLoop()
}

// Stop останавливает игровой цикл и печатает итоговую статистику
// кадров и систем
func (gt *GameTicker) Stop() {
	if !gt.isRunning {
		return
	}

	gt.cancel()
	gt.isRunning = false

	stats := gt.GetStats()
	gt.logger.Printf("[GameTicker] Остановка кадрового цикла: кадров %v, среднее время кадра %v, максимум %v",
		stats["tick_count"], stats["average_tick_time"], stats["max_observed_tick"])

	for name, sysStats := range gt.perfMonitor.GetSystemsStats() {
		gt.logger.Printf("[GameTicker] Система %s: %v", name, sysStats)
	}
}

// RegisterSystem добавляет систему в игровой цикл с сортировкой по приоритету
func (gt *GameTicker) RegisterSystem(system TickSystem) {
	gt.systemsMutex.Lock()
	defer gt.systemsMutex.Unlock()

	gt.systems = append(gt.systems, system)

	for i := len(gt.systems) - 1; i > 0; i-- {
		if gt.systems[i].GetPriority() < gt.systems[i-1].GetPriority() {
			gt.systems[i], gt.systems[i-1] = gt.systems[i-1], gt.systems[i]
		} else {
			break
		}
	}

	gt.perfMonitor.initSystemMetrics(system.GetName())

	gt.logger.Printf("[GameTicker] Зарегистрирована система: %s (приоритет: %d)",
		system.GetName(), system.GetPriority())
}

// gameLoop основной цикл
func (gt *GameTicker) gameLoop() {
	ticker := time.NewTicker(gt.tickDuration)
	defer ticker.Stop()

	for {
		select {
		case <-gt.ctx.Done():
			return
		case tickTime := <-ticker.C:
			gt.executeTick(tickTime)
		}
	}
}

// executeTick выполняет один кадр
func (gt *GameTicker) executeTick(tickTime time.Time) {
	tickStart := time.Now()
	deltaTime := tickTime.Sub(gt.lastTickTime)

	gt.tickCount++
	gt.lastTickTime = tickTime

	gt.Tick(deltaTime)

	totalTickTime := time.Since(tickStart)
	gt.updateTickMetrics(totalTickTime)
	gt.checkPerformance(totalTickTime)
}

// Tick выполняет все системы одного кадра по порядку приоритета.
// Вынесено отдельно, чтобы сеанс можно было прогонять детерминированно
// без таймера.
func (gt *GameTicker) Tick(deltaTime time.Duration) {
	gt.systemsMutex.RLock()
	systems := make([]TickSystem, len(gt.systems))
	copy(systems, gt.systems)
	gt.systemsMutex.RUnlock()

	for _, system := range systems {
		gt.executeSystem(system, deltaTime)
	}
}

// executeSystem выполняет одну систему с замером времени и защитой от паники
func (gt *GameTicker) executeSystem(system TickSystem, deltaTime time.Duration) {
	systemStart := time.Now()
	systemName := system.GetName()

	defer func() {
		if r := recover(); r != nil {
			gt.logger.Printf("[GameTicker] КРИТИЧЕСКАЯ ОШИБКА в системе %s: %v", systemName, r)
			gt.perfMonitor.recordError(systemName)
		}
	}()

	err := system.Update(deltaTime)

	gt.perfMonitor.recordExecution(systemName, time.Since(systemStart))

	if err != nil {
		gt.logger.Printf("[GameTicker] Ошибка в системе %s: %v", systemName, err)
		gt.perfMonitor.recordError(systemName)
	}
}

// Systems возвращает снимок зарегистрированных систем в порядке выполнения
func (gt *GameTicker) Systems() []TickSystem {
	gt.systemsMutex.RLock()
	defer gt.systemsMutex.RUnlock()

	out := make([]TickSystem, len(gt.systems))
	copy(out, gt.systems)
	return out
}

// GetTickCount возвращает текущее количество кадров
func (gt *GameTicker) GetTickCount() uint64 {
	return gt.tickCount
}

// GetStats возвращает статистику кадрового цикла
func (gt *GameTicker) GetStats() map[string]interface{} {
	uptime := time.Since(gt.startTime)
	actualTPS := float64(gt.tickCount) / uptime.Seconds()

	return map[string]interface{}{
		"target_tps":        gt.targetTPS,
		"actual_tps":        actualTPS,
		"tick_count":        gt.tickCount,
		"uptime_seconds":    uptime.Seconds(),
		"average_tick_time": gt.averageTickTime,
		"max_observed_tick": gt.maxObservedTick,
		"is_running":        gt.isRunning,
		"systems_count":     len(gt.systems),
	}
}

func (gt *GameTicker) updateTickMetrics(tickTime time.Duration) {
	if tickTime > gt.maxObservedTick {
		gt.maxObservedTick = tickTime
	}

	// Простое скользящее среднее
	if gt.averageTickTime == 0 {
		gt.averageTickTime = tickTime
	} else {
		gt.averageTickTime = (gt.averageTickTime*9 + tickTime) / 10
	}
}

func (gt *GameTicker) checkPerformance(tickTime time.Duration) {
	if tickTime > gt.tickDuration {
		gt.logger.Printf("[GameTicker] ПРЕДУПРЕЖДЕНИЕ: Кадр превысил бюджет: %v (цель: %v)",
			tickTime, gt.tickDuration)
	} else if tickTime > gt.warningThreshold {
		gt.logger.Printf("[GameTicker] ПРЕДУПРЕЖДЕНИЕ: Медленный кадр: %v (цель: %v)",
			tickTime, gt.tickDuration)
	}
}

// PerformanceMonitor отслеживает производительность каждой системы
type PerformanceMonitor struct {
	systemMetrics map[string]*SystemMetrics
	mutex         sync.RWMutex

	metricsWindow int // Количество последних кадров для усреднения
}

// SystemMetrics метрики производительности системы
type SystemMetrics struct {
	Name              string
	LastExecutionTime time.Duration
	AverageTime       time.Duration
	MaxTime           time.Duration
	TotalExecutions   uint64
	Errors            uint64

	// Скользящее окно для вычисления среднего
	recentTimes  []time.Duration
	recentIndex  int
	windowFilled bool
}

// NewPerformanceMonitor создает монитор с заданным окном усреднения
func NewPerformanceMonitor(windowSize int) *PerformanceMonitor {
	return &PerformanceMonitor{
		systemMetrics: make(map[string]*SystemMetrics),
		metricsWindow: windowSize,
	}
}

func (pm *PerformanceMonitor) initSystemMetrics(systemName string) {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()

	pm.systemMetrics[systemName] = &SystemMetrics{
		Name:        systemName,
		recentTimes: make([]time.Duration, pm.metricsWindow),
	}
}

func (pm *PerformanceMonitor) recordExecution(systemName string, executionTime time.Duration) {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()

	metrics, exists := pm.systemMetrics[systemName]
	if !exists {
		return
	}

	metrics.LastExecutionTime = executionTime
	metrics.TotalExecutions++

	if executionTime > metrics.MaxTime {
		metrics.MaxTime = executionTime
	}

	metrics.recentTimes[metrics.recentIndex] = executionTime
	metrics.recentIndex = (metrics.recentIndex + 1) % pm.metricsWindow

	if !metrics.windowFilled && metrics.recentIndex == 0 {
		metrics.windowFilled = true
	}

	pm.recalculateAverage(metrics)
}

func (pm *PerformanceMonitor) recordError(systemName string) {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()

	if metrics, exists := pm.systemMetrics[systemName]; exists {
		metrics.Errors++
	}
}

func (pm *PerformanceMonitor) recalculateAverage(metrics *SystemMetrics) {
	var total time.Duration
	var count int

	limit := pm.metricsWindow
	if !metrics.windowFilled {
		limit = metrics.recentIndex
	}

	for i := 0; i < limit; i++ {
		total += metrics.recentTimes[i]
		count++
	}

	if count > 0 {
		metrics.AverageTime = total / time.Duration(count)
	}
}

// GetSystemsStats возвращает метрики всех систем
func (pm *PerformanceMonitor) GetSystemsStats() map[string]interface{} {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()

	systemsStats := make(map[string]interface{})

	for name, metrics := range pm.systemMetrics {
		systemsStats[name] = map[string]interface{}{
			"last_execution_time": metrics.LastExecutionTime,
			"average_time":        metrics.AverageTime,
			"max_time":            metrics.MaxTime,
			"total_executions":    metrics.TotalExecutions,
			"errors":              metrics.Errors,
		}
	}

	return systemsStats
}
