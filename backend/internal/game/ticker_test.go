package game

import (
	"bytes"
	"errors"
	"log"
	"testing"
	"time"
)

// fakeSystem записывает факт и порядок своих вызовов
type fakeSystem struct {
	name     string
	priority int
	calls    int
	order    *[]string
	err      error
}

func (f *fakeSystem) Update(time.Duration) error {
	f.calls++
	if f.order != nil {
		*f.order = append(*f.order, f.name)
	}
	return f.err
}

func (f *fakeSystem) GetName() string  { return f.name }
func (f *fakeSystem) GetPriority() int { return f.priority }

func TestRegisterSystem_PriorityOrder(t *testing.T) {
	gt := NewGameTicker(60, testLogger())

	var order []string
	gt.RegisterSystem(&fakeSystem{name: "third", priority: 30, order: &order})
	gt.RegisterSystem(&fakeSystem{name: "first", priority: 10, order: &order})
	gt.RegisterSystem(&fakeSystem{name: "second", priority: 20, order: &order})

	gt.Tick(time.Second / 60)

	want := []string{"first", "second", "third"}
	if len(order) != len(want) {
		t.Fatalf("Expected %d calls, got %d", len(want), len(order))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("Call %d: got %s, want %s", i, order[i], want[i])
		}
	}
}

func TestTicker_StatsAccumulate(t *testing.T) {
	gt := NewGameTicker(60, testLogger())
	sys := &fakeSystem{name: "work", priority: 10}
	gt.RegisterSystem(sys)

	for i := 0; i < 3; i++ {
		gt.executeTick(time.Now())
	}

	if gt.GetTickCount() != 3 {
		t.Errorf("Expected tick count 3, got %d", gt.GetTickCount())
	}
	if sys.calls != 3 {
		t.Errorf("Expected 3 system calls, got %d", sys.calls)
	}

	stats := gt.GetStats()
	if stats["tick_count"] != uint64(3) {
		t.Errorf("Wrong tick_count in stats: %v", stats["tick_count"])
	}
	if stats["systems_count"] != 1 {
		t.Errorf("Wrong systems_count in stats: %v", stats["systems_count"])
	}

	sysStats, ok := gt.perfMonitor.GetSystemsStats()["work"].(map[string]interface{})
	if !ok {
		t.Fatal("No metrics recorded for the system")
	}
	if sysStats["total_executions"] != uint64(3) {
		t.Errorf("Wrong total_executions: %v", sysStats["total_executions"])
	}
}

func TestTicker_ErrorsCounted(t *testing.T) {
	gt := NewGameTicker(60, testLogger())
	gt.RegisterSystem(&fakeSystem{name: "broken", priority: 10, err: errors.New("boom")})

	gt.Tick(time.Second / 60)
	gt.Tick(time.Second / 60)

	sysStats, ok := gt.perfMonitor.GetSystemsStats()["broken"].(map[string]interface{})
	if !ok {
		t.Fatal("No metrics recorded for the system")
	}
	if sysStats["errors"] != uint64(2) {
		t.Errorf("Expected 2 recorded errors, got %v", sysStats["errors"])
	}
}

// Остановка цикла печатает итоговую статистику кадров и систем
func TestStop_LogsFinalStats(t *testing.T) {
	var buf bytes.Buffer
	// TPS 1: кадр не успевает сработать между Start и Stop,
	// лог пишет только главная горутина
	gt := NewGameTicker(1, log.New(&buf, "", 0))
	gt.RegisterSystem(&fakeSystem{name: "work", priority: 10})

	gt.Start()
	gt.Stop()

	out := buf.String()
	if !bytes.Contains([]byte(out), []byte("Остановка кадрового цикла")) {
		t.Errorf("No final frame stats in log:\n%s", out)
	}
	if !bytes.Contains([]byte(out), []byte("Система work")) {
		t.Errorf("No per-system stats in log:\n%s", out)
	}
}
