package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"x-city/backend/internal/physics"
)

func newTestPair() (*physics.World, *Scene, *Bindings) {
	w := physics.NewWorld(mgl32.Vec3{0, -20, 0}, 4)
	s := NewScene()
	return w, s, NewBindings(w, s)
}

func TestBind_DoubleBindIgnored(t *testing.T) {
	_, _, b := newTestPair()

	b.Bind("body", "proxy-1")
	b.Bind("body", "proxy-2") // должно быть проигнорировано

	pairs := b.Pairs()
	if pairs["body"] != "proxy-1" {
		t.Errorf("Double bind overwrote entry: %q", pairs["body"])
	}
	if b.Len() != 1 {
		t.Errorf("Expected 1 binding, got %d", b.Len())
	}
}

func TestSyncAll_CopiesTransform(t *testing.T) {
	w, s, b := newTestPair()

	body := physics.NewBody("ball", physics.NewSphereShape(1), mgl32.Vec3{0, 10, 0}, 1)
	w.AddBody(body)

	proxy := &Proxy{ID: "ball", Rotation: mgl32.QuatIdent()}
	s.Add(proxy)
	b.Bind("ball", "ball")

	w.Step(1.0 / 60.0)
	b.SyncAll()

	if proxy.Position != body.Position {
		t.Errorf("Proxy position %v does not match body position %v", proxy.Position, body.Position)
	}
	if proxy.Rotation != body.Rotation {
		t.Errorf("Proxy rotation %v does not match body rotation %v", proxy.Rotation, body.Rotation)
	}
}

func TestSyncAll_UnboundProxyUntouched(t *testing.T) {
	w, s, b := newTestPair()

	body := physics.NewBody("ball", physics.NewSphereShape(1), mgl32.Vec3{5, 5, 5}, 1)
	w.AddBody(body)

	proxy := &Proxy{ID: "decoration", Position: mgl32.Vec3{1, 2, 3}, Rotation: mgl32.QuatIdent()}
	s.Add(proxy)

	b.SyncAll()

	if proxy.Position != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("Unbound proxy was moved: %v", proxy.Position)
	}
}

func TestUnbind(t *testing.T) {
	w, s, b := newTestPair()

	body := physics.NewBody("ball", physics.NewSphereShape(1), mgl32.Vec3{}, 1)
	w.AddBody(body)
	proxy := &Proxy{ID: "ball", Rotation: mgl32.QuatIdent()}
	s.Add(proxy)

	b.Bind("ball", "ball")
	b.Unbind("ball")

	if b.Bound("ball") {
		t.Error("Expected binding to be removed")
	}

	body.Position = mgl32.Vec3{9, 9, 9}
	b.SyncAll()

	if proxy.Position == body.Position {
		t.Error("Unbound proxy must not be synced")
	}
}

func TestScene_RemoveReleasesProxy(t *testing.T) {
	_, s, _ := newTestPair()

	proxy := &Proxy{ID: "p", Rotation: mgl32.QuatIdent()}
	s.Add(proxy)

	var removed []string
	s.OnRemove(func(id string) { removed = append(removed, id) })

	s.Remove("p")

	if !proxy.Released() {
		t.Error("Expected proxy resources to be released")
	}
	if len(removed) != 1 || removed[0] != "p" {
		t.Errorf("Expected remove notification for p, got %v", removed)
	}

	// Повторное удаление - no-op без второго уведомления
	s.Remove("p")
	if len(removed) != 1 {
		t.Errorf("Remove notified twice: %v", removed)
	}
}
