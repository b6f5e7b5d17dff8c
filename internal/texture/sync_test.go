package texture

import (
	"errors"
	"image"
	"sync"
	"testing"
	"time"

	"mug-studio/internal/render"
	"mug-studio/internal/scene"
)

type fakeMaterial struct {
	mu       sync.Mutex
	setCount int
	dirty    bool
	texture  image.Image
}

func (m *fakeMaterial) SetTexture(img image.Image) {
	m.mu.Lock()
	m.setCount++
	m.texture = img
	m.mu.Unlock()
}

func (m *fakeMaterial) MarkDirty() {
	m.mu.Lock()
	m.dirty = true
	m.mu.Unlock()
}

func (m *fakeMaterial) sets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setCount
}

func (m *fakeMaterial) isDirty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dirty
}

func (m *fakeMaterial) current() image.Image {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.texture
}

type nilSource struct{}

func (nilSource) Resolve(string) image.Image { return nil }

func testPipeline(window time.Duration) (*Pipeline, *fakeMaterial) {
	s := scene.NewScene()
	o := scene.NewObject(scene.KindText, scene.RoleOrdinary)
	o.Text = &scene.TextPayload{Content: "hi", Font: "regular", FontSize: 24}
	o.Width, o.Height = 50, 25
	o.X, o.Y = 30, 15
	s.Add(o)

	m := &fakeMaterial{}
	p := NewPipelineWithWindow(s, render.NewRasterizer(nilSource{}), m, window)
	p.SetCanvasSize(60, 30)
	return p, m
}

func TestBurstCollapsesToOneSync(t *testing.T) {
	p, m := testPipeline(30 * time.Millisecond)

	for i := 0; i < 10; i++ {
		p.ScheduleSync()
	}

	deadline := time.After(time.Second)
	for p.SyncCount() < 1 {
		select {
		case <-deadline:
			t.Fatal("sync never ran")
		case <-time.After(5 * time.Millisecond):
		}
	}

	// Give a straggler a chance to fire, then confirm it did not.
	time.Sleep(80 * time.Millisecond)
	if got := p.SyncCount(); got != 1 {
		t.Errorf("sync count = %d, want 1", got)
	}
	if m.sets() != 1 {
		t.Errorf("texture sets = %d, want 1", m.sets())
	}
	if !m.isDirty() {
		t.Error("material was not marked dirty")
	}
}

func TestSeparateBurstsSyncSeparately(t *testing.T) {
	p, _ := testPipeline(20 * time.Millisecond)

	p.ScheduleSync()
	time.Sleep(80 * time.Millisecond)
	p.ScheduleSync()
	time.Sleep(80 * time.Millisecond)

	if got := p.SyncCount(); got != 2 {
		t.Errorf("sync count = %d, want 2", got)
	}
}

func TestDecodeFailureKeepsPreviousTexture(t *testing.T) {
	p, m := testPipeline(10 * time.Millisecond)

	p.SyncNow()
	if m.sets() != 1 {
		t.Fatalf("initial sync sets = %d, want 1", m.sets())
	}
	previous := m.current()

	p.decode = func([]byte) (image.Image, error) {
		return nil, errors.New("corrupt bitmap")
	}
	p.SyncNow()

	if m.sets() != 1 {
		t.Errorf("texture sets = %d after corrupt decode, want 1", m.sets())
	}
	if m.current() != previous {
		t.Error("previous texture was replaced")
	}
	if p.SyncCount() != 1 {
		t.Errorf("sync count = %d, want 1 (failed run does not count)", p.SyncCount())
	}
}

func TestMultiplierScalesWithViewport(t *testing.T) {
	p, _ := testPipeline(10 * time.Millisecond)

	tests := []struct {
		viewport float64
		want     float64
	}{
		{0, 1},
		{250, 1},
		{500, 1},
		{1000, 2},
		{1750, 3.5},
		{5000, 4},
	}
	for _, tt := range tests {
		p.SetViewportWidth(tt.viewport)
		if got := p.Multiplier(); got != tt.want {
			t.Errorf("viewport %v: multiplier = %v, want %v", tt.viewport, got, tt.want)
		}
	}
}

func TestSyncRendersWhileObjectIsStaged(t *testing.T) {
	p, _ := testPipeline(time.Millisecond)
	id := p.sceneRef.Objects()[0].ID

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 300; i++ {
			p.sceneRef.Stage(id, func(o *scene.Object) { o.X += 0.5 })
		}
	}()
	for i := 0; i < 30; i++ {
		p.SyncNow()
	}
	<-done

	if got := p.SyncCount(); got != 30 {
		t.Errorf("sync count = %d, want 30", got)
	}
}

func TestSyncWithoutCanvasIsNoop(t *testing.T) {
	s := scene.NewScene()
	m := &fakeMaterial{}
	p := NewPipelineWithWindow(s, render.NewRasterizer(nilSource{}), m, 10*time.Millisecond)

	p.SyncNow()
	if m.sets() != 0 || p.SyncCount() != 0 {
		t.Error("sync must be a no-op before the canvas size is set")
	}
}
