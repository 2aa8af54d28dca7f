package mesen

import (
	"image"
	"testing"
)

func newReplayApp() *App {
	app := NewApp(image.NewRGBA(image.Rect(0, 0, 800, 600)), Size{W: 800, H: 600})
	clock := &frameClock{now: gestureEpoch}
	app.Input.Now = clock.tick
	return app
}

// runReplay drives the replay the way App.Update does, one injected frame
// per tick, skipping the real-input path.
func runReplay(t *testing.T, app *App, r *Replay) {
	t.Helper()
	app.SetReplay(r)
	for i := 0; i < 1000 && !r.Done(); i++ {
		r.step(app)
		if app.Input.InjectPending() {
			app.Input.Poll()
		}
	}
	if !r.Done() {
		t.Fatal("replay did not finish")
	}
}

func TestLoadReplayErrors(t *testing.T) {
	if _, err := LoadReplay([]byte("{")); err == nil {
		t.Fatal("malformed JSON should fail")
	}
	if _, err := LoadReplay([]byte(`{"steps":[]}`)); err == nil {
		t.Fatal("empty script should fail")
	}
	if _, err := LoadReplay([]byte(`{"steps":[{"action":"swipe"}]}`)); err == nil {
		t.Fatal("unknown action should fail")
	}
}

func TestReplayDrawScript(t *testing.T) {
	app := newReplayApp()
	r, err := LoadReplay([]byte(`{"steps":[
		{"action":"hold","x":200,"y":200,"frames":70},
		{"action":"drag","fromX":200,"fromY":200,"toX":280,"toY":200,"frames":6},
		{"action":"wait","frames":2}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	runReplay(t, app, r)
	if got := len(app.Editor.Session().Strokes()); got != 1 {
		t.Fatalf("committed bars = %d, want 1", got)
	}
}

func TestReplayDoubleTapZoom(t *testing.T) {
	app := newReplayApp()
	v := app.Editor.Viewport()
	fit := v.Scale()
	r, err := LoadReplay([]byte(`{"steps":[
		{"action":"tap","x":400,"y":300},
		{"action":"wait","frames":3},
		{"action":"tap","x":400,"y":300}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	runReplay(t, app, r)
	if !v.Animating() {
		t.Fatal("double tap should start a zoom animation")
	}
	for i := 0; i < 600 && v.Animating(); i++ {
		app.Editor.Step(1.0/60, app.Input.Now())
	}
	if v.Scale() <= fit {
		t.Fatalf("scale = %v, want above fit %v", v.Scale(), fit)
	}
}

func TestReplayScreenshotQueues(t *testing.T) {
	app := newReplayApp()
	r, err := LoadReplay([]byte(`{"steps":[{"action":"screenshot","label":"start"}]}`))
	if err != nil {
		t.Fatal(err)
	}

	runReplay(t, app, r)
	if len(app.screenshotQueue) != 1 || app.screenshotQueue[0] != "start" {
		t.Fatalf("screenshot queue = %v, want [start]", app.screenshotQueue)
	}
}

func TestReplayPinchScript(t *testing.T) {
	app := newReplayApp()
	v := app.Editor.Viewport()
	before := v.Scale()
	r, err := LoadReplay([]byte(`{"steps":[
		{"action":"pinch","x":400,"y":300,"fromDist":100,"toDist":250,"frames":20}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	runReplay(t, app, r)
	if v.Scale() <= before {
		t.Fatalf("pinch script did not zoom: %v -> %v", before, v.Scale())
	}
}
