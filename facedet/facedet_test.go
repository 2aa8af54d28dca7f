package facedet

import (
	"image"
	"math"
	"testing"
)

func TestEyeBars(t *testing.T) {
	faces := []image.Rectangle{image.Rect(100, 100, 300, 300)}
	bars := EyeBars(faces)

	if len(bars) != 1 {
		t.Fatalf("len(bars) = %d, want 1", len(bars))
	}
	b := bars[0]
	approx := func(got, want float64) bool { return math.Abs(got-want) < 1e-9 }

	// 200x200 box: eye line at 100 + 200*0.42, insets 200*0.08 on each side,
	// thickness 200*0.24.
	if !approx(b.Start.Y, 184) || !approx(b.End.Y, 184) {
		t.Errorf("bar y = %v..%v, want 184", b.Start.Y, b.End.Y)
	}
	if !approx(b.Start.X, 116) || !approx(b.End.X, 284) {
		t.Errorf("bar x = %v..%v, want 116..284", b.Start.X, b.End.X)
	}
	if !approx(b.Thickness, 48) {
		t.Errorf("thickness = %v, want 48", b.Thickness)
	}
}

func TestEyeBarsSkipsDegenerate(t *testing.T) {
	faces := []image.Rectangle{
		image.Rect(0, 0, 0, 50),
		image.Rect(10, 10, 60, 60),
		image.Rect(5, 5, 5, 5),
	}
	bars := EyeBars(faces)
	if len(bars) != 1 {
		t.Fatalf("len(bars) = %d, want 1", len(bars))
	}
}

func TestNewDetectorErrors(t *testing.T) {
	if _, err := NewDetector(Config{}); err == nil {
		t.Error("empty config: err = nil, want error")
	}
	cfg := DefaultConfig()
	cfg.CascadeFile = "/nonexistent/cascade.xml"
	if _, err := NewDetector(cfg); err == nil {
		t.Error("missing cascade: err = nil, want error")
	}
}
