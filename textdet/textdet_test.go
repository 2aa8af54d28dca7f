package textdet

import (
	"image"
	"math"
	"testing"
)

func approx(got, want float64) bool { return math.Abs(got-want) < 1e-9 }

func TestCoverBarsHorizontal(t *testing.T) {
	regions := []Region{
		{Text: "word", Confidence: 0.9, Box: image.Rect(100, 100, 200, 120)},
	}
	bars := CoverBars(regions)

	if len(bars) != 1 {
		t.Fatalf("len(bars) = %d, want 1", len(bars))
	}
	b := bars[0]
	if !approx(b.Start.X, 100) || !approx(b.End.X, 200) {
		t.Errorf("bar x = %v..%v, want 100..200", b.Start.X, b.End.X)
	}
	if !approx(b.Start.Y, 110) || !approx(b.End.Y, 110) {
		t.Errorf("bar y = %v..%v, want 110", b.Start.Y, b.End.Y)
	}
	if !approx(b.Thickness, 24) {
		t.Errorf("thickness = %v, want 24", b.Thickness)
	}
}

func TestCoverBarsVertical(t *testing.T) {
	// Taller than wide: the bar runs along the vertical axis.
	regions := []Region{
		{Text: "縦", Box: image.Rect(50, 10, 70, 110)},
	}
	bars := CoverBars(regions)

	if len(bars) != 1 {
		t.Fatalf("len(bars) = %d, want 1", len(bars))
	}
	b := bars[0]
	if !approx(b.Start.X, 60) || !approx(b.End.X, 60) {
		t.Errorf("bar x = %v..%v, want 60", b.Start.X, b.End.X)
	}
	if !approx(b.Start.Y, 10) || !approx(b.End.Y, 110) {
		t.Errorf("bar y = %v..%v, want 10..110", b.Start.Y, b.End.Y)
	}
	if !approx(b.Thickness, 24) {
		t.Errorf("thickness = %v, want 24", b.Thickness)
	}
}

func TestCoverBarsSkipsDegenerate(t *testing.T) {
	regions := []Region{
		{Text: "", Box: image.Rect(0, 0, 10, 0)},
		{Text: "ok", Box: image.Rect(0, 0, 40, 10)},
	}
	if got := len(CoverBars(regions)); got != 1 {
		t.Errorf("len(bars) = %d, want 1", got)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Lang != "eng" || cfg.Level != LevelWord {
		t.Errorf("DefaultConfig() = %+v, want eng word-level", cfg)
	}
}
