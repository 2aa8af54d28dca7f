package mesen

import "testing"

func TestPlaceLoupePriority(t *testing.T) {
	vp := Size{W: 800, H: 600}
	m := DefaultLoupeMetrics()
	gap := m.Diameter/2 + m.Standoff

	tests := []struct {
		name   string
		anchor Point
		want   RelativePosition
	}{
		{"center of screen", Point{X: 400, Y: 300}, LoupeUpLeft},
		{"left of center", Point{X: 100, Y: 300}, LoupeUp},
		{"near left edge", Point{X: 20, Y: 300}, LoupeUpRight},
		{"top-left corner", Point{X: 20, Y: 20}, LoupeDownRight},
		{"top edge", Point{X: 400, Y: 20}, LoupeDownRight},
		{"top-right corner", Point{X: 780, Y: 20}, LoupeDownLeft},
		{"near right edge", Point{X: 780, Y: 300}, LoupeUpLeft},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlaceLoupe(tt.anchor, vp, m)
			if got.Position != tt.want {
				t.Fatalf("PlaceLoupe(%v) position = %v, want %v", tt.anchor, got.Position, tt.want)
			}
			r := m.Diameter / 2
			c := got.Center
			if c.X-r < 0 || c.X+r > vp.W || c.Y-r < 0 || c.Y+r > vp.H {
				t.Errorf("loupe circle at %v leaves the viewport", c)
			}
			// Up-left centers sit one gap away on both axes.
			if tt.want == LoupeUpLeft {
				want := Point{X: tt.anchor.X - gap, Y: tt.anchor.Y - gap}
				if !pointsApprox(c, want, epsilon) {
					t.Errorf("center = %v, want %v", c, want)
				}
			}
		})
	}
}

func TestPlaceLoupeFallbackClamps(t *testing.T) {
	// A viewport smaller than the loupe: no candidate can fit, so the first
	// candidate is clamped on-screen.
	m := DefaultLoupeMetrics()
	vp := Size{W: m.Diameter - 20, H: m.Diameter - 20}
	got := PlaceLoupe(Point{X: 50, Y: 50}, vp, m)

	if got.Position != loupePriority[0] {
		t.Errorf("fallback position = %v, want %v", got.Position, loupePriority[0])
	}
	r := m.Diameter / 2
	// With an inverted clamp range the center pins to the low bound.
	if got.Center.X != r || got.Center.Y != r {
		t.Errorf("fallback center = %v, want {%v %v}", got.Center, r, r)
	}
}

func TestPlaceLoupeIsPure(t *testing.T) {
	vp := Size{W: 800, H: 600}
	m := DefaultLoupeMetrics()
	anchor := Point{X: 123, Y: 456}

	a := PlaceLoupe(anchor, vp, m)
	b := PlaceLoupe(anchor, vp, m)
	if a != b {
		t.Errorf("PlaceLoupe not deterministic: %+v vs %+v", a, b)
	}
}
