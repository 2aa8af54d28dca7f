package mesen

import (
	"testing"
)

// setupBenchSession builds a session holding n committed bars laid out in a
// grid, one bar per 40x30 cell.
func setupBenchSession(n int) *DrawingSession {
	d := NewDrawingSession()
	bars := make([]Stroke, 0, n)
	for i := 0; i < n; i++ {
		x := float64(i%100) * 40
		y := float64(i/100) * 30
		bars = append(bars, Stroke{
			Start:     Point{X: x, Y: y},
			End:       Point{X: x + 30, Y: y},
			Thickness: 12,
		})
	}
	d.AddStrokes(bars)
	return d
}

// --- Hit Testing Benchmarks ---

func BenchmarkHitTest_1000Bars(b *testing.B) {
	d := setupBenchSession(1000)
	p := Point{X: 2015, Y: 150} // inside a bar near the middle of the grid

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		d.HitTest(p)
	}
}

func BenchmarkHitTest_1000Bars_Miss(b *testing.B) {
	d := setupBenchSession(1000)
	p := Point{X: -500, Y: -500}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		d.HitTest(p)
	}
}

// --- Gesture Cycle Benchmarks ---

func BenchmarkGesture_PanDrag(b *testing.B) {
	_, _, g := testRig()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		g.Begin(one(400, 300), tAt(0))
		for j := 0; j < 16; j++ {
			g.Update(one(400+float64(j)*5, 300), tAt(120+j*16))
		}
		g.End(nil, tAt(400))
	}
}

func BenchmarkGesture_PinchZoom(b *testing.B) {
	_, _, g := testRig()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		g.Begin(two(380, 300, 420, 300), tAt(0))
		for j := 1; j <= 16; j++ {
			d := float64(j) * 5
			g.Update(two(380-d, 300, 420+d, 300), tAt(j*16))
		}
		g.End(nil, tAt(300))
	}
}

func BenchmarkGesture_DwellDrawCycle(b *testing.B) {
	_, d, g := testRig()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		g.Begin(one(200, 200), tAt(0))
		g.Update(one(200, 200), tAt(120))  // classify into positioning
		g.Update(one(200, 200), tAt(1200)) // dwell fires, drawing opens
		for j := 1; j <= 16; j++ {
			g.Update(one(200+float64(j)*4, 200), tAt(1200+j*16))
		}
		g.End(nil, tAt(1500))
		d.Undo() // keep the session size constant across iterations
	}
}

// --- Viewport Benchmarks ---

func BenchmarkViewport_ZoomAtPoint(b *testing.B) {
	v, _, _ := testRig()
	anchor := Point{X: 400, Y: 300}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		v.ZoomAtPoint(2.0, anchor)
		v.ZoomAtPoint(1.0, anchor)
	}
}

func BenchmarkViewport_PanCycle(b *testing.B) {
	v, _, _ := testRig()
	v.ZoomAtPoint(3.0, Point{X: 400, Y: 300}) // give the pan room to clamp in

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		v.BeginPan(Point{X: 400, Y: 300})
		for j := 1; j <= 16; j++ {
			v.Pan(Point{X: 400 - float64(j)*3, Y: 300 + float64(j)*2})
		}
		v.EndPan()
	}
}

// --- Loupe Benchmarks ---

func BenchmarkPlaceLoupe(b *testing.B) {
	m := DefaultLoupeMetrics()
	view := Size{W: 800, H: 600}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		PlaceLoupe(Point{X: float64(i % 800), Y: float64(i % 600)}, view, m)
	}
}
