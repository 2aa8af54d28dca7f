package mesen

import "testing"

func bar(x1, y1, x2, y2, thickness float64) Stroke {
	return Stroke{Start: Point{X: x1, Y: y1}, End: Point{X: x2, Y: y2}, Thickness: thickness}
}

func TestHitTest(t *testing.T) {
	d := NewDrawingSession()
	d.strokes = []Stroke{
		bar(0, 0, 100, 0, 10),  // limit 5+10 = 15
		bar(0, 50, 100, 50, 2), // limit 1+10 = 11
	}

	tests := []struct {
		name string
		p    Point
		want int
	}{
		{"on first stroke", Point{X: 50, Y: 0}, 0},
		{"within margin of first", Point{X: 50, Y: 14}, 0},
		{"outside margin of first", Point{X: 50, Y: 16}, -1},
		{"thin stroke within margin", Point{X: 50, Y: 60}, 1},
		{"thin stroke outside margin", Point{X: 50, Y: 62}, -1},
		{"between strokes, closer to second", Point{X: 50, Y: 41}, 1},
		{"far away", Point{X: 50, Y: 300}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.HitTest(tt.p); got != tt.want {
				t.Errorf("HitTest(%v) = %d, want %d", tt.p, got, tt.want)
			}
		})
	}
}

func TestHitTestClosestWins(t *testing.T) {
	d := NewDrawingSession()
	d.strokes = []Stroke{
		bar(0, 0, 100, 0, 20),
		bar(0, 8, 100, 8, 20),
	}
	// Both strokes are in range of y=6; the second is closer.
	if got := d.HitTest(Point{X: 50, Y: 6}); got != 1 {
		t.Errorf("HitTest = %d, want 1", got)
	}
}

func TestCommitStrokeLengthFilter(t *testing.T) {
	d := NewDrawingSession()
	d.SetMinStrokeLength(5)

	d.BeginStroke(Point{}, 10)
	d.ExtendStroke(Point{X: 3, Y: 0})
	if d.CommitStroke() {
		t.Fatal("CommitStroke() = true for a stroke shorter than the minimum")
	}
	if n := len(d.Strokes()); n != 0 {
		t.Fatalf("len(Strokes()) = %d after rejected commit, want 0", n)
	}
	if d.CanUndo() {
		t.Fatal("CanUndo() = true after rejected commit")
	}

	d.BeginStroke(Point{}, 10)
	d.ExtendStroke(Point{X: 8, Y: 0})
	if !d.CommitStroke() {
		t.Fatal("CommitStroke() = false for a stroke longer than the minimum")
	}
	if n := len(d.Strokes()); n != 1 {
		t.Fatalf("len(Strokes()) = %d, want 1", n)
	}
	if _, ok := d.ActiveStroke(); ok {
		t.Fatal("ActiveStroke() still present after commit")
	}
}

func TestDiscardStroke(t *testing.T) {
	d := NewDrawingSession()
	d.BeginStroke(Point{}, 10)
	d.ExtendStroke(Point{X: 50, Y: 0})
	d.DiscardStroke()

	if _, ok := d.ActiveStroke(); ok {
		t.Fatal("ActiveStroke() present after discard")
	}
	if d.CommitStroke() {
		t.Fatal("CommitStroke() = true after discard")
	}
}

func TestExtendWithoutBegin(t *testing.T) {
	d := NewDrawingSession()
	d.ExtendStroke(Point{X: 10, Y: 10})
	if _, ok := d.ActiveStroke(); ok {
		t.Fatal("ExtendStroke created a stroke without BeginStroke")
	}
}

func TestSelectTranslateCommit(t *testing.T) {
	d := NewDrawingSession()
	d.BeginStroke(Point{}, 4)
	d.ExtendStroke(Point{X: 10, Y: 0})
	d.CommitStroke()

	// Grab off-center: the grab point must track the pointer, not the
	// centroid.
	d.SelectStroke(0, Point{X: 2, Y: 0})
	if got := d.SelectedIndex(); got != 0 {
		t.Fatalf("SelectedIndex() = %d, want 0", got)
	}
	d.TranslateSelected(Point{X: 12, Y: 5})

	got := d.Strokes()[0]
	want := bar(10, 5, 20, 5, 4)
	if !strokesEqual(got, want) {
		t.Fatalf("stroke after translate = %+v, want %+v", got, want)
	}

	if !d.CommitTranslation() {
		t.Fatal("CommitTranslation() = false after a real move")
	}
	if got := d.SelectedIndex(); got != -1 {
		t.Fatalf("SelectedIndex() = %d after commit, want -1", got)
	}

	// The move is one undo step.
	if !d.Undo() {
		t.Fatal("Undo() = false after a committed move")
	}
	if got := d.Strokes()[0]; !strokesEqual(got, bar(0, 0, 10, 0, 4)) {
		t.Fatalf("stroke after undo = %+v, want original", got)
	}
}

func TestCommitTranslationWithoutMovement(t *testing.T) {
	d := NewDrawingSession()
	d.BeginStroke(Point{}, 4)
	d.ExtendStroke(Point{X: 10, Y: 0})
	d.CommitStroke()

	d.SelectStroke(0, Point{X: 5, Y: 0})
	if d.CommitTranslation() {
		t.Fatal("CommitTranslation() = true without movement")
	}

	// No snapshot was recorded: a single undo returns to the empty state.
	if !d.Undo() {
		t.Fatal("Undo() = false")
	}
	if n := len(d.Strokes()); n != 0 {
		t.Fatalf("len(Strokes()) after undo = %d, want 0 (no-move commit must not snapshot)", n)
	}
}

func TestCycleThickness(t *testing.T) {
	tests := []struct {
		name string
		cur  float64
		want float64
	}{
		{"first option", 2, 5},
		{"middle option", 10, 20},
		{"last option wraps", 60, 2},
		{"off-cycle value", 7, 10},
		{"above all options wraps", 100, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDrawingSession()
			d.strokes = []Stroke{bar(0, 0, 50, 0, tt.cur)}
			d.CycleThickness(0)
			if got := d.Strokes()[0].Thickness; got != tt.want {
				t.Errorf("thickness after cycle = %v, want %v", got, tt.want)
			}
			if !d.CanUndo() {
				t.Error("CanUndo() = false after cycle")
			}
		})
	}
}

func TestDeleteStroke(t *testing.T) {
	d := NewDrawingSession()
	d.strokes = []Stroke{bar(0, 0, 10, 0, 4), bar(0, 10, 10, 10, 4)}
	d.DeleteStroke(0)

	if n := len(d.Strokes()); n != 1 {
		t.Fatalf("len(Strokes()) = %d, want 1", n)
	}
	if got := d.Strokes()[0]; !strokesEqual(got, bar(0, 10, 10, 10, 4)) {
		t.Fatalf("remaining stroke = %+v, want the second", got)
	}
	d.DeleteStroke(5) // out of range: no-op
	if n := len(d.Strokes()); n != 1 {
		t.Fatalf("len(Strokes()) = %d after out-of-range delete, want 1", n)
	}
}

func TestAddStrokes(t *testing.T) {
	d := NewDrawingSession()
	d.strokes = []Stroke{bar(0, 0, 10, 0, 4)}
	d.history = [][]Stroke{nil, cloneStrokes(d.strokes)}
	d.cursor = 1

	added := d.AddStrokes([]Stroke{
		bar(0, 0, 10, 0, 4),   // duplicate
		bar(10, 0, 0, 0, 4),   // duplicate, flipped endpoints
		bar(5, 5, 5, 5, 4),    // zero length
		bar(0, 20, 10, 20, 4), // new
		bar(0, 40, 10, 40, 8), // new
	})
	if added != 2 {
		t.Fatalf("AddStrokes added %d, want 2", added)
	}
	if n := len(d.Strokes()); n != 3 {
		t.Fatalf("len(Strokes()) = %d, want 3", n)
	}

	// One snapshot per added stroke: undo peels them off one at a time.
	d.Undo()
	if n := len(d.Strokes()); n != 2 {
		t.Fatalf("len(Strokes()) after one undo = %d, want 2", n)
	}
	d.Undo()
	if n := len(d.Strokes()); n != 1 {
		t.Fatalf("len(Strokes()) after two undos = %d, want 1", n)
	}
}

func TestUndoRedo(t *testing.T) {
	d := NewDrawingSession()
	if d.CanUndo() {
		t.Fatal("CanUndo() = true on a fresh session")
	}
	if d.Undo() {
		t.Fatal("Undo() = true on a fresh session")
	}

	d.AddStrokes([]Stroke{bar(0, 0, 10, 0, 4), bar(0, 10, 10, 10, 4)})
	d.Undo()
	if !d.CanRedo() {
		t.Fatal("CanRedo() = false after undo")
	}
	d.Redo()
	if n := len(d.Strokes()); n != 2 {
		t.Fatalf("len(Strokes()) after redo = %d, want 2", n)
	}

	// A new edit after undo drops the redo tail.
	d.Undo()
	d.AddStrokes([]Stroke{bar(0, 20, 10, 20, 4)})
	if d.CanRedo() {
		t.Fatal("CanRedo() = true after a new edit")
	}
	if n := len(d.Strokes()); n != 2 {
		t.Fatalf("len(Strokes()) = %d, want 2", n)
	}
}

func TestUndoClearsSelection(t *testing.T) {
	d := NewDrawingSession()
	d.AddStrokes([]Stroke{bar(0, 0, 10, 0, 4)})
	d.SelectStroke(0, Point{X: 5, Y: 0})
	d.Undo()
	if got := d.SelectedIndex(); got != -1 {
		t.Fatalf("SelectedIndex() after undo = %d, want -1", got)
	}
}

func TestDefaultThicknessPolicy(t *testing.T) {
	policy := DefaultThicknessPolicy(DefaultThicknessOptions, 24)
	img := Size{W: 1000, H: 1000}

	tests := []struct {
		name  string
		scale float64
		want  float64
	}{
		{"scale 1 targets 24", 1, 20},
		{"zoomed in targets 6", 4, 5},
		{"zoomed out targets 48", 0.5, 40},
		{"guards zero scale", 0, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := policy(img, tt.scale); got != tt.want {
				t.Errorf("policy(scale=%v) = %v, want %v", tt.scale, got, tt.want)
			}
		})
	}
}
