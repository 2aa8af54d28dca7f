package mesen

import "math"

// DefaultHitMargin is the extra grab distance around a stroke, in image
// pixels, used by HitTest.
const DefaultHitMargin = 10.0

// DefaultThicknessOptions is the wrapping cycle of stroke thicknesses in
// image pixels.
var DefaultThicknessOptions = []float64{2, 5, 10, 20, 40, 60}

// Stroke is a straight censoring bar in image space. Thickness is the full
// bar width in image pixels.
type Stroke struct {
	Start     Point
	End       Point
	Thickness float64
}

// Length returns the distance between the stroke endpoints.
func (s Stroke) Length() float64 {
	return s.Start.Dist(s.End)
}

// centroid returns the midpoint of the stroke.
func (s Stroke) centroid() Point {
	return Point{X: (s.Start.X + s.End.X) / 2, Y: (s.Start.Y + s.End.Y) / 2}
}

// translated returns the stroke moved by d.
func (s Stroke) translated(d Point) Stroke {
	return Stroke{Start: s.Start.Add(d), End: s.End.Add(d), Thickness: s.Thickness}
}

// strokesEqual reports whether two strokes cover the same bar. Endpoint order
// does not matter.
func strokesEqual(a, b Stroke) bool {
	const eps = 1e-6
	if math.Abs(a.Thickness-b.Thickness) > eps {
		return false
	}
	same := pointNear(a.Start, b.Start, eps) && pointNear(a.End, b.End, eps)
	flipped := pointNear(a.Start, b.End, eps) && pointNear(a.End, b.Start, eps)
	return same || flipped
}

func pointNear(a, b Point, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps
}

// ThicknessPolicy picks the thickness, in image pixels, for a new stroke
// given the loaded image size and the current viewport scale.
type ThicknessPolicy func(image Size, scale float64) float64

// DefaultThicknessPolicy returns a policy that picks the option whose
// on-screen width at the current scale is closest to desiredScreen pixels.
func DefaultThicknessPolicy(options []float64, desiredScreen float64) ThicknessPolicy {
	return func(_ Size, scale float64) float64 {
		if len(options) == 0 {
			return desiredScreen
		}
		if scale <= 0 {
			scale = 1
		}
		target := desiredScreen / scale
		best := options[0]
		bestDiff := math.Abs(options[0] - target)
		for _, o := range options[1:] {
			if d := math.Abs(o - target); d < bestDiff {
				best, bestDiff = o, d
			}
		}
		return best
	}
}

// DrawingSession owns the committed strokes, the in-progress stroke, the
// moving-stroke selection, and a full-snapshot undo history. All geometry is
// in image space so strokes survive viewport changes unchanged.
type DrawingSession struct {
	// Options is the wrapping thickness cycle used by CycleThickness.
	Options []float64
	// HitMargin is the extra grab distance around a stroke in image pixels.
	HitMargin float64

	strokes   []Stroke
	minLength float64

	active *Stroke

	selected   int
	grabOffset Point
	preMove    Stroke

	history [][]Stroke
	cursor  int
}

// NewDrawingSession creates an empty session with the default thickness
// cycle and hit margin. The history starts with the empty state so the first
// edit can be undone.
func NewDrawingSession() *DrawingSession {
	return &DrawingSession{
		Options:   DefaultThicknessOptions,
		HitMargin: DefaultHitMargin,
		selected:  -1,
		history:   [][]Stroke{nil},
	}
}

// Strokes returns the committed strokes. The slice is owned by the session
// and must not be modified.
func (d *DrawingSession) Strokes() []Stroke { return d.strokes }

// ActiveStroke returns the in-progress stroke, if any.
func (d *DrawingSession) ActiveStroke() (Stroke, bool) {
	if d.active == nil {
		return Stroke{}, false
	}
	return *d.active, true
}

// SelectedIndex returns the index of the stroke being moved, or -1.
func (d *DrawingSession) SelectedIndex() int { return d.selected }

// SetMinStrokeLength sets the commit filter: strokes no longer than this, in
// image pixels, are discarded on commit. Callers typically set it to the
// click-distance threshold divided by the viewport scale when drawing
// starts, so an accidental dot never becomes a bar.
func (d *DrawingSession) SetMinStrokeLength(l float64) {
	d.minLength = l
}

// HitTest returns the index of the stroke whose segment is within
// thickness/2 + HitMargin of p, choosing the closest when several overlap,
// or -1 if none is in range.
func (d *DrawingSession) HitTest(p Point) int {
	best := -1
	bestDist := 0.0
	for i, s := range d.strokes {
		dist := distToSegment(p, s.Start, s.End)
		if dist > s.Thickness/2+d.HitMargin {
			continue
		}
		if best == -1 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}

// --- Drawing ---

// BeginStroke starts an in-progress stroke at p with the given thickness.
// Any previous in-progress stroke is dropped.
func (d *DrawingSession) BeginStroke(p Point, thickness float64) {
	d.active = &Stroke{Start: p, End: p, Thickness: thickness}
}

// ExtendStroke moves the free endpoint of the in-progress stroke. No-op when
// nothing is being drawn.
func (d *DrawingSession) ExtendStroke(p Point) {
	if d.active == nil {
		return
	}
	d.active.End = p
}

// CommitStroke finishes the in-progress stroke. Strokes no longer than the
// minimum length are discarded. Reports whether a stroke was committed.
func (d *DrawingSession) CommitStroke() bool {
	if d.active == nil {
		return false
	}
	s := *d.active
	d.active = nil
	if s.Length() <= d.minLength {
		return false
	}
	d.strokes = append(d.strokes, s)
	d.push()
	return true
}

// DiscardStroke drops the in-progress stroke without committing it.
func (d *DrawingSession) DiscardStroke() {
	d.active = nil
}

// --- Moving ---

// SelectStroke starts moving the stroke at index i, grabbed at the given
// image-space anchor. The grab point keeps its position on the stroke while
// it moves.
func (d *DrawingSession) SelectStroke(i int, anchor Point) {
	if i < 0 || i >= len(d.strokes) {
		return
	}
	d.selected = i
	d.preMove = d.strokes[i]
	d.grabOffset = anchor.Sub(d.preMove.centroid())
}

// TranslateSelected moves the selected stroke so its grab point follows p.
func (d *DrawingSession) TranslateSelected(p Point) {
	if d.selected < 0 {
		return
	}
	target := p.Sub(d.grabOffset)
	d.strokes[d.selected] = d.preMove.translated(target.Sub(d.preMove.centroid()))
}

// RevertTranslation puts the selected stroke back where it was when
// selected. The selection stays active.
func (d *DrawingSession) RevertTranslation() {
	if d.selected < 0 {
		return
	}
	d.strokes[d.selected] = d.preMove
}

// CommitTranslation finishes a move and clears the selection. It records
// an undo snapshot and reports true only when the stroke actually moved.
func (d *DrawingSession) CommitTranslation() bool {
	if d.selected < 0 {
		return false
	}
	moved := !strokesEqual(d.strokes[d.selected], d.preMove)
	d.selected = -1
	if moved {
		d.push()
	}
	return moved
}

// --- Editing ---

// CycleThickness sets the stroke at index i to the next thicker option,
// wrapping to the first option past the thickest, and records an undo
// snapshot. Off-cycle thicknesses advance to the first option that is
// strictly thicker.
func (d *DrawingSession) CycleThickness(i int) {
	if i < 0 || i >= len(d.strokes) || len(d.Options) == 0 {
		return
	}
	cur := d.strokes[i].Thickness
	next := d.Options[0]
	for _, o := range d.Options {
		if o > cur {
			next = o
			break
		}
	}
	d.strokes[i].Thickness = next
	d.push()
}

// DeleteStroke removes the stroke at index i and records an undo snapshot.
func (d *DrawingSession) DeleteStroke(i int) {
	if i < 0 || i >= len(d.strokes) {
		return
	}
	d.strokes = append(d.strokes[:i], d.strokes[i+1:]...)
	if d.selected == i {
		d.selected = -1
	}
	d.push()
}

// AddStrokes appends externally produced strokes (detector output, imports).
// Zero-length strokes and strokes already present (same endpoints in either
// order and same thickness) are skipped. Each added stroke records its own
// undo snapshot so they can be peeled off one at a time. Returns the number
// of strokes added.
func (d *DrawingSession) AddStrokes(items []Stroke) int {
	added := 0
	for _, s := range items {
		if s.Length() == 0 {
			continue
		}
		if d.contains(s) {
			continue
		}
		d.strokes = append(d.strokes, s)
		d.push()
		added++
	}
	return added
}

func (d *DrawingSession) contains(s Stroke) bool {
	for _, have := range d.strokes {
		if strokesEqual(have, s) {
			return true
		}
	}
	return false
}

// --- History ---

// push records the current strokes as a new undo snapshot, dropping any
// redo tail past the cursor.
func (d *DrawingSession) push() {
	d.history = d.history[:d.cursor+1]
	d.history = append(d.history, cloneStrokes(d.strokes))
	d.cursor++
}

// Undo restores the previous snapshot. Reports whether anything changed.
func (d *DrawingSession) Undo() bool {
	if d.cursor == 0 {
		return false
	}
	d.cursor--
	d.strokes = cloneStrokes(d.history[d.cursor])
	d.active = nil
	d.selected = -1
	return true
}

// Redo reapplies the next snapshot after an Undo. Reports whether anything
// changed.
func (d *DrawingSession) Redo() bool {
	if d.cursor >= len(d.history)-1 {
		return false
	}
	d.cursor++
	d.strokes = cloneStrokes(d.history[d.cursor])
	d.active = nil
	d.selected = -1
	return true
}

// CanUndo reports whether Undo would change anything.
func (d *DrawingSession) CanUndo() bool { return d.cursor > 0 }

// CanRedo reports whether Redo would change anything.
func (d *DrawingSession) CanRedo() bool { return d.cursor < len(d.history)-1 }

func cloneStrokes(src []Stroke) []Stroke {
	if len(src) == 0 {
		return nil
	}
	out := make([]Stroke, len(src))
	copy(out, src)
	return out
}
