package mesen

import (
	"math"
	"time"
)

// Contact is one concurrent touch point or a pressed mouse button, in screen
// space. IDs are stable for the lifetime of the contact.
type Contact struct {
	ID  int
	Pos Point
}

// InteractionMode is the committed interpretation of the current gesture.
// Exactly one mode is active at a time.
type InteractionMode int

const (
	// ModeIdle means no gesture is in progress or one is still being
	// classified.
	ModeIdle InteractionMode = iota
	// ModePanning drags the viewport, by one finger or two.
	ModePanning
	// ModePositioning shows the loupe while the user aims.
	ModePositioning
	// ModeDrawing extends an in-progress stroke.
	ModeDrawing
	// ModeMovingStroke translates an existing stroke.
	ModeMovingStroke
)

// String implements fmt.Stringer.
func (m InteractionMode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModePanning:
		return "panning"
	case ModePositioning:
		return "positioning"
	case ModeDrawing:
		return "drawing"
	case ModeMovingStroke:
		return "movingStroke"
	}
	return "unknown"
}

// Thresholds holds the gesture timing and distance tuning. The exact values
// are a product decision, not a correctness requirement, so they are fields
// rather than constants.
type Thresholds struct {
	// ClickDistance is the screen-space displacement, in pixels, separating
	// a press-in-place from a drag.
	ClickDistance float64
	// ClassifyDelay is how long after pointer-down the gesture is
	// classified into panning, positioning, or moving a stroke.
	ClassifyDelay time.Duration
	// DrawDelay is how long the pointer must rest in positioning before
	// drawing starts.
	DrawDelay time.Duration
	// StationaryEps is the per-update displacement, in pixels, below which
	// the pointer counts as stationary.
	StationaryEps float64
	// EarlyExitWindow is the period after entering positioning during which
	// a large displacement escapes straight to panning.
	EarlyExitWindow time.Duration
	// EarlyExitFactor scales ClickDistance for the early escape.
	EarlyExitFactor float64
	// LongPress is the press duration at or beyond which a release is never
	// treated as a tap.
	LongPress time.Duration
	// DoubleTapDelay is the longest gap between two taps that still chains
	// them into a double-tap.
	DoubleTapDelay time.Duration
	// DoubleTapSlop is the largest distance between two taps that still
	// chains them.
	DoubleTapSlop float64
	// PinchMargin is how much the finger-distance change must exceed the
	// centroid displacement for a two-finger gesture to count as a pinch.
	PinchMargin float64
	// PinchDistanceEps is the smallest finger-distance change considered at
	// all for pinch classification.
	PinchDistanceEps float64
	// PinchMoveEps is the smallest centroid displacement considered for
	// two-finger pan classification.
	PinchMoveEps float64
}

// DefaultThresholds returns the standard gesture tuning.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ClickDistance:    10,
		ClassifyDelay:    100 * time.Millisecond,
		DrawDelay:        1000 * time.Millisecond,
		StationaryEps:    1,
		EarlyExitWindow:  200 * time.Millisecond,
		EarlyExitFactor:  2,
		LongPress:        500 * time.Millisecond,
		DoubleTapDelay:   300 * time.Millisecond,
		DoubleTapSlop:    30,
		PinchMargin:      1.5,
		PinchDistanceEps: 3,
		PinchMoveEps:     3,
	}
}

// gesturePhase is the internal lifecycle of one gesture session. It is finer
// grained than InteractionMode: classification and multi-touch are phases of
// their own.
type gesturePhase int

const (
	phaseClassifying gesturePhase = iota
	phasePanning
	phaseMulti
	phasePositioning
	phaseDrawing
	phaseMoving
)

// pinchKind is the sticky classification of a two-finger gesture.
type pinchKind int

const (
	pinchUndecided pinchKind = iota
	pinchZoom
	pinchPan
)

// gestureSession holds the state of one pointer-down-to-up interaction. It
// exists only while at least one contact is down.
type gestureSession struct {
	startedAt time.Time
	anchor    Point // first contact position at Begin
	last      Point // latest primary contact position

	phase gesturePhase

	// Deadlines are zero when disarmed. They are checked against the clock
	// at the head of Update, End, and Step, so a deadline that passes after
	// the session is destroyed can never act.
	classifyAt time.Time
	drawAt     time.Time

	posEntered time.Time
	stationary bool

	multiKind     pinchKind
	startCentroid Point
	startDist     float64
	startScale    float64
}

// GestureStateMachine turns raw contact sequences into viewport and session
// operations. It owns the mode disambiguation protocol: a short
// classification dwell sorts a press into panning, stroke-moving, or
// positioning; a longer stationary dwell turns positioning into drawing; two
// fingers at the start claim the gesture for pan/pinch.
//
// The machine never touches strokes or the transform directly; it drives
// them through DrawingSession and ViewportTransform operations only.
type GestureStateMachine struct {
	// Thresholds is the timing and distance tuning.
	Thresholds Thresholds
	// Thickness picks the thickness for strokes opened by the draw dwell.
	Thickness ThicknessPolicy
	// Debug traces classification and commit decisions to stderr.
	Debug bool

	viewport *ViewportTransform
	session  *DrawingSession

	sess *gestureSession
	mode InteractionMode

	lastTapAt  time.Time
	lastTapPos Point
}

// NewGestureStateMachine wires a machine to the given transform and session
// with default thresholds and thickness policy.
func NewGestureStateMachine(viewport *ViewportTransform, session *DrawingSession) *GestureStateMachine {
	return &GestureStateMachine{
		Thresholds: DefaultThresholds(),
		Thickness:  DefaultThicknessPolicy(session.Options, 24),
		viewport:   viewport,
		session:    session,
	}
}

// Mode returns the committed interpretation of the current gesture.
func (g *GestureStateMachine) Mode() InteractionMode { return g.mode }

// Active reports whether a gesture session is in progress.
func (g *GestureStateMachine) Active() bool { return g.sess != nil }

// Stationary reports whether the pointer was stationary on its last update.
func (g *GestureStateMachine) Stationary() bool {
	return g.sess != nil && g.sess.stationary
}

// LastPoint returns the latest primary contact position while a gesture is
// in progress.
func (g *GestureStateMachine) LastPoint() (Point, bool) {
	if g.sess == nil {
		return Point{}, false
	}
	return g.sess.last, true
}

// DwellProgress reports how far the positioning-to-drawing dwell has
// advanced, from 0 to 1. Drawing reports 1; every other state reports 0.
func (g *GestureStateMachine) DwellProgress(now time.Time) float64 {
	s := g.sess
	if s == nil {
		return 0
	}
	switch s.phase {
	case phaseDrawing:
		return 1
	case phasePositioning:
		if s.drawAt.IsZero() {
			return 0
		}
		total := g.Thresholds.DrawDelay.Seconds()
		if total <= 0 {
			return 1
		}
		return clamp(1-s.drawAt.Sub(now).Seconds()/total, 0, 1)
	}
	return 0
}

// Begin starts a gesture session. With two or more contacts the gesture is
// claimed for two-finger pan/pinch immediately; with one, a classification
// deadline is armed. Calling Begin while a session is already in progress
// (an extra finger landing) is treated as an update.
func (g *GestureStateMachine) Begin(contacts []Contact, now time.Time) {
	if len(contacts) == 0 {
		return
	}
	if g.sess != nil {
		g.Update(contacts, now)
		return
	}
	p := contacts[0].Pos
	g.sess = &gestureSession{
		startedAt:  now,
		anchor:     p,
		last:       p,
		phase:      phaseClassifying,
		classifyAt: now.Add(g.Thresholds.ClassifyDelay),
	}
	g.mode = ModeIdle
	if len(contacts) >= 2 {
		g.enterMulti(contacts)
	}
}

// Update feeds the current contact positions into the session. Due
// deadlines fire first so that a dwell that elapsed between events is
// honored before the movement is interpreted.
func (g *GestureStateMachine) Update(contacts []Contact, now time.Time) {
	if g.sess == nil || len(contacts) == 0 {
		return
	}
	g.fireDeadlines(now)
	s := g.sess

	if len(contacts) >= 2 {
		switch s.phase {
		case phaseDrawing, phaseMoving, phaseMulti:
			// A second finger cannot take over a committed single-finger
			// action; only a first-moment multi-contact claims the gesture.
		default:
			g.enterMulti(contacts)
		}
	}
	if s.phase == phaseMulti {
		g.updateMulti(contacts)
		return
	}

	p := contacts[0].Pos
	prev := s.last
	s.last = p

	switch s.phase {
	case phaseClassifying:
		// Movement accumulates; interpretation waits for the deadline.
	case phasePanning:
		g.viewport.Pan(p)
	case phasePositioning:
		if p.Dist(prev) > g.Thresholds.StationaryEps {
			s.stationary = false
			s.drawAt = time.Time{}
		} else {
			s.stationary = true
			if s.drawAt.IsZero() {
				s.drawAt = now.Add(g.Thresholds.DrawDelay)
			}
		}
		// Within the early-exit window a decisive drag escapes to panning
		// without waiting out the draw dwell.
		if now.Sub(s.posEntered) <= g.Thresholds.EarlyExitWindow &&
			p.Dist(s.anchor) > g.Thresholds.EarlyExitFactor*g.Thresholds.ClickDistance {
			s.phase = phasePanning
			g.mode = ModePanning
			s.drawAt = time.Time{}
			g.viewport.BeginPan(p)
			g.debugf("position: early exit to pan")
		}
	case phaseDrawing:
		g.session.ExtendStroke(g.viewport.ToImageSpace(p))
	case phaseMoving:
		g.session.TranslateSelected(g.viewport.ToImageSpace(p))
	}
}

// End finishes the gesture once all contacts have lifted. While contacts
// remain the session stays claimed and nothing is committed.
func (g *GestureStateMachine) End(contacts []Contact, now time.Time) {
	if g.sess == nil {
		return
	}
	if len(contacts) > 0 {
		return
	}
	g.fireDeadlines(now)
	s := g.sess

	switch s.phase {
	case phaseDrawing:
		committed := g.session.CommitStroke()
		g.debugf("end: bar committed=%v", committed)
	case phaseMoving:
		if g.isTap(s, now) {
			// A quick press on a stroke is a tap: drop any jitter the
			// translation picked up and cycle the thickness instead.
			g.session.RevertTranslation()
			g.session.CommitTranslation()
			g.evaluateTap(s, now)
		} else {
			moved := g.session.CommitTranslation()
			g.debugf("end: move committed=%v", moved)
		}
	case phasePanning, phaseMulti:
		g.viewport.EndPan()
	case phaseClassifying, phasePositioning:
		if g.isTap(s, now) {
			g.evaluateTap(s, now)
		}
	}

	g.sess = nil
	g.mode = ModeIdle
}

// Step fires any due deadlines without new contact input. Call once per
// frame; with no session in progress it is a no-op.
func (g *GestureStateMachine) Step(now time.Time) {
	if g.sess == nil {
		return
	}
	g.fireDeadlines(now)
}

// fireDeadlines runs the classification and draw dwells whose deadlines have
// passed. The draw deadline is armed relative to the classification
// deadline, so both can fire in one call when enough time has elapsed
// between events.
func (g *GestureStateMachine) fireDeadlines(now time.Time) {
	s := g.sess
	if s.phase == phaseClassifying && !s.classifyAt.IsZero() && !now.Before(s.classifyAt) {
		g.classify(s.classifyAt)
	}
	if s.phase == phasePositioning && !s.drawAt.IsZero() && !now.Before(s.drawAt) && s.stationary {
		g.enterDrawing()
	}
}

// classify sorts a single-finger press into panning, stroke-moving, or
// positioning, using the displacement accumulated since Begin.
func (g *GestureStateMachine) classify(at time.Time) {
	s := g.sess
	s.classifyAt = time.Time{}

	if d := s.last.Dist(s.anchor); d > g.Thresholds.ClickDistance {
		s.phase = phasePanning
		g.mode = ModePanning
		g.viewport.BeginPan(s.last)
		g.debugf("classify: pan (moved %.1fpx)", d)
		return
	}
	anchorImage := g.viewport.ToImageSpace(s.anchor)
	if i := g.session.HitTest(anchorImage); i >= 0 {
		s.phase = phaseMoving
		g.mode = ModeMovingStroke
		g.session.SelectStroke(i, anchorImage)
		g.debugf("classify: move bar %d", i)
		return
	}
	s.phase = phasePositioning
	g.mode = ModePositioning
	s.posEntered = at
	s.stationary = true
	s.drawAt = at.Add(g.Thresholds.DrawDelay)
	g.debugf("classify: position")
}

// enterDrawing opens a stroke at the anchor with the policy-chosen
// thickness. The commit length filter becomes the click distance projected
// into image space, so accidental dots never survive the commit.
func (g *GestureStateMachine) enterDrawing() {
	s := g.sess
	s.phase = phaseDrawing
	g.mode = ModeDrawing
	s.drawAt = time.Time{}

	scale := g.viewport.Scale()
	g.session.SetMinStrokeLength(g.Thresholds.ClickDistance / scale)
	thickness := g.Thickness(g.viewport.ImageSize(), scale)
	g.session.BeginStroke(g.viewport.ToImageSpace(s.anchor), thickness)
	g.session.ExtendStroke(g.viewport.ToImageSpace(s.last))
	g.debugf("draw: open bar (thickness %.1f)", thickness)
}

// isTap reports whether the finished press was short and still enough to
// count as a tap.
func (g *GestureStateMachine) isTap(s *gestureSession, now time.Time) bool {
	return now.Sub(s.startedAt) < g.Thresholds.LongPress &&
		s.last.Dist(s.anchor) <= g.Thresholds.ClickDistance
}

// evaluateTap applies tap semantics: a tap on a stroke cycles its thickness;
// a tap on empty space chains into a double-tap zoom toggle when it lands
// close enough, soon enough, after the previous tap.
func (g *GestureStateMachine) evaluateTap(s *gestureSession, now time.Time) {
	p := s.anchor
	if i := g.session.HitTest(g.viewport.ToImageSpace(p)); i >= 0 {
		g.session.CycleThickness(i)
		g.lastTapAt = time.Time{}
		g.debugf("tap: cycle thickness of bar %d", i)
		return
	}
	if !g.lastTapAt.IsZero() &&
		now.Sub(g.lastTapAt) <= g.Thresholds.DoubleTapDelay &&
		p.Dist(g.lastTapPos) <= g.Thresholds.DoubleTapSlop {
		g.lastTapAt = time.Time{}
		g.viewport.ToggleDoubleTapZoom(p)
		g.debugf("tap: double-tap zoom toggle")
		return
	}
	g.lastTapAt = now
	g.lastTapPos = p
}

// --- Two-finger gestures ---

// enterMulti claims the gesture for two-finger pan/pinch. All single-finger
// deadlines are cancelled; the pinch-vs-pan decision is made later, once the
// fingers have moved enough to tell, and is then sticky.
func (g *GestureStateMachine) enterMulti(contacts []Contact) {
	s := g.sess
	s.phase = phaseMulti
	g.mode = ModePanning
	s.classifyAt = time.Time{}
	s.drawAt = time.Time{}
	g.viewport.EndPan()

	c, dist := centroidAndDistance(contacts)
	s.multiKind = pinchUndecided
	s.startCentroid = c
	s.startDist = dist
	s.startScale = g.viewport.Scale()
	g.debugf("multi: claimed (%d contacts)", len(contacts))
}

// updateMulti classifies and applies two-finger movement. With fewer than
// two contacts remaining the gesture stays claimed but frozen.
func (g *GestureStateMachine) updateMulti(contacts []Contact) {
	if len(contacts) < 2 {
		return
	}
	s := g.sess
	c, dist := centroidAndDistance(contacts)

	if s.multiKind == pinchUndecided {
		distChange := math.Abs(dist - s.startDist)
		move := c.Dist(s.startCentroid)
		switch {
		case distChange >= g.Thresholds.PinchDistanceEps && distChange > g.Thresholds.PinchMargin*move:
			s.multiKind = pinchZoom
			g.debugf("multi: pinch zoom")
		case move >= g.Thresholds.PinchMoveEps:
			s.multiKind = pinchPan
			g.viewport.BeginPan(c)
			g.debugf("multi: pinch pan")
		}
	}

	switch s.multiKind {
	case pinchZoom:
		if s.startDist > 0 {
			g.viewport.ZoomAtPoint(s.startScale*dist/s.startDist, c)
		}
	case pinchPan:
		g.viewport.Pan(c)
	}
}

// centroidAndDistance returns the midpoint of and distance between the first
// two contacts.
func centroidAndDistance(contacts []Contact) (Point, float64) {
	a, b := contacts[0].Pos, contacts[1].Pos
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}, a.Dist(b)
}
