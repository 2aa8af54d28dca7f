package mesen

import "time"

// LoupeState is what a renderer needs to draw the magnifier overlay. It is
// derived on demand from the interaction mode and the last pointer position,
// never stored, so it cannot drift out of sync with the gesture state.
type LoupeState struct {
	Visible bool
	// Anchor is the pointer position the loupe magnifies, in screen space.
	Anchor Point
	// Mode is the interaction mode the loupe is decorating.
	Mode InteractionMode
	// Stationary reports whether the pointer is resting (the dwell ring
	// advances only while it is).
	Stationary bool
	// Placement is where the loupe circle goes, chosen by PlaceLoupe.
	Placement LoupePlacement
}

// Editor bundles the viewport transform, drawing session, and gesture
// machine for one image and routes input between them. Input events are
// dropped while a viewport animation is in flight, except End, which always
// reaches the machine so a live gesture cannot leak past its pointer-up.
type Editor struct {
	// Metrics sizes the loupe overlay.
	Metrics LoupeMetrics

	viewport *ViewportTransform
	session  *DrawingSession
	machine  *GestureStateMachine
}

// NewEditor creates an editor for an image of the given size displayed in
// the given container, fit and centered.
func NewEditor(imageSize, containerSize Size) *Editor {
	v := NewViewportTransform()
	v.FitToContainer(imageSize, containerSize)
	d := NewDrawingSession()
	return &Editor{
		Metrics:  DefaultLoupeMetrics(),
		viewport: v,
		session:  d,
		machine:  NewGestureStateMachine(v, d),
	}
}

// Viewport returns the transform between screen and image space.
func (e *Editor) Viewport() *ViewportTransform { return e.viewport }

// Session returns the stroke store.
func (e *Editor) Session() *DrawingSession { return e.session }

// Machine returns the gesture state machine.
func (e *Editor) Machine() *GestureStateMachine { return e.machine }

// Mode returns the current interaction mode.
func (e *Editor) Mode() InteractionMode { return e.machine.Mode() }

// Begin routes a pointer-down to the gesture machine unless an animation is
// in flight.
func (e *Editor) Begin(contacts []Contact, now time.Time) {
	if e.viewport.Animating() {
		return
	}
	e.machine.Begin(contacts, now)
}

// Update routes pointer movement to the gesture machine unless an animation
// is in flight.
func (e *Editor) Update(contacts []Contact, now time.Time) {
	if e.viewport.Animating() {
		return
	}
	e.machine.Update(contacts, now)
}

// End always reaches the machine: a gesture in progress when an animation
// starts must still see its pointer-up.
func (e *Editor) End(contacts []Contact, now time.Time) {
	e.machine.End(contacts, now)
}

// Wheel zooms about the cursor. Ignored while an animation is in flight or
// a gesture holds the viewport.
func (e *Editor) Wheel(delta float64, p Point) {
	if e.viewport.Animating() || e.machine.Active() {
		return
	}
	e.viewport.ZoomByWheelDelta(delta, p)
}

// Step advances animations and gesture deadlines. Call once per frame.
func (e *Editor) Step(dt float32, now time.Time) {
	e.viewport.Update(dt)
	e.machine.Step(now)
}

// Loupe derives the magnifier overlay state. The loupe shows while the user
// is aiming or drawing and tracks the pointer.
func (e *Editor) Loupe() LoupeState {
	mode := e.machine.Mode()
	p, ok := e.machine.LastPoint()
	if !ok || (mode != ModePositioning && mode != ModeDrawing) {
		return LoupeState{Mode: mode}
	}
	return LoupeState{
		Visible:    true,
		Anchor:     p,
		Mode:       mode,
		Stationary: e.machine.Stationary(),
		Placement:  PlaceLoupe(p, e.viewport.ContainerSize(), e.Metrics),
	}
}

// DwellProgress reports the positioning-to-drawing dwell progress, 0 to 1.
func (e *Editor) DwellProgress(now time.Time) float64 {
	return e.machine.DwellProgress(now)
}

// Resize refits the image after the container changes size. The view resets
// to fit and centered.
func (e *Editor) Resize(containerSize Size) {
	e.viewport.FitToContainer(e.viewport.ImageSize(), containerSize)
}

// Reset animates the view back to fit and centered.
func (e *Editor) Reset() {
	e.viewport.Reset()
}
