package mesen

// syntheticFrame is a single injected frame of pointer state: the complete
// set of contacts down during that frame. An empty frame means all pointers
// have lifted.
type syntheticFrame struct {
	contacts []Contact
}

// InjectFrame queues one frame of synthetic contacts. The frame is consumed
// by the next Poll call in place of real input, so scripted gestures and
// real pointers never interleave. Frames carry the complete contact set: a
// held pointer must appear in every frame until it lifts.
func (a *InputAdapter) InjectFrame(contacts ...Contact) {
	a.injectQueue = append(a.injectQueue, syntheticFrame{
		contacts: append([]Contact(nil), contacts...),
	})
}

// InjectPress queues a primary-pointer press at the given screen
// coordinates.
func (a *InputAdapter) InjectPress(x, y float64) {
	a.InjectFrame(Contact{ID: 0, Pos: Point{X: x, Y: y}})
}

// InjectMove queues a primary-pointer position with the pointer still down.
// Use between InjectPress and InjectRelease to simulate a drag.
func (a *InputAdapter) InjectMove(x, y float64) {
	a.InjectFrame(Contact{ID: 0, Pos: Point{X: x, Y: y}})
}

// InjectRelease queues a frame with every pointer lifted.
func (a *InputAdapter) InjectRelease() {
	a.InjectFrame()
}

// InjectTap queues a press immediately followed by a release. Consumes two
// frames.
func (a *InputAdapter) InjectTap(x, y float64) {
	a.InjectPress(x, y)
	a.InjectRelease()
}

// InjectHold queues a press held in place for the given number of frames
// without releasing. Follow with InjectMove and InjectRelease to script a
// dwell-to-draw gesture.
func (a *InputAdapter) InjectHold(x, y float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	for i := 0; i < frames; i++ {
		a.InjectPress(x, y)
	}
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), linearly
// interpolated moves ending at (toX, toY), and a release. The total sequence
// consumes `frames` frames, minimum 3 (press, move to the destination,
// release).
func (a *InputAdapter) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 3 {
		frames = 3
	}
	a.InjectPress(fromX, fromY)
	steps := frames - 3
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		a.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	a.InjectMove(toX, toY)
	a.InjectRelease()
}

// InjectPinch queues a symmetric two-finger pinch about (cx, cy): the
// fingers start fromDist apart on a horizontal axis, spread or close
// linearly to toDist, then lift together. Consumes `frames` frames,
// minimum 3.
func (a *InputAdapter) InjectPinch(cx, cy, fromDist, toDist float64, frames int) {
	if frames < 3 {
		frames = 3
	}
	steps := frames - 1
	for i := 0; i < steps; i++ {
		t := float64(i) / float64(steps-1)
		d := fromDist + (toDist-fromDist)*t
		a.InjectFrame(
			Contact{ID: 1, Pos: Point{X: cx - d/2, Y: cy}},
			Contact{ID: 2, Pos: Point{X: cx + d/2, Y: cy}},
		)
	}
	a.InjectRelease()
}

// consumeInjected pops and dispatches one injected frame. Returns true if a
// frame was consumed, in which case real input is skipped for this tick.
func (a *InputAdapter) consumeInjected() bool {
	if len(a.injectQueue) == 0 {
		return false
	}
	frame := a.injectQueue[0]
	copy(a.injectQueue, a.injectQueue[1:])
	a.injectQueue = a.injectQueue[:len(a.injectQueue)-1]

	a.dispatch(frame.contacts, a.Now())
	return true
}

// InjectPending reports whether queued synthetic frames remain.
func (a *InputAdapter) InjectPending() bool {
	return len(a.injectQueue) > 0
}
