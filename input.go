package mesen

import (
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// InputAdapter polls ebiten's mouse and touch state once per frame and turns
// it into Begin/Update/End calls on an Editor. Touch IDs are mapped to
// stable pointer slots so the primary contact does not change identity when
// ebiten reports touches in a different order.
type InputAdapter struct {
	// Now supplies timestamps for gesture events. Defaults to time.Now.
	Now func() time.Time

	editor *Editor

	touchIDs  []ebiten.TouchID
	touchMap  [maxPointers]ebiten.TouchID
	touchUsed [maxPointers]bool

	active   bool
	contacts []Contact

	injectQueue []syntheticFrame
}

// NewInputAdapter creates an adapter feeding the given editor.
func NewInputAdapter(editor *Editor) *InputAdapter {
	return &InputAdapter{
		Now:    time.Now,
		editor: editor,
	}
}

// Poll reads the current input state and dispatches it. Call once per
// update tick. While injected frames are queued they are consumed one per
// tick and real input is ignored.
func (a *InputAdapter) Poll() {
	if a.consumeInjected() {
		return
	}

	contacts := a.contacts[:0]

	mx, my := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		contacts = append(contacts, Contact{ID: 0, Pos: Point{X: float64(mx), Y: float64(my)}})
	}

	a.touchIDs = ebiten.AppendTouchIDs(a.touchIDs[:0])
	var activeSlots [maxPointers]bool
	for _, tid := range a.touchIDs {
		slot := a.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		contacts = append(contacts, Contact{ID: slot, Pos: Point{X: float64(tx), Y: float64(ty)}})
	}
	for i := 1; i < maxPointers; i++ {
		if a.touchUsed[i] && !activeSlots[i] {
			a.touchUsed[i] = false
			a.touchMap[i] = 0
		}
	}

	a.contacts = contacts
	a.dispatch(contacts, a.Now())

	if _, yoff := ebiten.Wheel(); yoff != 0 {
		a.editor.Wheel(yoff, Point{X: float64(mx), Y: float64(my)})
	}
}

// dispatch routes a contact snapshot to the editor based on the transition
// from the previous frame: none-to-some begins a gesture, some-to-some
// updates it, some-to-none ends it.
func (a *InputAdapter) dispatch(contacts []Contact, now time.Time) {
	sort.Slice(contacts, func(i, j int) bool { return contacts[i].ID < contacts[j].ID })

	switch {
	case len(contacts) > 0 && !a.active:
		a.active = true
		a.editor.Begin(contacts, now)
	case len(contacts) > 0:
		a.editor.Update(contacts, now)
	case a.active:
		a.active = false
		a.editor.End(nil, now)
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9). Returns the
// existing slot or allocates a new one. Returns -1 if full.
func (a *InputAdapter) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if a.touchUsed[i] && a.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !a.touchUsed[i] {
			a.touchUsed[i] = true
			a.touchMap[i] = tid
			return i
		}
	}
	return -1
}
