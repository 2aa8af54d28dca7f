package mesen

// RelativePosition identifies where a loupe sits relative to its anchor.
type RelativePosition int

const (
	LoupeUpLeft RelativePosition = iota
	LoupeUp
	LoupeUpRight
	LoupeDownRight
	LoupeDownLeft
)

// String implements fmt.Stringer.
func (p RelativePosition) String() string {
	switch p {
	case LoupeUpLeft:
		return "up-left"
	case LoupeUp:
		return "up"
	case LoupeUpRight:
		return "up-right"
	case LoupeDownRight:
		return "down-right"
	case LoupeDownLeft:
		return "down-left"
	}
	return "unknown"
}

// loupePriority is the placement order: positions above the anchor are
// preferred so the finger does not cover the loupe.
var loupePriority = [...]RelativePosition{
	LoupeUpLeft,
	LoupeUp,
	LoupeUpRight,
	LoupeDownRight,
	LoupeDownLeft,
}

// LoupeMetrics sizes the loupe circle and its distance from the anchor.
type LoupeMetrics struct {
	// Diameter of the loupe circle in screen pixels.
	Diameter float64
	// Standoff is the gap between the anchor point and the nearest edge of
	// the circle.
	Standoff float64
}

// DefaultLoupeMetrics returns the standard loupe sizing.
func DefaultLoupeMetrics() LoupeMetrics {
	return LoupeMetrics{Diameter: 120, Standoff: 16}
}

// LoupePlacement is a resolved loupe position.
type LoupePlacement struct {
	Position RelativePosition
	// Center of the loupe circle in screen space.
	Center Point
}

// PlaceLoupe picks where to draw a loupe anchored at the given screen point
// inside a viewport of the given size. Candidate positions are tried in
// priority order (up-left, up, up-right, down-right, down-left) and the
// first whose full circle fits inside the viewport wins. If none fits, the
// first candidate is used with its center clamped so the circle stays
// on-screen.
func PlaceLoupe(anchor Point, viewport Size, m LoupeMetrics) LoupePlacement {
	r := m.Diameter / 2
	gap := r + m.Standoff

	centerFor := func(pos RelativePosition) Point {
		switch pos {
		case LoupeUpLeft:
			return Point{X: anchor.X - gap, Y: anchor.Y - gap}
		case LoupeUp:
			return Point{X: anchor.X, Y: anchor.Y - gap}
		case LoupeUpRight:
			return Point{X: anchor.X + gap, Y: anchor.Y - gap}
		case LoupeDownRight:
			return Point{X: anchor.X + gap, Y: anchor.Y + gap}
		default: // LoupeDownLeft
			return Point{X: anchor.X - gap, Y: anchor.Y + gap}
		}
	}
	fits := func(c Point) bool {
		return c.X-r >= 0 && c.X+r <= viewport.W && c.Y-r >= 0 && c.Y+r <= viewport.H
	}

	for _, pos := range loupePriority {
		c := centerFor(pos)
		if fits(c) {
			return LoupePlacement{Position: pos, Center: c}
		}
	}

	// Nothing fits (tiny viewport or extreme corner): clamp the first
	// candidate on-screen.
	c := centerFor(loupePriority[0])
	c.X = clamp(c.X, r, viewport.W-r)
	c.Y = clamp(c.Y, r, viewport.H-r)
	return LoupePlacement{Position: loupePriority[0], Center: c}
}
