package mesen

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Default viewport tuning.
const (
	// DefaultMaxScale is the zoom ceiling. The floor is the fit-to-container
	// scale computed per loaded image.
	DefaultMaxScale = 8.0
	// DefaultDoubleTapScale is the multiple of the fit scale a double-tap
	// zooms in to.
	DefaultDoubleTapScale = 2.5
	// DefaultAnimDuration is the length of animated transitions in seconds.
	DefaultAnimDuration = 0.3

	// wheelZoomStep is the scale factor applied per wheel unit.
	wheelZoomStep = 1.1
	// fitScaleTolerance is the relative band around the fit scale within
	// which the view still counts as "at fit" for double-tap purposes.
	fitScaleTolerance = 0.01
)

// viewAnim holds the active tweens for an animated scale/offset transition.
type viewAnim struct {
	tweenScale *gween.Tween
	tweenX     *gween.Tween
	tweenY     *gween.Tween
	doneScale  bool
	doneX      bool
	doneY      bool
}

// ViewportTransform owns the affine mapping between screen pixels and image
// pixels:
//
//	screenPoint = imagePoint*scale + offset
//
// Scale is always clamped to [minScale, maxScale], where minScale is the
// fit-to-container scale computed once per loaded image and maxScale is a
// constant (raised to the fit scale when the fit scale exceeds it).
type ViewportTransform struct {
	// DoubleTapScale is the multiple of the fit scale that a double-tap
	// zooms in to when the view is at (or near) the fit scale.
	DoubleTapScale float64
	// AnimDuration is the duration of animated transitions in seconds.
	AnimDuration float32
	// ConstrainToContainer clamps the offset so the image stays inside the
	// container, centered on axes where it is smaller. Off by default so
	// zoom-about-point keeps the anchored image point exactly under the
	// cursor near the edges.
	ConstrainToContainer bool

	scale  float64
	offset Point

	minScale  float64
	maxScale  float64
	fitScale  float64
	fitOffset Point

	imageSize     Size
	containerSize Size

	panning   bool
	panStart  Point
	panOrigin Point

	view    [6]float64
	invView [6]float64
	dirty   bool

	anim *viewAnim
}

// NewViewportTransform creates a transform at scale 1 with a zero offset.
// Call FitToContainer once an image and container size are known.
func NewViewportTransform() *ViewportTransform {
	return &ViewportTransform{
		DoubleTapScale: DefaultDoubleTapScale,
		AnimDuration:   DefaultAnimDuration,
		scale:          1,
		minScale:       1,
		maxScale:       DefaultMaxScale,
		fitScale:       1,
		dirty:          true,
	}
}

// Scale returns the current scale factor.
func (v *ViewportTransform) Scale() float64 { return v.scale }

// Offset returns the current screen-space offset of the image origin.
func (v *ViewportTransform) Offset() Point { return v.offset }

// MinScale returns the zoom floor (the fit-to-container scale).
func (v *ViewportTransform) MinScale() float64 { return v.minScale }

// MaxScale returns the zoom ceiling.
func (v *ViewportTransform) MaxScale() float64 { return v.maxScale }

// FitScale returns the fit-to-container scale of the loaded image.
func (v *ViewportTransform) FitScale() float64 { return v.fitScale }

// ImageSize returns the loaded image dimensions in image pixels.
func (v *ViewportTransform) ImageSize() Size { return v.imageSize }

// ContainerSize returns the on-screen container dimensions.
func (v *ViewportTransform) ContainerSize() Size { return v.containerSize }

// FitToContainer sets up the mapping for an image of the given size shown in
// the given container: scale becomes the fit scale (the largest scale at
// which the whole image is visible) and the image is centered. The fit scale
// also becomes the zoom floor. A zero-area image or container yields scale 1
// and a zero offset instead of an error.
func (v *ViewportTransform) FitToContainer(imageSize, containerSize Size) {
	v.imageSize = imageSize
	v.containerSize = containerSize
	v.anim = nil
	v.panning = false
	v.dirty = true

	if imageSize.Empty() || containerSize.Empty() {
		v.fitScale = 1
		v.minScale = 1
		v.maxScale = DefaultMaxScale
		v.scale = 1
		v.offset = Point{}
		v.fitOffset = Point{}
		return
	}

	fit := math.Min(containerSize.W/imageSize.W, containerSize.H/imageSize.H)
	v.fitScale = fit
	v.minScale = fit
	v.maxScale = math.Max(DefaultMaxScale, fit)
	v.scale = fit
	v.offset = Point{
		X: (containerSize.W - imageSize.W*fit) / 2,
		Y: (containerSize.H - imageSize.H*fit) / 2,
	}
	v.fitOffset = v.offset
}

// computeView recomputes the cached forward and inverse matrices if dirty.
func (v *ViewportTransform) computeView() {
	if !v.dirty {
		return
	}
	v.view = [6]float64{v.scale, 0, 0, v.scale, v.offset.X, v.offset.Y}
	v.invView = invertAffine(v.view)
	v.dirty = false
}

// ToImageSpace converts a screen-space point to image space:
// (p - offset) / scale. Out-of-range points are valid inputs.
func (v *ViewportTransform) ToImageSpace(p Point) Point {
	v.computeView()
	x, y := transformPoint(v.invView, p.X, p.Y)
	return Point{x, y}
}

// ToScreenSpace converts an image-space point to screen space.
func (v *ViewportTransform) ToScreenSpace(p Point) Point {
	v.computeView()
	x, y := transformPoint(v.view, p.X, p.Y)
	return Point{x, y}
}

// --- Panning ---

// BeginPan starts an exclusive drag pan anchored at the given screen point.
func (v *ViewportTransform) BeginPan(p Point) {
	v.panning = true
	v.panStart = p
	v.panOrigin = v.offset
}

// Pan moves the offset by the displacement from the pan anchor. No-op unless
// BeginPan was called first.
func (v *ViewportTransform) Pan(p Point) {
	if !v.panning {
		return
	}
	v.offset = v.panOrigin.Add(p.Sub(v.panStart))
	v.clampOffset()
	v.dirty = true
}

// EndPan finishes the drag pan.
func (v *ViewportTransform) EndPan() {
	v.panning = false
}

// Panning reports whether an exclusive drag pan is in progress.
func (v *ViewportTransform) Panning() bool { return v.panning }

// --- Zooming ---

// ZoomAtPoint sets the scale (clamped to [minScale, maxScale]) while keeping
// the image point currently under the given screen point fixed under it:
//
//	offset' = screenPoint - imagePointUnderCursor*newScale
func (v *ViewportTransform) ZoomAtPoint(newScale float64, p Point) {
	newScale = clamp(newScale, v.minScale, v.maxScale)
	if newScale == v.scale {
		return
	}
	ip := v.ToImageSpace(p)
	v.scale = newScale
	v.offset = Point{X: p.X - ip.X*newScale, Y: p.Y - ip.Y*newScale}
	v.clampOffset()
	v.dirty = true
}

// ZoomByWheelDelta applies a multiplicative zoom step per wheel unit,
// anchored at the cursor. Positive delta zooms in.
func (v *ViewportTransform) ZoomByWheelDelta(delta float64, p Point) {
	if delta == 0 {
		return
	}
	v.ZoomAtPoint(v.scale*math.Pow(wheelZoomStep, delta), p)
}

// --- Animated transitions ---

// AnimateTo starts an eased transition of scale and offset together over
// AnimDuration seconds. Any in-flight animation is cancelled and replaced.
// Gesture and wheel input are expected to short-circuit while Animating.
func (v *ViewportTransform) AnimateTo(targetScale float64, targetOffset Point) {
	targetScale = clamp(targetScale, v.minScale, v.maxScale)
	if v.ConstrainToContainer {
		targetOffset = v.constrainedOffset(targetScale, targetOffset)
	}
	v.panning = false
	v.anim = &viewAnim{
		tweenScale: gween.New(float32(v.scale), float32(targetScale), v.AnimDuration, ease.OutQuad),
		tweenX:     gween.New(float32(v.offset.X), float32(targetOffset.X), v.AnimDuration, ease.OutQuad),
		tweenY:     gween.New(float32(v.offset.Y), float32(targetOffset.Y), v.AnimDuration, ease.OutQuad),
	}
}

// Animating reports whether an animated transition is in flight.
func (v *ViewportTransform) Animating() bool { return v.anim != nil }

// Update advances an in-flight transition. Call once per frame.
func (v *ViewportTransform) Update(dt float32) {
	if v.anim == nil {
		return
	}
	a := v.anim
	if !a.doneScale {
		val, done := a.tweenScale.Update(dt)
		v.scale = float64(val)
		a.doneScale = done
	}
	if !a.doneX {
		val, done := a.tweenX.Update(dt)
		v.offset.X = float64(val)
		a.doneX = done
	}
	if !a.doneY {
		val, done := a.tweenY.Update(dt)
		v.offset.Y = float64(val)
		a.doneY = done
	}
	v.dirty = true
	if a.doneScale && a.doneX && a.doneY {
		v.anim = nil
	}
}

// ToggleDoubleTapZoom zooms in to DoubleTapScale times the fit scale anchored
// at the tap point when the view is at (or within a small tolerance of) the
// fit scale; otherwise it animates back to the fit view.
func (v *ViewportTransform) ToggleDoubleTapZoom(p Point) {
	atFit := math.Abs(v.scale-v.fitScale) <= v.fitScale*fitScaleTolerance
	if !atFit {
		v.AnimateTo(v.fitScale, v.fitOffset)
		return
	}
	target := clamp(v.fitScale*v.DoubleTapScale, v.minScale, v.maxScale)
	ip := v.ToImageSpace(p)
	v.AnimateTo(target, Point{X: p.X - ip.X*target, Y: p.Y - ip.Y*target})
}

// Reset animates back to the fit scale and centered offset.
func (v *ViewportTransform) Reset() {
	v.AnimateTo(v.fitScale, v.fitOffset)
}

// --- Offset constraint ---

// clampOffset applies the container constraint to the current offset.
func (v *ViewportTransform) clampOffset() {
	if !v.ConstrainToContainer {
		return
	}
	v.offset = v.constrainedOffset(v.scale, v.offset)
}

// constrainedOffset clamps off so the scaled image covers the container on
// axes where it is larger, and centers it on axes where it is smaller.
func (v *ViewportTransform) constrainedOffset(scale float64, off Point) Point {
	w := v.imageSize.W * scale
	h := v.imageSize.H * scale
	cw := v.containerSize.W
	ch := v.containerSize.H
	if w <= cw {
		off.X = (cw - w) / 2
	} else {
		off.X = clamp(off.X, cw-w, 0)
	}
	if h <= ch {
		off.Y = (ch - h) / 2
	} else {
		off.Y = clamp(off.Y, ch-h, 0)
	}
	return off
}
