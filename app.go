package mesen

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// loupeMagnification is how much the loupe magnifies beyond the current
// viewport scale.
const loupeMagnification = 2.0

var (
	backgroundColor = color.RGBA{24, 24, 28, 255}
	barColor        = color.RGBA{0, 0, 0, 255}
	selectedColor   = color.RGBA{56, 56, 64, 255}
	crosshairColor  = color.RGBA{255, 255, 255, 140}
)

// whitePixel is a 1x1 white image used for solid bar fills.
var whitePixel *ebiten.Image

func init() {
	whitePixel = ebiten.NewImage(1, 1)
	whitePixel.Fill(color.White)
}

// maskBlend clips destination to source alpha, used to cut the loupe buffer
// into a circle.
var maskBlend = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorZero,
	BlendFactorSourceAlpha:      ebiten.BlendFactorZero,
	BlendFactorDestinationRGB:   ebiten.BlendFactorSourceAlpha,
	BlendFactorDestinationAlpha: ebiten.BlendFactorSourceAlpha,
	BlendOperationRGB:           ebiten.BlendOperationAdd,
	BlendOperationAlpha:         ebiten.BlendOperationAdd,
}

// contentBlend keeps source only where destination alpha is set, used to
// clip the pixelated preview into the capsule mask.
var contentBlend = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorDestinationAlpha,
	BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
	BlendFactorDestinationRGB:   ebiten.BlendFactorZero,
	BlendFactorDestinationAlpha: ebiten.BlendFactorZero,
	BlendOperationRGB:           ebiten.BlendOperationAdd,
	BlendOperationAlpha:         ebiten.BlendOperationAdd,
}

// RunConfig configures the window for Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
}

// App is an ebiten.Game that renders an Editor: the image under its
// transform, the committed and in-progress bars, and the loupe overlay with
// its dwell ring.
type App struct {
	Editor *Editor
	Input  *InputAdapter
	// ShowFPS draws a status readout in the corner.
	ShowFPS bool
	// PreviewMosaic renders committed bars as a live mosaic instead of solid
	// fills. Requires a preview image set via SetMosaicPreview.
	PreviewMosaic bool
	// ScreenshotDir receives PNGs captured via Screenshot.
	ScreenshotDir string
	// OnUpdate, when set, runs once per frame after input and animations,
	// with the frame's dt in seconds. Commands hang their key handling here.
	OnUpdate func(dt float64)

	img      *ebiten.Image
	width    int
	height   int
	loupeBuf *ebiten.Image
	maskBuf  *ebiten.Image
	preview  *ebiten.Image
	disc     *ebiten.Image
	ring     *ebiten.Image

	hud             statusHUD
	replay          *Replay
	screenshotQueue []string
}

// NewApp creates an app editing the given image in a container of the given
// size.
func NewApp(src image.Image, containerSize Size) *App {
	b := src.Bounds()
	e := NewEditor(Size{W: float64(b.Dx()), H: float64(b.Dy())}, containerSize)
	return &App{
		Editor:        e,
		Input:         NewInputAdapter(e),
		ScreenshotDir: "screenshots",
		img:           ebiten.NewImageFromImage(src),
		width:         int(containerSize.W),
		height:        int(containerSize.H),
	}
}

// SetMosaicPreview supplies the pixelated rendition of the source image used
// by the live mosaic preview. The image must share the source's dimensions.
func (a *App) SetMosaicPreview(img image.Image) {
	a.preview = ebiten.NewImageFromImage(img)
}

// Update implements ebiten.Game.
func (a *App) Update() error {
	if a.replay != nil {
		a.replay.step(a)
		if a.replay.ExitWhenDone && a.replay.Done() && len(a.screenshotQueue) == 0 {
			return ebiten.Termination
		}
	}
	a.Input.Poll()
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = 60
	}
	dt := 1 / float64(tps)
	a.Editor.Step(float32(dt), a.Input.Now())
	if a.OnUpdate != nil {
		a.OnUpdate(dt)
	}
	return nil
}

// Draw implements ebiten.Game.
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	a.drawImage(screen)
	if a.PreviewMosaic && a.preview != nil {
		a.drawMosaicStrokes(screen)
	} else {
		a.drawStrokes(screen)
	}
	a.drawLoupe(screen)
	if a.ShowFPS {
		a.hud.draw(screen, a)
	}
	a.flushScreenshots(screen)
}

// Layout implements ebiten.Game with a fixed logical size.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.width, a.height
}

func (a *App) drawImage(screen *ebiten.Image) {
	v := a.Editor.Viewport()
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Scale(v.Scale(), v.Scale())
	op.GeoM.Translate(v.Offset().X, v.Offset().Y)
	screen.DrawImage(a.img, op)
}

func (a *App) drawStrokes(screen *ebiten.Image) {
	v := a.Editor.Viewport()
	sess := a.Editor.Session()
	selected := sess.SelectedIndex()

	for i, s := range sess.Strokes() {
		clr := barColor
		if i == selected {
			clr = selectedColor
		}
		a.drawBar(screen, v.ToScreenSpace(s.Start), v.ToScreenSpace(s.End), s.Thickness*v.Scale(), clr, 1)
	}
	if s, ok := sess.ActiveStroke(); ok {
		a.drawBar(screen, v.ToScreenSpace(s.Start), v.ToScreenSpace(s.End), s.Thickness*v.Scale(), barColor, 0.6)
	}
}

// drawMosaicStrokes renders committed bars as a live mosaic: white capsules
// accumulate in an offscreen mask, the pixelated preview is clipped into
// them, and the result is composited over the screen. The in-progress stroke
// stays a translucent solid bar until it commits.
func (a *App) drawMosaicStrokes(screen *ebiten.Image) {
	v := a.Editor.Viewport()
	sess := a.Editor.Session()
	selected := sess.SelectedIndex()

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	if a.maskBuf == nil || a.maskBuf.Bounds().Dx() != sw || a.maskBuf.Bounds().Dy() != sh {
		a.maskBuf = ebiten.NewImage(sw, sh)
	}
	buf := a.maskBuf
	buf.Clear()

	white := color.RGBA{255, 255, 255, 255}
	for _, s := range sess.Strokes() {
		a.drawBar(buf, v.ToScreenSpace(s.Start), v.ToScreenSpace(s.End), s.Thickness*v.Scale(), white, 1)
	}

	// Clip the pixelated image into the capsule mask. Nearest filtering
	// keeps the mosaic cells crisp at any zoom.
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterNearest, Blend: contentBlend}
	op.GeoM.Scale(v.Scale(), v.Scale())
	op.GeoM.Translate(v.Offset().X, v.Offset().Y)
	buf.DrawImage(a.preview, op)

	screen.DrawImage(buf, &ebiten.DrawImageOptions{})

	if selected >= 0 {
		s := sess.Strokes()[selected]
		a.drawBar(screen, v.ToScreenSpace(s.Start), v.ToScreenSpace(s.End), s.Thickness*v.Scale(), selectedColor, 0.5)
	}
	if s, ok := sess.ActiveStroke(); ok {
		a.drawBar(screen, v.ToScreenSpace(s.Start), v.ToScreenSpace(s.End), s.Thickness*v.Scale(), barColor, 0.6)
	}
}

// drawBar fills a thick segment with round caps, all in screen space.
func (a *App) drawBar(dst *ebiten.Image, from, to Point, thickness float64, clr color.RGBA, alpha float32) {
	if thickness < 1 {
		thickness = 1
	}
	length := from.Dist(to)
	angle := math.Atan2(to.Y-from.Y, to.X-from.X)

	if length > 0 {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(length, thickness)
		op.GeoM.Translate(0, -thickness/2)
		op.GeoM.Rotate(angle)
		op.GeoM.Translate(from.X, from.Y)
		op.ColorScale.ScaleWithColor(clr)
		op.ColorScale.ScaleAlpha(alpha)
		dst.DrawImage(whitePixel, op)
	}
	for _, p := range []Point{from, to} {
		a.drawDisc(dst, p, thickness, clr, alpha)
	}
}

// drawDisc draws a filled circle of the given diameter centered at p.
func (a *App) drawDisc(dst *ebiten.Image, p Point, diameter float64, clr color.RGBA, alpha float32) {
	if a.disc == nil {
		a.disc = newDiscImage(64)
	}
	w := a.disc.Bounds().Dx()
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	s := diameter / float64(w)
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(p.X-diameter/2, p.Y-diameter/2)
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(alpha)
	dst.DrawImage(a.disc, op)
}

func (a *App) drawLoupe(screen *ebiten.Image) {
	l := a.Editor.Loupe()
	if !l.Visible {
		return
	}
	v := a.Editor.Viewport()
	m := a.Editor.Metrics
	d := int(m.Diameter)
	r := m.Diameter / 2

	if a.loupeBuf == nil || a.loupeBuf.Bounds().Dx() != d {
		a.loupeBuf = ebiten.NewImage(d, d)
	}
	buf := a.loupeBuf
	buf.Fill(backgroundColor)

	// Magnified image centered on the pointer's image point.
	center := v.ToImageSpace(l.Anchor)
	ls := v.Scale() * loupeMagnification
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Translate(-center.X, -center.Y)
	op.GeoM.Scale(ls, ls)
	op.GeoM.Translate(r, r)
	buf.DrawImage(a.img, op)

	// Bars, under the same magnification.
	toLoupe := func(ip Point) Point {
		return Point{X: (ip.X-center.X)*ls + r, Y: (ip.Y-center.Y)*ls + r}
	}
	sess := a.Editor.Session()
	for _, s := range sess.Strokes() {
		a.drawBar(buf, toLoupe(s.Start), toLoupe(s.End), s.Thickness*ls, barColor, 1)
	}
	if s, ok := sess.ActiveStroke(); ok {
		a.drawBar(buf, toLoupe(s.Start), toLoupe(s.End), s.Thickness*ls, barColor, 0.6)
	}

	// Crosshair at the magnified point.
	a.drawBar(buf, Point{X: r - 8, Y: r}, Point{X: r + 8, Y: r}, 1, crosshairColor, 1)
	a.drawBar(buf, Point{X: r, Y: r - 8}, Point{X: r, Y: r + 8}, 1, crosshairColor, 1)

	// Cut the buffer into a circle.
	maskOp := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	if a.disc == nil {
		a.disc = newDiscImage(64)
	}
	ds := m.Diameter / float64(a.disc.Bounds().Dx())
	maskOp.GeoM.Scale(ds, ds)
	maskOp.Blend = maskBlend
	buf.DrawImage(a.disc, maskOp)

	// Composite at the placed position.
	pos := l.Placement.Center
	bufOp := &ebiten.DrawImageOptions{}
	bufOp.GeoM.Translate(pos.X-r, pos.Y-r)
	screen.DrawImage(buf, bufOp)

	// Ring: heats up as the draw dwell progresses, solid hot while drawing.
	if a.ring == nil {
		a.ring = newRingImage(128, 6)
	}
	progress := a.Editor.DwellProgress(a.Input.Now())
	ringOp := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	rs := (m.Diameter + 4) / float64(a.ring.Bounds().Dx())
	ringOp.GeoM.Scale(rs, rs)
	ringOp.GeoM.Translate(pos.X-(m.Diameter+4)/2, pos.Y-(m.Diameter+4)/2)
	ringOp.ColorScale.ScaleWithColor(dwellRingColor(progress))
	screen.DrawImage(a.ring, ringOp)
}

// dwellRingColor blends the loupe ring from white toward hot orange as the
// positioning dwell approaches the drawing transition.
func dwellRingColor(progress float64) color.RGBA {
	white := colorful.Color{R: 1, G: 1, B: 1}
	hot := colorful.Color{R: 1, G: 0.35, B: 0.2}
	c := white.BlendHcl(hot, clamp(progress, 0, 1)).Clamped()
	return color.RGBA{R: uint8(c.R*255 + 0.5), G: uint8(c.G*255 + 0.5), B: uint8(c.B*255 + 0.5), A: 255}
}

// newDiscImage builds an anti-aliased white disc filling a size x size image.
func newDiscImage(size int) *ebiten.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	c := (float64(size) - 1) / 2
	radius := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dist := math.Hypot(float64(x)-c, float64(y)-c)
			a := clamp(radius-dist, 0, 1)
			v := uint8(255*a + 0.5)
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: v})
		}
	}
	return ebiten.NewImageFromImage(img)
}

// newRingImage builds an anti-aliased white annulus of the given stroke
// width inside a size x size image.
func newRingImage(size int, stroke float64) *ebiten.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	c := (float64(size) - 1) / 2
	outer := float64(size) / 2
	inner := outer - stroke
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dist := math.Hypot(float64(x)-c, float64(y)-c)
			a := clamp(outer-dist, 0, 1) * clamp(dist-inner, 0, 1)
			v := uint8(255*a + 0.5)
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: v})
		}
	}
	return ebiten.NewImageFromImage(img)
}

// Run opens a window and runs the app until it is closed.
func Run(app *App, cfg RunConfig) error {
	w, h := cfg.Width, cfg.Height
	if w <= 0 || h <= 0 {
		w, h = app.width, app.height
	}
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.Title == "" {
		cfg.Title = "mesen"
	}
	ebiten.SetWindowTitle(cfg.Title)
	app.ShowFPS = cfg.ShowFPS
	return ebiten.RunGame(app)
}
