package mesen

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// statusHUD renders a small frame-rate and editor-state readout in the top
// left corner. The text is refreshed every ~0.5 seconds to stay readable.
type statusHUD struct {
	img  *ebiten.Image
	next time.Time
}

func (h *statusHUD) draw(screen *ebiten.Image, a *App) {
	if h.img == nil {
		// Wide enough for "mode: movingStroke  zoom: 1000%".
		h.img = ebiten.NewImage(230, 32)
	}
	if now := time.Now(); !now.Before(h.next) {
		h.next = now.Add(500 * time.Millisecond)
		h.refresh(a)
	}
	screen.DrawImage(h.img, &ebiten.DrawImageOptions{})
}

func (h *statusHUD) refresh(a *App) {
	h.img.Clear()
	// Semi-transparent background for readability.
	h.img.Fill(color.RGBA{0, 0, 0, 128})

	v := a.Editor.Viewport()
	zoom := 100.0
	if v.FitScale() > 0 {
		zoom = v.Scale() / v.FitScale() * 100
	}
	ebitenutil.DebugPrint(h.img, fmt.Sprintf(
		"FPS: %.1f  TPS: %.1f\nmode: %s  zoom: %.0f%%  bars: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		a.Editor.Mode(), zoom, len(a.Editor.Session().Strokes()),
	))
}
