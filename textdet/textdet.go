// Package textdet locates text with Tesseract OCR and converts the resulting
// word or line boxes to censoring bars. OCR requires cgo and libtesseract;
// in builds without cgo, Detect returns ErrUnavailable while the geometry
// helpers keep working.
package textdet

import (
	"errors"
	"image"

	"github.com/Arahabica/mesen"
)

// ErrUnavailable is returned by Detect when the binary was built without
// cgo and no OCR backend is linked in.
var ErrUnavailable = errors.New("textdet: OCR support not compiled in")

// Level selects the granularity of detected regions.
type Level int

const (
	LevelWord Level = iota
	LevelLine
)

// Config controls OCR.
type Config struct {
	Lang  string // Tesseract language codes, e.g. "eng" or "eng+jpn"
	Level Level
}

// DefaultConfig returns word-level English OCR.
func DefaultConfig() Config {
	return Config{Lang: "eng", Level: LevelWord}
}

// Region is one recognized text unit.
type Region struct {
	Text       string
	Confidence float64 // 0 to 1
	Box        image.Rectangle
}

// coverPad fattens cover bars over the raw OCR box so glyph edges and box
// corners land fully under the round-capped stroke.
const coverPad = 1.2

// CoverBars converts text regions to censoring bars laid along each box's
// longer axis, so vertical text runs get vertical bars. Degenerate boxes
// are skipped.
func CoverBars(regions []Region) []mesen.Stroke {
	bars := make([]mesen.Stroke, 0, len(regions))
	for _, r := range regions {
		w := float64(r.Box.Dx())
		h := float64(r.Box.Dy())
		if w <= 0 || h <= 0 {
			continue
		}
		cx := float64(r.Box.Min.X) + w/2
		cy := float64(r.Box.Min.Y) + h/2

		bar := mesen.Stroke{
			Start:     mesen.Point{X: float64(r.Box.Min.X), Y: cy},
			End:       mesen.Point{X: float64(r.Box.Max.X), Y: cy},
			Thickness: h * coverPad,
		}
		if h > w {
			bar = mesen.Stroke{
				Start:     mesen.Point{X: cx, Y: float64(r.Box.Min.Y)},
				End:       mesen.Point{X: cx, Y: float64(r.Box.Max.Y)},
				Thickness: w * coverPad,
			}
		}
		bars = append(bars, bar)
	}
	return bars
}
