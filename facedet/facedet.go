// Package facedet finds faces with an OpenCV Haar cascade and converts them
// to censoring bars over the eyes. Detection requires OpenCV and a cascade
// file at runtime; the geometry helpers are pure and always available.
package facedet

import (
	"image"

	"github.com/Arahabica/mesen"
)

// Eye-line geometry as fractions of the detected face box. The eye line of a
// frontal Haar face box sits a little above the vertical center.
const (
	eyeLineY  = 0.42 // bar center, measured from the top of the box
	eyeInsetX = 0.08 // horizontal inset on each side
	eyeBarH   = 0.24 // bar thickness
)

// Config controls cascade detection.
type Config struct {
	// CascadeFile is the path to a Haar cascade XML, typically
	// haarcascade_frontalface_default.xml from an OpenCV install.
	CascadeFile string

	ScaleFactor  float64 // image pyramid step, > 1
	MinNeighbors int     // detections required to keep a candidate
	MinSize      int     // smallest face side in pixels
}

// DefaultConfig returns detection parameters that work for photos. The
// cascade file has no default and must be set by the caller.
func DefaultConfig() Config {
	return Config{
		ScaleFactor:  1.1,
		MinNeighbors: 5,
		MinSize:      48,
	}
}

// EyeBars converts detected face boxes to one censoring bar per face, laid
// across the eye line. Degenerate boxes are skipped.
func EyeBars(faces []image.Rectangle) []mesen.Stroke {
	bars := make([]mesen.Stroke, 0, len(faces))
	for _, f := range faces {
		w := float64(f.Dx())
		h := float64(f.Dy())
		if w <= 0 || h <= 0 {
			continue
		}
		y := float64(f.Min.Y) + h*eyeLineY
		bars = append(bars, mesen.Stroke{
			Start:     mesen.Point{X: float64(f.Min.X) + w*eyeInsetX, Y: y},
			End:       mesen.Point{X: float64(f.Max.X) - w*eyeInsetX, Y: y},
			Thickness: h * eyeBarH,
		})
	}
	return bars
}
