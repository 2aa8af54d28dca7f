// Package mosaic turns a stroke list into censored pixels. It rasterizes the
// round-capped bars produced by the editor into an alpha mask and composites
// either opaque black or a pixelated copy of the source through it. File and
// PDF output live in io.go.
package mosaic

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"
	"golang.org/x/image/vector"

	"github.com/Arahabica/mesen"
)

// Mode selects how masked pixels are replaced.
type Mode int

const (
	// ModeFill paints the bars opaque black.
	ModeFill Mode = iota
	// ModeMosaic replaces the bars with a pixelated copy of the source.
	ModeMosaic
)

// DefaultBlock is the mosaic cell size in image pixels when Options.Block
// is zero.
const DefaultBlock = 12

// Options configures Flatten.
type Options struct {
	Mode  Mode
	Block int // mosaic cell size in pixels, DefaultBlock if <= 0
}

// capSegments is the number of line segments approximating each semicircular
// stroke cap in the rasterized mask.
const capSegments = 16

// --- Mask ---

// Mask rasterizes the strokes into an alpha mask of the given size. Stroke
// coordinates and thicknesses are multiplied by scale first, so a mask for
// the original image uses scale 1. Coverage is anti-aliased and strokes
// outside the mask are clipped.
func Mask(w, h int, strokes []mesen.Stroke, scale float64) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	if w <= 0 || h <= 0 || len(strokes) == 0 {
		return mask
	}
	z := vector.NewRasterizer(w, h)
	for _, s := range strokes {
		appendCapsule(z,
			s.Start.X*scale, s.Start.Y*scale,
			s.End.X*scale, s.End.Y*scale,
			s.Thickness*scale/2)
	}
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// appendCapsule adds the closed outline of a thick round-capped segment from
// (ax, ay) to (bx, by) with radius r. A zero-length segment degenerates to a
// full disc.
func appendCapsule(z *vector.Rasterizer, ax, ay, bx, by, r float64) {
	if r <= 0 {
		return
	}
	ux, uy := bx-ax, by-ay
	if length := math.Hypot(ux, uy); length > 0 {
		ux, uy = ux/length, uy/length
	} else {
		ux, uy = 1, 0
	}
	nx, ny := -uy, ux
	base := math.Atan2(ny, nx)

	z.MoveTo(float32(ax+nx*r), float32(ay+ny*r))
	z.LineTo(float32(bx+nx*r), float32(by+ny*r))
	// Cap around b, sweeping from +n through +u to -n.
	for i := 1; i <= capSegments; i++ {
		a := base - float64(i)*math.Pi/capSegments
		z.LineTo(float32(bx+math.Cos(a)*r), float32(by+math.Sin(a)*r))
	}
	z.LineTo(float32(ax-nx*r), float32(ay-ny*r))
	// Cap around a, sweeping from -n through -u back to +n.
	for i := 1; i <= capSegments; i++ {
		a := base + math.Pi - float64(i)*math.Pi/capSegments
		z.LineTo(float32(ax+math.Cos(a)*r), float32(ay+math.Sin(a)*r))
	}
	z.ClosePath()
}

// --- Pixelate ---

// Pixelate returns a copy of img where each block x block cell is collapsed
// to its average color. The result has the same dimensions as img.
func Pixelate(img image.Image, block int) *image.RGBA {
	if block < 1 {
		block = 1
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	dw := (w + block - 1) / block
	dh := (h + block - 1) / block
	small := transform.Resize(img, dw, dh, transform.Box)
	return transform.Resize(small, w, h, transform.NearestNeighbor)
}

// --- Flatten ---

// Flatten composites the strokes onto a copy of src and returns the censored
// image. The returned image is always anchored at (0, 0) regardless of the
// source bounds, matching the image space strokes are recorded in.
func Flatten(src image.Image, strokes []mesen.Stroke, opts Options) (*image.NRGBA, error) {
	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, errors.New("empty source image")
	}
	out := imaging.Clone(src)
	if len(strokes) == 0 {
		return out, nil
	}

	var fill image.Image
	switch opts.Mode {
	case ModeFill:
		fill = image.NewUniform(color.Black)
	case ModeMosaic:
		block := opts.Block
		if block <= 0 {
			block = DefaultBlock
		}
		fill = Pixelate(src, block)
	default:
		return nil, fmt.Errorf("unknown mode %d", opts.Mode)
	}

	mask := Mask(b.Dx(), b.Dy(), strokes, 1)
	draw.DrawMask(out, out.Bounds(), fill, image.Point{}, mask, image.Point{}, draw.Over)
	return out, nil
}
