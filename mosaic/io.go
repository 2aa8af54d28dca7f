package mosaic

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/jung-kurt/gofpdf"
)

// maxDim is the longest image side kept on load. Larger photos are scaled
// down so touch thresholds and mosaic cells stay in a sane pixel range.
const maxDim = 4096

// Open loads an image from disk, applying any EXIF orientation so that
// phone photos come in upright. Images whose long side exceeds maxDim are
// downscaled to fit it.
func Open(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	b := img.Bounds()
	if b.Dx() > maxDim || b.Dy() > maxDim {
		img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	}
	return img, nil
}

// Save writes img to path. The format follows the file extension; JPEG
// output uses quality 92.
func Save(path string, img image.Image) error {
	if err := imaging.Save(img, path, imaging.JPEGQuality(92)); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

// EncodePNG returns img encoded as PNG bytes, the format clipboards expect.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// WritePDF writes a single-page PDF to w whose page is exactly the size of
// img in points, with the image covering the full page.
func WritePDF(w io.Writer, img image.Image) error {
	b := img.Bounds()
	pw, ph := float64(b.Dx()), float64(b.Dy())
	if pw <= 0 || ph <= 0 {
		return fmt.Errorf("empty image")
	}

	png, err := EncodePNG(img)
	if err != nil {
		return err
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: pw, Ht: ph},
	})
	pdf.AddPage()
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("image", opts, bytes.NewReader(png))
	pdf.ImageOptions("image", 0, 0, pw, ph, false, opts, 0, "")
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}
