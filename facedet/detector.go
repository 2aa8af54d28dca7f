package facedet

import (
	"errors"
	"fmt"
	"image"
	"os"

	"gocv.io/x/gocv"
)

// Detector wraps a loaded Haar cascade. It is not safe for concurrent use.
type Detector struct {
	classifier gocv.CascadeClassifier
	cfg        Config
}

// NewDetector loads the cascade named in cfg. Missing or unloadable cascade
// files are reported as errors; zeroed detection parameters fall back to
// DefaultConfig values.
func NewDetector(cfg Config) (*Detector, error) {
	if cfg.CascadeFile == "" {
		return nil, errors.New("no cascade file configured")
	}
	if _, err := os.Stat(cfg.CascadeFile); err != nil {
		return nil, fmt.Errorf("cascade file: %w", err)
	}

	def := DefaultConfig()
	if cfg.ScaleFactor <= 1 {
		cfg.ScaleFactor = def.ScaleFactor
	}
	if cfg.MinNeighbors <= 0 {
		cfg.MinNeighbors = def.MinNeighbors
	}
	if cfg.MinSize <= 0 {
		cfg.MinSize = def.MinSize
	}

	c := gocv.NewCascadeClassifier()
	if !c.Load(cfg.CascadeFile) {
		c.Close()
		return nil, fmt.Errorf("failed to load cascade %s", cfg.CascadeFile)
	}
	return &Detector{classifier: c, cfg: cfg}, nil
}

// Close releases the cascade.
func (d *Detector) Close() error {
	return d.classifier.Close()
}

// Detect returns the face boxes found in img, in image pixel coordinates.
func (d *Detector) Detect(img image.Image) ([]image.Rectangle, error) {
	rgb, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	defer rgb.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(rgb, &gray, gocv.ColorRGBToGray)

	faces := d.classifier.DetectMultiScaleWithParams(
		gray, d.cfg.ScaleFactor, d.cfg.MinNeighbors, 0,
		image.Pt(d.cfg.MinSize, d.cfg.MinSize), image.Point{},
	)
	return faces, nil
}
