//go:build cgo

package textdet

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"
)

// Detect runs OCR over img and returns one region per recognized unit at the
// configured level. Units with empty text are filtered out.
func Detect(img image.Image, cfg Config) ([]Region, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if cfg.Lang == "" {
		cfg.Lang = DefaultConfig().Lang
	}
	if err := client.SetLanguage(cfg.Lang); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	level := gosseract.RIL_WORD
	if cfg.Level == LevelLine {
		level = gosseract.RIL_TEXTLINE
	}
	boxes, err := client.GetBoundingBoxes(level)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	regions := make([]Region, 0, len(boxes))
	for _, b := range boxes {
		if b.Word == "" {
			continue
		}
		regions = append(regions, Region{
			Text:       b.Word,
			Confidence: b.Confidence / 100,
			Box:        b.Box,
		})
	}
	return regions, nil
}
