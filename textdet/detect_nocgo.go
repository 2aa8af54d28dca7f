//go:build !cgo

package textdet

import "image"

// Detect is a stub for builds without cgo. It always returns ErrUnavailable.
func Detect(img image.Image, cfg Config) ([]Region, error) {
	return nil, ErrUnavailable
}
