/*
Package tone turns grayscale images into black and white bitmaps.

The stages are, in order: optional contrast and brightness adjustment,
binarization by either a fixed threshold or Floyd-Steinberg error diffusion,
and an optional inversion of the result.
*/
package tone

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
)

// Defaults used when no options are given.
const (
	DefaultThreshold  = 128
	DefaultContrast   = 1.0
	DefaultBrightness = 1.0
)

// ErrOptions is returned by Options.Validate.
var ErrOptions = errors.New("tone: invalid options")

// Options controls how a grayscale image is turned into a bitmap.
type Options struct {
	// Threshold is the gray level at and above which a pixel is white.
	Threshold uint8
	// Contrast scales the distance of each pixel from the mean gray level.
	Contrast float64
	// Brightness scales every gray level.
	Brightness float64
	// Invert swaps black and white after binarization.
	Invert bool
	// Dither uses error diffusion instead of Threshold.
	Dither bool
}

// DefaultOptions returns the options that leave an image untouched apart
// from a plain threshold at mid-gray.
func DefaultOptions() Options {
	return Options{
		Threshold:  DefaultThreshold,
		Contrast:   DefaultContrast,
		Brightness: DefaultBrightness,
	}
}

// Validate checks the multipliers are usable.
func (o Options) Validate() error {
	if o.Contrast < 0 {
		return fmt.Errorf("%w: negative contrast %v", ErrOptions, o.Contrast)
	}
	if o.Brightness < 0 {
		return fmt.Errorf("%w: negative brightness %v", ErrOptions, o.Brightness)
	}
	return nil
}

// String returns a stable representation of o, used as a cache key.
func (o Options) String() string {
	return fmt.Sprintf("threshold=%d,contrast=%g,brightness=%g,invert=%t,dither=%t", o.Threshold, o.Contrast, o.Brightness, o.Invert, o.Dither)
}

// Gray converts m to an 8-bit grayscale image with its top-left corner at
// (0, 0) using the standard luma weights.
func Gray(m image.Image) *image.Gray {
	b := m.Bounds()
	if g, ok := m.(*image.Gray); ok && b.Min == (image.Point{}) {
		return g
	}
	g := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(g, g.Bounds(), m, b.Min, draw.Src)
	return g
}
