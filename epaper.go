/*
Package epaper is a library for preparing content for a 1600 by 1200 pixel
black and white e-paper panel.

Images in any registered format are resampled to the panel resolution,
reduced to black and white and packed into the raw frame format understood
by the panel, see package bitmap. Synthetic test frames for checking the
panel itself are produced by package pattern.
*/
package epaper

import (
	"errors"
	"io"
	"log"

	"github.com/bodgit/epaper/bitmap"
	"github.com/bodgit/epaper/tone"
)

// Panel resolution
const (
	Width     = 1600
	Height    = 1200
	FrameSize = Width * Height / 8
)

var (
	// ErrInputNotFound is returned when the source image does not exist
	ErrInputNotFound = errors.New("epaper: input not found")
	// ErrDecode is returned when the source image cannot be decoded
	ErrDecode = errors.New("epaper: cannot decode image")
	// ErrSizeMismatch is returned when a converted frame is the wrong size
	ErrSizeMismatch = errors.New("epaper: frame size mismatch")
	// ErrNotDirectory is returned when batch input is not a directory
	ErrNotDirectory = errors.New("epaper: not a directory")
)

// Converter turns images into panel frames. It holds no mutable state
// between conversions.
type Converter struct {
	opts   tone.Options
	logger *log.Logger
	cache  *Cache

	width, height int
}

// New returns a Converter for the panel using opts. A nil logger discards
// all output.
func New(opts tone.Options, logger *log.Logger) (*Converter, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Converter{
		opts:   opts,
		logger: logger,
		width:  Width,
		height: Height,
	}, nil
}

// WithCache makes the Converter look up and store frames in cache.
func (c *Converter) WithCache(cache *Cache) *Converter {
	c.cache = cache
	return c
}

// Options returns the conversion options.
func (c *Converter) Options() tone.Options {
	return c.opts
}

func (c *Converter) frameSize() int {
	return bitmap.Size(c.width, c.height)
}
