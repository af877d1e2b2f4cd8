/*
Package pattern generates synthetic test frames for validating the e-paper
panel.

Every pattern is a pure function of the pixel coordinates and the canvas
size and is packed with bitmap.Pack, so the frames share exactly the same
layout as converted images.
*/
package pattern

import (
	"errors"
	"fmt"

	"github.com/bodgit/epaper/bitmap"
)

// Pattern names a test pattern. The name is also used as the output file
// name.
type Pattern string

// The available patterns
const (
	White             Pattern = "white"
	Black             Pattern = "black"
	Checkerboard      Pattern = "checkerboard"
	StripesHorizontal Pattern = "stripes_horizontal"
	StripesVertical   Pattern = "stripes_vertical"
	Gradient          Pattern = "gradient"
	Border            Pattern = "border"
	Grid              Pattern = "grid"
	Split             Pattern = "split"
	Text              Pattern = "text"
)

const (
	groupWidth      = 8
	blockSize       = 8
	stripeWidth     = 10
	borderThickness = 20
	gridSize        = 100
	lineThickness   = 2
	textWidth       = 400
	textHeight      = 100
	letterPeriod    = 100
	letterWidth     = 80
)

// ErrUnknownPattern is returned for a name that isn't one of the patterns
var ErrUnknownPattern = errors.New("pattern: unknown pattern")

var all = []Pattern{
	White,
	Black,
	Checkerboard,
	StripesHorizontal,
	StripesVertical,
	Gradient,
	Border,
	Grid,
	Split,
	Text,
}

// All returns every pattern in generation order.
func All() []Pattern {
	return append([]Pattern(nil), all...)
}

// Parse returns the Pattern called name.
func Parse(name string) (Pattern, error) {
	for _, p := range all {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPattern, name)
}

func (p Pattern) String() string {
	return string(p)
}

// Filename returns the file name the pattern is written to.
func (p Pattern) Filename() string {
	return string(p) + ".bin"
}

// group returns the first column of the 8 pixel group holding x.
func group(x int) int {
	return x - x%groupWidth
}

// Predicate returns the function deciding whether pixel (x, y) is black for
// pattern p on a width by height canvas.
func Predicate(p Pattern, width, height int) (func(x, y int) bool, error) {
	switch p {
	case White:
		return func(x, y int) bool { return false }, nil
	case Black:
		return func(x, y int) bool { return true }, nil
	case Checkerboard:
		return func(x, y int) bool {
			return (x/blockSize+y/blockSize)%2 == 0
		}, nil
	case StripesHorizontal:
		return func(x, y int) bool {
			return (y/stripeWidth)%2 == 0
		}, nil
	case StripesVertical:
		// Decided once per byte, not per pixel
		return func(x, y int) bool {
			return (group(x)/stripeWidth)%2 == 0
		}, nil
	case Gradient:
		return func(x, y int) bool {
			threshold := int(float64(y) / float64(height) * 255)
			return (x*17+y*13)%256 < threshold
		}, nil
	case Border:
		return func(x, y int) bool {
			return y < borderThickness || y >= height-borderThickness ||
				x < borderThickness || x >= width-borderThickness
		}, nil
	case Grid:
		return func(x, y int) bool {
			return y%gridSize < lineThickness || x%gridSize < lineThickness
		}, nil
	case Split:
		// Decided once per byte, not per pixel
		return func(x, y int) bool {
			return group(x) < width/2
		}, nil
	case Text:
		startX, startY := width/2-textWidth/2, height/2-textHeight/2
		return func(x, y int) bool {
			if y < startY || y >= startY+textHeight || x < startX || x >= startX+textWidth {
				return false
			}
			return (x-startX)%letterPeriod < letterWidth
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPattern, string(p))
}

// Generate returns the packed frame for pattern p on a width by height
// canvas.
func Generate(p Pattern, width, height int) ([]byte, error) {
	isBlack, err := Predicate(p, width, height)
	if err != nil {
		return nil, err
	}

	b, err := bitmap.Pack(width, height, isBlack)
	if err != nil {
		return nil, err
	}

	if want := bitmap.Size(width, height); len(b) != want {
		panic(fmt.Sprintf("pattern: %s produced %d bytes, want %d", p, len(b), want))
	}

	return b, nil
}
