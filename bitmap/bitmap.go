/*
Package bitmap implements the packed 1-bit frame used by the e-paper panel.

A frame is a raw, headerless sequence of bytes. Each row is stored top to
bottom as ceil(width/8) bytes; each byte holds eight horizontally adjacent
pixels with the most significant bit being the leftmost pixel. A set bit is a
black pixel and a clear bit is a white pixel. If the width is not a multiple
of eight the unused low bits of the last byte in each row are always clear.

For the 1600 by 1200 panel this gives 200 bytes per row and 240000 bytes in
total.
*/
package bitmap

import (
	"errors"
	"image"
	"image/color"
)

const bitsPerByte = 8

const (
	// White is the palette index of a white pixel, a clear bit
	White uint8 = iota
	// Black is the palette index of a black pixel, a set bit
	Black
)

var (
	// ErrDimensions is returned for a non-positive width or height
	ErrDimensions = errors.New("bitmap: invalid dimensions")
	// ErrSize is returned when a buffer does not match its dimensions
	ErrSize = errors.New("bitmap: buffer size does not match dimensions")
)

// Palette maps the two palette indices to their colors.
var Palette = color.Palette{color.White, color.Black}

// Stride returns the number of bytes used by one row of width pixels.
func Stride(width int) int {
	return (width + bitsPerByte - 1) / bitsPerByte
}

// Size returns the length of a packed frame of the given dimensions.
func Size(width, height int) int {
	return Stride(width) * height
}

func validate(width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrDimensions
	}
	return nil
}

// Pack builds a packed frame by asking isBlack about every pixel in row-major
// order. Bits beyond width in the last byte of each row are left clear and
// isBlack is never called for them.
func Pack(width, height int, isBlack func(x, y int) bool) ([]byte, error) {
	if err := validate(width, height); err != nil {
		return nil, err
	}

	stride := Stride(width)
	b := make([]byte, stride*height)

	for y := 0; y < height; y++ {
		row := b[y*stride : (y+1)*stride]
		for c := range row {
			var v byte
			for bit := 0; bit < bitsPerByte; bit++ {
				x := c*bitsPerByte + bit
				if x >= width {
					break
				}
				if isBlack(x, y) {
					v |= 0x80 >> uint(bit)
				}
			}
			row[c] = v
		}
	}

	return b, nil
}

// Unpack wraps b as an image of the given dimensions. The image shares b.
// Padding bits at the end of each row are cleared so the result is in
// canonical form.
func Unpack(b []byte, width, height int) (*Image, error) {
	if err := validate(width, height); err != nil {
		return nil, err
	}
	if len(b) != Size(width, height) {
		return nil, ErrSize
	}

	m := &Image{
		Pix:    b,
		Stride: Stride(width),
		Rect:   image.Rect(0, 0, width, height),
	}
	m.clearPadding()

	return m, nil
}
