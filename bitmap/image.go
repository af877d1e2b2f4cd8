package bitmap

import (
	"image"
	"image/color"
)

// Image is a packed 1-bit image. Pix is laid out exactly as the frame
// written to the panel, so Pix can be written out as-is.
type Image struct {
	// Pix holds the packed pixels, most significant bit leftmost.
	Pix []byte
	// Stride is the number of bytes between vertically adjacent pixels.
	Stride int
	// Rect is the image's bounds.
	Rect image.Rectangle
}

// New returns a new all-white Image with the given bounds.
func New(r image.Rectangle) *Image {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		panic("bitmap: negative dimensions")
	}
	stride := Stride(w)
	return &Image{
		Pix:    make([]byte, stride*h),
		Stride: stride,
		Rect:   r,
	}
}

// ColorModel returns Palette.
func (p *Image) ColorModel() color.Model {
	return Palette
}

// Bounds returns the image bounds.
func (p *Image) Bounds() image.Rectangle {
	return p.Rect
}

// At returns the color of the pixel at (x, y).
func (p *Image) At(x, y int) color.Color {
	return Palette[p.ColorIndexAt(x, y)]
}

// ColorIndexAt returns White or Black for the pixel at (x, y). Pixels
// outside the bounds are White.
func (p *Image) ColorIndexAt(x, y int) uint8 {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return White
	}
	i, bit := p.pixOffset(x, y)
	return p.Pix[i] >> bit & 1
}

// BlackAt reports whether the pixel at (x, y) is black.
func (p *Image) BlackAt(x, y int) bool {
	return p.ColorIndexAt(x, y) == Black
}

// Set sets the pixel at (x, y) to the nearest of black or white.
func (p *Image) Set(x, y int, c color.Color) {
	p.SetColorIndex(x, y, uint8(Palette.Index(c)))
}

// SetBlack sets the pixel at (x, y) to black if b is true, otherwise white.
func (p *Image) SetBlack(x, y int, b bool) {
	if b {
		p.SetColorIndex(x, y, Black)
	} else {
		p.SetColorIndex(x, y, White)
	}
}

// SetColorIndex sets the pixel at (x, y) to White or Black.
func (p *Image) SetColorIndex(x, y int, index uint8) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	i, bit := p.pixOffset(x, y)
	if index == White {
		p.Pix[i] &^= 1 << bit
	} else {
		p.Pix[i] |= 1 << bit
	}
}

// Invert flips every pixel. Padding bits stay clear.
func (p *Image) Invert() {
	for i := range p.Pix {
		p.Pix[i] = ^p.Pix[i]
	}
	p.clearPadding()
}

// Bytes returns the packed frame. The slice is shared with the image.
func (p *Image) Bytes() []byte {
	return p.Pix[:p.Stride*p.Rect.Dy()]
}

// MarshalBinary returns a copy of the packed frame.
func (p *Image) MarshalBinary() ([]byte, error) {
	b := make([]byte, len(p.Bytes()))
	copy(b, p.Bytes())
	return b, nil
}

// UnmarshalBinary replaces the pixels with b. The image bounds must already
// be set and b must be exactly one frame long.
func (p *Image) UnmarshalBinary(b []byte) error {
	if err := validate(p.Rect.Dx(), p.Rect.Dy()); err != nil {
		return err
	}
	if len(b) != Size(p.Rect.Dx(), p.Rect.Dy()) {
		return ErrSize
	}
	p.Stride = Stride(p.Rect.Dx())
	p.Pix = make([]byte, len(b))
	copy(p.Pix, b)
	p.clearPadding()
	return nil
}

// pixOffset returns the byte offset and bit shift for the pixel at (x, y).
// The leftmost pixel of each byte is bit 7.
func (p *Image) pixOffset(x, y int) (offset int, bit uint) {
	dx := x - p.Rect.Min.X
	offset = (y-p.Rect.Min.Y)*p.Stride + dx/bitsPerByte
	bit = uint(bitsPerByte - 1 - dx%bitsPerByte)
	return
}

func (p *Image) clearPadding() {
	tail := p.Rect.Dx() % bitsPerByte
	if tail == 0 {
		return
	}
	mask := byte(0xff) << uint(bitsPerByte-tail)
	for y := 0; y < p.Rect.Dy(); y++ {
		p.Pix[y*p.Stride+p.Stride-1] &= mask
	}
}
