package bitmap

import (
	"image"
	"image/color"
	"io"
)

// Model maps any color to White or Black. Anything with a luma below 0x80 is
// black.
var Model = color.ModelFunc(toBlackOrWhite)

func toBlackOrWhite(c color.Color) color.Color {
	if isBlack(c) {
		return color.Black
	}
	return color.White
}

func isBlack(c color.Color) bool {
	return color.GrayModel.Convert(c).(color.Gray).Y < 0x80
}

// FromImage converts m to an Image, using Model for anything that is not
// already an Image. The result always has its top-left corner at (0, 0).
func FromImage(m image.Image) *Image {
	b := m.Bounds()

	if pm, ok := m.(*Image); ok && pm.Rect.Min == (image.Point{}) {
		return pm
	}

	dst := New(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			var black bool
			if pm, ok := m.(*Image); ok {
				black = pm.BlackAt(x, y)
			} else {
				black = isBlack(m.At(x, y))
			}
			dst.SetBlack(x-b.Min.X, y-b.Min.Y, black)
		}
	}
	return dst
}

// Encode writes the Image m to w as a raw packed frame.
func Encode(w io.Writer, m image.Image) error {
	if err := validate(m.Bounds().Dx(), m.Bounds().Dy()); err != nil {
		return err
	}

	_, err := w.Write(FromImage(m).Bytes())
	return err
}
