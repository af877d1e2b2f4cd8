package tone

import (
	"image"
	"image/color"
	"math"

	"github.com/bodgit/epaper/bitmap"
	"github.com/makeworld-the-better-one/dither/v2"
)

// Palette order matches bitmap.White and bitmap.Black
var ditherPalette = []color.Color{color.White, color.Black}

// Threshold returns a bitmap where a pixel is black if and only if its gray
// level is strictly less than t.
func Threshold(g *image.Gray, t uint8) *bitmap.Image {
	b := g.Bounds()
	m := bitmap.New(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		i := g.PixOffset(b.Min.X, b.Min.Y+y)
		for x, v := range g.Pix[i : i+b.Dx()] {
			if v < t {
				m.SetColorIndex(x, y, bitmap.Black)
			}
		}
	}
	return m
}

// encoded maps each gray level v to the sRGB encoding of the linear value
// v/255, so that the ditherer's linearization gives back v.
var encoded = func() (lut [256]uint16) {
	for v := range lut {
		l := float64(v) / 255
		var s float64
		if l <= 0.0031308 {
			s = 12.92 * l
		} else {
			s = 1.055*math.Pow(l, 1/2.4) - 0.055
		}
		lut[v] = uint16(math.Round(math.Min(s, 1) * 0xffff))
	}
	return
}()

// encode returns g at the origin with every level passed through encoded.
func encode(g *image.Gray) *image.Gray16 {
	b := g.Bounds()
	m := image.NewGray16(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		i := g.PixOffset(b.Min.X, b.Min.Y+y)
		for x, v := range g.Pix[i : i+b.Dx()] {
			m.SetGray16(x, y, color.Gray16{Y: encoded[v]})
		}
	}
	return m
}

// Dither returns a bitmap approximating g with Floyd-Steinberg error
// diffusion. The error is carried right, down-left, down and down-right
// with weights 7/16, 3/16, 5/16 and 1/16, scanning rows top to bottom and
// each row left to right. Error is spread over the stored gray levels, so
// a level of v comes out roughly v/255 white.
func Dither(g *image.Gray) *bitmap.Image {
	d := dither.NewDitherer(ditherPalette)
	d.Matrix = dither.FloydSteinberg
	return bitmap.FromImage(d.DitherPaletted(encode(g)))
}

// Binarize turns g into a bitmap according to o: dithering or a threshold,
// followed by an inversion if requested.
func Binarize(g *image.Gray, o Options) *bitmap.Image {
	var m *bitmap.Image
	if o.Dither {
		m = Dither(g)
	} else {
		m = Threshold(g, o.Threshold)
	}
	if o.Invert {
		m.Invert()
	}
	return m
}

// Apply runs the whole tone pipeline on m: grayscale conversion,
// adjustment and binarization.
func Apply(m image.Image, o Options) *bitmap.Image {
	return Binarize(Adjust(Gray(m), o), o)
}
