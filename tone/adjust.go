package tone

import (
	"image"

	"github.com/disintegration/gift"
)

func clamp(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// mean returns the average gray level of g rounded to the nearest integer.
func mean(g *image.Gray) uint8 {
	b := g.Bounds()
	if b.Empty() {
		return 0
	}
	var sum uint64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := g.PixOffset(b.Min.X, y)
		for _, v := range g.Pix[i : i+b.Dx()] {
			sum += uint64(v)
		}
	}
	n := uint64(b.Dx() * b.Dy())
	return uint8((sum + n/2) / n)
}

// contrast blends each pixel with a flat image of level m.
func contrast(m uint8, factor float64) gift.Filter {
	pivot := float32(m) / 0xff
	f := float32(factor)
	return gift.ColorFunc(func(r0, g0, b0, a0 float32) (r, g, b, a float32) {
		return clamp(pivot + f*(r0-pivot)), clamp(pivot + f*(g0-pivot)), clamp(pivot + f*(b0-pivot)), a0
	})
}

// brightness blends each pixel with black.
func brightness(factor float64) gift.Filter {
	f := float32(factor)
	return gift.ColorFunc(func(r0, g0, b0, a0 float32) (r, g, b, a float32) {
		return clamp(f * r0), clamp(f * g0), clamp(f * b0), a0
	})
}

func apply(g *image.Gray, filter gift.Filter) *image.Gray {
	f := gift.New(filter)
	dst := image.NewGray(f.Bounds(g.Bounds()))
	f.Draw(dst, g)
	return dst
}

// Adjust applies the contrast and then the brightness multiplier from o to
// g. A multiplier of exactly 1 is skipped. g is not modified; if nothing
// needs doing g itself is returned.
func Adjust(g *image.Gray, o Options) *image.Gray {
	if o.Contrast != 1 {
		g = apply(g, contrast(mean(g), o.Contrast))
	}
	if o.Brightness != 1 {
		g = apply(g, brightness(o.Brightness))
	}
	return g
}
