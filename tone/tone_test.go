package tone

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/bodgit/epaper/bitmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniform(w, h int, v uint8) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, w, h))
	for i := range g.Pix {
		g.Pix[i] = v
	}
	return g
}

func noise(w, h int, seed int64) *image.Gray {
	r := rand.New(rand.NewSource(seed))
	g := image.NewGray(image.Rect(0, 0, w, h))
	for i := range g.Pix {
		g.Pix[i] = uint8(r.Intn(256))
	}
	return g
}

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	assert.Equal(t, uint8(128), o.Threshold)
	assert.Equal(t, 1.0, o.Contrast)
	assert.Equal(t, 1.0, o.Brightness)
	assert.False(t, o.Invert)
	assert.False(t, o.Dither)
	assert.NoError(t, o.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"defaults", DefaultOptions(), false},
		{"zero multipliers", Options{}, false},
		{"negative contrast", Options{Contrast: -0.5, Brightness: 1}, true},
		{"negative brightness", Options{Contrast: 1, Brightness: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrOptions)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOptionsString(t *testing.T) {
	assert.Equal(t, "threshold=128,contrast=1,brightness=1,invert=false,dither=false", DefaultOptions().String())
	assert.NotEqual(t, DefaultOptions().String(), Options{Threshold: 128, Contrast: 1, Brightness: 1, Dither: true}.String())
}

func TestGray(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 6))
	src.Set(5, 5, color.RGBA{128, 128, 128, 255})
	src.Set(6, 5, color.RGBA{255, 0, 0, 255})

	g := Gray(src)
	assert.Equal(t, image.Rect(0, 0, 2, 1), g.Bounds())
	assert.Equal(t, uint8(128), g.GrayAt(0, 0).Y)
	assert.Equal(t, color.GrayModel.Convert(color.RGBA{255, 0, 0, 255}), g.GrayAt(1, 0))

	// Already gray at the origin is passed through
	assert.Same(t, g, Gray(g))
}

func TestThresholdBoundary(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 8, 1))
	copy(g.Pix, []uint8{99, 100, 101, 0, 255, 127, 128, 129})

	m := Threshold(g, 100)
	assert.True(t, m.BlackAt(0, 0), "threshold-1 is black")
	assert.False(t, m.BlackAt(1, 0), "threshold is white")
	assert.False(t, m.BlackAt(2, 0))
	assert.True(t, m.BlackAt(3, 0))
	assert.False(t, m.BlackAt(4, 0))

	m = Threshold(g, 128)
	assert.Equal(t, []byte{0xf4}, m.Bytes())
}

func TestThresholdZero(t *testing.T) {
	m := Threshold(uniform(16, 2, 0), 0)
	assert.Equal(t, make([]byte, 4), m.Bytes())
}

func TestThresholdSubImage(t *testing.T) {
	g := noise(32, 8, 3)
	sub := g.SubImage(image.Rect(8, 2, 24, 6)).(*image.Gray)

	m := Threshold(sub, 128)
	assert.Equal(t, image.Rect(0, 0, 16, 4), m.Bounds())
	for y := 0; y < 4; y++ {
		for x := 0; x < 16; x++ {
			assert.Equal(t, g.GrayAt(x+8, y+2).Y < 128, m.BlackAt(x, y))
		}
	}
}

func TestInvertIsComplement(t *testing.T) {
	g := noise(64, 16, 7)

	o := DefaultOptions()
	plain := Binarize(g, o).Bytes()

	o.Invert = true
	inverted := Binarize(g, o).Bytes()

	require.Len(t, inverted, len(plain))
	for i := range plain {
		assert.Equal(t, ^plain[i], inverted[i], "byte %d", i)
	}
}

func TestDitherUniform(t *testing.T) {
	m := Dither(uniform(16, 4, 0))
	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, m.Bytes())

	m = Dither(uniform(16, 4, 255))
	assert.Equal(t, make([]byte, 8), m.Bytes())
}

func TestDitherMixes(t *testing.T) {
	tables := []struct {
		level uint8
		black float64
	}{
		{64, 0.749},
		{128, 0.498},
		{192, 0.247},
	}

	for _, table := range tables {
		const size = 128
		m := Dither(uniform(size, size, table.level))

		var black int
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				if m.BlackAt(x, y) {
					black++
				}
			}
		}
		assert.InDelta(t, table.black, float64(black)/(size*size), 0.05, "level %d", table.level)
	}
}

func TestDitherSubImage(t *testing.T) {
	g := uniform(32, 8, 255)
	for x := 0; x < 16; x++ {
		for y := 0; y < 8; y++ {
			g.SetGray(x, y, color.Gray{})
		}
	}

	m := Dither(g.SubImage(image.Rect(8, 0, 24, 8)).(*image.Gray))
	assert.Equal(t, image.Rect(0, 0, 16, 8), m.Bounds())
	for y := 0; y < 8; y++ {
		assert.Equal(t, []byte{0xff, 0x00}, m.Bytes()[y*2:y*2+2], "row %d", y)
	}
}

func TestBinarizeDitherInvert(t *testing.T) {
	o := DefaultOptions()
	o.Dither = true
	o.Invert = true

	m := Binarize(uniform(8, 1, 0), o)
	assert.Equal(t, []byte{0x00}, m.Bytes())
}

func TestAdjustNoop(t *testing.T) {
	g := noise(8, 8, 1)
	assert.Same(t, g, Adjust(g, DefaultOptions()))
}

func TestMean(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 4, 1))
	copy(g.Pix, []uint8{0, 0, 1, 2})
	assert.Equal(t, uint8(1), mean(g))

	assert.Equal(t, uint8(200), mean(uniform(3, 3, 200)))
}

func TestAdjustContrast(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 2, 1))
	copy(g.Pix, []uint8{100, 200})

	// Mean is 150, doubling the distance gives 50 and 250
	out := Adjust(g, Options{Contrast: 2, Brightness: 1})
	assert.InDelta(t, 50, int(out.Pix[0]), 1)
	assert.InDelta(t, 250, int(out.Pix[1]), 1)
	assert.Equal(t, []uint8{100, 200}, g.Pix, "source untouched")

	// Zero contrast flattens to the mean
	out = Adjust(g, Options{Contrast: 0, Brightness: 1})
	assert.InDelta(t, 150, int(out.Pix[0]), 1)
	assert.InDelta(t, 150, int(out.Pix[1]), 1)

	// Results are clamped
	out = Adjust(g, Options{Contrast: 10, Brightness: 1})
	assert.Equal(t, []uint8{0, 255}, out.Pix)
}

func TestAdjustBrightness(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 3, 1))
	copy(g.Pix, []uint8{0, 100, 200})

	out := Adjust(g, Options{Contrast: 1, Brightness: 0.5})
	assert.InDelta(t, 0, int(out.Pix[0]), 1)
	assert.InDelta(t, 50, int(out.Pix[1]), 1)
	assert.InDelta(t, 100, int(out.Pix[2]), 1)

	out = Adjust(g, Options{Contrast: 1, Brightness: 2})
	assert.InDelta(t, 200, int(out.Pix[1]), 1)
	assert.Equal(t, uint8(255), out.Pix[2])

	out = Adjust(g, Options{Contrast: 1, Brightness: 0})
	assert.Equal(t, []uint8{0, 0, 0}, out.Pix)
}

func TestApply(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 1))
	for x := 0; x < 8; x++ {
		v := uint8(x * 32)
		src.Set(x, 0, color.RGBA{v, v, v, 255})
	}

	m := Apply(src, DefaultOptions())
	assert.IsType(t, &bitmap.Image{}, m)
	assert.Equal(t, []byte{0xf0}, m.Bytes())

	// Dimming pushes 128 and 160 below the threshold
	o := DefaultOptions()
	o.Brightness = 0.75
	assert.Equal(t, []byte{0xfc}, Apply(src, o).Bytes())
}
