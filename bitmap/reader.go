package bitmap

import (
	"errors"
	"image"
	"io"
)

var (
	// ErrNotEnough is returned when the reader holds less than one frame
	ErrNotEnough = errors.New("bitmap: not enough image data")
	// ErrTooMuch is returned when the reader holds more than one frame
	ErrTooMuch = errors.New("bitmap: too much image data")
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

type decoder struct {
	r io.Reader

	width, height int

	image *Image
}

func (d *decoder) decode(r io.Reader) error {
	d.r = r

	if err := validate(d.width, d.height); err != nil {
		return err
	}

	d.image = New(image.Rect(0, 0, d.width, d.height))

	if err := readFull(d.r, d.image.Pix); err != nil {
		if err != io.ErrUnexpectedEOF {
			return err
		}
		return ErrNotEnough
	}

	var tmp [1]byte
	if n, err := d.r.Read(tmp[:]); n != 0 || (err != io.EOF && err != io.ErrUnexpectedEOF) {
		if err != nil {
			return err
		}
		return ErrTooMuch
	}

	d.image.clearPadding()

	return nil
}

// Decode reads exactly one frame of the given dimensions from r and returns
// it as an Image.
func Decode(r io.Reader, width, height int) (*Image, error) {
	d := decoder{width: width, height: height}
	if err := d.decode(r); err != nil {
		return nil, err
	}
	return d.image, nil
}

// DecodeConfig returns the color model and dimensions of a frame. As the
// format has no header nothing is read from r; only the dimensions are
// checked.
func DecodeConfig(r io.Reader, width, height int) (image.Config, error) {
	if err := validate(width, height); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: Palette,
		Width:      width,
		Height:     height,
	}, nil
}
