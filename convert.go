package epaper

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/epaper/bitmap"
	"github.com/bodgit/epaper/tone"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const previewSuffix = "_preview.png"

// PreviewPath returns the path of the preview image written alongside the
// frame at output.
func PreviewPath(output string) string {
	return strings.TrimSuffix(output, filepath.Ext(output)) + previewSuffix
}

// Convert resamples m to the panel resolution and reduces it to a black and
// white frame.
func (c *Converter) Convert(m image.Image) (*bitmap.Image, error) {
	b := m.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrDecode)
	}
	c.logger.Printf("Original size: %dx%d\n", b.Dx(), b.Dy())

	if b.Dx() != c.width || b.Dy() != c.height {
		c.logger.Printf("Resizing to %dx%d\n", c.width, c.height)
		m = resize.Resize(uint(c.width), uint(c.height), m, resize.Lanczos3)
	}

	c.logger.Println("Converting to grayscale")
	g := tone.Gray(m)

	if c.opts.Contrast != 1 {
		c.logger.Printf("Adjusting contrast: %gx\n", c.opts.Contrast)
	}
	if c.opts.Brightness != 1 {
		c.logger.Printf("Adjusting brightness: %gx\n", c.opts.Brightness)
	}
	g = tone.Adjust(g, c.opts)

	if c.opts.Dither {
		c.logger.Println("Converting to black and white (Floyd-Steinberg dithering)")
	} else {
		c.logger.Printf("Converting to black and white (threshold: %d)\n", c.opts.Threshold)
	}
	if c.opts.Invert {
		c.logger.Println("Inverting colors")
	}
	frame := tone.Binarize(g, c.opts)

	if n, want := len(frame.Bytes()), c.frameSize(); n != want {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrSizeMismatch, want, n)
	}

	return frame, nil
}

// ConvertReader decodes an image in any registered format from r and
// converts it.
func (c *Converter) ConvertReader(r io.Reader) (*bitmap.Image, error) {
	m, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	c.logger.Printf("Decoded %s image\n", format)

	return c.Convert(m)
}

func (c *Converter) convertBytes(b []byte) (*bitmap.Image, error) {
	if c.cache == nil {
		return c.ConvertReader(bytes.NewReader(b))
	}

	sha := fmt.Sprintf("%X", sha1.Sum(b))

	cached, err := c.cache.Find(sha, c.opts, c.width, c.height)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		c.logger.Printf("Using cached frame for %s\n", sha)
		return bitmap.Unpack(cached, c.width, c.height)
	}

	frame, err := c.ConvertReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}

	if err := c.cache.Add(sha, c.opts, c.width, c.height, frame.Bytes()); err != nil {
		return nil, err
	}

	return frame, nil
}

func writeFile(file string, fn func(io.Writer) error) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}

	if err := fn(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// ConvertFile converts the image at input, writing the frame to output and
// a preview image to PreviewPath(output).
func (c *Converter) ConvertFile(input, output string) error {
	c.logger.Printf("Opening %s\n", input)

	f, err := os.Open(input)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrInputNotFound, input)
		}
		return err
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return err
	}

	frame, err := c.convertBytes(b)
	if err != nil {
		return err
	}

	c.logger.Printf("Writing to %s\n", output)
	if err := writeFile(output, func(w io.Writer) error {
		return bitmap.Encode(w, frame)
	}); err != nil {
		return err
	}

	c.logger.Printf("Conversion successful: %s -> %s (%d bytes)\n", input, output, len(frame.Bytes()))

	preview := PreviewPath(output)
	if err := writeFile(preview, func(w io.Writer) error {
		return png.Encode(w, frame)
	}); err != nil {
		return err
	}
	c.logger.Printf("Preview saved: %s\n", preview)

	return nil
}
