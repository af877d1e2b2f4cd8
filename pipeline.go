package epaper

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".bmp":  {},
	".gif":  {},
	".tiff": {},
}

func isImage(file string) bool {
	_, ok := imageExtensions[strings.ToLower(filepath.Ext(file))]
	return ok
}

// Summary is the outcome of a batch conversion.
type Summary struct {
	Total     int
	Succeeded int
}

// Failed returns the number of images that could not be converted.
func (s Summary) Failed() int {
	return s.Total - s.Succeeded
}

func (s Summary) String() string {
	return fmt.Sprintf("%d/%d successful", s.Succeeded, s.Total)
}

// findImages walks base streaming any image files found. The directory skip
// is not descended into unless it is base itself.
func (c *Converter) findImages(ctx context.Context, base, skip string) (<-chan string, <-chan error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if file != base && info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if info.Mode().IsDir() && file != base && file == skip {
				return filepath.SkipDir
			}

			if !info.Mode().IsRegular() || !isImage(file) {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc
}

// OutputPath returns the frame path for input within the directory output.
func OutputPath(input, output string) string {
	base := filepath.Base(input)
	return filepath.Join(output, strings.TrimSuffix(base, filepath.Ext(base))+".bin")
}

// Batch converts every image found under the directory input, writing one
// frame per image into the directory output named after the image. Images
// are converted one at a time; a failure is logged and counted but doesn't
// stop the batch. An error is only returned if the directories themselves
// can't be used.
func (c *Converter) Batch(input, output string) (Summary, error) {
	var summary Summary

	input, err := filepath.Abs(input)
	if err != nil {
		return summary, err
	}

	output, err = filepath.Abs(output)
	if err != nil {
		return summary, err
	}

	info, err := os.Stat(input)
	if err != nil {
		if os.IsNotExist(err) {
			return summary, fmt.Errorf("%w: %s", ErrInputNotFound, input)
		}
		return summary, err
	}
	if !info.IsDir() {
		return summary, fmt.Errorf("%w: %s", ErrNotDirectory, input)
	}

	if err := os.MkdirAll(output, 0777); err != nil {
		return summary, err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	images, errc := c.findImages(ctx, input, output)

	for file := range images {
		summary.Total++
		c.logger.Printf("[%d] Converting %s\n", summary.Total, filepath.Base(file))

		if err := c.ConvertFile(file, OutputPath(file, output)); err != nil {
			c.logger.Printf("Failed to convert %s: %v\n", file, err)
			continue
		}
		summary.Succeeded++
	}

	if err := <-errc; err != nil {
		return summary, err
	}

	if summary.Total == 0 {
		c.logger.Printf("No images found in %s\n", input)
		return summary, nil
	}

	c.logger.Printf("Batch conversion complete: %s\n", summary)

	return summary, nil
}
