package epaper

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/epaper/pattern"
)

// DefaultPatternDir is where test patterns are written by default
const DefaultPatternDir = "test_patterns"

var testingOrder = []struct {
	pattern pattern.Pattern
	reason  string
}{
	{pattern.White, "Verify display clears properly"},
	{pattern.Black, "Verify full black display"},
	{pattern.Split, "Verify both controller halves work"},
	{pattern.Checkerboard, "Verify pixel alignment"},
	{pattern.Border, "Verify display boundaries"},
	{pattern.Grid, "Verify even display across screen"},
}

// GeneratePatterns writes every test pattern for a width by height panel
// into dir, one <name>.bin file each. dir is created if necessary.
func GeneratePatterns(dir string, width, height int, logger *log.Logger) error {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	if err := os.MkdirAll(dir, 0777); err != nil {
		return err
	}

	patterns := pattern.All()
	logger.Printf("Creating %d test patterns\n", len(patterns))

	for _, p := range patterns {
		logger.Printf("Generating %s test pattern\n", p)

		b, err := pattern.Generate(p, width, height)
		if err != nil {
			return err
		}

		file := filepath.Join(dir, p.Filename())
		if err := os.WriteFile(file, b, 0666); err != nil {
			return err
		}
		logger.Printf("Created %s (%d bytes)\n", file, len(b))
	}

	logger.Printf("All patterns created in %s\n", dir)
	logger.Println("Recommended testing order:")
	for i, o := range testingOrder {
		logger.Printf("%d. %-18s %s\n", i+1, o.pattern.Filename(), o.reason)
	}

	return nil
}
