package main

import (
	"errors"
	"io"
	"log"
	"os"

	"github.com/bodgit/epaper"
	"github.com/bodgit/epaper/tone"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func options(c *cli.Context) (tone.Options, error) {
	threshold := c.Int("threshold")
	if threshold < 0 || threshold > 255 {
		return tone.Options{}, errors.New("threshold must be between 0 and 255")
	}
	o := tone.Options{
		Threshold:  uint8(threshold),
		Contrast:   c.Float64("contrast"),
		Brightness: c.Float64("brightness"),
		Invert:     c.Bool("invert"),
		Dither:     c.Bool("dither"),
	}
	return o, o.Validate()
}

func convert(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	opts, err := options(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	logger := newLogger(c)

	conv, err := epaper.New(opts, logger)
	if err != nil {
		return cli.Exit(err, 1)
	}

	if db := c.String("db"); db != "" {
		cache, err := epaper.NewCache(db)
		if err != nil {
			return cli.Exit(err, 1)
		}
		defer cache.Close()
		conv.WithCache(cache)
	}

	input, output := c.Args().Get(0), c.Args().Get(1)

	if c.Bool("batch") {
		summary, err := conv.Batch(input, output)
		if err != nil {
			return cli.Exit(err, 1)
		}
		log.Printf("Batch conversion complete: %s\n", summary)
		return nil
	}

	if err := conv.ConvertFile(input, output); err != nil {
		return cli.Exit(err, 1)
	}
	log.Printf("Conversion successful: %s -> %s\n", input, output)

	return nil
}

func patterns(c *cli.Context) error {
	dir := epaper.DefaultPatternDir
	if c.NArg() > 0 {
		dir = c.Args().First()
	}

	if err := epaper.GeneratePatterns(dir, epaper.Width, epaper.Height, newLogger(c)); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "epaper"
	app.Usage = "1600x1200 e-paper frame utility"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"EPAPER_DB"},
			Usage:   "path to conversion cache database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "convert",
			Usage:       "Convert an image to a raw panel frame",
			Description: "Converts INPUT to OUTPUT. With --batch, INPUT and OUTPUT are directories and every image found under INPUT is converted.",
			ArgsUsage:   "INPUT OUTPUT",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "threshold",
					Value: tone.DefaultThreshold,
					Usage: "black/white threshold (0-255)",
				},
				&cli.Float64Flag{
					Name:  "contrast",
					Value: tone.DefaultContrast,
					Usage: "contrast multiplier",
				},
				&cli.Float64Flag{
					Name:  "brightness",
					Value: tone.DefaultBrightness,
					Usage: "brightness multiplier",
				},
				&cli.BoolFlag{
					Name:  "invert",
					Usage: "invert black and white",
				},
				&cli.BoolFlag{
					Name:  "dither",
					Usage: "use Floyd-Steinberg dithering",
				},
				&cli.BoolFlag{
					Name:  "batch",
					Usage: "convert all images in the INPUT directory",
				},
			},
			Action: convert,
		},
		{
			Name:        "patterns",
			Usage:       "Generate test pattern frames",
			Description: "Writes every test pattern to DIRECTORY, " + epaper.DefaultPatternDir + " by default.",
			ArgsUsage:   "[DIRECTORY]",
			Action:      patterns,
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
