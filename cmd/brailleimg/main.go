package main

import (
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/codegangsta/cli"
	"github.com/kevin-cantwell/brailleimg"
	"github.com/kevin-cantwell/brailleimg/dither"
)

const (
	appName = "brailleimg"
	version = "0.1.0"
)

func main() {
	// -v is taken by --verbose
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version, V",
		Usage: "print the version",
	}

	app := cli.NewApp()
	app.Version = version
	app.Name = appName
	app.Usage = "A command-line tool for rendering images as unicode braille symbols."
	app.UsageText = "1) brailleimg [options] [file|url]\n" +
		/*      */ "   2) brailleimg [options] < [file]"
	app.EnableBashCompletion = true
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:   "width, w",
			Usage:  "`WIDTH` in dots of the output image. Defaults to 64, or keeps the aspect ratio if only the height is given.",
			EnvVar: envVar("width"),
		},
		cli.IntFlag{
			Name:   "height, H",
			Usage:  "`HEIGHT` in dots of the output image. Keeps the aspect ratio if not given.",
			EnvVar: envVar("height"),
		},
		cli.IntFlag{
			Name:   "frame, f",
			Usage:  "`FRAME` of an animated gif to use, starting at frame 0. Other formats, animated webp included, only have frame 0.",
			EnvVar: envVar("frame"),
		},
		cli.StringFlag{
			Name:   "dithering, d",
			Usage:  "`ALGORITHM` to use, one of: " + strings.Join(dither.Names(), ", "),
			Value:  dither.DefaultName,
			EnvVar: envVar("dithering"),
		},
		cli.BoolFlag{
			Name:   "allow-blank-chars, b",
			Usage:  "Allow blank braille characters instead of replacing them with a single dot. Some terminals draw them narrower, which skews the image.",
			EnvVar: envVar("allow-blank-chars"),
		},
		cli.BoolFlag{
			Name:   "invert, i",
			Usage:  "Raise dots for dark pixels instead of light ones.",
			EnvVar: envVar("invert"),
		},
		cli.Float64Flag{
			Name:   "contrast",
			Usage:  "`CONTRAST` = 0 gives the original image. CONTRAST = -100 gives solid grey image. CONTRAST = 100 gives maximum contrast.",
			EnvVar: envVar("contrast"),
		},
		cli.Float64Flag{
			Name:   "brighten",
			Usage:  "`BRIGHTNESS` = 0 gives the original image. BRIGHTNESS = -100 gives solid black image. BRIGHTNESS = 100 gives solid white image.",
			EnvVar: envVar("brighten"),
		},
		cli.Float64Flag{
			Name:   "gamma, g",
			Usage:  "`GAMMA` = 1.0 gives the original image. GAMMA less than 1.0 darkens the image and GAMMA greater than 1.0 lightens it.",
			Value:  1.0,
			EnvVar: envVar("gamma"),
		},
		cli.Float64Flag{
			Name:   "sharpen, s",
			Usage:  "`SHARPEN` = 0 gives the original image. SHARPEN greater than 0 sharpens the image.",
			EnvVar: envVar("sharpen"),
		},
		cli.BoolFlag{
			Name:   "fit",
			Usage:  "Scale the image down to fit the terminal when no size is given.",
			EnvVar: envVar("fit"),
		},
		cli.StringFlag{
			Name:   "config, c",
			Usage:  "Read defaults from the YAML `FILE`. Flags and BRAILLE_* environment variables take precedence.",
			EnvVar: envVar("config"),
		},
		cli.IntFlag{
			Name:   "verbose, v",
			Usage:  "`LEVEL` 1 logs info, 2 logs debug. BRAILLE_LOG=error|warn|info|debug overrides it.",
			EnvVar: envVar("verbose"),
		},
	}
	app.Action = func(c *cli.Context) error {
		var fc *fileConfig
		if path := c.String("config"); path != "" {
			var err error
			if fc, err = loadConfig(path); err != nil {
				return cli.NewExitError(err.Error(), 1)
			}
		}
		o, err := resolveOptions(c, fc)
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		logger := newLogger(os.Stderr, o.Verbose)

		in, err := parseInput(c.Args().First())
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}

		client := &http.Client{Timeout: 30 * time.Second}
		if err := run(context.Background(), o, in, os.Stdin, os.Stdout, client, logger); err != nil {
			logger.Error("rendering failed", "err", err)
			return cli.NewExitError(err.Error(), 1)
		}
		return nil
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run reads, decodes, scales and adjusts the image, then writes it to stdout
// as braille.
func run(ctx context.Context, o options, in input, stdin io.Reader, stdout io.Writer, client *http.Client, logger *slog.Logger) error {
	logger.Debug("resolved options", "options", fmt.Sprintf("%+v", o))

	data, err := in.read(ctx, client, stdin)
	if err != nil {
		return err
	}
	img, format, err := decode(data, o.Frame)
	if err != nil {
		return err
	}
	src := img.Bounds().Size()
	logger.Debug("decoded image", "format", format, "width", src.X, "height", src.Y)

	start := time.Now()
	width, height := targetSize(o.Width, o.Height, src)
	if o.Fit && o.Width == 0 && o.Height == 0 {
		cols, lines, err := terminalSize()
		if err != nil {
			logger.Info("could not get terminal size, assuming 80x25", "err", err)
		}
		width, height = fitSize(cols, lines, src)
	}
	logger.Debug("target dimensions", "width", width, "height", height)

	img = preprocess(img, width, height, o)

	d, err := dither.Lookup(o.Dithering)
	if err != nil {
		return err
	}
	// Terminals are mostly light text on a dark background, so by default
	// light pixels are the ones drawn.
	enc := brailleimg.NewEncoder(stdout,
		brailleimg.WithDitherer(d),
		brailleimg.WithInvert(!o.Invert),
		brailleimg.WithBlankChars(o.AllowBlankChars),
	)
	if err := enc.Encode(img); err != nil {
		return err
	}

	logger.Info("turned image into braille", "elapsed", time.Since(start), "bounds", image.Rect(0, 0, width, height))
	return nil
}
