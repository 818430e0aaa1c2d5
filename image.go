package brailleimg

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/kevin-cantwell/brailleimg/dither"
)

// Threshold separates dark from light pixels once an image is dithered.
const Threshold = 96

// Lightness returns the relative luminance (ITU-R BT.709) of a
// non-premultiplied pixel composited over black, rounded to 0-255.
func Lightness(r, g, b, a uint8) uint8 {
	l := (0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)) * (float64(a) / 255)
	return uint8(math.Round(math.Max(0, math.Min(255, l))))
}

// Grayscale returns the lightness of every pixel of img. The result always
// starts at (0, 0), whatever the bounds of img.
func Grayscale(img image.Image) *image.Gray {
	// An image's bounds do not necessarily start at (0, 0), so the two loops start
	// at bounds.Min.Y and bounds.Min.X.
	bounds := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := gray.Pix[(y-bounds.Min.Y)*gray.Stride:]
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			row[x-bounds.Min.X] = Lightness(c.R, c.G, c.B, c.A)
		}
	}
	return gray
}

// FromImage reduces img to a braille grid with one dot per pixel. The image
// is converted to grayscale and dithered with d. Dark pixels become raised
// dots, or light ones if invert is set. A pixel exactly at Threshold is
// never raised, but dithered pixels are only ever 0 or 255.
func FromImage(img image.Image, d dither.Ditherer, invert bool) (*Grid, error) {
	gray := Grayscale(img)
	d.Dither(gray)

	bounds := gray.Bounds()
	grid := New(bounds.Dx(), bounds.Dy())
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			v := gray.Pix[y*gray.Stride+x]
			if (invert && v > Threshold) || (!invert && v < Threshold) {
				if err := grid.Set(x, y, true); err != nil {
					return nil, fmt.Errorf("raising dot for pixel (%d, %d): %w", x, y, err)
				}
			}
		}
	}
	return grid, nil
}

type EncoderOpt func(enc *Encoder)

// WithDitherer sets the dithering algorithm. The default is dither.Sierra2Row.
func WithDitherer(d dither.Ditherer) EncoderOpt {
	return func(enc *Encoder) {
		enc.ditherer = d
	}
}

// If used, light pixels are drawn as raised dots instead of dark ones.
func WithInvert(invert bool) EncoderOpt {
	return func(enc *Encoder) {
		enc.invert = invert
	}
}

// WithBlankChars allows the blank braille character in the output. By default
// blank cells are drawn with a single dot to keep rows aligned.
func WithBlankChars(allow bool) EncoderOpt {
	return func(enc *Encoder) {
		enc.noEmpty = !allow
	}
}

// WithSeparator sets the rune written between rows. The default is a newline.
func WithSeparator(sep rune) EncoderOpt {
	return func(enc *Encoder) {
		enc.sep = sep
	}
}

type Encoder struct {
	w        io.Writer       // Output
	ditherer dither.Ditherer // Black and white reduction
	invert   bool            // Raise light pixels
	noEmpty  bool            // Replace blank cells
	sep      rune            // Row separator
}

func NewEncoder(w io.Writer, opts ...EncoderOpt) *Encoder {
	enc := Encoder{
		w:        w,
		ditherer: dither.Sierra2Row{},
		noEmpty:  true,
		sep:      '\n',
	}
	for _, opt := range opts {
		opt(&enc)
	}
	return &enc
}

/*
Encode writes img as braille followed by a newline. Each pixel of img becomes
one dot, so img should already be scaled to the desired output size: a
128x64 image encodes to 16 lines of 64 characters.

For example, a solid black 4x8 image encodes as:

	⣿⣿
	⣿⣿

and, with WithInvert(true), as a grid of single dots, since blank cells are
replaced unless WithBlankChars(true) is given:

	⠄⠄
	⠄⠄
*/
func (enc *Encoder) Encode(img image.Image) error {
	grid, err := FromImage(img, enc.ditherer, enc.invert)
	if err != nil {
		return err
	}
	_, err = grid.writeRender(enc.w, enc.noEmpty, enc.sep)
	return err
}

// Encode writes img to w as braille using the default encoder settings.
func Encode(w io.Writer, img image.Image) error {
	return NewEncoder(w).Encode(img)
}
