package main

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

// defaultWidth is the width in dots used when no size is given.
const defaultWidth = 64

// targetSize returns the output size in dots. Missing dimensions follow the
// aspect ratio of src, and with neither given the width is defaultWidth.
func targetSize(width, height int, src image.Point) (int, int) {
	aspect := float64(src.X) / float64(src.Y)
	switch {
	case width == 0 && height == 0:
		width = defaultWidth
		height = int(math.Round(defaultWidth / aspect))
	case width == 0:
		width = int(math.Round(float64(height) * aspect))
	case height == 0:
		height = int(math.Round(float64(width) / aspect))
	}
	return max(width, 1), max(height, 1)
}

// fitSize scales src down to fit a terminal of cols by lines characters,
// leaving the last line for the prompt. Images are never scaled up. A
// terminal too small to hold a line of output counts as 80x25.
func fitSize(cols, lines int, src image.Point) (int, int) {
	if cols <= 0 || lines <= 1 {
		cols, lines = 80, 25 // Small, but a pretty standard default
	}
	// Multiply cols by 2 since each braille symbol is 2 pixels wide
	// Multiply lines by 4 since each braille symbol is 4 pixels high
	width, height := float64(cols*2), float64((lines-1)*4)
	scale := math.Min(width/float64(src.X), height/float64(src.Y))
	if scale > 1.0 {
		scale = 1.0
	}
	w := int(math.Round(float64(src.X) * scale))
	h := int(math.Round(float64(src.Y) * scale))
	return max(w, 1), max(h, 1)
}

// preprocess resizes img to width by height and applies the adjustments in o.
// Neutral adjustments are skipped.
func preprocess(img image.Image, width, height int, o options) image.Image {
	if b := img.Bounds(); b.Dx() != width || b.Dy() != height {
		img = resize.Resize(uint(width), uint(height), img, resize.Bilinear)
	}
	if o.Contrast != 0 {
		img = imaging.AdjustContrast(img, o.Contrast)
	}
	if o.Brighten != 0 {
		img = imaging.AdjustBrightness(img, o.Brighten)
	}
	if o.Gamma != 1.0 {
		img = imaging.AdjustGamma(img, o.Gamma)
	}
	if o.Sharpen > 0 {
		img = imaging.Sharpen(img, o.Sharpen)
	}
	return img
}
