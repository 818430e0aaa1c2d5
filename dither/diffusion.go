package dither

import (
	"image"
	"image/color"
	"image/draw"

	lib "github.com/makeworld-the-better-one/dither/v2"
)

type neighbor struct {
	dx, dy, weight int
}

// sierra2 spreads error to the pixels right of and below the current one.
// The weights sum to 32, which is why the error is divided by 32 up front.
var sierra2 = [...]neighbor{
	{1, 0, 5}, {2, 0, 3},
	{-2, 1, 2}, {-1, 1, 4}, {0, 1, 5}, {1, 1, 4}, {2, 1, 2},
	{-1, 2, 2}, {0, 2, 3}, {1, 2, 2},
}

// Sierra2Row is error diffusion dithering with the Sierra two-row kernel,
// binarizing at Threshold. Error that would fall outside the image is dropped.
type Sierra2Row struct{}

func (Sierra2Row) Dither(img *image.Gray) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*img.Stride + x
			v := int(img.Pix[i])
			quant := 0
			if v > Threshold {
				quant = 255
			}
			err := (v - quant) >> 5
			img.Pix[i] = uint8(quant)

			for _, n := range sierra2 {
				nx, ny := x+n.dx, y+n.dy
				if nx < 0 || nx >= w || ny >= h {
					continue
				}
				j := ny*img.Stride + nx
				img.Pix[j] = clamp(int(img.Pix[j]) + err*n.weight)
			}
		}
	}
}

func clamp(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}

var monochrome = []color.Color{color.Black, color.White}

// FloydSteinberg is error diffusion dithering with the standard library's
// Floyd-Steinberg drawer.
type FloydSteinberg struct{}

func (FloydSteinberg) Dither(img *image.Gray) {
	paletted := image.NewPaletted(img.Bounds(), monochrome)
	draw.FloydSteinberg.Draw(paletted, paletted.Bounds(), img, img.Bounds().Min)
	copyPaletted(img, paletted)
}

// Atkinson is error diffusion dithering with Bill Atkinson's kernel, which
// only propagates three quarters of the error and keeps highlights crisp.
type Atkinson struct{}

func (Atkinson) Dither(img *image.Gray) {
	d := lib.NewDitherer(monochrome)
	d.Matrix = lib.Atkinson
	// The library indexes its buffers by absolute coordinates, so it only
	// gets images that start at (0, 0).
	src := img
	if img.Rect.Min != (image.Point{}) {
		src = image.NewGray(image.Rect(0, 0, img.Rect.Dx(), img.Rect.Dy()))
		draw.Draw(src, src.Rect, img, img.Rect.Min, draw.Src)
	}
	copyPaletted(img, d.DitherPaletted(src))
}

// copyPaletted writes a black and white paletted image back into img.
func copyPaletted(img *image.Gray, p *image.Paletted) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var v uint8
			if p.Pix[y*p.Stride+x] != 0 {
				v = 255
			}
			img.Pix[y*img.Stride+x] = v
		}
	}
}
