package dither

import "image"

var (
	bayer4x4 = [][]uint8{
		{0, 128, 32, 160},
		{192, 64, 224, 96},
		{48, 176, 16, 144},
		{240, 112, 208, 80},
	}
	bayer2x2 = [][]uint8{
		{0, 128},
		{192, 64},
	}
)

// Bayer4x4 is ordered dithering with a 4x4 Bayer threshold matrix.
type Bayer4x4 struct{}

func (Bayer4x4) Dither(img *image.Gray) { ordered(img, bayer4x4) }

// Bayer2x2 is ordered dithering with a 2x2 Bayer threshold matrix.
type Bayer2x2 struct{}

func (Bayer2x2) Dither(img *image.Gray) { ordered(img, bayer2x2) }

// ordered tiles the square matrix m over img, anchored at the top left pixel,
// and binarizes each pixel against its matrix entry.
func ordered(img *image.Gray, m [][]uint8) {
	n := len(m)
	w, h := img.Rect.Dx(), img.Rect.Dy()
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w]
		thresholds := m[y%n]
		for x, v := range row {
			row[x] = binarize(v, thresholds[x%n])
		}
	}
}
