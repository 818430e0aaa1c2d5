package dither

import (
	"image"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// grayOf builds an image from rows of pixel values.
func grayOf(rows ...[]uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, len(rows[0]), len(rows)))
	for y, row := range rows {
		copy(img.Pix[y*img.Stride:], row)
	}
	return img
}

func uniform(w, h int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

// rowsOf returns the pixel values of img row by row.
func rowsOf(img *image.Gray) [][]uint8 {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	rows := make([][]uint8, h)
	for y := range rows {
		rows[y] = append([]uint8(nil), img.Pix[y*img.Stride:y*img.Stride+w]...)
	}
	return rows
}

// gradient covers every gray level with some noise mixed in.
func gradient(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Pix[y*img.Stride+x] = uint8((x*255/(w-1) + y*37 + (x*y)%11) % 256)
		}
	}
	return img
}

var _ = Describe("Ditherers", func() {
	names := []string{"sierra2", "bayer4x4", "bayer2x2", "none", "floyd-steinberg", "atkinson"}

	for _, name := range names {
		It(name+" leaves only black and white", func() {
			d, err := Lookup(name)
			Expect(err).NotTo(HaveOccurred())

			img := gradient(37, 23)
			d.Dither(img)
			for _, v := range img.Pix {
				Expect(v).To(Or(BeEquivalentTo(0), BeEquivalentTo(255)))
			}
		})

		It(name+" keeps solid black and white", func() {
			d, err := Lookup(name)
			Expect(err).NotTo(HaveOccurred())

			black, white := uniform(6, 5, 0), uniform(6, 5, 255)
			d.Dither(black)
			d.Dither(white)
			Expect(black.Pix).To(HaveEach(BeEquivalentTo(0)))
			Expect(white.Pix).To(HaveEach(BeEquivalentTo(255)))
		})

		It(name+" stays inside sub images", func() {
			d, err := Lookup(name)
			Expect(err).NotTo(HaveOccurred())

			parent := uniform(6, 4, 50)
			sub := parent.SubImage(image.Rect(2, 1, 4, 3)).(*image.Gray)
			for y := 1; y < 3; y++ {
				for x := 2; x < 4; x++ {
					parent.Pix[parent.PixOffset(x, y)] = 200
				}
			}
			d.Dither(sub)
			for y := 0; y < 4; y++ {
				for x := 0; x < 6; x++ {
					if image.Pt(x, y).In(sub.Rect) {
						continue
					}
					Expect(parent.Pix[parent.PixOffset(x, y)]).To(BeEquivalentTo(50), "pixel (%d, %d)", x, y)
				}
			}
		})

		It(name+" dithers images that do not start at the origin", func() {
			d, err := Lookup(name)
			Expect(err).NotTo(HaveOccurred())

			shifted := image.NewGray(image.Rect(3, 3, 7, 7))
			origin := uniform(4, 4, 0)
			for i := range shifted.Pix {
				v := uint8(i * 16)
				shifted.Pix[i], origin.Pix[i] = v, v
			}
			Expect(func() { d.Dither(shifted) }).NotTo(Panic())
			d.Dither(origin)
			Expect(shifted.Pix).To(Equal(origin.Pix))
		})
	}
})

var _ = Describe("None", func() {
	It("binarizes above the threshold", func() {
		img := grayOf([]uint8{0, 95, 96, 97, 127, 255})
		None{}.Dither(img)
		Expect(rowsOf(img)).To(Equal([][]uint8{{0, 0, 0, 255, 255, 255}}))
	})
})

var _ = Describe("Sierra2Row", func() {
	It("binarizes at the threshold", func() {
		low, high := grayOf([]uint8{96}), grayOf([]uint8{97})
		Sierra2Row{}.Dither(low)
		Sierra2Row{}.Dither(high)
		Expect(low.Pix).To(Equal([]uint8{0}))
		Expect(high.Pix).To(Equal([]uint8{255}))
	})

	It("carries error to the right", func() {
		// 90>>5 = 2, times 5 lifts the next pixel to 100.
		img := grayOf([]uint8{90, 90})
		Sierra2Row{}.Dither(img)
		Expect(rowsOf(img)).To(Equal([][]uint8{{0, 255}}))
	})

	It("carries negative error and clamps at black", func() {
		// (100-255)>>5 = -5, times 5 takes the next pixel below 0.
		img := grayOf([]uint8{100, 10})
		Sierra2Row{}.Dither(img)
		Expect(rowsOf(img)).To(Equal([][]uint8{{255, 0}}))
	})

	It("carries error down and to the left", func() {
		// Only (1,0) has error; it lifts (0,1) by 4*2 and (1,1) by 5*2.
		img := grayOf(
			[]uint8{0, 90},
			[]uint8{90, 0},
		)
		Sierra2Row{}.Dither(img)
		Expect(rowsOf(img)).To(Equal([][]uint8{
			{0, 0},
			{255, 0},
		}))
	})

	It("carries error two rows down", func() {
		// (0,0) has error 2 and lifts (0,2) by 3*2 to 97.
		img := grayOf(
			[]uint8{90},
			[]uint8{0},
			[]uint8{91},
		)
		Sierra2Row{}.Dither(img)
		Expect(rowsOf(img)).To(Equal([][]uint8{{0}, {0}, {255}}))
	})
})

var _ = Describe("ordered dithering", func() {
	It("tiles the 2x2 matrix", func() {
		img := uniform(4, 4, 150)
		Bayer2x2{}.Dither(img)
		Expect(rowsOf(img)).To(Equal([][]uint8{
			{255, 255, 255, 255},
			{0, 255, 0, 255},
			{255, 255, 255, 255},
			{0, 255, 0, 255},
		}))
	})

	It("turns uniform 200 white with the 2x2 matrix", func() {
		img := uniform(4, 4, 200)
		Bayer2x2{}.Dither(img)
		Expect(img.Pix).To(HaveEach(BeEquivalentTo(255)))
	})

	It("checkers uniform 100 with the 2x2 matrix", func() {
		img := uniform(4, 2, 100)
		Bayer2x2{}.Dither(img)
		Expect(rowsOf(img)).To(Equal([][]uint8{
			{255, 0, 255, 0},
			{0, 255, 0, 255},
		}))
	})

	It("tiles the 4x4 matrix", func() {
		img := uniform(4, 4, 100)
		Bayer4x4{}.Dither(img)
		Expect(rowsOf(img)).To(Equal([][]uint8{
			{255, 0, 255, 0},
			{0, 255, 0, 255},
			{255, 0, 255, 0},
			{0, 0, 0, 255},
		}))
	})

	It("anchors the matrix at the top left of the image", func() {
		parent := uniform(6, 6, 100)
		sub := parent.SubImage(image.Rect(1, 1, 5, 5)).(*image.Gray)
		Bayer4x4{}.Dither(sub)
		Expect(rowsOf(sub)[0]).To(Equal([]uint8{255, 0, 255, 0}))
	})
})

var _ = Describe("Lookup", func() {
	DescribeTable("finds algorithms by name or alias",
		func(name string, want Ditherer) {
			d, err := Lookup(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(d).To(Equal(want))
		},
		Entry("sierra2", "sierra2", Sierra2Row{}),
		Entry("s2", "s2", Sierra2Row{}),
		Entry("bayer4x4", "bayer4x4", Bayer4x4{}),
		Entry("b4", "b4", Bayer4x4{}),
		Entry("bayer2x2", "bayer2x2", Bayer2x2{}),
		Entry("b2", "b2", Bayer2x2{}),
		Entry("none", "none", None{}),
		Entry("n", "n", None{}),
		Entry("floyd-steinberg", "floyd-steinberg", FloydSteinberg{}),
		Entry("fs", "fs", FloydSteinberg{}),
		Entry("atkinson", "atkinson", Atkinson{}),
		Entry("a", "a", Atkinson{}),
		Entry("mixed case", " S2 ", Sierra2Row{}),
		Entry("empty", "", Sierra2Row{}),
	)

	It("rejects unknown names", func() {
		_, err := Lookup("jarvis")
		Expect(err).To(MatchError(ErrUnknownDitherer))
		Expect(err).To(MatchError(ContainSubstring(`"jarvis"`)))
	})

	It("lists names with their aliases", func() {
		Expect(Names()).To(Equal([]string{
			"atkinson (a)",
			"bayer2x2 (b2)",
			"bayer4x4 (b4)",
			"floyd-steinberg (fs)",
			"none (n)",
			"sierra2 (s2)",
		}))
	})
})
