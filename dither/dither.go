// Package dither reduces grayscale images to pure black and white in place.
//
// Every Ditherer leaves each pixel of the image either 0 or 255. Ditherers
// hold no state between calls and may be shared, but a single image must not
// be dithered by two goroutines at once.
package dither

import (
	"errors"
	"fmt"
	"image"
	"sort"
	"strings"
)

// Threshold is the binarization point used by Sierra2Row and None. It sits
// below the midpoint so that low resolution output comes out denser.
const Threshold = 96

// Ditherer converts a grayscale image to black (0) and white (255) in place.
type Ditherer interface {
	Dither(img *image.Gray)
}

// ErrUnknownDitherer is returned by Lookup for names it does not recognize.
var ErrUnknownDitherer = errors.New("unknown dithering algorithm")

type entry struct {
	d       Ditherer
	aliases []string
}

var registry = map[string]entry{
	"sierra2":         {Sierra2Row{}, []string{"s2"}},
	"bayer4x4":        {Bayer4x4{}, []string{"b4"}},
	"bayer2x2":        {Bayer2x2{}, []string{"b2"}},
	"none":            {None{}, []string{"n"}},
	"floyd-steinberg": {FloydSteinberg{}, []string{"fs"}},
	"atkinson":        {Atkinson{}, []string{"a"}},
}

// DefaultName is the name of the algorithm used when none is given.
const DefaultName = "sierra2"

// Lookup returns the Ditherer registered under name or one of its aliases.
// Matching is case insensitive and an empty name selects DefaultName.
func Lookup(name string) (Ditherer, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultName
	}
	if e, ok := registry[name]; ok {
		return e.d, nil
	}
	for _, e := range registry {
		for _, alias := range e.aliases {
			if alias == name {
				return e.d, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDitherer, name)
}

// Names returns the sorted names of all algorithms, each followed by its
// aliases in parentheses.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name, e := range registry {
		names = append(names, fmt.Sprintf("%s (%s)", name, strings.Join(e.aliases, ", ")))
	}
	sort.Strings(names)
	return names
}

// binarize maps v to white if it exceeds t and black otherwise.
func binarize(v, t uint8) uint8 {
	if v > t {
		return 255
	}
	return 0
}

// None binarizes each pixel against Threshold with no diffusion.
type None struct{}

func (None) Dither(img *image.Gray) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w]
		for x, v := range row {
			row[x] = binarize(v, Threshold)
		}
	}
}
