package brailleimg

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
)

// ErrNoSuchFrame is returned when a frame past the end of an image is requested.
var ErrNoSuchFrame = errors.New("no such frame")

/*
Frame returns frame n of an animated gif as it would appear on screen. Frames
only cover the part of the canvas they change, so every frame up to n is drawn
onto the canvas in turn. Disposal methods are respected: a frame disposed to
the background is cleared once the next frame is due, and a frame disposed to
previous is undone.
*/
func Frame(giff *gif.GIF, n int) (image.Image, error) {
	if n < 0 || n >= len(giff.Image) {
		return nil, fmt.Errorf("%w: %d of %d", ErrNoSuchFrame, n, len(giff.Image))
	}

	bounds := image.Rect(0, 0, giff.Config.Width, giff.Config.Height)
	for _, frame := range giff.Image {
		bounds = bounds.Union(frame.Bounds())
	}
	// Undrawn areas stay transparent, which reduces to black.
	screen := image.NewNRGBA(bounds)

	for i := 0; i <= n; i++ {
		frame := giff.Image[i]
		if i == n {
			drawFrame(screen, frame)
			break
		}

		var disposal byte
		if i < len(giff.Disposal) {
			disposal = giff.Disposal[i]
		}
		switch disposal {
		// Dispose previous essentially means draw then undo
		case gif.DisposalPrevious:
		// Dispose background replaces everything just drawn with the background canvas
		case gif.DisposalBackground:
			draw.Draw(screen, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
		// Dispose none or undefined means we just draw what we got over top
		default:
			drawFrame(screen, frame)
		}
	}
	return screen, nil
}

// drawFrame composites frame over target, leaving transparent pixels alone.
func drawFrame(target draw.Image, frame image.Image) {
	draw.Draw(target, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
}
