package gif

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	nImage "image"
	"image/color"
	"image/color/palette"
	nGif "image/gif"

	"golang.org/x/image/draw"
)

var (
	ErrNoFrames         = fmt.Errorf("no frames to encode")
	ErrInvalidLoopCount = fmt.Errorf("loop count must be positive")
)

var transparentPalette = append(append(color.Palette{}, palette.WebSafe...), color.Transparent)

// Delay converts a frame duration to gif delay units of 1/100s. Anything
// shorter than one unit is stored as one unit.
func Delay(d time.Duration) int {
	return max(int(math.Round(d.Seconds()*100)), 1)
}

// Encode writes frames as a gif. A single frame is written as a static image
// and animated is false. Otherwise every frame is shown for delay and the
// animation repeats loopCount times.
func Encode(w io.Writer, frames []nImage.Image, delay time.Duration, loopCount int) (animated bool, err error) {
	if len(frames) == 0 {
		return false, ErrNoFrames
	}

	if len(frames) == 1 {
		return false, nGif.Encode(w, toPaletted(frames[0]), nil)
	}

	if loopCount <= 0 {
		return false, fmt.Errorf("%w: %d", ErrInvalidLoopCount, loopCount)
	}

	canvas := nImage.Rectangle{}
	for _, f := range frames {
		canvas = canvas.Union(f.Bounds())
	}

	g := &nGif.GIF{
		Image:     make([]*nImage.Paletted, len(frames)),
		Delay:     make([]int, len(frames)),
		LoopCount: loopCount,
		Config: nImage.Config{
			Width:  canvas.Max.X,
			Height: canvas.Max.Y,
		},
	}

	d := Delay(delay)
	for i, f := range frames {
		g.Image[i] = toPaletted(f)
		g.Delay[i] = d
	}

	return true, nGif.EncodeAll(w, g)
}

func EncodeFile(file string, frames []nImage.Image, delay time.Duration, loopCount int) (bool, error) {
	f, err := os.Create(file)
	if err != nil {
		return false, fmt.Errorf("create file failed: %w", err)
	}

	animated, err := Encode(f, frames, delay, loopCount)
	if cErr := f.Close(); err == nil {
		err = cErr
	}

	return animated, err
}

func toPaletted(img nImage.Image) *nImage.Paletted {
	if p, ok := img.(*nImage.Paletted); ok && len(p.Palette) > 0 && len(p.Palette) <= 256 {
		return p
	}

	pal := palette.Plan9
	if !isOpaque(img) {
		pal = transparentPalette
	}

	b := img.Bounds()
	dst := nImage.NewPaletted(b, pal)
	draw.FloydSteinberg.Draw(dst, b, img, b.Min)
	return dst
}

func isOpaque(img nImage.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return false
			}
		}
	}
	return true
}
