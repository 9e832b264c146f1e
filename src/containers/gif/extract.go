package gif

import (
	"fmt"

	nImage "image"
	"image/color"
	nGif "image/gif"

	"github.com/pinanimate/PinAnimate/src/image"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"
)

var (
	ErrMalformedFrame = fmt.Errorf("malformed frame")
	ErrNoPalette      = fmt.Errorf("no global palette to inherit")
)

// DefaultSize is half the source canvas, rounded down.
func DefaultSize(w, h int) image.Size {
	return image.Size{
		Width:  max(w/2, 1),
		Height: max(h/2, 1),
	}
}

// ExtractFrames decodes the gif at file into fully drawn frames scaled down
// into size. A zero size means half of the source.
func ExtractFrames(file string, size image.Size) ([]*nImage.NRGBA, error) {
	a, err := Analyse(file)
	if err != nil {
		return nil, err
	}

	g, err := decodeFile(file)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"file":   file,
		"mode":   a.Mode,
		"frames": a.Frames,
	}).Debug("extracting frames")

	return Extract(g, a.Mode, size), nil
}

// Extract composites every frame of g onto its own canvas. In partial mode
// the previous canvas is drawn first so regions outside the frame's update
// rectangle carry over.
func Extract(g *nGif.GIF, mode Mode, size image.Size) []*nImage.NRGBA {
	canvas := canvasRect(g)
	if size.IsZero() {
		size = DefaultSize(canvas.Dx(), canvas.Dy())
	}

	var global color.Palette
	if len(g.Image) > 0 {
		global = g.Image[0].Palette
	}

	frames := make([]*nImage.NRGBA, 0, len(g.Image))

	var last *nImage.NRGBA
	for i, frame := range g.Image {
		if err := inheritPalette(frame, global); err != nil {
			logrus.WithField("frame", i).Debug("palette: ", err)
		}

		next := nImage.NewNRGBA(canvas)
		if mode == ModePartial && last != nil {
			draw.Draw(next, canvas, last, canvas.Min, draw.Src)
		}

		if err := paste(next, frame); err != nil {
			logrus.WithField("frame", i).Debug("skipping frame update: ", err)
		}

		frames = append(frames, Thumbnail(next, size))
		last = next
	}

	return frames
}

func inheritPalette(frame *nImage.Paletted, global color.Palette) error {
	if len(frame.Palette) > 0 {
		return nil
	}
	if len(global) == 0 {
		return ErrNoPalette
	}

	frame.Palette = global
	return nil
}

func paste(dst *nImage.NRGBA, frame *nImage.Paletted) error {
	if len(frame.Palette) == 0 {
		return fmt.Errorf("%w: empty palette", ErrMalformedFrame)
	}

	r := frame.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		off := frame.PixOffset(r.Min.X, y)
		for _, idx := range frame.Pix[off : off+r.Dx()] {
			if int(idx) >= len(frame.Palette) {
				return fmt.Errorf("%w: pixel index %d outside palette of %d", ErrMalformedFrame, idx, len(frame.Palette))
			}
		}
	}

	draw.Draw(dst, r, frame, r.Min, draw.Over)
	return nil
}
