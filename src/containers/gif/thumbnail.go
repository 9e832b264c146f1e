package gif

import (
	"math"

	nImage "image"

	"github.com/pinanimate/PinAnimate/src/image"
	"golang.org/x/image/draw"
)

// FitSize scales w x h down into box keeping the aspect ratio. It never
// scales up.
func FitSize(w, h int, box image.Size) image.Size {
	if w <= box.Width && h <= box.Height {
		return image.Size{Width: w, Height: h}
	}

	if w*box.Height > h*box.Width {
		return image.Size{
			Width:  box.Width,
			Height: clamp(int(math.Round(float64(h*box.Width)/float64(w))), 1, box.Height),
		}
	}

	return image.Size{
		Width:  clamp(int(math.Round(float64(w*box.Height)/float64(h))), 1, box.Width),
		Height: box.Height,
	}
}

// Thumbnail downscales img into box with a Catmull-Rom filter.
func Thumbnail(img nImage.Image, box image.Size) *nImage.NRGBA {
	return ThumbnailWith(img, box, draw.CatmullRom)
}

func ThumbnailWith(img nImage.Image, box image.Size, scaler draw.Scaler) *nImage.NRGBA {
	b := img.Bounds()
	fit := FitSize(b.Dx(), b.Dy(), box)

	if fit.Width == b.Dx() && fit.Height == b.Dy() {
		if nrgba, ok := img.(*nImage.NRGBA); ok && b.Min == (nImage.Point{}) {
			return nrgba
		}

		dst := nImage.NewNRGBA(nImage.Rect(0, 0, fit.Width, fit.Height))
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		return dst
	}

	dst := nImage.NewNRGBA(nImage.Rect(0, 0, fit.Width, fit.Height))
	scaler.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
