package gif

import (
	nImage "image"
	nGif "image/gif"
)

// Mode tells whether the frames of a gif redraw the whole canvas or only a
// part of it.
type Mode string

const (
	ModeFull    Mode = "full"
	ModePartial Mode = "partial"
)

type Analysis struct {
	Width  int  `json:"width"`
	Height int  `json:"height"`
	Frames int  `json:"frames"`
	Mode   Mode `json:"mode"`
}

// Analyse walks every frame of the gif at file before deciding on the mode, a
// single frame does not tell whether the file is drawn additively.
func Analyse(file string) (Analysis, error) {
	g, err := decodeFile(file)
	if err != nil {
		return Analysis{}, err
	}

	return analyse(g), nil
}

func analyse(g *nGif.GIF) Analysis {
	canvas := canvasRect(g)

	a := Analysis{
		Width:  canvas.Dx(),
		Height: canvas.Dy(),
		Frames: len(g.Image),
		Mode:   ModeFull,
	}

	for _, frame := range g.Image {
		if frame.Bounds() != canvas {
			a.Mode = ModePartial
		}
	}

	return a
}

// canvasRect is the logical screen of the gif. Hand built gifs may leave the
// config empty, then the frames span the canvas.
func canvasRect(g *nGif.GIF) nImage.Rectangle {
	if g.Config.Width > 0 && g.Config.Height > 0 {
		return nImage.Rect(0, 0, g.Config.Width, g.Config.Height)
	}

	r := nImage.Rectangle{}
	for _, frame := range g.Image {
		r = r.Union(frame.Bounds())
	}
	return nImage.Rect(0, 0, r.Max.X, r.Max.Y)
}
