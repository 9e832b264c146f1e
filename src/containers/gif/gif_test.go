package gif

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	nImage "image"
	"image/color"
	nGif "image/gif"

	"github.com/pinanimate/PinAnimate/src/image"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red         = color.RGBA{R: 255, A: 255}
	blue        = color.RGBA{B: 255, A: 255}
	transparent = color.RGBA{}
	pal         = color.Palette{red, blue, transparent}
)

func paletted(r nImage.Rectangle, idx uint8) *nImage.Paletted {
	p := nImage.NewPaletted(r, pal)
	for i := range p.Pix {
		p.Pix[i] = idx
	}
	return p
}

func solid(w, h int, c color.Color) *nImage.NRGBA {
	img := nImage.NewNRGBA(nImage.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func writeGIF(t *testing.T, g *nGif.GIF) string {
	t.Helper()

	file := filepath.Join(t.TempDir(), "in.gif")
	f, err := os.Create(file)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, nGif.EncodeAll(f, g))
	return file
}

func partialGIF() *nGif.GIF {
	return &nGif.GIF{
		Image: []*nImage.Paletted{
			paletted(nImage.Rect(0, 0, 10, 10), 0),
			paletted(nImage.Rect(2, 2, 5, 5), 1),
		},
		Delay:  []int{10, 10},
		Config: nImage.Config{Width: 10, Height: 10},
	}
}

func TestTest(t *testing.T) {
	buf := bytes.Buffer{}
	require.NoError(t, nGif.Encode(&buf, paletted(nImage.Rect(0, 0, 4, 4), 0), nil))

	assert.True(t, Test(buf.Bytes()))
	assert.False(t, Test(buf.Bytes()[:6]))
	assert.False(t, Test([]byte("\x89PNG\r\n\x1a\n....")))
}

func TestAnalyse(t *testing.T) {
	full := &nGif.GIF{
		Image: []*nImage.Paletted{
			paletted(nImage.Rect(0, 0, 10, 8), 0),
			paletted(nImage.Rect(0, 0, 10, 8), 1),
			paletted(nImage.Rect(0, 0, 10, 8), 0),
		},
		Delay: []int{1, 1, 1},
	}

	a, err := Analyse(writeGIF(t, full))
	require.NoError(t, err)
	assert.Equal(t, Analysis{Width: 10, Height: 8, Frames: 3, Mode: ModeFull}, a)

	a, err = Analyse(writeGIF(t, partialGIF()))
	require.NoError(t, err)
	assert.Equal(t, ModePartial, a.Mode)
	assert.Equal(t, 2, a.Frames)
}

func TestAnalyse_NotAGif(t *testing.T) {
	file := filepath.Join(t.TempDir(), "x.gif")
	require.NoError(t, os.WriteFile(file, []byte("nope"), 0600))

	_, err := Analyse(file)
	assert.Error(t, err)
}

func TestExtract_FullModeDoesNotComposite(t *testing.T) {
	second := paletted(nImage.Rect(0, 0, 10, 10), 2)
	second.SetColorIndex(3, 3, 1)

	g := &nGif.GIF{
		Image:  []*nImage.Paletted{paletted(nImage.Rect(0, 0, 10, 10), 0), second},
		Config: nImage.Config{Width: 10, Height: 10},
	}

	frames := Extract(g, ModeFull, image.Size{Width: 10, Height: 10})
	require.Len(t, frames, 2)

	assert.Equal(t, color.NRGBA{R: 255, A: 255}, frames[0].NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{}, frames[1].NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, frames[1].NRGBAAt(3, 3))
}

func TestExtract_PartialModeCarriesCanvas(t *testing.T) {
	frames := Extract(partialGIF(), ModePartial, image.Size{Width: 10, Height: 10})
	require.Len(t, frames, 2)

	update := nImage.Rect(2, 2, 5, 5)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if (nImage.Point{X: x, Y: y}).In(update) {
				assert.Equal(t, color.NRGBA{B: 255, A: 255}, frames[1].NRGBAAt(x, y))
				continue
			}
			assert.Equal(t, frames[0].NRGBAAt(x, y), frames[1].NRGBAAt(x, y))
		}
	}
}

func TestExtract_MalformedFrameIsSkipped(t *testing.T) {
	bad := paletted(nImage.Rect(0, 0, 10, 10), 0)
	bad.Pix[0] = 7

	g := &nGif.GIF{
		Image:  []*nImage.Paletted{paletted(nImage.Rect(0, 0, 10, 10), 0), bad},
		Config: nImage.Config{Width: 10, Height: 10},
	}

	frames := Extract(g, ModePartial, image.Size{Width: 10, Height: 10})
	require.Len(t, frames, 2)
	assert.Equal(t, frames[0].Pix, frames[1].Pix)

	frames = Extract(g, ModeFull, image.Size{Width: 10, Height: 10})
	require.Len(t, frames, 2)
	assert.Equal(t, color.NRGBA{}, frames[1].NRGBAAt(5, 5))
}

// badIndexGIF has a second frame whose pixels index past its two entry colour
// table. image/gif writes it without complaint.
func badIndexGIF(second nImage.Rectangle) *nGif.GIF {
	bad := nImage.NewPaletted(second, color.Palette{red, blue})
	for i := range bad.Pix {
		bad.Pix[i] = 1
	}
	bad.Pix[0] = 3

	return &nGif.GIF{
		Image:  []*nImage.Paletted{paletted(nImage.Rect(0, 0, 10, 10), 0), bad},
		Delay:  []int{10, 10},
		Config: nImage.Config{Width: 10, Height: 10},
	}
}

func TestExtractFrames_MalformedFrameInFile(t *testing.T) {
	file := writeGIF(t, badIndexGIF(nImage.Rect(0, 0, 10, 10)))

	frames, err := ExtractFrames(file, image.Size{Width: 10, Height: 10})
	require.NoError(t, err)
	require.Len(t, frames, 2)

	assert.Equal(t, color.NRGBA{R: 255, A: 255}, frames[0].NRGBAAt(5, 5))
	assert.Equal(t, color.NRGBA{}, frames[1].NRGBAAt(5, 5))
}

func TestExtractFrames_MalformedPartialFrameInFile(t *testing.T) {
	file := writeGIF(t, badIndexGIF(nImage.Rect(0, 0, 5, 5)))

	a, err := Analyse(file)
	require.NoError(t, err)
	assert.Equal(t, ModePartial, a.Mode)

	frames, err := ExtractFrames(file, image.Size{Width: 10, Height: 10})
	require.NoError(t, err)
	require.Len(t, frames, 2)
	assert.Equal(t, frames[0].Pix, frames[1].Pix)
}

func TestDecode_KeepsPaletteLength(t *testing.T) {
	file := writeGIF(t, badIndexGIF(nImage.Rect(0, 0, 10, 10)))

	g, err := decodeFile(file)
	require.NoError(t, err)
	require.Len(t, g.Image, 2)

	assert.Len(t, g.Image[1].Palette, 2)
	// the first frame's table is written padded to four entries
	assert.Len(t, g.Image[0].Palette, 4)
	assert.Equal(t, color.RGBA{}, g.Image[0].Palette[2])
}

func TestDecode_Truncated(t *testing.T) {
	buf := bytes.Buffer{}
	require.NoError(t, nGif.EncodeAll(&buf, partialGIF()))

	_, err := decode(buf.Bytes()[:buf.Len()/2])
	assert.Error(t, err)

	_, err = decode([]byte("GIF89a"))
	assert.Error(t, err)
}

func TestExtract_InheritsGlobalPalette(t *testing.T) {
	second := paletted(nImage.Rect(0, 0, 4, 4), 1)
	second.Palette = nil

	g := &nGif.GIF{
		Image:  []*nImage.Paletted{paletted(nImage.Rect(0, 0, 4, 4), 0), second},
		Config: nImage.Config{Width: 4, Height: 4},
	}

	frames := Extract(g, ModeFull, image.Size{Width: 4, Height: 4})
	require.Len(t, frames, 2)
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, frames[1].NRGBAAt(1, 1))
}

func TestExtract_NoGlobalPalette(t *testing.T) {
	only := paletted(nImage.Rect(0, 0, 4, 4), 0)
	only.Palette = nil

	frames := Extract(&nGif.GIF{Image: []*nImage.Paletted{only}}, ModeFull, image.Size{Width: 4, Height: 4})
	require.Len(t, frames, 1)
	assert.Equal(t, color.NRGBA{}, frames[0].NRGBAAt(0, 0))
}

func TestExtractFrames_Sizes(t *testing.T) {
	frames := []nImage.Image{solid(40, 20, red), solid(40, 20, blue), solid(40, 20, red)}
	file := filepath.Join(t.TempDir(), "anim.gif")
	_, err := EncodeFile(file, frames, 100*time.Millisecond, 3)
	require.NoError(t, err)

	out, err := ExtractFrames(file, image.Size{})
	require.NoError(t, err)
	require.Len(t, out, 3)
	for _, f := range out {
		assert.Equal(t, nImage.Rect(0, 0, 20, 10), f.Bounds())
	}

	out, err = ExtractFrames(file, image.Size{Width: 10, Height: 10})
	require.NoError(t, err)
	for _, f := range out {
		assert.Equal(t, nImage.Rect(0, 0, 10, 5), f.Bounds())
	}

	out, err = ExtractFrames(file, image.Size{Width: 400, Height: 400})
	require.NoError(t, err)
	for _, f := range out {
		assert.Equal(t, nImage.Rect(0, 0, 40, 20), f.Bounds())
	}
}

func TestRoundTrip(t *testing.T) {
	frames := []nImage.Image{solid(60, 40, red), solid(60, 40, blue), solid(60, 40, red)}
	file := filepath.Join(t.TempDir(), "anim.gif")
	animated, err := EncodeFile(file, frames, 200*time.Millisecond, 1000)
	require.NoError(t, err)
	assert.True(t, animated)

	a, err := Analyse(file)
	require.NoError(t, err)
	assert.Equal(t, ModeFull, a.Mode)

	out, err := ExtractFrames(file, image.Size{Width: 30, Height: 20})
	require.NoError(t, err)
	require.Len(t, out, 3)
	for _, f := range out {
		assert.InDelta(t, 30, f.Bounds().Dx(), 1)
		assert.InDelta(t, 20, f.Bounds().Dy(), 1)
	}
}

func TestEncode_SingleFrameIsStatic(t *testing.T) {
	buf := bytes.Buffer{}
	animated, err := Encode(&buf, []nImage.Image{solid(8, 8, red)}, 200*time.Millisecond, 1000)
	require.NoError(t, err)
	assert.False(t, animated)
	assert.NotContains(t, buf.String(), "NETSCAPE2.0")

	g, err := nGif.DecodeAll(&buf)
	require.NoError(t, err)
	assert.Len(t, g.Image, 1)
	assert.Equal(t, []int{0}, g.Delay)
}

func TestEncode_Animation(t *testing.T) {
	buf := bytes.Buffer{}
	frames := []nImage.Image{solid(8, 8, red), solid(8, 8, blue), solid(8, 8, red)}
	animated, err := Encode(&buf, frames, 200*time.Millisecond, 1000)
	require.NoError(t, err)
	assert.True(t, animated)

	g, err := nGif.DecodeAll(&buf)
	require.NoError(t, err)
	assert.Len(t, g.Image, 3)
	assert.Equal(t, []int{20, 20, 20}, g.Delay)
	assert.Equal(t, 1000, g.LoopCount)
}

func TestEncode_KeepsTransparency(t *testing.T) {
	buf := bytes.Buffer{}
	frames := []nImage.Image{solid(4, 4, transparent), solid(4, 4, blue)}
	_, err := Encode(&buf, frames, 100*time.Millisecond, 1)
	require.NoError(t, err)

	g, err := nGif.DecodeAll(&buf)
	require.NoError(t, err)
	_, _, _, a := g.Image[0].At(0, 0).RGBA()
	assert.Equal(t, uint32(0), a)
}

func TestEncode_Errors(t *testing.T) {
	_, err := Encode(&bytes.Buffer{}, nil, time.Second, 1)
	assert.ErrorIs(t, err, ErrNoFrames)

	_, err = Encode(&bytes.Buffer{}, []nImage.Image{solid(2, 2, red), solid(2, 2, red)}, time.Second, 0)
	assert.ErrorIs(t, err, ErrInvalidLoopCount)
}

func TestDelay(t *testing.T) {
	assert.Equal(t, 20, Delay(200*time.Millisecond))
	assert.Equal(t, 30, Delay(300*time.Millisecond))
	assert.Equal(t, 1, Delay(time.Millisecond))
}

func TestFitSize(t *testing.T) {
	for _, c := range []struct {
		w, h int
		box  image.Size
		want image.Size
	}{
		{40, 20, image.Size{Width: 20, Height: 10}, image.Size{Width: 20, Height: 10}},
		{40, 20, image.Size{Width: 10, Height: 10}, image.Size{Width: 10, Height: 5}},
		{20, 40, image.Size{Width: 10, Height: 10}, image.Size{Width: 5, Height: 10}},
		{40, 20, image.Size{Width: 80, Height: 80}, image.Size{Width: 40, Height: 20}},
		{100, 50, image.Size{Width: 200, Height: 20}, image.Size{Width: 40, Height: 20}},
		{1000, 1, image.Size{Width: 10, Height: 10}, image.Size{Width: 10, Height: 1}},
	} {
		assert.Equal(t, c.want, FitSize(c.w, c.h, c.box))
	}
}

func TestDefaultSize(t *testing.T) {
	assert.Equal(t, image.Size{Width: 20, Height: 7}, DefaultSize(41, 15))
	assert.Equal(t, image.Size{Width: 1, Height: 1}, DefaultSize(1, 1))
}
