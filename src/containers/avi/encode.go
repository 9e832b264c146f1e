package avi

import (
	"bytes"
	"fmt"
	"math"

	nImage "image"
	nJpeg "image/jpeg"

	"github.com/icza/mjpeg"
	"github.com/sirupsen/logrus"
)

var (
	ErrNoFrames         = fmt.Errorf("no frames to encode")
	ErrInvalidFrameRate = fmt.Errorf("frame rate must be positive")
)

// Decoder turns one input path into a frame.
type Decoder func(file string) (nImage.Image, error)

// FrameRate rounds fps to the whole frames per second the container stores,
// between 1 and math.MaxInt32.
func FrameRate(fps float64) int32 {
	return int32(min(max(math.Round(fps), 1), math.MaxInt32))
}

// Encode writes one MJPEG frame per file into an AVI at output. Frames are
// decoded one at a time. The first file that fails to decode stops the
// export, frames written up to that point stay in the file.
func Encode(output string, files []string, fps float64, quality int, decode Decoder) error {
	if len(files) == 0 {
		return ErrNoFrames
	}
	if !(fps > 0) || math.IsInf(fps, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidFrameRate, fps)
	}

	first, err := decode(files[0])
	if err != nil {
		return err
	}

	b := first.Bounds()
	writer, err := mjpeg.New(output, int32(b.Dx()), int32(b.Dy()), FrameRate(fps))
	if err != nil {
		return fmt.Errorf("create avi failed: %w", err)
	}

	err = writeFrames(writer, first, files, quality, decode)
	if cErr := writer.Close(); err == nil && cErr != nil {
		err = fmt.Errorf("close avi failed: %w", cErr)
	}

	return err
}

func writeFrames(writer mjpeg.AviWriter, first nImage.Image, files []string, quality int, decode Decoder) error {
	size := first.Bounds().Size()
	buf := bytes.Buffer{}

	for i, file := range files {
		img := first
		if i > 0 {
			var err error
			if img, err = decode(file); err != nil {
				return err
			}
		}

		if img.Bounds().Size() != size {
			logrus.WithField("file", file).Warnf("frame size %v differs from %v", img.Bounds().Size(), size)
		}

		buf.Reset()
		if err := nJpeg.Encode(&buf, img, &nJpeg.Options{Quality: quality}); err != nil {
			return fmt.Errorf("encode jpeg failed: %s: %w", file, err)
		}

		if err := writer.AddFrame(buf.Bytes()); err != nil {
			return fmt.Errorf("add frame failed: %s: %w", file, err)
		}
	}

	return nil
}
