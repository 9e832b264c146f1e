package containers

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	nImage "image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/hashicorp/go-multierror"
	"github.com/pinanimate/PinAnimate/src/containers/avi"
	"github.com/pinanimate/PinAnimate/src/containers/gif"
	"github.com/pinanimate/PinAnimate/src/containers/jpeg"
	"github.com/pinanimate/PinAnimate/src/containers/png"
	"github.com/pinanimate/PinAnimate/src/image"
	"github.com/sirupsen/logrus"
)

var (
	ErrUnknownFormat   = fmt.Errorf("unknown image format")
	ErrUnreadableImage = fmt.Errorf("unreadable image")
	ErrNoImages        = fmt.Errorf("no images")
)

func ToType(data []byte) (image.ImageType, error) {
	if avi.Test(data) {
		return image.AVI, nil
	} else if gif.Test(data) {
		return image.GIF, nil
	} else if png.Test(data) {
		return image.PNG, nil
	} else if jpeg.Test(data) {
		return image.JPEG, nil
	}

	return "", ErrUnknownFormat
}

// ContentType sniffs a written file and returns its MIME type.
func ContentType(file string) (string, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return "", err
	}

	t, err := ToType(data)
	if err != nil {
		return "", err
	}

	return t.ContentType(), nil
}

// Scan lists the still images directly inside dir, png files first and then
// jpg files, each group ordered by name. Sub directories are not entered.
func Scan(dir string, includeJPG bool) ([]image.Reference, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir failed: %w", err)
	}

	pngs := []string{}
	jpgs := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png":
			pngs = append(pngs, filepath.Join(dir, e.Name()))
		case ".jpg":
			if includeJPG {
				jpgs = append(jpgs, filepath.Join(dir, e.Name()))
			}
		}
	}

	sort.Strings(pngs)
	sort.Strings(jpgs)

	refs := make([]image.Reference, 0, len(pngs)+len(jpgs))
	for _, file := range append(pngs, jpgs...) {
		cfg, err := DecodeConfig(file)
		if err != nil {
			return nil, err
		}

		refs = append(refs, image.Reference{
			Path:   file,
			Width:  cfg.Width,
			Height: cfg.Height,
		})
	}

	logrus.WithField("dir", dir).Debugf("found %d images", len(refs))

	return refs, nil
}

// DecodeConfig reads the dimensions of a png, jpeg or gif without decoding
// the pixels.
func DecodeConfig(file string) (nImage.Config, error) {
	f, err := os.Open(file)
	if err != nil {
		return nImage.Config{}, fmt.Errorf("%w: %s: %w", ErrUnreadableImage, file, err)
	}
	defer f.Close()

	cfg, _, err := nImage.DecodeConfig(f)
	if err != nil {
		return nImage.Config{}, fmt.Errorf("%w: %s: %w", ErrUnreadableImage, file, err)
	}

	return cfg, nil
}

// Decode reads a still image. The format is taken from the file header the
// same way Scan reads dimensions, so trailing bytes after the image data do
// not matter. Animated gifs yield their first frame.
func Decode(file string) (nImage.Image, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnreadableImage, file, err)
	}
	defer f.Close()

	img, format, err := nImage.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnreadableImage, file, err)
	}

	logrus.WithField("file", file).Tracef("decoded %s", format)
	return img, nil
}

// DecodeAll decodes every file before anything is written, so a single bad
// source fails the export up front. The error lists every file that failed.
func DecodeAll(files []string) ([]nImage.Image, error) {
	if len(files) == 0 {
		return nil, ErrNoImages
	}

	imgs := make([]nImage.Image, len(files))

	var err error
	for i, file := range files {
		img, e := Decode(file)
		if e != nil {
			err = multierror.Append(err, e)
			continue
		}
		imgs[i] = img
	}

	if err != nil {
		return nil, err
	}

	return imgs, nil
}
