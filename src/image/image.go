package image

import (
	"fmt"
	"path/filepath"
)

type ImageType string

const (
	AVI  ImageType = "avi"
	GIF  ImageType = "gif"
	JPEG ImageType = "jpeg"
	PNG  ImageType = "png"
)

func (t ImageType) ContentType() string {
	switch t {
	case AVI:
		return "video/x-msvideo"
	case GIF:
		return "image/gif"
	case JPEG:
		return "image/jpeg"
	case PNG:
		return "image/png"
	}
	return "application/octet-stream"
}

// Size is a bounding box in pixels. The zero value means "use the default".
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s Size) IsZero() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Reference is a still image on disk together with its pixel dimensions.
type Reference struct {
	Path   string `json:"path"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func (r Reference) Name() string {
	return filepath.Base(r.Path)
}

func (r Reference) SizeLabel() string {
	return fmt.Sprintf("Width: %dpx - Height: %dpx", r.Width, r.Height)
}
