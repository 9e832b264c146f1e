package shell

import (
	"os"
	"path/filepath"
	"time"

	nImage "image"

	"github.com/pinanimate/PinAnimate/src/containers/png"
	"github.com/sirupsen/logrus"
)

// LogDisplay is the display of the command line front end. Static previews
// are written next to the animated preview so they can be opened by hand.
type LogDisplay struct {
	dir string
}

func NewLogDisplay(dir string) *LogDisplay {
	return &LogDisplay{dir: dir}
}

func (d *LogDisplay) ShowImage(name string, img nImage.Image) error {
	if err := os.MkdirAll(d.dir, 0700); err != nil {
		return err
	}

	file := filepath.Join(d.dir, "show.png")
	if err := png.Encode(file, img); err != nil {
		return err
	}

	b := img.Bounds()
	logrus.WithFields(logrus.Fields{
		"image":   name,
		"preview": file,
	}).Infof("showing %dx%d preview", b.Dx(), b.Dy())
	return nil
}

func (d *LogDisplay) ShowAnimation(file string) error {
	logrus.WithField("preview", file).Info("showing animation preview")
	return nil
}

func (d *LogDisplay) Hide() {
	logrus.Debug("preview hidden")
}

func (d *LogDisplay) Message(title, text string) {
	logrus.Info(title)
	logrus.Info(text)
}

type wallTimer struct{}

func (wallTimer) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}
