// Package shell holds the user session: the opened folder, the ordered images
// and the commands a front end invokes on them.
package shell

import (
	"fmt"
	"time"

	"github.com/pinanimate/PinAnimate/src/containers"
	"github.com/pinanimate/PinAnimate/src/containers/gif"
	"github.com/pinanimate/PinAnimate/src/global"
	"github.com/pinanimate/PinAnimate/src/image"
	"github.com/pinanimate/PinAnimate/src/job"
	"github.com/pinanimate/PinAnimate/src/task"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"
)

const (
	ImageHideAfter     = time.Second
	AnimationHideAfter = 10 * time.Second
)

var (
	ErrNoFolder    = fmt.Errorf("no folder opened")
	ErrRowNotFound = fmt.Errorf("row not found")
)

// thumbnail box of the single image preview
var showBox = image.Size{Width: 320, Height: 320}

type Shell struct {
	ctx global.Context

	dir string
	seq *image.Sequence
}

func New(ctx global.Context) *Shell {
	insts := ctx.Instances()
	if insts.Display == nil {
		insts.Display = NewLogDisplay(ctx.Config().WorkingDir)
	}
	if insts.Timer == nil {
		insts.Timer = wallTimer{}
	}

	return &Shell{
		ctx: ctx,
		seq: image.NewSequence(nil),
	}
}

func (s *Shell) Dir() string {
	return s.dir
}

func (s *Shell) Sequence() *image.Sequence {
	return s.seq
}

// OpenFolder replaces the sequence with the images found in dir.
func (s *Shell) OpenFolder(dir string) error {
	refs, err := containers.Scan(dir, s.ctx.Config().IncludeJPG)
	if err != nil {
		return err
	}

	s.dir = dir
	s.seq = image.NewSequence(refs)

	logrus.WithField("dir", dir).Infof("opened %d images", len(refs))
	return nil
}

func (s *Shell) MoveUp(rows ...int) []int {
	return s.seq.MoveUp(rows...)
}

func (s *Shell) MoveDown(rows ...int) []int {
	return s.seq.MoveDown(rows...)
}

func (s *Shell) Reorder(names []string) error {
	return s.seq.Reorder(names)
}

// Select is what a click on a row does.
func (s *Shell) Select(row int) error {
	return s.ShowImage(row)
}

// ShowImage previews one row scaled into 320x320 and hides it a second later.
func (s *Shell) ShowImage(row int) error {
	ref, ok := s.seq.At(row)
	if !ok {
		return fmt.Errorf("%w: %d", ErrRowNotFound, row)
	}

	img, err := containers.Decode(ref.Path)
	if err != nil {
		return err
	}

	display := s.ctx.Instances().Display
	if err := display.ShowImage(ref.Name(), gif.ThumbnailWith(img, showBox, draw.BiLinear)); err != nil {
		return err
	}

	s.ctx.Instances().Timer.AfterFunc(ImageHideAfter, display.Hide)
	return nil
}

func (s *Shell) ExportGIF() job.Result {
	res := s.run(job.GIF, image.Size{})
	if res.Success {
		s.ctx.Instances().Display.Message("Your animated gif has been created!", savedTo(res.Output))
	}
	return res
}

func (s *Shell) ExportVideo() job.Result {
	res := s.run(job.Video, image.Size{})
	if res.Success {
		s.ctx.Instances().Display.Message("Your movie has been created!", savedTo(res.Output))
	}
	return res
}

// Preview renders the downscaled preview gif and plays it for ten seconds.
func (s *Shell) Preview() job.Result {
	cfg := s.ctx.Config()
	res := s.run(job.Preview, image.Size{Width: cfg.PreviewWidth, Height: cfg.PreviewHeight})
	if !res.Success {
		return res
	}

	display := s.ctx.Instances().Display
	if err := display.ShowAnimation(res.Output); err != nil {
		logrus.WithError(err).Warn("failed to show preview")
		return res
	}

	s.ctx.Instances().Timer.AfterFunc(AnimationHideAfter, display.Hide)
	return res
}

func (s *Shell) run(kind job.Kind, resize image.Size) job.Result {
	cfg := s.ctx.Config()

	j := job.Job{
		Kind:      kind,
		Paths:     s.seq.Paths(),
		FrameRate: cfg.FrameRate,
		Duration:  cfg.Duration,
		ResizeTo:  resize,
	}
	if kind != job.Preview {
		j.Output = cfg.Output
	}

	return task.New(j).Run(s.ctx)
}

func savedTo(output string) string {
	return fmt.Sprintf("Your work has been saved to %s", output)
}
