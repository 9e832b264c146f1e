package task

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	nImage "image"

	"github.com/google/uuid"
	"github.com/pinanimate/PinAnimate/src/configure"
	"github.com/pinanimate/PinAnimate/src/containers"
	"github.com/pinanimate/PinAnimate/src/containers/avi"
	"github.com/pinanimate/PinAnimate/src/containers/gif"
	"github.com/pinanimate/PinAnimate/src/global"
	"github.com/pinanimate/PinAnimate/src/image"
	"github.com/pinanimate/PinAnimate/src/job"
	"github.com/sirupsen/logrus"
)

const WarnSingleFrame = "only 1 frame found"

var ErrUnknownJobKind = fmt.Errorf("unknown job kind")

// Task runs a single export job to completion on the calling goroutine.
type Task struct {
	id  uuid.UUID
	job job.Job

	started   bool
	completed bool
	failed    error

	output   string
	files    []job.File
	events   []TaskEvent
	warnings []string

	now func() time.Time
}

func New(j job.Job) *Task {
	id := uuid.New()
	if j.ID == "" {
		j.ID = id.String()
	}

	return &Task{
		id:  id,
		job: j,
		now: time.Now,
	}
}

func (t *Task) ID() uuid.UUID {
	return t.id
}

func (t *Task) Job() job.Job {
	return t.job
}

// Run executes the job. A task runs once, later calls return the first result.
func (t *Task) Run(ctx global.Context) job.Result {
	if t.started {
		return t.result()
	}
	t.started = true

	start := time.Now()
	t.event(Started)

	var (
		output string
		files  []job.File
		err    error
	)

	switch t.job.Kind {
	case job.GIF:
		output, files, err = t.exportGIF(ctx.Config(), start)
	case job.Video:
		output, files, err = t.exportVideo(ctx.Config(), start)
	case job.Preview:
		output, files, err = t.preview(ctx.Config(), start)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownJobKind, t.job.Kind)
	}

	t.completed = true
	t.failed = err
	if err != nil {
		t.event(Failed)
		logrus.WithField("job_id", t.job.ID).Errorf("%s export failed: %s", t.job.Kind, err.Error())
		return t.result()
	}

	t.output = output
	t.files = files
	t.event(Completed)
	logrus.WithFields(logrus.Fields{
		"job_id": t.job.ID,
		"output": output,
	}).Infof("%s export finished in %s", t.job.Kind, time.Since(start))

	return t.result()
}

func (t *Task) exportGIF(cfg *configure.Config, start time.Time) (string, []job.File, error) {
	// the frame rate is not used by the gif writer but is validated all the same
	params, err := image.ParseParams(t.job.FrameRate, t.job.Duration)
	if err != nil {
		return "", nil, err
	}
	t.event(Validated)

	frames, err := containers.DecodeAll(t.job.Paths)
	if err != nil {
		return "", nil, err
	}
	t.event(Decoded)

	output, err := t.outputPath(cfg.OutputDir)
	if err != nil {
		return "", nil, err
	}

	animated, err := gif.EncodeFile(output, frames, params.Duration, cfg.LoopCount)
	if err != nil {
		return "", nil, err
	}
	if !animated {
		t.warn(WarnSingleFrame)
	}
	t.event(Encoded)

	file, err := t.describe(output, output, animated, len(frames), start)
	if err != nil {
		return "", nil, err
	}

	return output, []job.File{file}, nil
}

func (t *Task) exportVideo(cfg *configure.Config, start time.Time) (string, []job.File, error) {
	fps, err := image.ParseFrameRate(t.job.FrameRate)
	if err != nil {
		return "", nil, err
	}
	t.event(Validated)

	if len(t.job.Paths) == 0 {
		return "", nil, containers.ErrNoImages
	}

	output, err := t.outputPath(cfg.OutputDir)
	if err != nil {
		return "", nil, err
	}

	if err := avi.Encode(output, t.job.Paths, fps, cfg.JpegQuality, containers.Decode); err != nil {
		if _, statErr := os.Stat(output); statErr == nil {
			logrus.WithField("output", output).Warn("partially written video left on disk")
		}
		return "", nil, err
	}
	t.event(Encoded)

	file, err := t.describe(output, t.job.Paths[0], len(t.job.Paths) > 1, len(t.job.Paths), start)
	if err != nil {
		return "", nil, err
	}

	return output, []job.File{file}, nil
}

// preview writes the stills as a gif into the working dir, then scales that
// gif down frame by frame and writes it again in place.
func (t *Task) preview(cfg *configure.Config, start time.Time) (string, []job.File, error) {
	params, err := image.ParseParams(t.job.FrameRate, t.job.Duration)
	if err != nil {
		return "", nil, err
	}

	delay, err := image.ParseDuration(cfg.PreviewDuration)
	if err != nil {
		return "", nil, fmt.Errorf("preview_duration: %w", err)
	}
	t.event(Validated)

	frames, err := containers.DecodeAll(t.job.Paths)
	if err != nil {
		return "", nil, err
	}
	t.event(Decoded)

	output, err := t.outputPath(cfg.WorkingDir)
	if err != nil {
		return "", nil, err
	}

	if _, err := gif.EncodeFile(output, frames, params.Duration, cfg.LoopCount); err != nil {
		return "", nil, err
	}
	t.event(Encoded)

	resized, err := gif.ExtractFrames(output, t.job.ResizeTo)
	if err != nil {
		return "", nil, err
	}

	imgs := make([]nImage.Image, len(resized))
	for i, f := range resized {
		imgs[i] = f
	}

	animated, err := gif.EncodeFile(output, imgs, delay, cfg.LoopCount)
	if err != nil {
		return "", nil, err
	}
	if !animated {
		t.warn(WarnSingleFrame)
	}
	t.event(Resized)

	file, err := t.describe(output, output, animated, len(imgs), start)
	if err != nil {
		return "", nil, err
	}

	return output, []job.File{file}, nil
}

func (t *Task) outputPath(dir string) (string, error) {
	output := t.job.Output
	if output == "" {
		output = filepath.Join(dir, job.OutputName(t.job.Kind, t.now()))
	}

	if err := os.MkdirAll(filepath.Dir(output), 0700); err != nil {
		return "", fmt.Errorf("mkdir failed: %w", err)
	}

	return output, nil
}

// describe stats the written output. dims names the file the pixel size is
// read from, the avi container has no decoder so its first still is used.
func (t *Task) describe(output, dims string, animated bool, frames int, start time.Time) (job.File, error) {
	info, err := os.Stat(output)
	if err != nil {
		return job.File{}, err
	}

	contentType, err := containers.ContentType(output)
	if err != nil {
		return job.File{}, err
	}

	size, err := containers.DecodeConfig(dims)
	if err != nil {
		return job.File{}, err
	}

	return job.File{
		Name:        filepath.Base(output),
		Size:        int(info.Size()),
		ContentType: contentType,
		Animated:    animated,
		Width:       size.Width,
		Height:      size.Height,
		Frames:      frames,
		TimeTaken:   time.Since(start),
	}, nil
}

func (t *Task) event(typ TaskEventType) {
	e := TaskEvent{
		JobID:     t.job.ID,
		Type:      typ,
		Timestamp: time.Now(),
	}
	t.events = append(t.events, e)

	logrus.WithFields(logrus.Fields{
		"job_id": e.JobID,
		"kind":   t.job.Kind,
	}).Debug(e.Type)
}

func (t *Task) warn(msg string) {
	t.warnings = append(t.warnings, msg)
	logrus.WithField("job_id", t.job.ID).Warn(msg)
}

func (t *Task) result() job.Result {
	r := job.Result{
		JobID:    t.job.ID,
		Kind:     t.job.Kind,
		Success:  t.completed && t.failed == nil,
		Output:   t.output,
		Warnings: t.warnings,
		Files:    t.files,
	}
	if t.failed != nil {
		r.Error = t.failed.Error()
	}
	return r
}

func (t *Task) Events() []TaskEvent {
	out := make([]TaskEvent, len(t.events))
	copy(out, t.events)
	return out
}

func (t *Task) Completed() bool {
	return t.completed
}

func (t *Task) Failed() error {
	return t.failed
}

func (t *Task) Started() bool {
	return t.started
}
