package job

import (
	"fmt"
	"time"

	"github.com/pinanimate/PinAnimate/src/image"
)

type Kind string

const (
	GIF     Kind = "gif"
	Video   Kind = "video"
	Preview Kind = "preview"
)

const (
	TimeFormat  = "2006-01-02_15.04.05"
	PreviewName = "temp.gif"
)

// Job is one export request. FrameRate and Duration are the text the user
// typed, they are validated before any file is touched.
type Job struct {
	ID string `json:"id"`

	Kind      Kind       `json:"kind"`
	Paths     []string   `json:"paths"`
	FrameRate string     `json:"frame_rate"`
	Duration  string     `json:"duration"`
	Output    string     `json:"output,omitempty"`
	ResizeTo  image.Size `json:"resize_to"`
}

// OutputName is the timestamped file name of an export made at now.
func OutputName(kind Kind, now time.Time) string {
	switch kind {
	case Video:
		return fmt.Sprintf("PinAnimatedMovie-%s.avi", now.Format(TimeFormat))
	case Preview:
		return PreviewName
	}
	return fmt.Sprintf("PinAnimatedImages-%s.gif", now.Format(TimeFormat))
}

type File struct {
	Name        string        `json:"name"`
	Size        int           `json:"size"`
	ContentType string        `json:"content_type"`
	Animated    bool          `json:"animated"`
	Width       int           `json:"width"`
	Height      int           `json:"height"`
	Frames      int           `json:"frames"`
	TimeTaken   time.Duration `json:"time_taken"`
}

// Result is what a finished job reports back. Error is set only when Success
// is false, Warnings may be set either way.
type Result struct {
	JobID    string   `json:"job_id"`
	Kind     Kind     `json:"kind"`
	Success  bool     `json:"success"`
	Output   string   `json:"output,omitempty"`
	Error    string   `json:"error,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Files    []File   `json:"files,omitempty"`
}
