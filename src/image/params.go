package image

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidFrameRate = fmt.Errorf("frame rate must be a positive number")
	ErrInvalidDuration  = fmt.Errorf("duration must be a positive number of seconds")
)

const maxDurationSeconds = float64(math.MaxInt64 / int64(time.Second))

// Params are the animation settings typed by the user. FrameRate drives the
// video export, Duration drives the GIF export. Both are always carried.
type Params struct {
	FrameRate float64       `json:"frame_rate"`
	Duration  time.Duration `json:"duration"`
}

func ParseParams(frameRate, duration string) (Params, error) {
	fps, err := ParseFrameRate(frameRate)
	if err != nil {
		return Params{}, err
	}

	d, err := ParseDuration(duration)
	if err != nil {
		return Params{}, err
	}

	return Params{FrameRate: fps, Duration: d}, nil
}

func ParseFrameRate(s string) (float64, error) {
	v, ok := parsePositive(s)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFrameRate, s)
	}
	return v, nil
}

// ParseDuration parses a per-frame duration in seconds, "0.2" is 200ms.
func ParseDuration(s string) (time.Duration, error) {
	v, ok := parsePositive(s)
	if !ok || v > maxDurationSeconds {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}

	d := time.Duration(v * float64(time.Second))
	if d <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}
	return d, nil
}

func parsePositive(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}
