package job

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOutputName(t *testing.T) {
	now := time.Date(2024, 3, 7, 9, 5, 2, 0, time.Local)

	assert.Equal(t, "PinAnimatedImages-2024-03-07_09.05.02.gif", OutputName(GIF, now))
	assert.Equal(t, "PinAnimatedMovie-2024-03-07_09.05.02.avi", OutputName(Video, now))
	assert.Equal(t, "temp.gif", OutputName(Preview, now))
}
