package global

import (
	"image"
	"time"
)

type Instances struct {
	Display Display
	Timer   Timer
}

// Display is whatever presents previews and messages to the user.
type Display interface {
	ShowImage(name string, img image.Image) error
	ShowAnimation(file string) error
	Hide()
	Message(title, text string)
}

// Timer schedules a one shot callback.
type Timer interface {
	AfterFunc(d time.Duration, f func())
}
