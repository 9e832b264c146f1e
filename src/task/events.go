package task

import "time"

type TaskEvent struct {
	JobID     string        `json:"job_id"`
	Type      TaskEventType `json:"type"`
	Timestamp time.Time     `json:"timestamp"`
}

type TaskEventType string

const (
	Started   TaskEventType = "started"
	Validated TaskEventType = "validated"
	Decoded   TaskEventType = "decoded"
	Encoded   TaskEventType = "encoded"
	Resized   TaskEventType = "resized"
	Failed    TaskEventType = "failed"
	Completed TaskEventType = "completed"
)
