package importer

import "time"

// Load stages
const (
	StageReading  = "reading"
	StageCleaning = "cleaning"
	StageDone     = "done"
	StageError    = "error"
)

// ProgressEvent load progress, for the console and the reload endpoint
type ProgressEvent struct {
	Percent   int       `json:"percent"`
	Stage     string    `json:"stage"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func reportProgress(progress func(ProgressEvent), percent int, stage, message string) {
	if progress == nil {
		return
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	progress(ProgressEvent{
		Percent:   percent,
		Stage:     stage,
		Message:   message,
		Timestamp: time.Now(),
	})
}
