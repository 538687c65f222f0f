package metrics

import "time"

// Recorder receives transform observations. Implementations forward to a
// metrics backend; NoopRecorder discards everything.
type Recorder interface {
	ObserveTransform(kind string, d time.Duration)
	IncUnit(kind string, changed bool)
	IncLabeled(strategy string)
	IncJob(status string)
}

// NoopRecorder is the Recorder used when metrics are not configured.
type NoopRecorder struct{}

func (NoopRecorder) ObserveTransform(string, time.Duration) {}
func (NoopRecorder) IncUnit(string, bool)                   {}
func (NoopRecorder) IncLabeled(string)                      {}
func (NoopRecorder) IncJob(string)                          {}
