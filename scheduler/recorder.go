package scheduler

import "time"

// Recorder receives queue and dispatch observations
type Recorder interface {
	RequestEnqueued(depth int)
	QueueDepth(depth int)
	DispatchWaited(wait time.Duration)
	RequestDispatched(endpoint string, duration time.Duration, err error)
}

type nopRecorder struct{}

func (nopRecorder) RequestEnqueued(int) {}
func (nopRecorder) QueueDepth(int) {}
func (nopRecorder) DispatchWaited(time.Duration) {}
func (nopRecorder) RequestDispatched(string, time.Duration, error) {}
