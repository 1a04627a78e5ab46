package scheduler

import (
	"time"

	"golang.org/x/time/rate"
)

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithMinInterval sets the minimum spacing between dispatches.
func WithMinInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d >= 0 {
			s.minInterval = d
		}
	}
}

// WithQuota adds a per-minute request budget on top of the minimum interval.
// A value of zero or less leaves the quota disabled.
func WithQuota(perMinute int) Option {
	return func(s *Scheduler) {
		if perMinute > 0 {
			s.quota = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Scheduler) {
		if r != nil {
			s.recorder = r
		}
	}
}
