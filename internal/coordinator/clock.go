package coordinator

import "time"

// Timer is a cancellable handle for a scheduled action
type Timer interface {
	Stop() bool
}

// Scheduler abstracts the server clock and delayed actions so tests can
// drive the round cycle deterministically
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

// NewScheduler returns a Scheduler backed by the wall clock
func NewScheduler() Scheduler {
	return realScheduler{}
}

func (realScheduler) Now() time.Time {
	return time.Now()
}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
