package repeat

import "time"

// Timer is a cancellable timer handle.
type Timer interface {
	// Stop cancels the timer. It reports whether the call prevented the
	// timer from firing; either way the handle is dead afterward.
	Stop() bool
}

// Clock schedules callbacks. The production clock delegates to
// time.AfterFunc; tests substitute a manually advanced fake so repeat
// cadence can be verified without sleeping.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemClock returns the wall-clock implementation.
func SystemClock() Clock {
	return systemClock{}
}
