package clipboard

import "time"

// Clock schedules the auto-clear callback. Tests substitute a fake.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending callback
type Timer interface {
	// Stop prevents the callback from firing; it reports whether it was pending
	Stop() bool
}

type systemClock struct{}

// SystemClock returns a Clock backed by time.AfterFunc
func SystemClock() Clock {
	return systemClock{}
}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
