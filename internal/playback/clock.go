package playback

import "time"

// Timer is the cancellable handle of a scheduled callback.
type Timer interface {
	Stop() bool
}

// Clock schedules the playback delays. Tests substitute a manual clock.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealClock returns the wall-clock implementation backed by time.AfterFunc.
func RealClock() Clock {
	return realClock{}
}
