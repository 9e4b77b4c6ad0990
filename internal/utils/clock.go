package utils

import "time"

// Clock supplies the current time. Services take one so that tests can move
// time forward.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock, in UTC.
type SystemClock struct{}

// Now implements [Clock].
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
