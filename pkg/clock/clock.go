// Package clock ships the real-time clock; consumers define their own
// Clock interface over it and swap in fakes for deterministic tests.
package clock

import "time"

// SystemClock delegates straight to the time package.
type SystemClock struct{}

// After waits for the duration to elapse and then sends the current time
// on the returned channel.
func (SystemClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// Now returns the current local time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
