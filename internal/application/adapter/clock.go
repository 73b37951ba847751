// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "time"

// Clock supplies the processing time. "Today" is an explicit input to every
// ledger operation rather than an ambient read of the system clock, so the
// historical/current split is deterministic and testable.
type Clock interface {
	// Now returns the current processing time in UTC.
	Now() time.Time

	// Today returns the current processing date at UTC midnight.
	Today() time.Time
}

// systemClock is the production Clock backed by the OS clock.
type systemClock struct{}

// NewSystemClock creates a Clock that reads the real system time.
func NewSystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

func (systemClock) Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
