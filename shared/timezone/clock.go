package timezone

import "time"

// Clock supplies "now" for expiry and eligibility checks.
type Clock interface {
	Now() time.Time
}

type appClock struct{}

func (appClock) Now() time.Time {
	return Now()
}

// NewClock returns a Clock reading the wall time in the application timezone.
func NewClock() Clock {
	return appClock{}
}

// FixedClock always reports the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time {
	return time.Time(c)
}
