// Package clock isolates the time source so deadline and expiry logic is
// deterministically testable.
package clock

import (
	"time"

	"eke/shared/timezone"
)

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// New returns a Clock backed by the wall clock in the application timezone.
func New() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return timezone.Now()
}
