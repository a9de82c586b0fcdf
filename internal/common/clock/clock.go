package clock

import "time"

//go:generate mockgen -package=mocks -destination=mocks/mock_clock.go github.com/fitforge/teamsync/internal/common/clock Clock

// Clock provides the current time, injectable so expiry and timestamp logic
// can be pinned in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the wall clock
type SystemClock struct{}

// New returns a system-backed clock
func New() *SystemClock {
	return &SystemClock{}
}

// Now returns the current wall-clock time
func (c *SystemClock) Now() time.Time {
	return time.Now()
}
