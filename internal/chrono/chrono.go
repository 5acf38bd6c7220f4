package chrono

import (
	"context"
	"time"
)

// DateLayout is the layout of the run date stamped onto harvested rows.
const DateLayout = "2006-01-02"

// API is the interface that anything depending on the system clock should use.
type API interface {
	Now() time.Time
	// Sleep blocks for d, returning early with ctx.Err() if ctx is done.
	Sleep(ctx context.Context, d time.Duration) error
}

// StandardImpl is the standard implementation of API using the standard library.
type StandardImpl struct {
	location *time.Location
}

// NewStandardImpl returns a clock in the given location, nil means the local timezone.
func NewStandardImpl(location *time.Location) StandardImpl {
	if location == nil {
		location = time.Local
	}
	return StandardImpl{location: location}
}

func (s StandardImpl) Now() time.Time {
	return time.Now().In(s.location)
}

func (s StandardImpl) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunDate formats t as the date a run is stamped with.
func RunDate(t time.Time) string {
	return t.Format(DateLayout)
}
