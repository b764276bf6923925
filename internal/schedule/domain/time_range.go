package domain

import (
	"fmt"
	"time"

	sharedDomain "github.com/temporahq/tempora/internal/shared/domain"
)

var ErrInvalidTimeRange = fmt.Errorf("end time must be after start time: %w", sharedDomain.ErrValidation)

// TimeRange is the fixed period a slot covers within its day.
type TimeRange struct {
	start time.Time
	end   time.Time
}

// NewTimeRange creates a validated time range.
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if !end.After(start) {
		return TimeRange{}, ErrInvalidTimeRange
	}
	return TimeRange{start: start, end: end}, nil
}

func (r TimeRange) Start() time.Time { return r.start }
func (r TimeRange) End() time.Time   { return r.end }

// Duration returns the length of the range.
func (r TimeRange) Duration() time.Duration {
	return r.end.Sub(r.start)
}

// Hours returns the length of the range in fractional hours.
func (r TimeRange) Hours() float64 {
	return r.Duration().Hours()
}

// Overlaps reports whether two ranges share any time.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.start.Before(other.end) && r.end.After(other.start)
}

func (r TimeRange) String() string {
	return r.start.Format("15:04") + "-" + r.end.Format("15:04")
}
