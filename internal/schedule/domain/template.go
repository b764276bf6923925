package domain

import (
	"fmt"
	"time"

	sharedDomain "github.com/temporahq/tempora/internal/shared/domain"
)

var ErrInvalidTemplate = fmt.Errorf("invalid slot template: %w", sharedDomain.ErrValidation)

// SlotTemplate describes how a day's grid is generated: fixed-length slots
// from day start to day end.
type SlotTemplate struct {
	DayStartHour int
	DayEndHour   int
	SlotMinutes  int
}

// DefaultTemplate covers 07:00 to 23:00 in one-hour slots.
func DefaultTemplate() SlotTemplate {
	return SlotTemplate{DayStartHour: 7, DayEndHour: 23, SlotMinutes: 60}
}

// Validate checks the template describes a non-empty grid.
func (t SlotTemplate) Validate() error {
	if t.DayStartHour < 0 || t.DayEndHour > 24 || t.DayEndHour <= t.DayStartHour {
		return fmt.Errorf("%w: day window %d-%d", ErrInvalidTemplate, t.DayStartHour, t.DayEndHour)
	}
	if t.SlotMinutes <= 0 {
		return fmt.Errorf("%w: slot length %dm", ErrInvalidTemplate, t.SlotMinutes)
	}
	return nil
}

// Ranges generates the slot ranges for the given day. A partial slot at the
// end of the window is dropped rather than truncated.
func (t SlotTemplate) Ranges(day time.Time) ([]TimeRange, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), t.DayStartHour, 0, 0, 0, day.Location())
	dayEnd := time.Date(day.Year(), day.Month(), day.Day(), t.DayEndHour, 0, 0, 0, day.Location())
	step := time.Duration(t.SlotMinutes) * time.Minute

	var ranges []TimeRange
	for start := dayStart; !start.Add(step).After(dayEnd); start = start.Add(step) {
		r, err := NewTimeRange(start, start.Add(step))
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}
