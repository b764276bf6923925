// Package queries derives statistics from task, schedule and decision state.
// Every view is recomputed from source on read; nothing here is cached or
// persisted, so the numbers can never go stale independent of the data.
package queries

import (
	"errors"
	"time"

	sharedDomain "github.com/temporahq/tempora/internal/shared/domain"
)

func isNotFound(err error) bool {
	return errors.Is(err, sharedDomain.ErrNotFound)
}

// weekBounds returns the Monday and Sunday of the week containing t.
func weekBounds(t time.Time) (time.Time, time.Time) {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())

	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	monday := day.AddDate(0, 0, 1-weekday)
	return monday, monday.AddDate(0, 0, 6)
}

// dayKey identifies a calendar day regardless of the time's location.
func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
