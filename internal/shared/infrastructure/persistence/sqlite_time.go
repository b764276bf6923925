package persistence

import (
	"database/sql"
	"time"
)

// SQLite stores timestamps as RFC3339 text in UTC. The fractional second is
// fixed-width: RFC3339Nano trims trailing zeros, which would make the stored
// text sort "12:00:00.12Z" after "12:00:00.1234Z" and break every
// ORDER BY created_at.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// FormatTime renders a timestamp for storage.
func FormatTime(t time.Time) string {
	return t.UTC().Format(sqliteTimeLayout)
}

// FormatTimePtr renders an optional timestamp, mapping nil to SQL NULL.
func FormatTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return FormatTime(*t)
}

// ParseTime reads a stored timestamp.
func ParseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// ParseNullTime reads an optional stored timestamp.
func ParseNullTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := ParseTime(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
