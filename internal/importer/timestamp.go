package importer

import (
	"database/sql"
	"errors"
	"strings"
	"time"
)

// Exports are day-first; ISO layouts are accepted for re-saved files.
var timestampLayouts = []string{
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// ParseTimestamp reads a sale start time in loc. It returns false when no layout matches.
func ParseTimestamp(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// NormalizeTimestamps converts the timestamp column of t, with null for unparseable cells.
func NormalizeTimestamps(t *Table, col string, loc *time.Location) ([]sql.NullTime, *Warning) {
	idx, err := t.Index(col)
	if errors.Is(err, ErrColumnMissing) {
		return nil, nil
	}

	if err != nil {
		return make([]sql.NullTime, len(t.Rows)), &Warning{Column: col, Message: err.Error()}
	}

	out := make([]sql.NullTime, len(t.Rows))
	filled, parsed := 0, 0

	for i := range t.Rows {
		cell := t.Cell(i, idx)
		if cell == "" {
			continue
		}

		filled++

		ts, ok := ParseTimestamp(cell, loc)
		if !ok {
			continue
		}

		out[i] = sql.NullTime{Time: ts, Valid: true}
		parsed++
	}

	if filled > 0 && parsed == 0 {
		return out, &Warning{Column: col, Message: "no value could be read as a date; column is unusable"}
	}

	return out, nil
}
