package period

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidDate = errors.New("invalid date")

var dateLayouts = []string{"2006-01-02", "02/01/2006"}

// ParseDate reads an ISO or day-first date. An empty string yields the zero time.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// NewSelection builds a Selection from user input. Dates are only parsed for
// Custom, and giving a date without a preset implies Custom.
func NewSelection(preset, start, end string, loc *time.Location) (Selection, error) {
	if loc == nil {
		loc = time.Local
	}

	if strings.TrimSpace(preset) == "" && (start != "" || end != "") {
		preset = string(Custom)
	}

	p, err := Parse(preset)
	if err != nil {
		return Selection{}, err
	}

	sel := Selection{Preset: p}
	if p != Custom {
		return sel, nil
	}

	if sel.Start, err = ParseDate(start, loc); err != nil {
		return Selection{}, fmt.Errorf("start: %w", err)
	}

	if sel.End, err = ParseDate(end, loc); err != nil {
		return Selection{}, fmt.Errorf("end: %w", err)
	}

	return sel, nil
}
