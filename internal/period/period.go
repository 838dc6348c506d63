package period

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/salesagent/internal/sale"
)

var (
	ErrInvalidRange  = errors.New("custom range needs a start and an end, with start on or before end")
	ErrUnknownPreset = errors.New("unknown period")
)

// Preset is a named period the user can pick.
type Preset string

const (
	All          Preset = "all"
	Today        Preset = "today"
	Yesterday    Preset = "yesterday"
	Last7Days    Preset = "last-7-days"
	Last30Days   Preset = "last-30-days"
	Last12Months Preset = "last-12-months"
	Custom       Preset = "custom"
)

// Presets in the order they are offered.
var Presets = []Preset{All, Today, Yesterday, Last7Days, Last30Days, Last12Months, Custom}

var labels = map[Preset]string{
	All:          "Todo o Período",
	Today:        "Hoje",
	Yesterday:    "Ontem",
	Last7Days:    "Últimos 7 dias",
	Last30Days:   "Últimos 30 dias",
	Last12Months: "Últimos 12 meses",
	Custom:       "Personalizado",
}

func (p Preset) Label() string {
	if l, ok := labels[p]; ok {
		return l
	}

	return string(p)
}

// Parse accepts a preset key or its display label, case-insensitively.
// An empty string selects All.
func Parse(s string) (Preset, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return All, nil
	}

	for _, p := range Presets {
		if strings.EqualFold(s, string(p)) || strings.EqualFold(s, labels[p]) {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownPreset, s)
}

// Selection is the user's choice; Start and End are only read for Custom.
type Selection struct {
	Preset Preset
	Start  time.Time
	End    time.Time
}

// Range is an inclusive span of calendar dates, both at midnight.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether the calendar date of t falls within r.
func (r Range) Contains(t time.Time) bool {
	d := Date(t.In(r.Start.Location()))
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days is the number of calendar dates in r.
func (r Range) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24+0.5) + 1
}

// Previous is the range of equal length ending the day before r starts.
func (r Range) Previous() Range {
	end := r.Start.AddDate(0, 0, -1)
	return Range{Start: end.AddDate(0, 0, -(r.Days() - 1)), End: end}
}

func (r Range) String() string {
	return r.Start.Format("02/01/2006") + " - " + r.End.Format("02/01/2006")
}

// Resolve turns a selection into a concrete date range.
// today is the wall-clock date; bounds are only used by All.
func Resolve(sel Selection, today time.Time, bounds sale.Bounds) (Range, error) {
	d := Date(today)

	switch sel.Preset {
	case All, "":
		if bounds.IsZero() {
			return Range{}, sale.ErrNoDateData
		}

		loc := today.Location()

		return Range{Start: Date(bounds.Min.In(loc)), End: Date(bounds.Max.In(loc))}, nil
	case Today:
		return Range{Start: d, End: d}, nil
	case Yesterday:
		y := d.AddDate(0, 0, -1)
		return Range{Start: y, End: y}, nil
	case Last7Days:
		return Range{Start: d.AddDate(0, 0, -6), End: d}, nil
	case Last30Days:
		return Range{Start: d.AddDate(0, 0, -29), End: d}, nil
	case Last12Months:
		return Range{Start: d.AddDate(0, 0, -365), End: d}, nil
	case Custom:
		if sel.Start.IsZero() || sel.End.IsZero() {
			return Range{}, ErrInvalidRange
		}

		start, end := Date(sel.Start), Date(sel.End)
		if start.After(end) {
			return Range{}, ErrInvalidRange
		}

		return Range{Start: start, End: end}, nil
	default:
		return Range{}, fmt.Errorf("%w: %q", ErrUnknownPreset, sel.Preset)
	}
}

// Date truncates t to midnight in its own location.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
