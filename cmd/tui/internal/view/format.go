package view

import (
	"strings"
	"time"

	"github.com/MrJamesThe3rd/salesagent/internal/trend"
)

// FormatDate formats a time.Time into DD/MM/YYYY.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// Bar draws value as a run of blocks scaled against peak.
func Bar(value, peak float64, width int) string {
	if peak <= 0 || value <= 0 {
		return ""
	}

	return strings.Repeat("█", int(value/peak*float64(width)))
}

// Alert colours an alert by its severity.
func Alert(a trend.Alert) string {
	switch a.Severity {
	case trend.Positive:
		return successStyle.Render(a.Text)
	case trend.Negative:
		return errorStyle.Render(a.Text)
	default:
		return warningStyle.Render(a.Text)
	}
}
