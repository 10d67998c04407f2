package utils

import (
	"fmt"
	"strings"
	"time"
)

const (
	layoutDate      = "2006-01-02"
	layoutDateTime  = "2006-01-02 15:04:05"
	layoutFormLocal = "2006-01-02T15:04"
	layoutMonth     = "2006-01"
)

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// ParseMonth parses YYYY-MM in local timezone.
func ParseMonth(s string) (time.Time, error) {
	return time.ParseInLocation(layoutMonth, strings.TrimSpace(s), time.Local)
}

// ParseDateTime accepts either "YYYY-MM-DD HH:MM[:SS]" or the HTML
// datetime-local form "YYYY-MM-DDTHH:MM".
func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{layoutDateTime, "2006-01-02 15:04", layoutFormLocal, layoutDate} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime %q", s)
}

// NormalizeClock turns "HH:MM" into "HH:MM:SS" and validates the value.
// Returns "" for blank input.
func NormalizeClock(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if t, err := time.Parse("15:04:05", s); err == nil {
		return t.Format("15:04:05"), nil
	}
	if t, err := time.Parse("15:04", s); err == nil {
		return t.Format("15:04:05"), nil
	}
	return "", fmt.Errorf("unrecognized time %q", s)
}

// ClockHM shortens "HH:MM:SS" to "HH:MM" for display.
func ClockHM(s string) string {
	if len(s) >= 5 {
		return s[:5]
	}
	return s
}

// FormatDate formats time to YYYY-MM-DD in local timezone.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(layoutDate)
}

// FormatDateTime formats time to "YYYY-MM-DD HH:MM:SS" in local timezone.
func FormatDateTime(t time.Time) string {
	return t.In(time.Local).Format(layoutDateTime)
}

// FormatDateDMY renders the dd/mm/yyyy form used on the list and CSV.
func FormatDateDMY(t time.Time) string {
	return t.In(time.Local).Format("02/01/2006")
}

// FormatTimeHM renders the 24h HH:MM form.
func FormatTimeHM(t time.Time) string {
	return t.In(time.Local).Format("15:04")
}
