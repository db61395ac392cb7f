// Package timewindow parses wall-clock HH:MM strings and calendar dates and
// computes overlap between half-open [start, end) windows on a single day.
package timewindow

import (
	"fmt"
	"time"

	"github.com/dtroode/salon-server/internal/model"
)

const (
	// ClockLayout is the HH:MM 24-hour layout used for start and end times.
	ClockLayout = "15:04"
	// DateLayout is the calendar day layout.
	DateLayout = "2006-01-02"

	minutesPerDay = 24 * 60
)

// Clock is a time of day in minutes since midnight.
type Clock int

// ParseClock parses an HH:MM string with hour 0-23 and minute 0-59.
func ParseClock(s string) (Clock, error) {
	// time.Parse takes a one-digit hour for "15".
	if len(s) != len(ClockLayout) {
		return 0, fmt.Errorf("%w: %q", model.ErrInvalidFormat, s)
	}
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", model.ErrInvalidFormat, s)
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

// String formats c as HH:MM.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Window is a half-open [Start, End) interval within one day.
type Window struct {
	Start Clock
	End   Clock
}

// NewWindow parses start and end and requires start < end.
func NewWindow(start, end string) (Window, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Window{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Window{}, err
	}
	if s >= e {
		return Window{}, fmt.Errorf("%w: window %s-%s is empty or reversed", model.ErrInvalidArgument, start, end)
	}
	return Window{Start: s, End: e}, nil
}

// Overlaps reports whether w and o share at least one minute. Windows that
// only touch at an endpoint do not overlap.
func (w Window) Overlaps(o Window) bool {
	return w.Start < o.End && w.End > o.Start
}

// Overlaps reports whether [startA, endA) and [startB, endB) overlap.
func Overlaps(startA, endA, startB, endB string) (bool, error) {
	sa, err := ParseClock(startA)
	if err != nil {
		return false, err
	}
	ea, err := ParseClock(endA)
	if err != nil {
		return false, err
	}
	sb, err := ParseClock(startB)
	if err != nil {
		return false, err
	}
	eb, err := ParseClock(endB)
	if err != nil {
		return false, err
	}
	return Window{Start: sa, End: ea}.Overlaps(Window{Start: sb, End: eb}), nil
}

// EndOf returns start plus duration minutes. The result must stay on the
// same day.
func EndOf(start string, duration int) (string, error) {
	s, err := ParseClock(start)
	if err != nil {
		return "", err
	}
	if duration <= 0 {
		return "", fmt.Errorf("%w: duration must be positive", model.ErrInvalidArgument)
	}
	end := int(s) + duration
	if end >= minutesPerDay {
		return "", fmt.Errorf("%w: %s + %d minutes", model.ErrCrossesMidnight, start, duration)
	}
	return Clock(end).String(), nil
}

// ParseDate parses a YYYY-MM-DD calendar day and returns it at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q", model.ErrInvalidFormat, s)
	}
	return d, nil
}

// FormatDate formats a calendar day as YYYY-MM-DD.
func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

// Day strips the time of day from t, keeping its calendar date.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
