package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	minutesPerDay = 24 * 60

	// EndOfDay marks the end bound of the last window of a day. It is only valid
	// as a window end and never as a start.
	EndOfDay TimeString = "24:00"
)

var (
	// ErrInvalidTimeString is returned when a value is not a valid "HH:MM" time of day.
	ErrInvalidTimeString = errors.New("invalid time string format")
)

// TimeString is a time of day in 24-hour "HH:MM" form.
type TimeString string

// NewTimeString takes the hour and minute of t.
func NewTimeString(t time.Time) TimeString {
	return FromMinutes(t.Hour()*60 + t.Minute())
}

// NewTimeStringFromString parses "HH:MM" (an optional ":SS" suffix as returned by
// Postgres TIME columns is accepted when seconds are zero).
func NewTimeStringFromString(s string) (TimeString, error) {
	minutes, err := parseMinutes(strings.TrimSpace(s))
	if err != nil {
		return "", err
	}
	return FromMinutes(minutes), nil
}

// MustTimeString is NewTimeStringFromString for constants and tests.
func MustTimeString(s string) TimeString {
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

// FromMinutes builds a TimeString from minutes since midnight. 1440 yields EndOfDay.
func FromMinutes(minutes int) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60))
}

// Minutes returns minutes since midnight, or -1 for an invalid value.
func (t TimeString) Minutes() int {
	m, err := parseMinutes(string(t))
	if err != nil {
		return -1
	}
	return m
}

// String implements fmt.Stringer.
func (t TimeString) String() string {
	return string(t)
}

// IsZero reports whether the value is empty.
func (t TimeString) IsZero() bool {
	return t == ""
}

// IsEndOfDay reports whether t is the 24:00 marker.
func (t TimeString) IsEndOfDay() bool {
	return t.Minutes() == minutesPerDay
}

// Validate checks the "HH:MM" format.
func (t TimeString) Validate() error {
	_, err := parseMinutes(string(t))
	return err
}

// IsBefore compares parsed values.
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter compares parsed values.
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// Equal compares parsed values, so "9:00" and "09:00" are the same time.
func (t TimeString) Equal(other TimeString) bool {
	return t.Minutes() == other.Minutes()
}

// To12Hour renders the time as "hh:MM AM/PM". EndOfDay renders as "12:00 AM".
func (t TimeString) To12Hour() string {
	m := t.Minutes()
	if m < 0 {
		return string(t)
	}
	m %= minutesPerDay
	hour, minute := m/60, m%60
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return fmt.Sprintf("%02d:%02d %s", hour12, minute, suffix)
}

// ParseTwelveHour parses "hh:MM AM/PM" (case-insensitive, hour may be one digit)
// back into 24-hour form.
func ParseTwelveHour(s string) (TimeString, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) != 2 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	clock, suffix := fields[0], strings.ToUpper(fields[1])
	if suffix != "AM" && suffix != "PM" {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	hour, minute, err := splitClock(clock)
	if err != nil {
		return "", err
	}
	if hour < 1 || hour > 12 || minute < 0 || minute > 59 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	hour %= 12
	if suffix == "PM" {
		hour += 12
	}
	return FromMinutes(hour*60 + minute), nil
}

// Scan implements sql.Scanner for TIME columns.
func (t *TimeString) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case nil:
		*t = ""
		return nil
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeString, src)
	}

	parsed, err := NewTimeStringFromString(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value implements driver.Valuer.
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t) + ":00", nil
}

func parseMinutes(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) == 3 {
		if parts[2] != "00" {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
		}
		parts = parts[:2]
	}
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	hour, minute, err := splitClock(parts[0] + ":" + parts[1])
	if err != nil {
		return 0, err
	}
	if len(parts[1]) != 2 || minute < 0 || minute > 59 || hour < 0 || hour > 24 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	if hour == 24 && minute != 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return hour*60 + minute, nil
}

func splitClock(s string) (int, int, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return hour, minute, nil
}
