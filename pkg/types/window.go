package types

import (
	"errors"
	"fmt"
)

// ErrInvalidWindow is returned for malformed or inverted windows.
var ErrInvalidWindow = errors.New("invalid time window")

// Window is a [Start, End) time-of-day range.
type Window struct {
	Start TimeString
	End   TimeString
}

// NewWindow parses both bounds and checks Start < End.
func NewWindow(start, end string) (Window, error) {
	s, err := NewTimeStringFromString(start)
	if err != nil {
		return Window{}, err
	}
	e, err := NewTimeStringFromString(end)
	if err != nil {
		return Window{}, err
	}
	w := Window{Start: s, End: e}
	if err := w.Validate(); err != nil {
		return Window{}, err
	}
	return w, nil
}

// ParseWindow12h parses both bounds in "hh:MM AM/PM" form. Midnight as the end
// of a window is the end of the day, so "11:50 PM" - "12:00 AM" is 23:50-24:00.
func ParseWindow12h(start, end string) (Window, error) {
	s, err := ParseTwelveHour(start)
	if err != nil {
		return Window{}, err
	}
	e, err := ParseTwelveHour(end)
	if err != nil {
		return Window{}, err
	}
	if e.Minutes() == 0 {
		e = EndOfDay
	}
	w := Window{Start: s, End: e}
	if err := w.Validate(); err != nil {
		return Window{}, err
	}
	return w, nil
}

// Validate checks both bounds and their ordering.
func (w Window) Validate() error {
	if err := w.Start.Validate(); err != nil {
		return err
	}
	if err := w.End.Validate(); err != nil {
		return err
	}
	if w.Start.IsEndOfDay() {
		return fmt.Errorf("%w: start cannot be %s", ErrInvalidWindow, EndOfDay)
	}
	if !w.Start.IsBefore(w.End) {
		return fmt.Errorf("%w: start %s must be before end %s", ErrInvalidWindow, w.Start, w.End)
	}
	return nil
}

// Equal compares parsed bounds.
func (w Window) Equal(other Window) bool {
	return w.Start.Equal(other.Start) && w.End.Equal(other.End)
}

// Key is a comparable value for map grouping; it is built from parsed minutes.
func (w Window) Key() WindowKey {
	return WindowKey{Start: w.Start.Minutes(), End: w.End.Minutes()}
}

// String renders "HH:MM-HH:MM".
func (w Window) String() string {
	return w.Start.String() + "-" + w.End.String()
}

// Label12h renders "hh:MM AM - hh:MM PM".
func (w Window) Label12h() string {
	return w.Start.To12Hour() + " - " + w.End.To12Hour()
}

// WindowKey identifies a window by parsed minutes.
type WindowKey struct {
	Start int
	End   int
}
