// Package timegrid generates the fixed grid of bookable windows for a day.
package timegrid

import (
	"time"

	"github.com/m04kA/interview-slots/pkg/types"
)

// StepMinutes width of a grid cell
const StepMinutes = 10

// WindowsPerDay number of grid cells in a day
const WindowsPerDay = 24 * 60 / StepMinutes

// Generate returns the day's windows in chronological order: 00:00-00:10 up to
// 23:50-24:00. Wall-clock windows do not depend on the date, so every date
// yields the same grid.
func Generate(_ time.Time) []types.Window {
	windows := make([]types.Window, 0, WindowsPerDay)
	for i := 0; i < WindowsPerDay; i++ {
		start := i * StepMinutes
		windows = append(windows, types.Window{
			Start: types.FromMinutes(start),
			End:   types.FromMinutes(start + StepMinutes),
		})
	}
	return windows
}

// Within keeps the windows that lie entirely inside hours
func Within(windows []types.Window, hours types.Window) []types.Window {
	result := make([]types.Window, 0, len(windows))
	for _, w := range windows {
		if Inside(w, hours) {
			result = append(result, w)
		}
	}
	return result
}

// Inside reports whether w lies entirely inside hours
func Inside(w, hours types.Window) bool {
	return !w.Start.IsBefore(hours.Start) && !w.End.IsAfter(hours.End)
}

// IsAligned reports whether both bounds of w fall on grid boundaries
func IsAligned(w types.Window) bool {
	if w.Validate() != nil {
		return false
	}
	return w.Start.Minutes()%StepMinutes == 0 && w.End.Minutes()%StepMinutes == 0
}

// CellOf returns the grid window containing t
func CellOf(t types.TimeString) (types.Window, error) {
	m := t.Minutes()
	if m < 0 || t.IsEndOfDay() {
		return types.Window{}, types.ErrInvalidTimeString
	}
	start := m - m%StepMinutes
	return types.Window{
		Start: types.FromMinutes(start),
		End:   types.FromMinutes(start + StepMinutes),
	}, nil
}
