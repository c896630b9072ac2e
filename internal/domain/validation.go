package domain

import (
	"encoding/json"
	"fmt"

	"github.com/m04kA/interview-slots/internal/timegrid"
	"github.com/m04kA/interview-slots/pkg/types"
)

// ValidateWindow checks that the window is well formed, aligned to the grid
// and lies within business hours
func ValidateWindow(w types.Window, hours types.Window) error {
	if err := w.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if !timegrid.IsAligned(w) {
		return fmt.Errorf("%w: window %s is not aligned to %d minutes", ErrValidation, w, GridStepMinutes)
	}
	if !timegrid.Inside(w, hours) {
		return fmt.Errorf("%w: window %s is outside business hours %s", ErrValidation, w, hours)
	}
	return nil
}

func ValidateCapacity(capacity int) error {
	if capacity < MinCapacity || capacity > MaxCapacity {
		return fmt.Errorf("%w: max capacity must be between %d and %d, got %d",
			ErrValidation, MinCapacity, MaxCapacity, capacity)
	}
	return nil
}

func ValidateInterviewType(t InterviewType) error {
	if !t.IsValid() {
		return fmt.Errorf("%w: unknown interview type %q", ErrValidation, t)
	}
	return nil
}

// ValidateConfiguration accepts an empty payload or a JSON object
func ValidateConfiguration(raw json.RawMessage) error {
	if len(raw) == 0 {
		return nil
	}
	if len(raw) > MaxConfigurationBytes {
		return fmt.Errorf("%w: configuration exceeds %d bytes", ErrValidation, MaxConfigurationBytes)
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return fmt.Errorf("%w: configuration must be a JSON object: %v", ErrValidation, err)
	}
	return nil
}
