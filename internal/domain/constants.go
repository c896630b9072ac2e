package domain

import "github.com/m04kA/interview-slots/internal/timegrid"

// Grid and validation constants
const (
	GridStepMinutes = timegrid.StepMinutes
	MinCapacity     = 1
	MaxCapacity     = 100

	MaxConfigurationBytes = 16 * 1024
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// LiveStatuses statuses of slots that still take part in booking
var LiveStatuses = []SlotStatus{
	SlotStatusAvailable,
	SlotStatusBooked,
}
