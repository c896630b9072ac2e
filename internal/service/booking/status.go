package booking

import "github.com/m04kA/interview-slots/internal/domain"

// deriveStatus единственное место, где статус вычисляется из счётчика:
// терминальные статусы сохраняются, полный слот BOOKED, иначе AVAILABLE.
func deriveStatus(currentBookings, maxCapacity int, status domain.SlotStatus) domain.SlotStatus {
	if status.IsTerminal() {
		return status
	}
	if currentBookings >= maxCapacity {
		return domain.SlotStatusBooked
	}
	return domain.SlotStatusAvailable
}
