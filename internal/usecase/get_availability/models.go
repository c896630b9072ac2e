package get_availability

import (
	"time"

	"github.com/m04kA/interview-slots/pkg/types"
)

// Request дата и область видимости
type Request struct {
	Date      time.Time
	CompanyID int64
	JobID     *int64 // nil - все слоты компании
}

// Response окна, разделённые на свободные и занятые, в хронологическом порядке.
// Окна без живых слотов отсутствуют в обоих списках.
type Response struct {
	Date      time.Time
	Available []DisplayWindow
	Booked    []DisplayWindow
}

// DisplayWindow слоты одного окна, объединённые для отображения
type DisplayWindow struct {
	Window        types.Window
	Label12h      string
	TotalCapacity int
	TotalBookings int
	SlotIDs       []int64 // в порядке создания
}

// Remaining свободных мест во всех слотах окна
func (w DisplayWindow) Remaining() int {
	if w.TotalBookings >= w.TotalCapacity {
		return 0
	}
	return w.TotalCapacity - w.TotalBookings
}
