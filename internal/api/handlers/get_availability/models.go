package get_availability

import (
	"github.com/m04kA/interview-slots/internal/domain"
	getAvailability "github.com/m04kA/interview-slots/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP модель доступности
type AvailabilityResponse struct {
	Date      string          `json:"date"`
	Available []DisplayWindow `json:"available"`
	Booked    []DisplayWindow `json:"booked"`
}

// DisplayWindow окно для отображения; slotIds передаются клиентом обратно
// при бронировании
type DisplayWindow struct {
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	Label12h      string  `json:"label12h"`
	TotalCapacity int     `json:"totalCapacity"`
	TotalBookings int     `json:"totalBookings"`
	Remaining     int     `json:"remaining"`
	SlotIDs       []int64 `json:"slotIds"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		Available: convert(resp.Available),
		Booked:    convert(resp.Booked),
	}
}

func convert(list []getAvailability.DisplayWindow) []DisplayWindow {
	result := make([]DisplayWindow, 0, len(list))
	for _, w := range list {
		result = append(result, DisplayWindow{
			StartTime:     w.Window.Start.String(),
			EndTime:       w.Window.End.String(),
			Label12h:      w.Label12h,
			TotalCapacity: w.TotalCapacity,
			TotalBookings: w.TotalBookings,
			Remaining:     w.Remaining(),
			SlotIDs:       w.SlotIDs,
		})
	}
	return result
}
