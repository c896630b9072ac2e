package handlers

import (
	"encoding/json"
	"time"

	"github.com/m04kA/interview-slots/internal/domain"
)

// SlotResponse HTTP модель слота
type SlotResponse struct {
	ID              int64           `json:"id"`
	Date            string          `json:"date"`
	StartTime       string          `json:"startTime"`
	EndTime         string          `json:"endTime"`
	Label12h        string          `json:"label12h"`
	InterviewType   string          `json:"interviewType"`
	MaxCapacity     int             `json:"maxCapacity"`
	CurrentBookings int             `json:"currentBookings"`
	Status          string          `json:"status"`
	CompanyID       int64           `json:"companyId"`
	JobID           *int64          `json:"jobId,omitempty"`
	Configuration   json.RawMessage `json:"configuration,omitempty"`
	Version         int64           `json:"version"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// FromDomainSlot конвертирует доменный слот в HTTP модель
func FromDomainSlot(s *domain.Slot) *SlotResponse {
	return &SlotResponse{
		ID:              s.ID,
		Date:            s.Date.Format(domain.DateFormat),
		StartTime:       s.StartTime.String(),
		EndTime:         s.EndTime.String(),
		Label12h:        s.Window().Label12h(),
		InterviewType:   string(s.InterviewType),
		MaxCapacity:     s.MaxCapacity,
		CurrentBookings: s.CurrentBookings,
		Status:          string(s.Status),
		CompanyID:       s.Scope.CompanyID,
		JobID:           s.Scope.JobID,
		Configuration:   s.Configuration,
		Version:         s.Version,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainSlots конвертирует список слотов
func FromDomainSlots(slots []*domain.Slot) []*SlotResponse {
	result := make([]*SlotResponse, 0, len(slots))
	for _, s := range slots {
		result = append(result, FromDomainSlot(s))
	}
	return result
}
