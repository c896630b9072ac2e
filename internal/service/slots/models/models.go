package models

import (
	"encoding/json"
	"time"

	"github.com/m04kA/interview-slots/internal/domain"
	"github.com/m04kA/interview-slots/pkg/types"
)

// CreateSlotInput параметры создания слота
type CreateSlotInput struct {
	Date          time.Time
	Window        types.Window
	InterviewType domain.InterviewType
	MaxCapacity   int
	Scope         domain.Scope
	Configuration json.RawMessage
}

// ListSlotsInput фильтр списка слотов
type ListSlotsInput struct {
	Date          time.Time
	Scope         domain.Scope
	Statuses      []domain.SlotStatus
	InterviewType *domain.InterviewType
}
