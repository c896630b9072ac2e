package list_slots

import (
	"context"

	"github.com/m04kA/interview-slots/internal/domain"
	"github.com/m04kA/interview-slots/internal/service/slots/models"
)

type SlotsService interface {
	List(ctx context.Context, in models.ListSlotsInput) ([]*domain.Slot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
