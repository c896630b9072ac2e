package create_slot

import (
	"context"

	"github.com/m04kA/interview-slots/internal/domain"
	"github.com/m04kA/interview-slots/internal/service/slots/models"
)

type SlotsService interface {
	Create(ctx context.Context, in models.CreateSlotInput) (*domain.Slot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
