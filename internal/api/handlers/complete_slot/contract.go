package complete_slot

import (
	"context"

	"github.com/m04kA/interview-slots/internal/domain"
)

type SlotCompleter interface {
	Complete(ctx context.Context, slotID int64) (*domain.Slot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
