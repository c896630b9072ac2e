package get_availability

import (
	"context"

	"github.com/m04kA/interview-slots/internal/domain"
)

// SlotRepository интерфейс хранилища слотов
type SlotRepository interface {
	Query(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
