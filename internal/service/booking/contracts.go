package booking

import (
	"context"

	"github.com/m04kA/interview-slots/internal/domain"
	"github.com/m04kA/interview-slots/internal/integrations/events"
)

// SlotRepository интерфейс хранилища слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	ConditionalUpdate(ctx context.Context, id, expectedVersion int64, update domain.SlotUpdate) (*domain.Slot, error)
}

// EventPublisher интерфейс публикации событий
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Metrics интерфейс учёта операций
type Metrics interface {
	ObserveBooking(operation, outcome string)
	ObserveConflict(operation string)
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
