package book_window

import (
	"context"
	"time"

	"github.com/m04kA/interview-slots/internal/domain"
	"github.com/m04kA/interview-slots/pkg/types"
)

// SlotMatcher интерфейс выбора слота по окну
type SlotMatcher interface {
	Resolve(ctx context.Context, date time.Time, window types.Window, scope domain.Scope) (*domain.Slot, error)
}

// BookingCoordinator интерфейс бронирования слота
type BookingCoordinator interface {
	Book(ctx context.Context, slotID int64) (*domain.Slot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
