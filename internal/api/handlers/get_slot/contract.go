package get_slot

import (
	"context"

	"github.com/m04kA/interview-slots/internal/domain"
)

type SlotsService interface {
	Get(ctx context.Context, id int64) (*domain.Slot, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
