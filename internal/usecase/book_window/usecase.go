package book_window

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/interview-slots/internal/domain"
)

// maxRounds сколько раз окно перевыбирается, если выбранный слот успели занять
const maxRounds = 2

// UseCase бронирует место в окне: SlotMatcher выбирает слот, Coordinator бронирует.
// Идентификатор слота передаётся явно от одного к другому.
type UseCase struct {
	matcher     SlotMatcher
	coordinator BookingCoordinator
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(matcher SlotMatcher, coordinator BookingCoordinator, logger Logger) *UseCase {
	return &UseCase{
		matcher:     matcher,
		coordinator: coordinator,
		logger:      logger,
	}
}

// Execute выполняет бронирование окна
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.CompanyID <= 0 {
		return nil, fmt.Errorf("%w: companyID must be positive", domain.ErrValidation)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", domain.ErrValidation)
	}

	scope := domain.Scope{CompanyID: req.CompanyID, JobID: req.JobID}

	var (
		lastSlotID int64
		lastErr    error
	)
	for round := 0; round < maxRounds; round++ {
		slot, err := uc.matcher.Resolve(ctx, req.Date, req.Window, scope)
		if err != nil {
			if errors.Is(err, domain.ErrNoMatchingSlot) || errors.Is(err, domain.ErrValidation) {
				uc.logger.Warn("BookWindow: company=%d date=%s window=%s: %v",
					req.CompanyID, req.Date.Format(domain.DateFormat), req.Window, err)
				return nil, err
			}
			uc.logger.Error("BookWindow: resolve window %s: %v", req.Window, err)
			return nil, err
		}
		if slot.ID == lastSlotID {
			break
		}
		lastSlotID = slot.ID

		booked, err := uc.coordinator.Book(ctx, slot.ID)
		if err == nil {
			uc.logger.Info("BookWindow: company=%d date=%s window=%s booked slot id=%d",
				req.CompanyID, req.Date.Format(domain.DateFormat), req.Window, booked.ID)
			return &Response{Slot: booked}, nil
		}
		lastErr = err

		// Только отказ по заполненности имеет смысл переигрывать на другом слоте окна
		if !errors.Is(err, domain.ErrNotAvailable) {
			return nil, err
		}
	}

	return nil, lastErr
}
