package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/interview-slots/internal/domain"
)

const (
	msgValidation     = "некорректные параметры слота"
	msgDuplicate      = "слот на это окно уже существует"
	msgSlotNotFound   = "слот не найден"
	msgNotAvailable   = "слот недоступен для бронирования"
	msgBookingFailed  = "не удалось забронировать слот, обновите доступность и повторите"
	msgReleaseFailed  = "не удалось освободить место, слот изменён параллельно, повторите запрос"
	msgHasBookings    = "у слота есть активные бронирования"
	msgTerminalState  = "слот уже отменён или завершён"
	msgConflict       = "слот изменён параллельно, повторите запрос"
	msgNoMatchingSlot = "для выбранного окна нет слота"
	msgOutcomeUnknown = "истекло время ожидания, результат операции неизвестен; перечитайте слот"
)

// SlotErrorStatus HTTP статус и сообщение для доменной ошибки.
// ok=false означает внутреннюю ошибку.
func SlotErrorStatus(err error) (status int, message string, ok bool) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, msgValidation + ": " + err.Error(), true
	case errors.Is(err, domain.ErrSlotNotFound):
		return http.StatusNotFound, msgSlotNotFound, true
	case errors.Is(err, domain.ErrNoMatchingSlot):
		return http.StatusNotFound, msgNoMatchingSlot, true
	case errors.Is(err, domain.ErrDuplicate):
		return http.StatusConflict, msgDuplicate, true
	case errors.Is(err, domain.ErrNotAvailable):
		return http.StatusConflict, msgNotAvailable, true
	case errors.Is(err, domain.ErrReleaseFailed):
		return http.StatusConflict, msgReleaseFailed, true
	case errors.Is(err, domain.ErrBookingFailed):
		return http.StatusConflict, msgBookingFailed, true
	case errors.Is(err, domain.ErrSlotHasBookings):
		return http.StatusConflict, msgHasBookings, true
	case errors.Is(err, domain.ErrTerminalState):
		return http.StatusConflict, msgTerminalState, true
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, msgConflict, true
	case errors.Is(err, domain.ErrOutcomeUnknown),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, msgOutcomeUnknown, true
	}
	return http.StatusInternalServerError, msgInternalError, false
}
