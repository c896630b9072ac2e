package slot

import (
	"errors"

	"github.com/m04kA/interview-slots/internal/domain"
)

// Семантические ошибки хранилища совпадают с доменными, чтобы сервисы
// проверяли их через errors.Is без знания о конкретном бэкенде
var (
	ErrSlotNotFound    = domain.ErrSlotNotFound
	ErrDuplicate       = domain.ErrDuplicate
	ErrVersionConflict = domain.ErrVersionConflict
	ErrSlotHasBookings = domain.ErrSlotHasBookings
)

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")

	// ErrInvalidUpdate возвращается, если обновление нарушает инварианты слота
	ErrInvalidUpdate = errors.New("slot.repository: update violates slot constraints")
)
