package book_window

import (
	"time"

	"github.com/m04kA/interview-slots/internal/domain"
	"github.com/m04kA/interview-slots/pkg/types"
)

// Request окно, выбранное пользователем, и область видимости
type Request struct {
	Date      time.Time
	Window    types.Window
	CompanyID int64
	JobID     *int64
}

// Response забронированный слот
type Response struct {
	Slot *domain.Slot
}
