package book_window

import (
	"fmt"

	"github.com/m04kA/interview-slots/internal/api/handlers"
	bookWindow "github.com/m04kA/interview-slots/internal/usecase/book_window"
	"github.com/m04kA/interview-slots/pkg/types"
)

// BookWindowRequest окно, выбранное в календаре. Время можно передать в
// 24-часовом формате (startTime/endTime) или в 12-часовом, как его показывает UI.
type BookWindowRequest struct {
	Date         string `json:"date"`
	StartTime    string `json:"startTime,omitempty"`
	EndTime      string `json:"endTime,omitempty"`
	StartTime12h string `json:"startTime12h,omitempty"`
	EndTime12h   string `json:"endTime12h,omitempty"`
	JobID        *int64 `json:"jobId,omitempty"`
}

// ToUseCaseRequest разбирает дату и окно
func (r BookWindowRequest) ToUseCaseRequest(companyID int64) (*bookWindow.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	window, err := r.window()
	if err != nil {
		return nil, fmt.Errorf("%w: window: %v", handlers.ErrInvalidParam, err)
	}

	return &bookWindow.Request{
		Date:      date,
		Window:    window,
		CompanyID: companyID,
		JobID:     r.JobID,
	}, nil
}

func (r BookWindowRequest) window() (types.Window, error) {
	if r.StartTime12h == "" && r.EndTime12h == "" {
		return types.NewWindow(r.StartTime, r.EndTime)
	}

	return types.ParseWindow12h(r.StartTime12h, r.EndTime12h)
}
