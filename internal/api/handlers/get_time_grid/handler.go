package get_time_grid

import (
	"net/http"

	"github.com/m04kA/interview-slots/internal/api/handlers"
	"github.com/m04kA/interview-slots/internal/domain"
	"github.com/m04kA/interview-slots/internal/timegrid"
	"github.com/m04kA/interview-slots/pkg/types"
)

const msgInvalidDate = "дата обязательна в формате YYYY-MM-DD"

type Logger interface {
	Warn(format string, v ...interface{})
}

// GridResponse сетка окон дня
type GridResponse struct {
	Date          string       `json:"date"`
	StepMinutes   int          `json:"stepMinutes"`
	BusinessStart string       `json:"businessStart"`
	BusinessEnd   string       `json:"businessEnd"`
	Windows       []GridWindow `json:"windows"`
}

// GridWindow окно сетки с 24- и 12-часовыми метками
type GridWindow struct {
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	StartTime12h string `json:"startTime12h"`
	EndTime12h   string `json:"endTime12h"`
	Bookable     bool   `json:"bookable"`
}

type Handler struct {
	hours  types.Window
	logger Logger
}

func NewHandler(hours types.Window, logger Logger) *Handler {
	return &Handler{
		hours:  hours,
		logger: logger,
	}
}

// Handle GET /api/v1/time-grid?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /time-grid - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	grid := timegrid.Generate(date)
	bookable := make(map[types.WindowKey]bool, len(grid))
	for _, cell := range timegrid.Within(grid, h.hours) {
		bookable[cell.Key()] = true
	}

	windows := make([]GridWindow, 0, len(grid))
	for _, cell := range grid {
		windows = append(windows, GridWindow{
			StartTime:    cell.Start.String(),
			EndTime:      cell.End.String(),
			StartTime12h: cell.Start.To12Hour(),
			EndTime12h:   cell.End.To12Hour(),
			Bookable:     bookable[cell.Key()],
		})
	}

	handlers.RespondJSON(w, http.StatusOK, GridResponse{
		Date:          date.Format(domain.DateFormat),
		StepMinutes:   timegrid.StepMinutes,
		BusinessStart: h.hours.Start.String(),
		BusinessEnd:   h.hours.End.String(),
		Windows:       windows,
	})
}
